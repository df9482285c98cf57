package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aryannaik/tagging-api/internal/tagging"
)

var ErrUnknownType = errors.New("unknown artifact type")

// Type is the kind of input an artifact was derived from.
type Type string

const (
	TypeSpeech Type = "speech"
	TypeImage  Type = "image"
)

// ParseType returns the artifact type named by s, or ErrUnknownType.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeSpeech, TypeImage:
		return Type(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode artifact type: %w", err)
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Artifact is one analyzed input plus its derived tags.
type Artifact struct {
	ID        string        `json:"id"`
	Type      Type          `json:"type"`
	Language  string        `json:"language,omitempty"`
	Tags      []tagging.Tag `json:"tags"`
	CreatedAt time.Time     `json:"created_at"`
}

// TagSummary counts how often a tag occurs across all artifacts.
type TagSummary struct {
	Value    string           `json:"value"`
	Category tagging.Category `json:"category"`
	Count    int              `json:"count"`
}
