// Package analyzer turns speech transcripts and image URLs into stored, tagged artifacts.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aryannaik/tagging-api/internal/artifact"
	"github.com/aryannaik/tagging-api/internal/tagging"
)

const (
	DefaultLanguage = "en"
	maxURLLength    = 2083
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrLabelSource    = errors.New("label source failed")
)

// LabelSourceError wraps a failure of the external image-labeling call.
type LabelSourceError struct {
	Err error
}

func (e *LabelSourceError) Error() string {
	return "error fetching image labels: " + e.Err.Error()
}

func (e *LabelSourceError) Unwrap() error { return e.Err }

func (e *LabelSourceError) Is(target error) bool { return target == ErrLabelSource }

// LabelSource returns free-text labels for the image at imageURL.
type LabelSource interface {
	Labels(ctx context.Context, imageURL string) ([]string, error)
}

type SpeechRequest struct {
	Type       *artifact.Type `json:"type,omitempty"`
	Transcript string         `json:"transcript"`
	Language   string         `json:"language,omitempty"`
}

type ImageRequest struct {
	Type     *artifact.Type `json:"type,omitempty"`
	ImageURL string         `json:"image_url"`
	Language string         `json:"language,omitempty"`
}

type Analyzer struct {
	store  *artifact.Store
	labels LabelSource
}

func New(store *artifact.Store, labels LabelSource) *Analyzer {
	return &Analyzer{
		store:  store,
		labels: labels,
	}
}

// AnalyzeSpeech tags a transcript and stores it as a speech artifact.
func (a *Analyzer) AnalyzeSpeech(_ context.Context, req SpeechRequest) (artifact.Artifact, error) {
	if err := checkType(req.Type, artifact.TypeSpeech); err != nil {
		return artifact.Artifact{}, err
	}

	transcript := strings.TrimSpace(req.Transcript)
	if transcript == "" {
		return artifact.Artifact{}, fmt.Errorf("%w: transcript must not be empty", ErrInvalidRequest)
	}

	tags := tagging.ClassifyText(transcript)
	return a.store.Create(artifact.TypeSpeech, language(req.Language), tags)
}

// AnalyzeImage labels the image through the label source, tags the labels
// and stores the result as an image artifact. Nothing is stored on failure.
func (a *Analyzer) AnalyzeImage(ctx context.Context, req ImageRequest) (artifact.Artifact, error) {
	if err := checkType(req.Type, artifact.TypeImage); err != nil {
		return artifact.Artifact{}, err
	}

	imageURL, err := ValidateImageURL(req.ImageURL)
	if err != nil {
		return artifact.Artifact{}, err
	}

	if a.labels == nil {
		return artifact.Artifact{}, &LabelSourceError{Err: errors.New("no label source configured")}
	}

	labels, err := a.labels.Labels(ctx, imageURL)
	if err != nil {
		return artifact.Artifact{}, &LabelSourceError{Err: err}
	}

	tags := tagging.ClassifyLabels(labels)
	return a.store.Create(artifact.TypeImage, language(req.Language), tags)
}

// ValidateImageURL accepts absolute http(s) URLs with a host and returns the trimmed URL.
func ValidateImageURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: image_url must not be empty", ErrInvalidRequest)
	}
	if len(raw) > maxURLLength {
		return "", fmt.Errorf("%w: image_url is longer than %d characters", ErrInvalidRequest, maxURLLength)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid image_url: %v", ErrInvalidRequest, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: image_url scheme must be http or https", ErrInvalidRequest)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: image_url is missing a host", ErrInvalidRequest)
	}

	return u.String(), nil
}

func checkType(got *artifact.Type, want artifact.Type) error {
	if got != nil && *got != want {
		return fmt.Errorf("%w: type must be %q", ErrInvalidRequest, want)
	}
	return nil
}

func language(lang string) string {
	if lang = strings.TrimSpace(lang); lang != "" {
		return lang
	}
	return DefaultLanguage
}
