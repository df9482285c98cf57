package tagging

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyTagValue   = errors.New("tag value must not be empty")
	ErrUnknownCategory = errors.New("unknown tag category")
)

// Category is the closed set of tag categories.
type Category string

const (
	CategoryAnimal    Category = "animal"
	CategoryLocation  Category = "location"
	CategoryColor     Category = "color"
	CategoryGenre     Category = "genre"
	CategoryTopic     Category = "topic"
	CategoryTimeOfDay Category = "time_of_day"
	CategoryOther     Category = "other"
)

var categories = []Category{
	CategoryAnimal,
	CategoryLocation,
	CategoryColor,
	CategoryGenre,
	CategoryTopic,
	CategoryTimeOfDay,
	CategoryOther,
}

// ParseCategory returns the category named by s, or ErrUnknownCategory.
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode category: %w", err)
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Tag is a detected attribute of an artifact.
type Tag struct {
	Category Category `json:"category"`
	Value    string   `json:"value"`
}

// NewTag trims value and rejects it if nothing is left.
// Casing is kept as given; vocabulary keywords are already lowercase.
func NewTag(category Category, value string) (Tag, error) {
	if _, err := ParseCategory(string(category)); err != nil {
		return Tag{}, err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return Tag{}, ErrEmptyTagValue
	}
	return Tag{Category: category, Value: value}, nil
}

// UnmarshalJSON applies the same checks as NewTag to decoded tags.
func (t *Tag) UnmarshalJSON(data []byte) error {
	type rawTag Tag
	var raw rawTag
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	tag, err := NewTag(raw.Category, raw.Value)
	if err != nil {
		return err
	}
	*t = tag
	return nil
}

// Normalize rebuilds each tag through NewTag, drops the ones it rejects
// and removes repeated (category, value) pairs.
func Normalize(tags []Tag) []Tag {
	valid := make([]Tag, 0, len(tags))
	for _, t := range tags {
		tag, err := NewTag(t.Category, t.Value)
		if err != nil {
			continue
		}
		valid = append(valid, tag)
	}
	return dedupe(valid)
}

type tagKey struct {
	category Category
	value    string
}

// dedupe drops repeated (category, value) pairs, keeping the first one.
func dedupe(tags []Tag) []Tag {
	seen := make(map[tagKey]bool, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		k := tagKey{t.Category, t.Value}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	return out
}
