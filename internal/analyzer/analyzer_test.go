package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryannaik/tagging-api/internal/artifact"
	"github.com/aryannaik/tagging-api/internal/tagging"
)

type fakeLabels struct {
	labels []string
	err    error
	gotURL string
}

func (f *fakeLabels) Labels(_ context.Context, imageURL string) ([]string, error) {
	f.gotURL = imageURL
	return f.labels, f.err
}

func typePtr(t artifact.Type) *artifact.Type { return &t }

func TestAnalyzeSpeech(t *testing.T) {
	store := artifact.NewStore()
	a := New(store, nil)

	got, err := a.AnalyzeSpeech(context.Background(), SpeechRequest{
		Transcript: "I saw a red cat at the beach this morning",
	})
	require.NoError(t, err)

	assert.Equal(t, artifact.TypeSpeech, got.Type)
	assert.Equal(t, DefaultLanguage, got.Language)
	assert.Subset(t, got.Tags, []tagging.Tag{
		{Category: tagging.CategoryColor, Value: "red"},
		{Category: tagging.CategoryAnimal, Value: "cat"},
		{Category: tagging.CategoryLocation, Value: "beach"},
		{Category: tagging.CategoryTimeOfDay, Value: "morning"},
	})

	stored, ok := store.GetByID(got.ID)
	require.True(t, ok)
	assert.Equal(t, got, stored)
}

func TestAnalyzeSpeech_Language(t *testing.T) {
	a := New(artifact.NewStore(), nil)

	got, err := a.AnalyzeSpeech(context.Background(), SpeechRequest{Transcript: "bonjour", Language: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "fr", got.Language)
	assert.Empty(t, got.Tags)
}

func TestAnalyzeSpeech_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  SpeechRequest
	}{
		{name: "empty transcript", req: SpeechRequest{Transcript: ""}},
		{name: "whitespace transcript", req: SpeechRequest{Transcript: " \n\t "}},
		{name: "wrong type", req: SpeechRequest{Type: typePtr(artifact.TypeImage), Transcript: "dog"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := artifact.NewStore()
			_, err := New(store, nil).AnalyzeSpeech(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Equal(t, 0, store.Count())
		})
	}
}

func TestAnalyzeImage(t *testing.T) {
	store := artifact.NewStore()
	labels := &fakeLabels{labels: []string{"Cat", "Skyscraper"}}
	a := New(store, labels)

	got, err := a.AnalyzeImage(context.Background(), ImageRequest{
		Type:     typePtr(artifact.TypeImage),
		ImageURL: " https://example.com/cat.jpg ",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/cat.jpg", labels.gotURL)
	assert.Equal(t, artifact.TypeImage, got.Type)
	assert.Equal(t, DefaultLanguage, got.Language)
	assert.ElementsMatch(t, []tagging.Tag{
		{Category: tagging.CategoryAnimal, Value: "Cat"},
		{Category: tagging.CategoryOther, Value: "Skyscraper"},
	}, got.Tags)
	assert.Equal(t, 1, store.Count())
}

func TestAnalyzeImage_LabelSourceError(t *testing.T) {
	store := artifact.NewStore()
	cause := errors.New("connection refused")
	a := New(store, &fakeLabels{err: cause})

	_, err := a.AnalyzeImage(context.Background(), ImageRequest{ImageURL: "https://example.com/cat.jpg"})
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrLabelSource)
	assert.ErrorIs(t, err, cause)
	var lse *LabelSourceError
	require.True(t, errors.As(err, &lse))
	assert.Equal(t, "error fetching image labels: connection refused", err.Error())
	assert.Equal(t, 0, store.Count())
}

func TestAnalyzeImage_NoLabelSource(t *testing.T) {
	_, err := New(artifact.NewStore(), nil).AnalyzeImage(context.Background(), ImageRequest{ImageURL: "https://example.com/a.png"})
	assert.ErrorIs(t, err, ErrLabelSource)
}

func TestAnalyzeImage_InvalidRequest(t *testing.T) {
	labels := &fakeLabels{labels: []string{"Dog"}}
	a := New(artifact.NewStore(), labels)

	_, err := a.AnalyzeImage(context.Background(), ImageRequest{Type: typePtr(artifact.TypeSpeech), ImageURL: "https://example.com/a.png"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = a.AnalyzeImage(context.Background(), ImageRequest{ImageURL: "not a url"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, labels.gotURL)
}

func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "https", input: "https://example.com/a.jpg", want: "https://example.com/a.jpg"},
		{name: "http with query", input: "http://example.com/a.jpg?size=large", want: "http://example.com/a.jpg?size=large"},
		{name: "surrounding whitespace", input: "  https://example.com/a.jpg  ", want: "https://example.com/a.jpg"},
		{name: "empty", input: "", wantErr: true},
		{name: "no scheme", input: "example.com/a.jpg", wantErr: true},
		{name: "ftp scheme", input: "ftp://example.com/a.jpg", wantErr: true},
		{name: "missing host", input: "https:///a.jpg", wantErr: true},
		{name: "port only", input: "http://:8080/a.jpg", wantErr: true},
		{name: "too long", input: "https://example.com/" + strings.Repeat("a", maxURLLength), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateImageURL(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
