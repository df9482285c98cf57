// Package vision fetches free-text image labels from the Google Cloud Vision API.
package vision

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	visionapi "google.golang.org/api/vision/v1"
)

const (
	labelDetection    = "LABEL_DETECTION"
	DefaultMaxResults = 10
)

type Client struct {
	svc        *visionapi.Service
	maxResults int64
}

// NewClient builds a label client. Credentials and endpoint overrides come in
// through opts, e.g. option.WithAPIKey.
func NewClient(ctx context.Context, maxResults int, opts ...option.ClientOption) (*Client, error) {
	svc, err := visionapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vision service: %w", err)
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Client{svc: svc, maxResults: int64(maxResults)}, nil
}

// Labels runs label detection on the image at imageURL and returns the label descriptions.
func (c *Client) Labels(ctx context.Context, imageURL string) ([]string, error) {
	req := &visionapi.BatchAnnotateImagesRequest{
		Requests: []*visionapi.AnnotateImageRequest{{
			Image: &visionapi.Image{
				Source: &visionapi.ImageSource{ImageUri: imageURL},
			},
			Features: []*visionapi.Feature{{
				Type:       labelDetection,
				MaxResults: c.maxResults,
			}},
		}},
	}

	resp, err := c.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("annotate image: %w", err)
	}

	if len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return []string{}, nil
	}

	first := resp.Responses[0]
	if first.Error != nil {
		return nil, fmt.Errorf("annotate image: %s (code %d)", first.Error.Message, first.Error.Code)
	}

	labels := make([]string, 0, len(first.LabelAnnotations))
	for _, ann := range first.LabelAnnotations {
		if ann == nil || ann.Description == "" {
			continue
		}
		labels = append(labels, ann.Description)
	}
	return labels, nil
}
