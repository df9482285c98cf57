package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aryannaik/tagging-api/internal/analyzer"
	"github.com/aryannaik/tagging-api/internal/artifact"
)

type AnalyzeSpeechInput struct {
	Transcript string `json:"transcript" jsonschema:"the speech transcript to tag"`
	Language   string `json:"language,omitempty" jsonschema:"language code of the transcript (default en)"`
}

type AnalyzeImageInput struct {
	ImageURL string `json:"image_url" jsonschema:"http or https URL of the image to label"`
	Language string `json:"language,omitempty" jsonschema:"language code (default en)"`
}

type GetArtifactInput struct {
	ID string `json:"id" jsonschema:"the artifact id"`
}

type ListArtifactsInput struct{}

type SummarizeTagsInput struct{}

type TagOutput struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}

type ArtifactOutput struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Language  string      `json:"language,omitempty"`
	Tags      []TagOutput `json:"tags"`
	CreatedAt string      `json:"created_at"`
}

type ArtifactListOutput struct {
	Items []ArtifactOutput `json:"items"`
	Count int              `json:"count"`
}

type TagSummaryOutput struct {
	Value    string `json:"value"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type TagSummaryListOutput struct {
	Items []TagSummaryOutput `json:"items"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_speech",
		Description: "Tag a speech transcript by keyword and store it as an artifact",
	}, s.handleAnalyzeSpeech)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_image",
		Description: "Label an image by URL, tag the labels and store it as an artifact",
	}, s.handleAnalyzeImage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_artifact",
		Description: "Fetch one stored artifact by id",
	}, s.handleGetArtifact)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_artifacts",
		Description: "List every stored artifact in creation order",
	}, s.handleListArtifacts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarize_tags",
		Description: "Count how often each tag occurs across all artifacts",
	}, s.handleSummarizeTags)
}

func (s *Server) handleAnalyzeSpeech(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeSpeechInput,
) (*mcp.CallToolResult, ArtifactOutput, error) {
	a, err := s.analyzer.AnalyzeSpeech(ctx, analyzer.SpeechRequest{
		Transcript: input.Transcript,
		Language:   input.Language,
	})
	if err != nil {
		return nil, ArtifactOutput{}, err
	}
	return nil, toArtifactOutput(a), nil
}

func (s *Server) handleAnalyzeImage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeImageInput,
) (*mcp.CallToolResult, ArtifactOutput, error) {
	a, err := s.analyzer.AnalyzeImage(ctx, analyzer.ImageRequest{
		ImageURL: input.ImageURL,
		Language: input.Language,
	})
	if err != nil {
		return nil, ArtifactOutput{}, err
	}
	return nil, toArtifactOutput(a), nil
}

func (s *Server) handleGetArtifact(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetArtifactInput,
) (*mcp.CallToolResult, ArtifactOutput, error) {
	a, ok := s.store.GetByID(input.ID)
	if !ok {
		return nil, ArtifactOutput{}, fmt.Errorf("artifact %q not found", input.ID)
	}
	return nil, toArtifactOutput(a), nil
}

func (s *Server) handleListArtifacts(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListArtifactsInput,
) (*mcp.CallToolResult, ArtifactListOutput, error) {
	artifacts := s.store.List()
	out := ArtifactListOutput{
		Items: make([]ArtifactOutput, len(artifacts)),
		Count: len(artifacts),
	}
	for i := range artifacts {
		out.Items[i] = toArtifactOutput(artifacts[i])
	}
	return nil, out, nil
}

func (s *Server) handleSummarizeTags(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ SummarizeTagsInput,
) (*mcp.CallToolResult, TagSummaryListOutput, error) {
	summaries := s.store.SummarizeTags()
	out := TagSummaryListOutput{Items: make([]TagSummaryOutput, len(summaries))}
	for i, ts := range summaries {
		out.Items[i] = TagSummaryOutput{
			Value:    ts.Value,
			Category: string(ts.Category),
			Count:    ts.Count,
		}
	}
	return nil, out, nil
}

func toArtifactOutput(a artifact.Artifact) ArtifactOutput {
	tags := make([]TagOutput, len(a.Tags))
	for i, t := range a.Tags {
		tags[i] = TagOutput{Category: string(t.Category), Value: t.Value}
	}
	return ArtifactOutput{
		ID:        a.ID,
		Type:      string(a.Type),
		Language:  a.Language,
		Tags:      tags,
		CreatedAt: a.CreatedAt.Format(time.RFC3339Nano),
	}
}
