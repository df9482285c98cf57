package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/aryannaik/tagging-api/internal/analyzer"
	"github.com/aryannaik/tagging-api/internal/artifact"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	store    *artifact.Store
	analyzer *analyzer.Analyzer
}

func NewHandlers(store *artifact.Store, an *analyzer.Analyzer) *Handlers {
	return &Handlers{
		store:    store,
		analyzer: an,
	}
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}

type statusResponse struct {
	ArtifactCount int `json:"artifactCount"`
}

func (h *Handlers) HandleAnalyzeSpeech(w http.ResponseWriter, r *http.Request) {
	var req analyzer.SpeechRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.analyzer.AnalyzeSpeech(r.Context(), req)
	if err != nil {
		writeAnalyzeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

func (h *Handlers) HandleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	var req analyzer.ImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.analyzer.AnalyzeImage(r.Context(), req)
	if err != nil {
		writeAnalyzeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

func (h *Handlers) HandleListArtifacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse[artifact.Artifact]{Items: h.store.List()})
}

func (h *Handlers) HandleGetArtifact(w http.ResponseWriter, r *http.Request) {
	a, ok := h.store.GetByID(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "artifact not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handlers) HandleTagSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse[artifact.TagSummary]{Items: h.store.SummarizeTags()})
}

func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{ArtifactCount: h.store.Count()})
}

func writeAnalyzeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analyzer.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, analyzer.ErrLabelSource):
		log.Printf("Label source error: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		log.Printf("Analyze error: %v", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
