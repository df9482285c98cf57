package server

import (
	"log"
	"net/http"
	"time"

	"github.com/aryannaik/tagging-api/internal/analyzer"
	"github.com/aryannaik/tagging-api/internal/artifact"
)

type Options struct {
	RateLimitPerMinute int
	RateLimitBurst     int
	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
}

// NewHandler wires routes and middleware around the analyzer and store.
func NewHandler(store *artifact.Store, an *analyzer.Analyzer, opts Options) http.Handler {
	handlers := NewHandlers(store, an)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /speech/analyze", handlers.HandleAnalyzeSpeech)
	mux.HandleFunc("POST /image/analyze", handlers.HandleAnalyzeImage)
	mux.HandleFunc("GET /artifacts", handlers.HandleListArtifacts)
	mux.HandleFunc("GET /artifacts/{id}", handlers.HandleGetArtifact)
	mux.HandleFunc("GET /tags", handlers.HandleTagSummary)
	mux.HandleFunc("GET /status", handlers.HandleStatus)
	if opts.MCP != nil {
		mux.Handle("/mcp", opts.MCP)
	}

	var h http.Handler = mux
	h = RateLimitMiddleware(NewRateLimiter(opts.RateLimitPerMinute, opts.RateLimitBurst))(h)
	h = RecoveryMiddleware(h)
	h = LoggingMiddleware(h)
	return h
}

func New(port string, store *artifact.Store, an *analyzer.Analyzer, opts Options) *http.Server {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           NewHandler(store, an, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Server listening on http://localhost:%s", port)
	return srv
}
