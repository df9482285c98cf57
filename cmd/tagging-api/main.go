package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/aryannaik/tagging-api/internal/analyzer"
	"github.com/aryannaik/tagging-api/internal/artifact"
	"github.com/aryannaik/tagging-api/internal/mcp"
	"github.com/aryannaik/tagging-api/internal/server"
	"github.com/aryannaik/tagging-api/internal/vision"
)

var portFlag string

var rootCmd = &cobra.Command{
	Use:           "tagging-api",
	Short:         "Tag speech transcripts and images by keyword",
	Long:          `An HTTP API that derives category tags from speech transcripts or image URLs and keeps the tagged artifacts in memory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portFlag, "port", "p", "", "HTTP port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// app holds the wired dependencies shared by serve and mcp.
type app struct {
	store    *artifact.Store
	analyzer *analyzer.Analyzer
	closeFn  func()
}

func newApp(ctx context.Context, cfg config) (*app, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.GoogleAPIKey)}
	if cfg.VisionEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.VisionEndpoint))
	}

	client, err := vision.NewClient(ctx, cfg.VisionMaxResults, opts...)
	if err != nil {
		return nil, err
	}

	var labels analyzer.LabelSource = client
	closeFn := func() {}
	if cfg.LabelCacheSize > 0 {
		cached, err := vision.NewCachedSource(client, int64(cfg.LabelCacheSize))
		if err != nil {
			return nil, err
		}
		labels = cached
		closeFn = cached.Close
		log.Printf("Label cache enabled: %d entries", cfg.LabelCacheSize)
	}

	store := artifact.NewStore()
	return &app{
		store:    store,
		analyzer: analyzer.New(store, labels),
		closeFn:  closeFn,
	}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if portFlag != "" {
		cfg.Port = portFlag
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.closeFn()

	mcpSrv := mcp.NewServer(a.store, a.analyzer)
	srv := server.New(cfg.Port, a.store, a.analyzer, server.Options{
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RateLimitBurst:     cfg.RateLimitBurst,
		MCP:                mcpSrv.HTTPHandler(),
	})

	return serveUntilDone(ctx, srv)
}

// serveUntilDone runs srv until ctx is cancelled, then shuts it down gracefully.
func serveUntilDone(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server stopped: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Goodbye")
	return nil
}
