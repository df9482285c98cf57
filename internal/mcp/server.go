// Package mcp exposes artifact analysis and lookup as Model Context Protocol tools.
package mcp

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aryannaik/tagging-api/internal/analyzer"
	"github.com/aryannaik/tagging-api/internal/artifact"
)

const (
	serverName = "tagging-api"
	Version    = "0.1.0"
)

type Server struct {
	store    *artifact.Store
	analyzer *analyzer.Analyzer
	server   *mcp.Server
}

func NewServer(store *artifact.Store, an *analyzer.Analyzer) *Server {
	s := &Server{
		store:    store,
		analyzer: an,
		server:   mcp.NewServer(&mcp.Implementation{Name: serverName, Version: Version}, nil),
	}
	s.registerTools()
	return s
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler serves MCP over streamable HTTP.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}
