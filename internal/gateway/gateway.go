// Package gateway exposes report generation over MCP tool calls.
//
// This is the real-time generation boundary: callers negotiate a session,
// invoke the generate tool, and receive the collapsed started|completed|failed
// status with the assembled content or a structured failure.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/hyperjump/bogoseo/internal/registry"
	"github.com/hyperjump/bogoseo/internal/synth"
)

// Version is the MCP gateway version.
const Version = "0.1.0"

// Gateway is the MCP server for Bogoseo's generation boundary.
type Gateway struct {
	store       registry.Store
	synthesizer *synth.Synthesizer
	server      *mcp.Server
	logger      *zap.Logger
}

// New creates an MCP gateway over the given store and synthesizer.
func New(store registry.Store, synthesizer *synth.Synthesizer, logger *zap.Logger) (*Gateway, error) {
	if store == nil || synthesizer == nil {
		return nil, fmt.Errorf("store and synthesizer are required")
	}
	impl := &mcp.Implementation{
		Name:    "bogoseo",
		Version: Version,
	}
	g := &Gateway{
		store:       store,
		synthesizer: synthesizer,
		server:      mcp.NewServer(impl, nil),
		logger:      logger,
	}
	g.registerTools()
	return g, nil
}

// Run starts the MCP gateway over stdio.
// It blocks until the context is cancelled or an error occurs.
func (g *Gateway) Run(ctx context.Context) error {
	return g.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP gateway over streamable HTTP on the given address.
// It blocks until the context is cancelled or an error occurs.
func (g *Gateway) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return g.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Shutdown(context.Background())
	}()

	if g.logger != nil {
		g.logger.Info("Starting MCP gateway", zap.String("addr", addr))
	}
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
