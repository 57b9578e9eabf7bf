package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/custodia-labs/seekr/internal/logger"
)

// ServerName is the implementation name reported to MCP clients.
const ServerName = "seekr"

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server is the MCP server for seekr.
type Server struct {
	ports  *Ports
	impl   *mcp.Implementation
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    ServerName,
		Version: ports.version(),
	}

	s := &Server{
		ports:  ports,
		impl:   impl,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Implementation returns the name and version announced on initialize.
func (s *Server) Implementation() mcp.Implementation {
	return *s.impl
}

// Run serves over stdio until the client disconnects or ctx is cancelled.
// Logs go to the configured writer, never stdout, which carries JSON-RPC.
func (s *Server) Run(ctx context.Context) error {
	log := s.log("stdio")
	log.Info("MCP server starting")

	err := s.server.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("MCP server stopped", zap.Error(err))
		return fmt.Errorf("mcp stdio: %w", err)
	}
	log.Info("MCP server stopped")
	return nil
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	log := s.log("http").With(zap.String("addr", addr))

	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("MCP shutdown", zap.Error(err))
		}
	}()

	log.Info("MCP server starting")
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		log.Info("MCP server stopped")
		return nil
	}
	return fmt.Errorf("mcp http: %w", err)
}

func (s *Server) log(transport string) *zap.Logger {
	return logger.L().With(
		zap.String("transport", transport),
		zap.String("version", s.impl.Version),
	)
}
