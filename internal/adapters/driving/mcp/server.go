package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cvboard/internal/logger"
)

// DefaultVersion is reported when no build version is supplied.
const DefaultVersion = "dev"

// Server exposes the CV editor to MCP clients.
type Server struct {
	ports        *Ports
	server       *mcp.Server
	version      string
	instructions string
}

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version announced to clients.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// NewServer creates an MCP server over the given ports.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if ports == nil {
		return nil, fmt.Errorf("validating ports: %w", ErrMissingEditor)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{ports: ports, version: DefaultVersion}
	for _, opt := range opts {
		opt(s)
	}
	s.instructions = s.buildInstructions()

	s.server = mcp.NewServer(
		&mcp.Implementation{Name: "cvboard", Version: s.version},
		&mcp.ServerOptions{Instructions: s.instructions},
	)
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Version returns the version announced to clients.
func (s *Server) Version() string {
	return s.version
}

// Instructions returns the usage notes sent to clients on initialisation.
func (s *Server) Instructions() string {
	return s.instructions
}

func (s *Server) buildInstructions() string {
	doc := s.ports.Editor.Document()

	var b strings.Builder
	fmt.Fprintf(&b, "This server edits the CV %q (%d sections).\n", doc.Title, len(doc.Sections))
	b.WriteString("Read cv://document for the whole CV and cv://sections/{sectionId} for one section's content.\n")
	b.WriteString("Call list_sections for ids in display order, then add_section, delete_section, move_section, ")
	b.WriteString("edit_section, rename_section, resize_section, set_header or set_theme to change it.\n")
	if s.ports.Session != nil {
		b.WriteString("Changes need an edit session: run 'cvboard login' before calling a mutating tool.\n")
	}
	return b.String()
}

// Run serves over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("mcp: serving cvboard %s over stdio", s.version)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is
// cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp: shutting down http server: %v", err)
		}
	}()

	logger.Debug("mcp: serving cvboard %s on %s", s.version, addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
