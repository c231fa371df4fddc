package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/akeefe/tagdex/internal/checkpoint"
	"github.com/akeefe/tagdex/internal/config"
	"github.com/akeefe/tagdex/internal/document"
	"github.com/akeefe/tagdex/internal/engine"
)

const (
	// ServerName is the MCP server name
	ServerName = "tagdex"
	// ServerVersion is the current server version
	ServerVersion = "0.1.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp    *server.MCPServer
	store  *checkpoint.SQLiteStore
	engine *engine.Engine
	cfg    config.Config
}

// NewServer creates a new MCP server instance
func NewServer(cfg config.Config) (*Server, error) {
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve checkpoint database path: %w", err)
	}

	store, err := checkpoint.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize checkpoint store: %w", err)
	}

	open := func(docID string) (document.Document, error) {
		return document.OpenFile(docID)
	}
	eng := engine.New(store, open, cfg)

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:    mcpServer,
		store:  store,
		engine: eng,
		cfg:    cfg,
	}
	s.registerTools()

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.store.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(indexDocumentTool(), s.handleIndexDocument)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
	s.mcp.AddTool(resetCheckpointTool(), s.handleResetCheckpoint)
}
