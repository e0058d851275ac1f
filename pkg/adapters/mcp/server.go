package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/swimlane"
	"github.com/aretw0/swimlane/internal/logging"
	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/aretw0/swimlane/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	boardURI      = "swimlane://board"
	definitionURI = "swimlane://definition"
)

// Board defines the interface required by the MCP server.
// Move tools act on the board's default session; *swimlane.Board satisfies it.
type Board interface {
	ListLanes() []domain.Lane
	ListBlocks(ctx context.Context, filter string) ([]domain.Block, error)
	RequestMove(ctx context.Context, blockID string, to domain.LaneID) (domain.Outcome, error)
	CommitMove(ctx context.Context, blockID string, to domain.LaneID, values map[string]string) (domain.Block, error)
	CancelMove(ctx context.Context)
	Pending() (domain.PendingTransition, bool)
	GetHistory(ctx context.Context, blockID string) ([]domain.TransitionRecord, error)
	Registry() *registry.Registry
}

// BoardSnapshot is the content of the swimlane://board resource.
type BoardSnapshot struct {
	Name    string                    `json:"name"`
	Lanes   []domain.Lane             `json:"lanes"`
	Blocks  []domain.Block            `json:"blocks"`
	Pending *domain.PendingTransition `json:"pending,omitempty"`
}

// Server wraps the board and exposes it as an MCP Server.
type Server struct {
	board     Board
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(board Board, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		board:     board,
		mcpServer: server.NewMCPServer("swimlane-mcp", strings.TrimSpace(swimlane.Version)),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
// It returns when ctx is cancelled or the listener fails.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_lanes",
		mcp.WithDescription("List the board lanes in display order, with the lanes each one can move to."),
	), s.handleListLanes)

	s.mcpServer.AddTool(mcp.NewTool("list_blocks",
		mcp.WithDescription("List blocks, optionally filtered by a case-insensitive substring of their content."),
		mcp.WithString("filter", mcp.Description("Substring to match against block content (optional)")),
	), s.handleListBlocks)

	s.mcpServer.AddTool(mcp.NewTool("request_move",
		mcp.WithDescription("Ask to move a block to another lane. Returns pending (with the fields to fill), rejected, noop or not_found. Nothing changes until commit_move."),
		mcp.WithString("block_id", mcp.Required(), mcp.Description("Block ID")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Destination lane ID")),
	), s.handleRequestMove)

	s.mcpServer.AddTool(mcp.NewTool("commit_move",
		mcp.WithDescription("Move a block and record the transition with the given field values. Undeclared fields are ignored."),
		mcp.WithString("block_id", mcp.Required(), mcp.Description("Block ID")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Destination lane ID")),
		mcp.WithObject("values", mcp.Description("Field values keyed by field name (optional)")),
	), s.handleCommitMove)

	s.mcpServer.AddTool(mcp.NewTool("cancel_move",
		mcp.WithDescription("Discard the pending move, if any. Never changes a block."),
	), s.handleCancelMove)

	s.mcpServer.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("Get the transition history of a block, oldest first."),
		mcp.WithString("block_id", mcp.Required(), mcp.Description("Block ID")),
	), s.handleGetHistory)
}

type laneView struct {
	domain.Lane
	Targets []domain.LaneID `json:"targets"`
}

func (s *Server) handleListLanes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reg := s.board.Registry()
	lanes := s.board.ListLanes()
	views := make([]laneView, len(lanes))
	for i, l := range lanes {
		views[i] = laneView{Lane: l, Targets: reg.Targets(l.ID)}
	}
	return jsonResult(views)
}

func (s *Server) handleListBlocks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blocks, err := s.board.ListBlocks(ctx, request.GetString("filter", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list blocks failed: %v", err)), nil
	}
	return jsonResult(blocks)
}

func (s *Server) handleRequestMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID, err := request.RequireString("block_id")
	if err != nil {
		return mcp.NewToolResultError("block_id argument is required and must be a string"), nil
	}
	to, err := request.RequireString("to")
	if err != nil {
		return mcp.NewToolResultError("to argument is required and must be a string"), nil
	}

	out, err := s.board.RequestMove(ctx, blockID, domain.LaneID(to))
	if err != nil {
		s.logger.Error("MCP RequestMove failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("request move failed: %v", err)), nil
	}
	return jsonResult(out)
}

func (s *Server) handleCommitMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID, err := request.RequireString("block_id")
	if err != nil {
		return mcp.NewToolResultError("block_id argument is required and must be a string"), nil
	}
	to, err := request.RequireString("to")
	if err != nil {
		return mcp.NewToolResultError("to argument is required and must be a string"), nil
	}

	raw, _ := request.GetArguments()["values"].(map[string]any)
	values, err := registry.DecodeValues(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid values: %v", err)), nil
	}

	block, err := s.board.CommitMove(ctx, blockID, domain.LaneID(to), values)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("commit failed: %v", err)), nil
	}
	return jsonResult(block)
}

func (s *Server) handleCancelMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.board.CancelMove(ctx)
	return mcp.NewToolResultText("cancelled"), nil
}

func (s *Server) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID, err := request.RequireString("block_id")
	if err != nil {
		return mcp.NewToolResultError("block_id argument is required and must be a string"), nil
	}
	history, err := s.board.GetHistory(ctx, blockID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get history failed: %v", err)), nil
	}
	return jsonResult(history)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(boardURI, "Current Board",
		mcp.WithResourceDescription("Lanes, blocks and the pending move"),
		mcp.WithMIMEType("application/json"),
	), s.handleBoardResource)

	s.mcpServer.AddResource(mcp.NewResource(definitionURI, "Board Definition",
		mcp.WithResourceDescription("Lanes and transition rules as YAML"),
		mcp.WithMIMEType("application/yaml"),
	), s.handleDefinitionResource)
}

func (s *Server) handleBoardResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	jsonBytes, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode board: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      boardURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) handleDefinitionResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := s.board.Registry().Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to encode definition: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      definitionURI,
			MIMEType: "application/yaml",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) snapshot(ctx context.Context) (BoardSnapshot, error) {
	blocks, err := s.board.ListBlocks(ctx, "")
	if err != nil {
		return BoardSnapshot{}, fmt.Errorf("failed to list blocks: %w", err)
	}
	snap := BoardSnapshot{
		Name:   s.board.Registry().Name(),
		Lanes:  s.board.ListLanes(),
		Blocks: blocks,
	}
	if p, ok := s.board.Pending(); ok {
		snap.Pending = &p
	}
	return snap, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
