package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/swimlane"
	"github.com/aretw0/swimlane/internal/logging"
	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/aretw0/swimlane/pkg/registry"
	"github.com/aretw0/swimlane/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// Board defines the surface of the swimlane board the HTTP server drives.
// *swimlane.Board satisfies it.
type Board interface {
	ListLanes() []domain.Lane
	ListBlocks(ctx context.Context, filter string) ([]domain.Block, error)
	Block(ctx context.Context, id string) (domain.Block, error)
	CreateBlock(ctx context.Context, content string, lane domain.LaneID) (domain.Block, error)
	GetHistory(ctx context.Context, blockID string) ([]domain.TransitionRecord, error)
	Sessions() *session.Manager
	Registry() *registry.Registry
}

// Server implements the generated ServerInterface
type Server struct {
	Board   Board
	Streams *StreamManager

	metrics http.Handler
	logger  *slog.Logger
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsHandler exposes h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithStreams shares a StreamManager. Commits only reach /events when the
// board was built with the manager's Hooks.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// NewServer creates the Server without routing.
func NewServer(board Board, opts ...Option) *Server {
	s := &Server{
		Board:  board,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.logger)
	}
	return s
}

// NewHandler creates a new HTTP handler for the board.
func NewHandler(board Board, opts ...Option) http.Handler {
	return NewServer(board, opts...).Routes()
}

// Routes mounts the generated API routes next to the documentation and metrics endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		// Use the generated rawSpec function to get the embedded spec
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			s.logger.Error("Failed to load OpenAPI spec", "error", err)
			return
		}
		w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	handler := HandlerWithOptions(s, ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: s.paramError,
	})
	return enableCORS(handler)
}

// paramError answers requests whose parameters the generated wrapper could not bind.
func (s *Server) paramError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warn("Invalid request parameters", "path", r.URL.Path, "error", err)
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Swimlane API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`


// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	} else if err != nil {
		s.logger.Error("Failed to load OpenAPI spec", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "swimlane-http",
		"version":     strings.TrimSpace(swimlane.Version),
		"api_version": apiVersion,
		"board":       s.Board.Registry().Name(),
	})
}

// ListLanes handles the GET /lanes request.
func (s *Server) ListLanes(w http.ResponseWriter, r *http.Request) {
	reg := s.Board.Registry()
	lanes := s.Board.ListLanes()
	resp := make([]Lane, len(lanes))
	for i, l := range lanes {
		resp[i] = mapLaneFromDomain(l, reg.Targets(l.ID))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListBlocks handles the GET /blocks request.
func (s *Server) ListBlocks(w http.ResponseWriter, r *http.Request, params ListBlocksParams) {
	filter := ""
	if params.Filter != nil {
		filter = *params.Filter
	}

	blocks, err := s.Board.ListBlocks(r.Context(), filter)
	if err != nil {
		s.writeError(w, "ListBlocks", err)
		return
	}
	resp := make([]Block, len(blocks))
	for i, b := range blocks {
		resp[i] = mapBlockFromDomain(b)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateBlock handles the POST /blocks request.
func (s *Server) CreateBlock(w http.ResponseWriter, r *http.Request) {
	var body CreateBlockJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("CreateBlock: Invalid request body", "error", err)
		return
	}

	var lane domain.LaneID
	if body.Lane != nil {
		lane = domain.LaneID(*body.Lane)
	}
	block, err := s.Board.CreateBlock(r.Context(), body.Content, lane)
	if err != nil {
		s.writeError(w, "CreateBlock", err)
		return
	}
	s.Streams.Broadcast(block.ID, domain.Diff(nil, &block))
	writeJSON(w, http.StatusCreated, mapBlockFromDomain(block))
}

// GetBlock handles the GET /blocks/{id} request.
func (s *Server) GetBlock(w http.ResponseWriter, r *http.Request, id BlockID) {
	block, err := s.Board.Block(r.Context(), id)
	if err != nil {
		s.writeError(w, "GetBlock", err)
		return
	}
	writeJSON(w, http.StatusOK, mapBlockFromDomain(block))
}

// GetHistory handles the GET /blocks/{id}/history request.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request, id BlockID) {
	history, err := s.Board.GetHistory(r.Context(), id)
	if err != nil {
		s.writeError(w, "GetHistory", err)
		return
	}
	writeJSON(w, http.StatusOK, mapHistoryFromDomain(history))
}

// OpenSession handles the POST /sessions request.
func (s *Server) OpenSession(w http.ResponseWriter, r *http.Request) {
	sess := s.Board.Sessions().Open()
	writeJSON(w, http.StatusCreated, mapSessionFromDomain(sess))
}

// GetSession handles the GET /sessions/{sid} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, sid SessionID) {
	sess, ok := s.session(w, sid)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, mapSessionFromDomain(sess))
}

// CloseSession handles the DELETE /sessions/{sid} request.
func (s *Server) CloseSession(w http.ResponseWriter, r *http.Request, sid SessionID) {
	if err := s.Board.Sessions().Close(r.Context(), sid); err != nil {
		s.writeError(w, "CloseSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RequestMove handles the POST /sessions/{sid}/moves request.
func (s *Server) RequestMove(w http.ResponseWriter, r *http.Request, sid SessionID) {
	sess, ok := s.session(w, sid)
	if !ok {
		return
	}

	var body RequestMoveJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("RequestMove: Invalid request body", "error", err)
		return
	}
	if body.BlockId == "" || body.To == "" {
		http.Error(w, "block_id and to are required", http.StatusBadRequest)
		return
	}

	out, err := sess.RequestMove(r.Context(), body.BlockId, domain.LaneID(body.To))
	if err != nil {
		s.writeError(w, "RequestMove", err)
		return
	}
	writeJSON(w, outcomeStatus(out.Kind), MoveResponse{
		Outcome: mapOutcomeFromDomain(out),
		Session: mapSessionFromDomain(sess),
	})
}

// ConfirmMove handles the POST /sessions/{sid}/moves/confirm request.
// Subscribers of /events learn about the commit from the board's hooks.
func (s *Server) ConfirmMove(w http.ResponseWriter, r *http.Request, sid SessionID) {
	sess, ok := s.session(w, sid)
	if !ok {
		return
	}

	var body ConfirmMoveJSONRequestBody
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			s.logger.Warn("ConfirmMove: Invalid request body", "error", err)
			return
		}
	}
	var raw map[string]any
	if body.Values != nil {
		raw = *body.Values
	}
	values, err := registry.DecodeValues(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid values: %v", err), http.StatusBadRequest)
		return
	}

	block, err := sess.Confirm(r.Context(), values)
	if err != nil {
		s.writeError(w, "ConfirmMove", err)
		return
	}
	s.logger.Debug("ConfirmMove: committed", "block_id", block.ID, "session_id", sess.ID())
	writeJSON(w, http.StatusOK, mapBlockFromDomain(block))
}

// CancelMove handles the DELETE /sessions/{sid}/moves request.
func (s *Server) CancelMove(w http.ResponseWriter, r *http.Request, sid SessionID) {
	sess, ok := s.session(w, sid)
	if !ok {
		return
	}
	sess.Cancel(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// DismissNotice handles the DELETE /sessions/{sid}/notice request.
func (s *Server) DismissNotice(w http.ResponseWriter, r *http.Request, sid SessionID) {
	sess, ok := s.session(w, sid)
	if !ok {
		return
	}
	sess.DismissNotice()
	w.WriteHeader(http.StatusNoContent)
}

// -- Helpers --

func ptr[T any](v T) *T {
	return &v
}

func (s *Server) session(w http.ResponseWriter, sid SessionID) (*session.Session, bool) {
	sess, err := s.Board.Sessions().Get(sid)
	if err != nil {
		s.writeError(w, "Session", err)
		return nil, false
	}
	return sess, true
}

func mapLaneFromDomain(l domain.Lane, targets []domain.LaneID) Lane {
	lane := Lane{Id: string(l.ID), Title: l.Title, Targets: make([]string, len(targets))}
	for i, t := range targets {
		lane.Targets[i] = string(t)
	}
	return lane
}

func mapBlockFromDomain(b domain.Block) Block {
	return Block{
		Id:      b.ID,
		Content: b.Content,
		State:   string(b.Lane),
		History: mapHistoryFromDomain(b.History),
	}
}

func mapHistoryFromDomain(history []domain.TransitionRecord) []TransitionRecord {
	res := make([]TransitionRecord, len(history))
	for i, rec := range history {
		data := rec.Clone().Data
		res[i] = TransitionRecord{
			From:      string(rec.From),
			To:        string(rec.To),
			Data:      data,
			Timestamp: rec.Timestamp,
		}
	}
	return res
}

func mapFieldsFromDomain(fields []domain.TransitionField) []TransitionField {
	res := make([]TransitionField, len(fields))
	for i, f := range fields {
		res[i] = TransitionField{Name: f.Name, Type: TransitionFieldType(f.Kind), Label: f.Label}
	}
	return res
}

func mapSessionFromDomain(sess *session.Session) SessionState {
	st := sess.State()
	res := SessionState{
		Id:     sess.ID(),
		Status: SessionStateStatus(st.Status),
	}
	if st.Notice != "" {
		res.Notice = ptr(st.Notice)
	}
	if c := st.Candidate; c != nil {
		res.Candidate = &PendingTransition{
			BlockId: c.BlockID,
			From:    string(c.From),
			To:      string(c.To),
			Fields:  mapFieldsFromDomain(c.Fields),
		}
	}
	return res
}

func mapOutcomeFromDomain(out domain.Outcome) Outcome {
	res := Outcome{
		Kind:    OutcomeKind(out.Kind),
		BlockId: out.BlockID,
		To:      string(out.To),
	}
	if out.From != "" {
		res.From = ptr(string(out.From))
	}
	if len(out.Fields) > 0 {
		res.Fields = ptr(mapFieldsFromDomain(out.Fields))
	}
	if out.Reason != "" {
		res.Reason = ptr(out.Reason)
	}
	return res
}

// outcomeStatus maps a move outcome to its HTTP status.
func outcomeStatus(kind domain.OutcomeKind) int {
	switch kind {
	case domain.OutcomeRejected:
		return http.StatusConflict
	case domain.OutcomeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}

// errorStatus maps domain errors to HTTP statuses.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrBlockNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTransitionRejected),
		errors.Is(err, domain.ErrNoOpMove),
		errors.Is(err, domain.ErrNoPendingTransition),
		errors.Is(err, domain.ErrBlockExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidBlock):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	} else {
		s.logger.Debug(op+" refused", "error", err, "status", status)
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
