package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/swimlane/pkg/domain"
)

// allBlocks is the topic of subscribers that did not pick a block.
const allBlocks = ""

// StreamManager handles active SSE connections
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan *domain.BlockDiff]struct{} // BlockID -> Set of Channels
	logger      *slog.Logger
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan *domain.BlockDiff]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a listener for one block, or for every block when blockID is empty.
// The returned func unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(blockID string) (<-chan *domain.BlockDiff, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan *domain.BlockDiff, 10)
	if _, ok := sm.subscribers[blockID]; !ok {
		sm.subscribers[blockID] = make(map[chan *domain.BlockDiff]struct{})
	}
	sm.subscribers[blockID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[blockID]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, blockID)
				}
			}
		})
	}
}

// Broadcast delivers a diff to the block's subscribers and to board-wide ones.
// Slow clients lose messages rather than stall the caller.
func (sm *StreamManager) Broadcast(blockID string, diff *domain.BlockDiff) {
	if diff == nil {
		return
	}

	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.logger.Debug("StreamManager: Broadcasting", "block_id", blockID)

	topics := []string{allBlocks}
	if blockID != allBlocks {
		topics = append(topics, blockID)
	}
	for _, topic := range topics {
		for ch := range sm.subscribers[topic] {
			select {
			case ch <- diff:
			default:
				sm.logger.Warn("SSE: Client buffer full, dropping message", "block_id", blockID)
			}
		}
	}
}

// Hooks returns lifecycle hooks that broadcast every committed move.
// The diff is built from the record the engine wrote under the block lock,
// so each commit reaches subscribers exactly once whichever surface made it.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnMoveCommitted: func(_ context.Context, e *domain.MoveEvent) {
			if e.Record == nil {
				return
			}
			to := e.To
			sm.Broadcast(e.BlockID, &domain.BlockDiff{
				BlockID:  e.BlockID,
				Lane:     &to,
				Appended: []domain.TransitionRecord{e.Record.Clone()},
			})
		},
	}
}

// Subscribers returns the number of open subscriptions.
func (sm *StreamManager) Subscribers() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	n := 0
	for _, subs := range sm.subscribers {
		n += len(subs)
	}
	return n
}

// SubscribeEvents handles the GET /events request (SSE).
// Optional query parameters: block_id narrows the stream to one block, and
// watch ("lane", "history") keeps only diffs touching those parts.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, params SubscribeEventsParams) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	blockID := allBlocks
	if params.BlockId != nil {
		blockID = *params.BlockId
	}
	var watchList []string
	if params.Watch != nil && *params.Watch != "" {
		watchList = strings.Split(*params.Watch, ",")
	}

	ch, cancel := s.Streams.Subscribe(blockID)
	defer cancel()
	s.logger.Info("SSE: Subscribing to board updates", "block_id", blockID)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected")
			return
		case diff, ok := <-ch:
			if !ok {
				return
			}
			if !watched(diff, watchList) {
				continue
			}
			payload, err := json.Marshal(mapDiffFromDomain(diff))
			if err != nil {
				s.logger.Error("SSE: encode failed", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: block\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

// watched reports whether diff touches any part named in watchList.
// An empty list watches everything.
func watched(diff *domain.BlockDiff, watchList []string) bool {
	if len(watchList) == 0 {
		return true
	}
	for _, field := range watchList {
		switch strings.TrimSpace(field) {
		case "lane", "state":
			if diff.Lane != nil {
				return true
			}
		case "history":
			if len(diff.Appended) > 0 {
				return true
			}
		}
	}
	return false
}

func mapDiffFromDomain(d *domain.BlockDiff) BlockDiff {
	res := BlockDiff{BlockId: d.BlockID}
	if d.Lane != nil {
		res.State = ptr(string(*d.Lane))
	}
	if len(d.Appended) > 0 {
		res.Appended = ptr(mapHistoryFromDomain(d.Appended))
	}
	return res
}
