package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/cardstack/internal/game"
	stacknet "github.com/peterkuimelis/cardstack/internal/net"
	"github.com/peterkuimelis/cardstack/internal/session"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events  []*stacknet.EventView   `json:"events"`
	Status  string                  `json:"status,omitempty"`
	Results []game.ResolutionResult `json:"results,omitempty"`
	State   *session.State          `json:"state,omitempty"`
	Cards   []game.Card             `json:"cards,omitempty"`
}

// ToolSession binds the MCP tools to one stack session. Each response carries
// the events logged since the previous response, so the model sees every
// change, including cards added by human players over TCP.
type ToolSession struct {
	Session *session.Session

	mu   sync.Mutex
	seen int // events already returned
}

// NewToolSession wraps sess.
func NewToolSession(sess *session.Session) *ToolSession {
	return &ToolSession{Session: sess}
}

// drainEvents returns the events logged since the last call.
func (s *ToolSession) drainEvents() []*stacknet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.Session.Events()
	views := make([]*stacknet.EventView, 0, len(all)-s.seen)
	for _, ev := range all[s.seen:] {
		views = append(views, stacknet.NewEventView(ev))
	}
	s.seen = len(all)
	return views
}

// respond fills in the pending events and marshals resp.
func (s *ToolSession) respond(resp *ToolResponse) string {
	resp.Events = s.drainEvents()
	return respondJSON(resp)
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
