package webui

import "sync"

// historyLimit caps stored chat history per session.
const historyLimit = 6

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionStore keeps per-session chat history in memory. Sessions live for
// the lifetime of the process.
type SessionStore struct {
	mu      sync.Mutex
	history map[string][]Message
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{history: make(map[string][]Message)}
}

// Get returns a copy of the session's history.
func (s *SessionStore) Get(sessionID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.history[sessionID]
	out := make([]Message, len(h))
	copy(out, h)
	return out
}

// Append adds a message, trimming to the history limit.
func (s *SessionStore) Append(sessionID string, msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := append(s.history[sessionID], msg)
	if len(h) > historyLimit {
		h = h[len(h)-historyLimit:]
	}
	s.history[sessionID] = h
}
