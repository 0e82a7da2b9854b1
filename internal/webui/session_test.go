package webui

import "testing"

func TestSessionStoreAppendAndGet(t *testing.T) {
	s := NewSessionStore()

	if got := s.Get("none"); len(got) != 0 {
		t.Errorf("unknown session history = %v, want empty", got)
	}

	s.Append("a", Message{Role: "user", Content: "hi"})
	s.Append("a", Message{Role: "assistant", Content: "hello"})
	s.Append("b", Message{Role: "user", Content: "other"})

	h := s.Get("a")
	if len(h) != 2 || h[0].Content != "hi" || h[1].Content != "hello" {
		t.Errorf("history = %v", h)
	}
	if got := s.Get("b"); len(got) != 1 {
		t.Errorf("session b history = %v", got)
	}

	// Get returns a copy; mutating it does not affect the store.
	h[0].Content = "mutated"
	if s.Get("a")[0].Content != "hi" {
		t.Error("Get should return a copy of the history")
	}
}

func TestSessionStoreTrimsHistory(t *testing.T) {
	s := NewSessionStore()
	for i := 0; i < historyLimit+4; i++ {
		s.Append("a", Message{Role: "user", Content: string(rune('a' + i))})
	}
	h := s.Get("a")
	if len(h) != historyLimit {
		t.Fatalf("history length = %d, want %d", len(h), historyLimit)
	}
	// Oldest messages drop first.
	if h[len(h)-1].Content != string(rune('a'+historyLimit+3)) {
		t.Errorf("last message = %q, want the most recent", h[len(h)-1].Content)
	}
}
