// Package webui serves the browser chat shell around an insight session.
package webui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Guy-Maoz/insights-deck-ai/internal/brand"
	"github.com/Guy-Maoz/insights-deck-ai/internal/dashboard"
	"github.com/Guy-Maoz/insights-deck-ai/internal/insight"
	"github.com/Guy-Maoz/insights-deck-ai/internal/observability"
)

// Server wires the chat endpoint and dashboard file serving around one
// loaded session.
type Server struct {
	session *insight.Session
	store   *SessionStore
	log     observability.Logger

	// One dashboard request in flight at a time; the generation call is
	// awaited to completion before the next message is handled.
	genMu sync.Mutex
}

// NewServer creates a Server for the given session.
func NewServer(s *insight.Session, log observability.Logger) *Server {
	return &Server{session: s, store: NewSessionStore(), log: log}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(5 * time.Minute))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"insights-deck"}`))
	})
	r.Get("/", s.handleIndex)
	r.Post("/api/chat", s.handleChat)

	fs := http.StripPrefix("/dashboards/", http.FileServer(http.Dir(s.session.OutputDir)))
	r.Get("/dashboards/*", fs.ServeHTTP)

	return r
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID    string `json:"session_id"`
	Answer       string `json:"answer"`
	DashboardURL string `json:"dashboard_url,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}
	if strings.TrimSpace(req.Message) == "" {
		s.respond(w, chatResponse{SessionID: req.SessionID, Answer: insight.HelpMessage})
		return
	}
	s.store.Append(req.SessionID, Message{Role: "user", Content: req.Message})

	resp := s.dispatch(r, req)
	s.store.Append(req.SessionID, Message{Role: "assistant", Content: resp.Answer})
	s.respond(w, resp)
}

// dispatch parses the chat message and runs the matching analysis. Errors
// become user-visible answer strings; the session always survives.
func (s *Server) dispatch(r *http.Request, req chatRequest) chatResponse {
	resp := chatResponse{SessionID: req.SessionID}
	cmd := insight.ParseChatMessage(req.Message)

	switch cmd.Kind {
	case insight.CmdOverview:
		s.generate(r, &resp, dashboard.Request{Mode: dashboard.ModeOverview}, "market overview")

	case insight.CmdBrand:
		name, msg := s.resolveForChat(cmd.Brand)
		if msg != "" {
			resp.Answer = msg
			return resp
		}
		s.generate(r, &resp, dashboard.Request{Mode: dashboard.ModeBrand, Brand: name},
			fmt.Sprintf("brand analysis for %s", name))

	case insight.CmdCompetitive:
		name, msg := s.resolveForChat(cmd.Brand)
		if msg != "" {
			resp.Answer = msg
			return resp
		}
		competitors := s.session.ResolveAll(cmd.Competitors)
		if len(competitors) == 0 {
			resp.Answer = fmt.Sprintf("None of the competitors matched known brands. Available brands: %s",
				strings.Join(s.session.Catalog, ", "))
			return resp
		}
		s.generate(r, &resp, dashboard.Request{Mode: dashboard.ModeCompetitive, Brand: name, Competitors: competitors},
			fmt.Sprintf("competitive analysis for %s vs %s", name, strings.Join(competitors, ", ")))

	default:
		resp.Answer = insight.HelpMessage
	}
	return resp
}

func (s *Server) generate(r *http.Request, resp *chatResponse, req dashboard.Request, what string) {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	path, err := s.session.GenerateDashboard(r.Context(), req)
	if err != nil {
		s.log.Error().Err(err).Str("request", what).Msg("dashboard generation failed")
		resp.Answer = fmt.Sprintf("Error generating dashboard: %v", err)
		return
	}
	resp.Answer = fmt.Sprintf("Dashboard for %s generated successfully!", what)
	resp.DashboardURL = "/dashboards/" + filepath.Base(path)
}

// resolveForChat resolves a brand name for the chat surface. Ambiguous and
// not-found outcomes come back as the reply message; an exact match comes
// back as the canonical name.
func (s *Server) resolveForChat(query string) (name, reply string) {
	res := s.session.Resolve(query)
	switch res.Kind {
	case brand.Resolved:
		return res.Brand, ""
	case brand.Ambiguous:
		return "", fmt.Sprintf("Did you mean one of: %s? Please repeat the command with the exact name.",
			strings.Join(res.Candidates, ", "))
	default:
		return "", fmt.Sprintf("Brand %q not found. Available brands: %s",
			query, strings.Join(res.Catalog, ", "))
	}
}

func (s *Server) respond(w http.ResponseWriter, resp chatResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error().Err(err).Msg("encode chat response")
	}
}
