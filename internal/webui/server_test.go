package webui_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Guy-Maoz/insights-deck-ai/internal/dashboard"
	"github.com/Guy-Maoz/insights-deck-ai/internal/dataset"
	"github.com/Guy-Maoz/insights-deck-ai/internal/insight"
	"github.com/Guy-Maoz/insights-deck-ai/internal/observability"
	"github.com/Guy-Maoz/insights-deck-ai/internal/webui"
)

// stubGenerator writes a fixed HTML file under outputDir so the file
// serving route has something to return.
type stubGenerator struct {
	err   error
	calls int
}

func (g *stubGenerator) Generate(_ context.Context, _, _, outputDir, _ string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	path := filepath.Join(outputDir, "generated.html")
	if err := os.WriteFile(path, []byte("<html>dash</html>"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetRow("Sheet1", "A1", &[]any{"About"})
	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	header := make([]any, len(dataset.RequiredColumns))
	for i, c := range dataset.RequiredColumns {
		header[i] = c
	}
	f.SetSheetRow("Data", "A1", &header)
	f.SetSheetRow("Data", "A2", &[]any{"Acme", "Electronics", "30", "5", "4.5", "10", "1"})
	f.SetSheetRow("Data", "A3", &[]any{"Globex", "Home", "20", "10", "4.0", "20", "0"})

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func newTestServer(t *testing.T, gen dashboard.Generator) *httptest.Server {
	t.Helper()
	session, err := insight.NewSession(writeWorkbook(t), gen, insight.Options{
		SnapshotDir: t.TempDir(),
		OutputDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(func() { session.Close() })

	srv := httptest.NewServer(webui.NewServer(session, observability.Nop()).Router())
	t.Cleanup(srv.Close)
	return srv
}

type chatResponse struct {
	SessionID    string `json:"session_id"`
	Answer       string `json:"answer"`
	DashboardURL string `json:"dashboard_url"`
}

func postChat(t *testing.T, srv *httptest.Server, sessionID, message string) chatResponse {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"session_id": sessionID, "message": message})
	resp, err := http.Post(srv.URL+"/api/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post chat: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chat status = %d", resp.StatusCode)
	}
	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode chat response: %v", err)
	}
	return out
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}
}

func TestChatHelpForUnrecognized(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	out := postChat(t, srv, "", "what's the weather?")
	if out.Answer != insight.HelpMessage {
		t.Errorf("answer = %q, want the help message", out.Answer)
	}
	if out.SessionID == "" {
		t.Error("server should mint a session id")
	}
	if out.DashboardURL != "" {
		t.Errorf("dashboard url = %q, want empty", out.DashboardURL)
	}
}

func TestChatOverviewGeneratesDashboard(t *testing.T) {
	gen := &stubGenerator{}
	srv := newTestServer(t, gen)

	out := postChat(t, srv, "session-1", "market overview")
	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
	if !strings.Contains(out.Answer, "generated successfully") {
		t.Errorf("answer = %q", out.Answer)
	}
	if out.DashboardURL != "/dashboards/generated.html" {
		t.Fatalf("dashboard url = %q", out.DashboardURL)
	}

	// The generated file is served under /dashboards/.
	resp, err := http.Get(srv.URL + out.DashboardURL)
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("dashboard status = %d", resp.StatusCode)
	}
}

func TestChatBrandAnalysisResolvesName(t *testing.T) {
	gen := &stubGenerator{}
	srv := newTestServer(t, gen)

	out := postChat(t, srv, "s", "brand analysis acme")
	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
	if !strings.Contains(out.Answer, "Acme") {
		t.Errorf("answer should use the canonical name: %q", out.Answer)
	}
}

func TestChatBrandNotFound(t *testing.T) {
	gen := &stubGenerator{}
	srv := newTestServer(t, gen)

	out := postChat(t, srv, "s", "brand analysis Zzz")
	if gen.calls != 0 {
		t.Fatalf("generator calls = %d, want 0", gen.calls)
	}
	if !strings.Contains(out.Answer, "not found") || !strings.Contains(out.Answer, "Acme") {
		t.Errorf("answer should list the catalog: %q", out.Answer)
	}
}

func TestChatAmbiguousBrand(t *testing.T) {
	gen := &stubGenerator{}
	srv := newTestServer(t, gen)

	out := postChat(t, srv, "s", "brand analysis Acmee")
	if gen.calls != 0 {
		t.Fatalf("generator calls = %d, want 0", gen.calls)
	}
	if !strings.Contains(out.Answer, "Did you mean") {
		t.Errorf("answer = %q, want a disambiguation prompt", out.Answer)
	}
}

func TestChatCompetitiveAnalysis(t *testing.T) {
	gen := &stubGenerator{}
	srv := newTestServer(t, gen)

	out := postChat(t, srv, "s", "competitive analysis Acme vs Globex")
	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
	if !strings.Contains(out.Answer, "Acme") || !strings.Contains(out.Answer, "Globex") {
		t.Errorf("answer = %q", out.Answer)
	}
}

func TestChatGenerationFailureStaysUp(t *testing.T) {
	gen := &stubGenerator{err: errors.New("provider down")}
	srv := newTestServer(t, gen)

	out := postChat(t, srv, "s", "market overview")
	if !strings.Contains(out.Answer, "Error generating dashboard") {
		t.Errorf("answer = %q, want an error message", out.Answer)
	}

	// The session is still usable for the next message.
	next := postChat(t, srv, out.SessionID, "help me")
	if next.Answer != insight.HelpMessage {
		t.Errorf("follow-up answer = %q", next.Answer)
	}
}

func TestChatEmptyMessageReturnsHelp(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	out := postChat(t, srv, "", "   ")
	if out.Answer != insight.HelpMessage {
		t.Errorf("answer = %q, want the help message", out.Answer)
	}
}

func TestChatInvalidBody(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	resp, err := http.Post(srv.URL+"/api/chat", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get index: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("index status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
}
