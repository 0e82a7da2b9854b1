package cmd

import (
	"bufio"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/Guy-Maoz/insights-deck-ai/internal/dataset"
	"github.com/Guy-Maoz/insights-deck-ai/internal/insight"
)

// recordingGenerator counts invocations and captures the request.
type recordingGenerator struct {
	calls        int
	instructions string
}

func (g *recordingGenerator) Generate(_ context.Context, _, instructions, outputDir, _ string) (string, error) {
	g.calls++
	g.instructions = instructions
	return filepath.Join(outputDir, "out.html"), nil
}

func writeReplWorkbook(t *testing.T) string {
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

func newReplSession(t *testing.T, gen *recordingGenerator, input string) *replSession {
	t.Helper()
	session, err := insight.NewSession(writeReplWorkbook(t), gen, insight.Options{
		SnapshotDir: t.TempDir(),
		OutputDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(func() { session.Close() })

	c := &cobra.Command{}
	c.SetContext(context.Background())
	return &replSession{
		session: session,
		in:      bufio.NewScanner(strings.NewReader(input)),
		cmd:     c,
	}
}

func TestCompetitiveAnalysisRejectsUnmatchedCompetitors(t *testing.T) {
	gen := &recordingGenerator{}
	// Brand resolves; neither named competitor does. The request must be
	// abandoned, not silently retargeted at the default competitor set.
	r := newReplSession(t, gen, "Acme\nZzz, Qqq\n")

	r.competitiveAnalysis()

	if gen.calls != 0 {
		t.Fatalf("generator calls = %d, want 0 when no competitor resolves", gen.calls)
	}
}

func TestCompetitiveAnalysisResolvedCompetitors(t *testing.T) {
	gen := &recordingGenerator{}
	r := newReplSession(t, gen, "Acme\nglobex\n")

	r.competitiveAnalysis()

	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
	if !strings.Contains(gen.instructions, "Globex") {
		t.Errorf("instructions should use the canonical competitor name:\n%s", gen.instructions)
	}
}

func TestCompetitiveAnalysisBlankCompetitorsUsesTopSet(t *testing.T) {
	gen := &recordingGenerator{}
	// Pressing Enter at the competitor prompt keeps the default top set.
	r := newReplSession(t, gen, "Acme\n\n")

	r.competitiveAnalysis()

	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
	if !strings.Contains(gen.instructions, "Globex") {
		t.Errorf("default competitors should come from the revenue ranking:\n%s", gen.instructions)
	}
}
