package dashboard_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Guy-Maoz/insights-deck-ai/internal/dashboard"
)

const fixtureCSV = `Brand,Category,Revenue,Units Sold,Rating,Reviews,Best Seller Rank
Acme,Electronics,10,5,4.5,10,1
Globex,Home,20,10,4,20,0
Acme,Home,5,,,3,0
`

func writeFixtureCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(fixtureCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadFrame(t *testing.T) {
	f, err := dashboard.ReadFrame(writeFixtureCSV(t))
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if f.Name != "sales" {
		t.Errorf("name = %q, want sales", f.Name)
	}
	if len(f.Columns) != 7 {
		t.Fatalf("columns = %d, want 7", len(f.Columns))
	}
	if len(f.Records) != 3 {
		t.Fatalf("records = %d, want 3", len(f.Records))
	}
}

func TestColumnIndex(t *testing.T) {
	f, err := dashboard.ReadFrame(writeFixtureCSV(t))
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	cases := []struct {
		name  string
		query string
		want  int
		ok    bool
	}{
		{"exact", "Revenue", 2, true},
		{"case-insensitive", "revenue", 2, true},
		{"spaces in name", "units sold", 3, true},
		{"unknown", "Price", 0, false},
	}
	for _, c := range cases {
		got, ok := f.ColumnIndex(c.query)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("%s: ColumnIndex(%q) = (%d, %v), want (%d, %v)", c.name, c.query, got, ok, c.want, c.ok)
		}
	}
}

func TestFrameKind(t *testing.T) {
	f, err := dashboard.ReadFrame(writeFixtureCSV(t))
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	cases := []struct {
		column string
		want   string
	}{
		{"Brand", "categorical"},
		{"Category", "categorical"},
		{"Revenue", "numeric"},
		{"Units Sold", "numeric"}, // blank cells don't vote
		{"Rating", "numeric"},
	}
	for _, c := range cases {
		idx, ok := f.ColumnIndex(c.column)
		if !ok {
			t.Fatalf("column %q missing", c.column)
		}
		if got := f.Kind(idx); got != c.want {
			t.Errorf("Kind(%s) = %q, want %q", c.column, got, c.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	f, err := dashboard.ReadFrame(writeFixtureCSV(t))
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	s := f.Summarize(2)
	if s.RowCount != 3 {
		t.Errorf("row count = %d, want 3", s.RowCount)
	}
	if len(s.Sample) != 2 {
		t.Errorf("sample = %d rows, want 2", len(s.Sample))
	}
	if s.Kinds["Brand"] != "categorical" || s.Kinds["Revenue"] != "numeric" {
		t.Errorf("kinds = %v", s.Kinds)
	}

	// A sample larger than the frame is clamped.
	if got := f.Summarize(100); len(got.Sample) != 3 {
		t.Errorf("clamped sample = %d rows, want 3", len(got.Sample))
	}
}

func TestEnhanceInstructions(t *testing.T) {
	f, err := dashboard.ReadFrame(writeFixtureCSV(t))
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	out := dashboard.EnhanceInstructions(f, "show revenue by brand")
	for _, want := range []string{"Dataset Summary:", "Brand", "Revenue", "Number of rows: 3", "show revenue by brand"} {
		if !strings.Contains(out, want) {
			t.Errorf("enhanced instructions missing %q:\n%s", want, out)
		}
	}
}
