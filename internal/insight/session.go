// Package insight ties the dataset, brand resolution, analytics, and
// dashboard generation together into one per-process session that the CLI
// and web shells dispatch into.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Guy-Maoz/insights-deck-ai/internal/analytics"
	"github.com/Guy-Maoz/insights-deck-ai/internal/brand"
	"github.com/Guy-Maoz/insights-deck-ai/internal/dashboard"
	"github.com/Guy-Maoz/insights-deck-ai/internal/dataset"
	"github.com/Guy-Maoz/insights-deck-ai/internal/observability"
)

// ErrNoValidBrands is returned when a request names brands but none of
// them resolve against the catalog.
var ErrNoValidBrands = errors.New("no valid brands provided")

// Options configures a session.
type Options struct {
	SnapshotDir    string
	OutputDir      string
	Resolver       brand.Resolver
	TopBrands      int
	TopCompetitors int
	Logger         observability.Logger
}

// Session holds the loaded table for the lifetime of a process (or one web
// session). The table is never mutated; every analysis recomputes from it.
type Session struct {
	Table     *dataset.Table
	Catalog   []string
	OutputDir string

	resolver       brand.Resolver
	generator      dashboard.Generator
	snapshot       *dataset.Snapshot
	topBrands      int
	topCompetitors int
	log            observability.Logger

	// CurrentDashboard is the path of the most recently generated page.
	CurrentDashboard string
}

// NewSession loads the workbook at path and prepares the session snapshot.
// A LoadError here is fatal to the caller.
func NewSession(path string, gen dashboard.Generator, opts Options) (*Session, error) {
	t, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	snap, err := dataset.NewSnapshot(opts.SnapshotDir)
	if err != nil {
		return nil, err
	}
	resolver := opts.Resolver
	if resolver.Threshold == 0 && resolver.MaxCandidates == 0 {
		resolver = brand.NewResolver()
	}
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "dashboards"
	}
	return &Session{
		Table:          t,
		Catalog:        t.Brands(),
		OutputDir:      outputDir,
		resolver:       resolver,
		generator:      gen,
		snapshot:       snap,
		topBrands:      opts.TopBrands,
		topCompetitors: opts.TopCompetitors,
		log:            opts.Logger,
	}, nil
}

// Close removes the session's snapshot file.
func (s *Session) Close() error {
	if s.snapshot == nil {
		return nil
	}
	return s.snapshot.Close()
}

// Columns returns the dataset's column names.
func (s *Session) Columns() []string { return s.Table.Columns() }

// Resolve looks a single free-text brand name up in the catalog.
func (s *Session) Resolve(query string) brand.Resolution {
	return s.resolver.Resolve(query, s.Catalog)
}

// ResolveAll resolves a brand list, dropping misses and de-duplicating.
func (s *Session) ResolveAll(queries []string) []string {
	return s.resolver.ResolveAll(queries, s.Catalog)
}

// Overview recomputes the market overview.
func (s *Session) Overview() analytics.MarketOverview {
	return analytics.Overview(s.Table, s.topBrands)
}

// BrandAnalysis computes metrics for a canonical brand name. The second
// return is false when the brand has no rows.
func (s *Session) BrandAnalysis(name string) (analytics.BrandReport, bool) {
	return analytics.BrandMetrics(s.Table, name)
}

// CompetitiveAnalysis compares a canonical brand against competitors (nil
// means the default top set).
func (s *Session) CompetitiveAnalysis(name string, competitors []string) (analytics.CompetitiveReport, bool) {
	return analytics.CompetitiveMetrics(s.Table, name, competitors, s.topCompetitors)
}

// DataSummary describes the dataset for display, in the shape the
// interactive shell prints on startup.
func (s *Session) DataSummary() string {
	summary := map[string]any{
		"columns":             s.Table.Columns(),
		"rows":                s.Table.Len(),
		"numeric_columns":     []string{dataset.ColRevenue, dataset.ColUnitsSold, dataset.ColRating, dataset.ColReviews, dataset.ColBestSellerRank},
		"categorical_columns": []string{dataset.ColBrand, dataset.ColCategory},
	}
	b, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// GenerateDashboard builds the request, writes the filtered snapshot, and
// invokes the generator. The returned path is also stored as
// CurrentDashboard. Generation failures come back as
// *dashboard.GenerationError and leave the session usable.
func (s *Session) GenerateDashboard(ctx context.Context, req dashboard.Request) (string, error) {
	if req.TopBrands == 0 {
		req.TopBrands = s.topBrands
	}
	if req.TopCompetitors == 0 {
		req.TopCompetitors = s.topCompetitors
	}
	built, err := dashboard.Build(s.Table, req)
	if err != nil {
		return "", err
	}
	if err := s.snapshot.Write(built.Table); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	s.log.Info().
		Str("dataset", built.DatasetName).
		Int("brands", len(built.Brands)).
		Int("rows", built.Table.Len()).
		Msg("dashboard request prepared")

	path, err := s.generator.Generate(ctx, s.snapshot.Path(), built.Instructions, s.OutputDir, built.DatasetName)
	if err != nil {
		return "", err
	}
	s.CurrentDashboard = path
	return path, nil
}
