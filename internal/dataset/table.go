// Package dataset loads the sales workbook into an immutable in-memory
// table and exposes filtered views and CSV snapshots of it.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
)

// Column names expected on the analytic sheet. Matching against workbook
// headers is case-insensitive; this is the canonical casing used everywhere
// downstream, including snapshot CSV headers.
const (
	ColBrand          = "Brand"
	ColCategory       = "Category"
	ColRevenue        = "Revenue"
	ColUnitsSold      = "Units Sold"
	ColRating         = "Rating"
	ColReviews        = "Reviews"
	ColBestSellerRank = "Best Seller Rank"
)

// RequiredColumns lists the columns a workbook must provide, in snapshot
// order.
var RequiredColumns = []string{
	ColBrand, ColCategory, ColRevenue, ColUnitsSold,
	ColRating, ColReviews, ColBestSellerRank,
}

// Row is one sales record. Numeric fields use NaN for values that were
// absent or unparsable in the source; aggregations skip NaN.
type Row struct {
	Brand          string
	Category       string
	Revenue        float64
	UnitsSold      float64
	Rating         float64
	Reviews        float64
	BestSellerRank float64
}

// IsBestSeller reports whether the row carries a positive best-seller rank.
// A missing rank means "not a best seller".
func (r Row) IsBestSeller() bool {
	return !math.IsNaN(r.BestSellerRank) && r.BestSellerRank > 0
}

// Table is the session's sales dataset. It is built once by Load and never
// mutated afterwards; FilterBrands returns new tables.
type Table struct {
	Name   string
	Rows   []Row
	brands []string
}

// NewTable builds a table from rows, computing the brand catalog.
func NewTable(name string, rows []Row) *Table {
	seen := make(map[string]struct{}, len(rows))
	brands := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Brand == "" {
			continue
		}
		if _, ok := seen[r.Brand]; ok {
			continue
		}
		seen[r.Brand] = struct{}{}
		brands = append(brands, r.Brand)
	}
	sort.Strings(brands)
	return &Table{Name: name, Rows: rows, brands: brands}
}

// Brands returns the catalog: distinct brand values, sorted. The returned
// slice is a copy.
func (t *Table) Brands() []string {
	out := make([]string, len(t.brands))
	copy(out, t.brands)
	return out
}

// Columns returns the table's column names in snapshot order.
func (t *Table) Columns() []string {
	out := make([]string, len(RequiredColumns))
	copy(out, RequiredColumns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// FilterBrands returns a new table holding exactly the rows whose Brand is
// in names. Row order is preserved.
func (t *Table) FilterBrands(names []string) *Table {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	var rows []Row
	for _, r := range t.Rows {
		if _, ok := want[r.Brand]; ok {
			rows = append(rows, r)
		}
	}
	return NewTable(t.Name, rows)
}

// WriteCSV writes the normalized snapshot: bare numbers, empty cells for
// missing values.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(t.Columns()); err != nil {
		f.Close()
		return fmt.Errorf("write snapshot header: %w", err)
	}
	for i, r := range t.Rows {
		rec := []string{
			r.Brand,
			r.Category,
			formatCell(r.Revenue),
			formatCell(r.UnitsSold),
			formatCell(r.Rating),
			formatCell(r.Reviews),
			formatCell(r.BestSellerRank),
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return fmt.Errorf("write snapshot row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return nil
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
