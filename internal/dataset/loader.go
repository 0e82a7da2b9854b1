package dataset

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadError is the fatal load failure: missing file, missing analytic
// sheet, or a required column absent from it. There is no partial-load
// fallback.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", filepath.Base(e.Path), e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", filepath.Base(e.Path), e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

// analyticSheetIndex selects the second sheet: the first sheet of these
// workbooks is a description page.
const analyticSheetIndex = 1

// Load reads the analytic sheet of the workbook at path into a Table,
// projecting the required columns and coercing numeric text. Unparsable
// numeric cells become NaN rather than failing the load.
func Load(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "open workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) <= analyticSheetIndex {
		return nil, &LoadError{
			Path:   path,
			Reason: fmt.Sprintf("workbook has %d sheet(s), expected the analytic data on sheet %d", len(sheets), analyticSheetIndex+1),
		}
	}
	sheet := sheets[analyticSheetIndex]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: fmt.Sprintf("read sheet %q", sheet), Err: err}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Path: path, Reason: fmt.Sprintf("sheet %q is empty", sheet)}
	}

	idx, err := mapHeader(rows[0])
	if err != nil {
		return nil, &LoadError{Path: path, Reason: fmt.Sprintf("sheet %q", sheet), Err: err}
	}

	out := make([]Row, 0, len(rows)-1)
	for _, rec := range rows[1:] {
		if blankRecord(rec) {
			continue
		}
		out = append(out, Row{
			Brand:          cell(rec, idx[ColBrand]),
			Category:       cell(rec, idx[ColCategory]),
			Revenue:        parseAmount(cell(rec, idx[ColRevenue])),
			UnitsSold:      parseAmount(cell(rec, idx[ColUnitsSold])),
			Rating:         parseNumber(cell(rec, idx[ColRating])),
			Reviews:        parseNumber(cell(rec, idx[ColReviews])),
			BestSellerRank: parseNumber(cell(rec, idx[ColBestSellerRank])),
		})
	}
	return NewTable(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), out), nil
}

// mapHeader resolves each required column to its index in the header row,
// matching case-insensitively with surrounding space trimmed.
func mapHeader(header []string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := byName[key]; !ok {
			byName[key] = i
		}
	}
	idx := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, col := range RequiredColumns {
		i, ok := byName[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseAmount handles currency-style text: an optional leading symbol and
// comma thousands separators, e.g. "$1,234.56" or "2,500".
func parseAmount(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	for _, sym := range []string{"$", "€", "£"} {
		if strings.HasPrefix(s, sym) {
			s = strings.TrimSpace(strings.TrimPrefix(s, sym))
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")
	return parseNumber(s)
}

func parseNumber(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
