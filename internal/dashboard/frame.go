// Package dashboard turns an analytics request into chart instructions and
// drives the LLM agent that renders the final HTML dashboard.
package dashboard

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Frame is the lightweight tabular view the chart tools operate on. Unlike
// dataset.Table it carries arbitrary columns, because the agent may be
// pointed at any CSV snapshot.
type Frame struct {
	Name    string
	Columns []string
	Records [][]string
}

// ReadFrame loads a CSV file into a Frame. Short records are padded so
// every record has one cell per column.
func ReadFrame(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", filepath.Base(path))
	}
	cols := all[0]
	recs := make([][]string, 0, len(all)-1)
	for _, rec := range all[1:] {
		if len(rec) < len(cols) {
			padded := make([]string, len(cols))
			copy(padded, rec)
			rec = padded
		}
		recs = append(recs, rec)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Frame{Name: name, Columns: cols, Records: recs}, nil
}

// ColumnIndex returns the index of the named column, matching exactly
// first, then case-insensitively.
func (f *Frame) ColumnIndex(name string) (int, bool) {
	for i, c := range f.Columns {
		if c == name {
			return i, true
		}
	}
	for i, c := range f.Columns {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(name)) {
			return i, true
		}
	}
	return 0, false
}

// Strings returns the raw values of a column.
func (f *Frame) Strings(idx int) []string {
	out := make([]string, len(f.Records))
	for i, rec := range f.Records {
		out[i] = rec[idx]
	}
	return out
}

// number parses a cell as float, tolerating blank cells.
func number(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Kind classifies a column as numeric or categorical by majority vote over
// non-empty cells.
func (f *Frame) Kind(idx int) string {
	var numeric, text int
	for _, rec := range f.Records {
		s := strings.TrimSpace(rec[idx])
		if s == "" {
			continue
		}
		if _, ok := number(s); ok {
			numeric++
		} else {
			text++
		}
	}
	if numeric >= text && numeric > 0 {
		return "numeric"
	}
	return "categorical"
}

// Summary describes the frame for the agent's analyze_dataset tool and for
// the enhanced instruction preamble.
type Summary struct {
	Columns  []string          `json:"columns"`
	Kinds    map[string]string `json:"data_types"`
	RowCount int               `json:"row_count"`
	Sample   [][]string        `json:"sample,omitempty"`
}

// Summarize builds the frame summary with up to sampleRows example rows.
func (f *Frame) Summarize(sampleRows int) Summary {
	kinds := make(map[string]string, len(f.Columns))
	for i, c := range f.Columns {
		kinds[c] = f.Kind(i)
	}
	n := sampleRows
	if n > len(f.Records) {
		n = len(f.Records)
	}
	var sample [][]string
	if n > 0 {
		sample = make([][]string, n)
		for i := 0; i < n; i++ {
			row := make([]string, len(f.Records[i]))
			copy(row, f.Records[i])
			sample[i] = row
		}
	}
	return Summary{Columns: append([]string(nil), f.Columns...), Kinds: kinds, RowCount: len(f.Records), Sample: sample}
}
