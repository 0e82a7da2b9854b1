// Package brand resolves free-text brand names against the dataset catalog.
package brand

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Resolution outcomes.
const (
	// Resolved means exactly one canonical brand was identified.
	Resolved = Kind(iota)
	// Ambiguous means one or more close fuzzy candidates were found; the
	// caller must disambiguate (or fall through to the literal query).
	Ambiguous
	// NotFound means nothing cleared the similarity threshold.
	NotFound
)

// Kind discriminates the three lookup outcomes.
type Kind int

// Resolution is the outcome of a single brand lookup.
type Resolution struct {
	Kind  Kind
	Query string
	// Brand holds the canonical name when Kind is Resolved.
	Brand string
	// Candidates holds the ordered fuzzy candidates when Kind is Ambiguous.
	Candidates []string
	// Catalog holds the full sorted catalog when Kind is NotFound, for
	// display by the caller.
	Catalog []string
}

// DefaultThreshold and DefaultMaxCandidates match the similarity cutoff and
// candidate cap the interactive flows were tuned with.
const (
	DefaultThreshold     = 0.6
	DefaultMaxCandidates = 3
)

// Resolver matches queries against a brand catalog: exact case-insensitive
// equality first, then similarity ratio above Threshold.
type Resolver struct {
	Threshold     float64
	MaxCandidates int
}

// NewResolver returns a resolver with the default threshold and cap.
func NewResolver() Resolver {
	return Resolver{Threshold: DefaultThreshold, MaxCandidates: DefaultMaxCandidates}
}

// Resolve looks query up in catalog. Catalog order breaks ties everywhere,
// so on case-variant duplicates the first match in catalog order wins.
func (r Resolver) Resolve(query string, catalog []string) Resolution {
	query = strings.TrimSpace(query)
	for _, b := range catalog {
		if strings.EqualFold(b, query) {
			return Resolution{Kind: Resolved, Query: query, Brand: b}
		}
	}

	threshold := r.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	maxCand := r.MaxCandidates
	if maxCand <= 0 {
		maxCand = DefaultMaxCandidates
	}

	type scored struct {
		brand string
		ratio float64
		order int
	}
	var cands []scored
	upper := strings.ToUpper(query)
	for i, b := range catalog {
		ratio := Similarity(upper, strings.ToUpper(b))
		if ratio > threshold {
			cands = append(cands, scored{brand: b, ratio: ratio, order: i})
		}
	}
	if len(cands) == 0 {
		cat := make([]string, len(catalog))
		copy(cat, catalog)
		return Resolution{Kind: NotFound, Query: query, Catalog: cat}
	}

	// Highest ratio first; catalog order breaks ties.
	for i := 1; i < len(cands); i++ {
		for j := i; j > 0; j-- {
			a, b := cands[j-1], cands[j]
			if b.ratio > a.ratio || (b.ratio == a.ratio && b.order < a.order) {
				cands[j-1], cands[j] = b, a
			} else {
				break
			}
		}
	}
	if len(cands) > maxCand {
		cands = cands[:maxCand]
	}
	names := make([]string, len(cands))
	for i, c := range cands {
		names[i] = c.brand
	}
	return Resolution{Kind: Ambiguous, Query: query, Candidates: names}
}

// ResolveAll resolves each query independently, keeps only exact matches,
// drops everything else, and de-duplicates preserving first-seen order.
// Callers must treat an empty result as "no valid brands provided".
func (r Resolver) ResolveAll(queries, catalog []string) []string {
	seen := make(map[string]struct{}, len(queries))
	var out []string
	for _, q := range queries {
		res := r.Resolve(q, catalog)
		if res.Kind != Resolved {
			continue
		}
		if _, ok := seen[res.Brand]; ok {
			continue
		}
		seen[res.Brand] = struct{}{}
		out = append(out, res.Brand)
	}
	return out
}

// Similarity returns a ratio in [0,1] between two strings, computed the
// same way the source tooling's sequence matcher does (matching blocks over
// rune sequences).
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	m := difflib.NewMatcher(explode(a), explode(b))
	return m.Ratio()
}

func explode(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
