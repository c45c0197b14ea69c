// Package taxonomy holds the fixed sector → industry → sub-industry table used to
// classify commercial counterparties, together with each leaf's reference credit
// score and priority points.
package taxonomy

import (
	"errors"
	"fmt"
	"slices"

	"github.com/psspowers/underwriting/internal/domain/valueobject"
)

// Entry is one classification leaf.
//
// Score is the reference credit score (1-10, lower is better). Points is the
// priority weight (1-5, higher is better) and is what the scrutiny engine uses.
type Entry struct {
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	SubIndustry string `json:"sub_industry"`
	Score       int    `json:"score"`
	Points      int    `json:"points"`
}

// Classification returns the entry's position as a full classification.
func (e Entry) Classification() valueobject.Classification {
	return valueobject.Classification{
		Sector:      e.Sector,
		Industry:    e.Industry,
		SubIndustry: e.SubIndustry,
	}
}

// SubIndustry is the projection returned when listing the leaves of an industry.
type SubIndustry struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Points int    `json:"points"`
}

// ErrInvalidTable is returned when a table violates the registry invariants.
var ErrInvalidTable = errors.New("invalid taxonomy table")

// Registry is a read-only view over a validated taxonomy table. It has no
// mutating methods and every accessor returns freshly allocated slices, so a
// single Registry can be shared freely between goroutines.
type Registry struct {
	entries       []Entry
	bySubIndustry map[string]int
	sectors       []string
}

// New validates entries and builds a Registry over a private copy of them.
func New(entries []Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidTable)
	}

	r := &Registry{
		entries:       slices.Clone(entries),
		bySubIndustry: make(map[string]int, len(entries)),
	}
	industrySector := make(map[string]string)
	seenSector := make(map[string]bool)

	for i, e := range r.entries {
		if e.Sector == "" || e.Industry == "" || e.SubIndustry == "" {
			return nil, fmt.Errorf("%w: row %d has an empty label", ErrInvalidTable, i)
		}
		if e.Score < 1 || e.Score > 10 {
			return nil, fmt.Errorf("%w: %q score %d outside 1-10", ErrInvalidTable, e.SubIndustry, e.Score)
		}
		if e.Points < 1 || e.Points > 5 {
			return nil, fmt.Errorf("%w: %q points %d outside 1-5", ErrInvalidTable, e.SubIndustry, e.Points)
		}
		if _, dup := r.bySubIndustry[e.SubIndustry]; dup {
			return nil, fmt.Errorf("%w: sub-industry %q listed twice", ErrInvalidTable, e.SubIndustry)
		}
		if s, ok := industrySector[e.Industry]; ok && s != e.Sector {
			return nil, fmt.Errorf("%w: industry %q under both %q and %q", ErrInvalidTable, e.Industry, s, e.Sector)
		}

		r.bySubIndustry[e.SubIndustry] = i
		industrySector[e.Industry] = e.Sector
		if !seenSector[e.Sector] {
			seenSector[e.Sector] = true
			r.sectors = append(r.sectors, e.Sector)
		}
	}
	slices.Sort(r.sectors)

	return r, nil
}

// MustNew is New for static tables: it panics if the table is invalid.
func MustNew(entries []Entry) *Registry {
	r, err := New(entries)
	if err != nil {
		panic(err)
	}
	return r
}

var defaultRegistry = MustNew(entries)

// Default returns the process-wide registry built from the compiled-in table.
func Default() *Registry {
	return defaultRegistry
}

// Len returns the number of leaves.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns a copy of every leaf in table order.
func (r *Registry) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Sectors returns the unique sector names, sorted.
func (r *Registry) Sectors() []string {
	return slices.Clone(r.sectors)
}

// Industries returns the sorted industries of a sector. An empty or unknown
// sector yields an empty list.
func (r *Registry) Industries(sector string) []string {
	out := []string{}
	if sector == "" {
		return out
	}
	for _, e := range r.entries {
		if e.Sector == sector && !slices.Contains(out, e.Industry) {
			out = append(out, e.Industry)
		}
	}
	slices.Sort(out)
	return out
}

// SubIndustries returns the leaves of an industry sorted by name.
func (r *Registry) SubIndustries(industry string) []SubIndustry {
	out := []SubIndustry{}
	if industry == "" {
		return out
	}
	for _, e := range r.entries {
		if e.Industry == industry {
			out = append(out, SubIndustry{Name: e.SubIndustry, Score: e.Score, Points: e.Points})
		}
	}
	slices.SortFunc(out, func(a, b SubIndustry) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Info looks a leaf up by its exact sub-industry label.
func (r *Registry) Info(subIndustry string) (Entry, bool) {
	i, ok := r.bySubIndustry[subIndustry]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Find returns the best available entry for a possibly partial classification.
// It tries the sub-industry first, then the industry, then the sector, and
// returns the first table entry matching the most specific level that matches
// anything. Unknown labels at one level fall through to the next.
func (r *Registry) Find(c valueobject.Classification) (Entry, bool) {
	if c.SubIndustry != "" {
		if e, ok := r.Info(c.SubIndustry); ok {
			return e, true
		}
	}
	if c.Industry != "" {
		for _, e := range r.entries {
			if e.Industry == c.Industry {
				return e, true
			}
		}
	}
	if c.Sector != "" {
		for _, e := range r.entries {
			if e.Sector == c.Sector {
				return e, true
			}
		}
	}
	return Entry{}, false
}
