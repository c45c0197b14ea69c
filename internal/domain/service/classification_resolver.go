package service

import (
	"errors"
	"fmt"
	"slices"

	"github.com/psspowers/underwriting/internal/domain/taxonomy"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
)

// ErrInvalidSelection matches every *InvalidSelectionError via errors.Is.
var ErrInvalidSelection = errors.New("invalid classification selection")

// Classification levels, used when a caller names the level it is changing.
const (
	LevelSector      = "sector"
	LevelIndustry    = "industry"
	LevelSubIndustry = "sub_industry"
)

// InvalidSelectionError reports a child choice that does not belong to its parent.
// The resolver's cascade clearing makes this unreachable for a well-behaved UI,
// so callers should treat it as a state bug.
type InvalidSelectionError struct {
	Level  string
	Value  string
	Parent string
}

func (e *InvalidSelectionError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("%s %q selected without a parent", e.Level, e.Value)
	}
	return fmt.Sprintf("%s %q does not belong to %q", e.Level, e.Value, e.Parent)
}

// Is lets errors.Is(err, ErrInvalidSelection) match.
func (e *InvalidSelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}

// ClassificationResolver keeps a sector → industry → sub-industry selection
// consistent as the user narrows it. Every method returns a new value.
type ClassificationResolver struct {
	registry *taxonomy.Registry
}

// NewClassificationResolver returns a resolver over registry.
func NewClassificationResolver(registry *taxonomy.Registry) *ClassificationResolver {
	return &ClassificationResolver{registry: registry}
}

// SelectSector sets the sector and clears industry and sub-industry.
func (r *ClassificationResolver) SelectSector(_ valueobject.Classification, sector string) valueobject.Classification {
	return valueobject.Classification{Sector: sector}
}

// SelectIndustry sets the industry and clears the sub-industry. A non-empty
// industry must be one of the selection's sector's industries.
func (r *ClassificationResolver) SelectIndustry(sel valueobject.Classification, industry string) (valueobject.Classification, error) {
	if industry != "" && !slices.Contains(r.registry.Industries(sel.Sector), industry) {
		return sel, &InvalidSelectionError{Level: LevelIndustry, Value: industry, Parent: sel.Sector}
	}
	return valueobject.Classification{Sector: sel.Sector, Industry: industry}, nil
}

// SelectSubIndustry sets the sub-industry. A non-empty sub-industry must be a
// leaf of the selection's industry.
func (r *ClassificationResolver) SelectSubIndustry(sel valueobject.Classification, subIndustry string) (valueobject.Classification, error) {
	if subIndustry != "" && !r.hasSubIndustry(sel.Industry, subIndustry) {
		return sel, &InvalidSelectionError{Level: LevelSubIndustry, Value: subIndustry, Parent: sel.Industry}
	}
	next := sel
	next.SubIndustry = subIndustry
	return next, nil
}

// Select applies one transition named by level.
func (r *ClassificationResolver) Select(sel valueobject.Classification, level, value string) (valueobject.Classification, error) {
	switch level {
	case LevelSector:
		return r.SelectSector(sel, value), nil
	case LevelIndustry:
		return r.SelectIndustry(sel, value)
	case LevelSubIndustry:
		return r.SelectSubIndustry(sel, value)
	default:
		return sel, fmt.Errorf("classification level %q: %w", level, valueobject.ErrUnknownValue)
	}
}

func (r *ClassificationResolver) hasSubIndustry(industry, subIndustry string) bool {
	for _, s := range r.registry.SubIndustries(industry) {
		if s.Name == subIndustry {
			return true
		}
	}
	return false
}
