package usecase

import (
	"context"
	"fmt"

	"github.com/psspowers/underwriting/internal/application/dto"
	"github.com/psspowers/underwriting/internal/domain/taxonomy"
)

// BrowseTaxonomyUseCase serves the read-only taxonomy lists that drive the
// cascading selection.
type BrowseTaxonomyUseCase struct {
	registry *taxonomy.Registry
}

// NewBrowseTaxonomyUseCase wires dependencies.
func NewBrowseTaxonomyUseCase(registry *taxonomy.Registry) *BrowseTaxonomyUseCase {
	return &BrowseTaxonomyUseCase{registry: registry}
}

// ListSectors returns every sector in sorted order.
func (uc *BrowseTaxonomyUseCase) ListSectors(_ context.Context) dto.SectorsResponse {
	return dto.SectorsResponse{Sectors: uc.registry.Sectors()}
}

// ListIndustries returns the sector's industries; unknown sectors yield an empty list.
func (uc *BrowseTaxonomyUseCase) ListIndustries(_ context.Context, req dto.ListIndustriesRequest) dto.IndustriesResponse {
	return dto.IndustriesResponse{Sector: req.Sector, Industries: uc.registry.Industries(req.Sector)}
}

// ListSubIndustries returns the industry's leaves; unknown industries yield an empty list.
func (uc *BrowseTaxonomyUseCase) ListSubIndustries(_ context.Context, req dto.ListSubIndustriesRequest) dto.SubIndustriesResponse {
	subs := uc.registry.SubIndustries(req.Industry)
	out := make([]dto.SubIndustry, 0, len(subs))
	for _, s := range subs {
		out = append(out, dto.SubIndustry{Name: s.Name, Score: s.Score, Points: s.Points})
	}
	return dto.SubIndustriesResponse{Industry: req.Industry, SubIndustries: out}
}

// LookupSubIndustry returns the full entry for a sub-industry label.
func (uc *BrowseTaxonomyUseCase) LookupSubIndustry(_ context.Context, name string) (dto.TaxonomyEntry, error) {
	e, ok := uc.registry.Info(name)
	if !ok {
		return dto.TaxonomyEntry{}, fmt.Errorf("%q: %w", name, ErrSubIndustryNotFound)
	}
	return dto.TaxonomyEntry{
		Sector:      e.Sector,
		Industry:    e.Industry,
		SubIndustry: e.SubIndustry,
		Score:       e.Score,
		Points:      e.Points,
	}, nil
}
