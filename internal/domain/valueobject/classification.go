package valueobject

// Classification is a (possibly partial) position in the sector → industry →
// sub-industry taxonomy. Empty strings mean "not chosen".
type Classification struct {
	Sector      string `json:"sector,omitempty" yaml:"sector"`
	Industry    string `json:"industry,omitempty" yaml:"industry"`
	SubIndustry string `json:"sub_industry,omitempty" yaml:"sub_industry"`
}

// IsEmpty reports whether no level has been chosen.
func (c Classification) IsEmpty() bool {
	return c.Sector == "" && c.Industry == "" && c.SubIndustry == ""
}

// IsComplete reports whether all three levels are set.
func (c Classification) IsComplete() bool {
	return c.Sector != "" && c.Industry != "" && c.SubIndustry != ""
}
