package source

// Criteria is a conjunctive, optional-field filter over Source tokens.
// Absent (nil or zero) fields are wildcards; all present fields must match.
type Criteria struct {
	// HasFilter, when set, requires the source to have (or not have) a filter.
	HasFilter *bool
	// FilterNameOrPos, when non-empty, must equal the filter's name or
	// its filter-wheel position.
	FilterNameOrPos string
	// CWL, when set, must equal the filter's centre wavelength.
	CWL *float64
	// Input, when set, must equal the source's input slot index.
	Input *int
}

// Match reports whether the source satisfies every present criterion.
func (s Source) Match(c Criteria) bool {
	if c.HasFilter != nil && (s.Filter != nil) != *c.HasFilter {
		return false
	}
	if c.FilterNameOrPos != "" {
		if s.Filter == nil {
			return false
		}
		if s.Filter.Name != c.FilterNameOrPos && s.Filter.Position != c.FilterNameOrPos {
			return false
		}
	}
	if c.CWL != nil {
		if s.Filter == nil || s.Filter.CWL != *c.CWL {
			return false
		}
	}
	if c.Input != nil && s.Input != *c.Input {
		return false
	}
	return true
}
