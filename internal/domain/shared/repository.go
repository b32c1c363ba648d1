package shared

// Filter represents query filter options for list operations
type Filter struct {
	Skip   int
	Limit  int
	Search string
}

// DefaultFilter returns a filter with default pagination values
func DefaultFilter() Filter {
	return Filter{
		Skip:  0,
		Limit: 100,
	}
}

// Normalize clamps the filter to sane bounds
func (f Filter) Normalize() Filter {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 || f.Limit > 1000 {
		f.Limit = 100
	}
	return f
}
