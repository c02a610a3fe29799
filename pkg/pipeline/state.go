package pipeline

import "github.com/rubiojr/hookvault/pkg/core"

// State is the browse selection of a session. The zero value selects
// nothing; Page 0 is read as page 1.
type State struct {
	Category    string
	Subcategory string
	Page        int
}

// CurrentPage returns the 1-based page number.
func (s State) CurrentPage() int {
	if s.Page < 1 {
		return 1
	}
	return s.Page
}

// SelectCategory toggles category c. Selecting the selected category clears
// both selections; any other category replaces it and clears the
// subcategory. The page is reset to 1.
func (s State) SelectCategory(c string) State {
	if s.Category == c {
		return State{Page: 1}
	}
	return State{Category: c, Page: 1}
}

// SelectSubcategory toggles subcategory sub, leaving the category as is.
// The page is reset to 1.
func (s State) SelectSubcategory(sub string) State {
	next := State{Category: s.Category, Subcategory: sub, Page: 1}
	if s.Subcategory == sub {
		next.Subcategory = ""
	}
	return next
}

// Matches reports whether h passes the selection filter.
func (s State) Matches(h core.Hook) bool {
	switch {
	case s.Category != "" && s.Subcategory != "":
		return h.Category == s.Category && h.Subcategory == s.Subcategory
	case s.Category != "":
		return h.Category == s.Category
	default:
		return true
	}
}

// Filter returns the records matching the selection, preserving order.
func Filter(records []core.Hook, s State) []core.Hook {
	filtered := make([]core.Hook, 0, len(records))
	for _, r := range records {
		if s.Matches(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
