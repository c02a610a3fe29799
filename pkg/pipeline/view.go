package pipeline

import (
	"fmt"
	"slices"

	"github.com/rubiojr/hookvault/pkg/core"
	"github.com/rubiojr/hookvault/pkg/format"
	"golang.org/x/text/language"
)

// Session is an immutable snapshot of the hook collection for one browsing
// session, with the category list derived once.
type Session struct {
	hooks      []core.Hook
	categories []string
}

// NewSession copies hooks into a new session.
func NewSession(hooks []core.Hook) *Session {
	snapshot := slices.Clone(hooks)
	return &Session{
		hooks:      snapshot,
		categories: DistinctValues(snapshot, ByCategory),
	}
}

// Len returns the number of hooks in the snapshot.
func (s *Session) Len() int {
	return len(s.hooks)
}

// Hooks returns a copy of the snapshot.
func (s *Session) Hooks() []core.Hook {
	return slices.Clone(s.hooks)
}

// Categories returns the distinct categories in first-seen order.
func (s *Session) Categories() []string {
	return slices.Clone(s.categories)
}

// Subcategories returns the distinct subcategories of category. It is empty
// when category is empty.
func (s *Session) Subcategories(category string) []string {
	if category == "" {
		return []string{}
	}
	return DistinctValues(Filter(s.hooks, State{Category: category}), BySubcategory)
}

// Filtered applies the selection filter to the snapshot.
func (s *Session) Filtered(state State) []core.Hook {
	return Filter(s.hooks, state)
}

// Option is a selectable category or subcategory button.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Card is a rendered hook on the current page. Index is the position of
// the card on its page.
type Card struct {
	Index         int
	Hook          string
	Category      string
	CategoryLabel string
	Date          string
}

// View is everything a surface needs to draw one state of the browser.
type View struct {
	State         State
	Categories    []Option
	Subcategories []Option
	Heading       string
	Cards         []Card
	Pages         []PageLink
	TotalPages    int
	TotalHooks    int
	HasPrev       bool
	HasNext       bool
}

// ShowPagination reports whether the page control should be drawn.
func (v View) ShowPagination() bool {
	return v.TotalPages > 1
}

// View assembles the view for state. Dates are formatted for tag.
func (s *Session) View(state State, tag language.Tag) View {
	filtered := Filter(s.hooks, state)
	total := TotalPages(len(filtered), PageSize)
	current := state.CurrentPage()

	v := View{
		State:         state,
		Categories:    options(s.categories, state.Category),
		Subcategories: options(s.Subcategories(state.Category), state.Subcategory),
		Heading:       Heading(state),
		Pages:         PageNumbers(current, total),
		TotalPages:    total,
		TotalHooks:    len(filtered),
		HasPrev:       current > 1,
		HasNext:       current < total,
	}

	page := Paginate(filtered, PageSize, current)
	v.Cards = make([]Card, len(page))
	for i, h := range page {
		v.Cards[i] = Card{
			Index:         i,
			Hook:          h.Hook,
			Category:      h.Category,
			CategoryLabel: format.Label(h.Category),
			Date:          format.HookDate(h, tag),
		}
	}
	return v
}

// Heading is the title shown above the hook grid.
func Heading(state State) string {
	if state.Category == "" {
		return "All Hooks"
	}
	return fmt.Sprintf("Hooks for %q", format.Label(state.Category))
}

func options(values []string, selected string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v, Label: format.Label(v), Selected: v == selected}
	}
	return opts
}
