package components

//go:generate templ generate

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/rubiojr/hookvault/pkg/pipeline"
)

// StateURL encodes a browse state as a link to the index page. Empty
// selections and page 1 are left out so the bare "/" is the initial state.
func StateURL(state pipeline.State) templ.SafeURL {
	q := url.Values{}
	if state.Category != "" {
		q.Set("category", state.Category)
	}
	if state.Subcategory != "" {
		q.Set("subcategory", state.Subcategory)
	}
	if p := state.CurrentPage(); p > 1 {
		q.Set("page", strconv.Itoa(p))
	}
	if len(q) == 0 {
		return templ.SafeURL("/")
	}
	return templ.SafeURL("/?" + q.Encode())
}

// ParseState is the inverse of StateURL. Invalid page numbers read as 1.
// A subcategory without a category is dropped since the UI never offers it.
func ParseState(q url.Values) pipeline.State {
	state := pipeline.State{
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		Page:        1,
	}
	if state.Category == "" {
		state.Subcategory = ""
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		state.Page = p
	}
	return state
}

func buttonClass(selected bool) string {
	if selected {
		return "btn btn-selected"
	}
	return "btn"
}
