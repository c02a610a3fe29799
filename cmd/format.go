package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rubiojr/hookvault/pkg/format"
	"github.com/rubiojr/hookvault/pkg/pipeline"
	"github.com/rubiojr/hookvault/pkg/storage"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	hookStyle    = lipgloss.NewStyle().Bold(true)
	metaStyle    = lipgloss.NewStyle().Faint(true).PaddingLeft(5)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// formatNumber formats a number with thousands separators
func formatNumber(n int) string {
	return humanize.Comma(int64(n))
}

// formatTime formats a time relative to now, falling back to a date for
// anything older than a week.
func formatTime(t time.Time) string {
	if time.Since(t) < 7*24*time.Hour {
		return humanize.Time(t)
	}
	return t.Format("Jan 2, 2006")
}

// formatSpan formats the distance between two times in human-readable form
func formatSpan(oldest, newest time.Time) string {
	return strings.TrimSuffix(humanize.RelTime(oldest, newest, "", ""), " ")
}

// renderView prints one page of the pipeline the way `list` shows it.
func renderView(w io.Writer, v pipeline.View) {
	fmt.Fprintln(w, titleStyle.Render("Categories"))
	if len(v.Categories) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  No categories available"))
	}
	for _, opt := range v.Categories {
		fmt.Fprintf(w, "  %s %s %s\n", marker(opt.Selected), opt.Label, mutedStyle.Render("("+opt.Value+")"))
	}

	if v.State.Category != "" {
		fmt.Fprintln(w, titleStyle.Render("Subcategories"))
		if len(v.Subcategories) == 0 {
			fmt.Fprintln(w, mutedStyle.Render("  No subcategories available"))
		}
		for _, opt := range v.Subcategories {
			fmt.Fprintf(w, "  %s %s %s\n", marker(opt.Selected), opt.Label, mutedStyle.Render("("+opt.Value+")"))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render(v.Heading))
	if len(v.Cards) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No hooks available."))
		return
	}

	offset := (v.State.CurrentPage() - 1) * pipeline.PageSize
	for _, c := range v.Cards {
		fmt.Fprintf(w, "%3d. %s\n", offset+c.Index+1, hookStyle.Render(c.Hook))
		fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("Category: %s · Generated on: %s", c.CategoryLabel, c.Date)))
	}

	if v.ShowPagination() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Page %d of %d (%s hooks)", v.State.CurrentPage(), v.TotalPages, formatNumber(v.TotalHooks))))
	}
}

func marker(selected bool) string {
	if selected {
		return "●"
	}
	return "○"
}

// renderStats prints collection statistics.
func renderStats(w io.Writer, driver string, stats *storage.Stats) {
	fmt.Fprintln(w, titleStyle.Render("📊 Collection Statistics"))
	fmt.Fprintln(w, "═══════════════════════════")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Store:       %s (%s)\n", driver, stats.Collection)
	fmt.Fprintf(w, "Total hooks: %s\n", formatNumber(stats.Documents))
	fmt.Fprintf(w, "Categories:  %d\n", len(stats.Categories))

	if stats.Documents == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No hooks imported yet.")
		return
	}

	if stats.Newest != nil && stats.Oldest != nil {
		fmt.Fprintf(w, "Oldest:      %s\n", formatTime(*stats.Oldest))
		fmt.Fprintf(w, "Newest:      %s\n", formatTime(*stats.Newest))
		fmt.Fprintf(w, "Span:        %s\n", formatSpan(*stats.Oldest, *stats.Newest))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Category Details:")
	fmt.Fprintln(w, "─────────────────")
	for _, c := range stats.Categories {
		percentage := float64(c.Hooks) / float64(stats.Documents) * 100
		fmt.Fprintf(w, "📁 %s %s\n", format.Label(c.Category), mutedStyle.Render("("+c.Category+")"))
		fmt.Fprintf(w, "   Hooks: %s (%.1f%%)\n", formatNumber(c.Hooks), percentage)
		fmt.Fprintf(w, "   Subcategories: %d\n", c.Subcategories)
	}
}

// renderUnavailable prints the fetch-failure message.
func renderUnavailable(w io.Writer) {
	fmt.Fprintln(w, errorStyle.Render("Hooks are unavailable right now."))
}
