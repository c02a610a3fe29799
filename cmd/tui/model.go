// Package tui is the terminal hook browser. It fetches the collection once
// at startup and runs the filter and pagination pipeline inside the
// bubbletea event loop.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rubiojr/hookvault/pkg/clipboard"
	"github.com/rubiojr/hookvault/pkg/core"
	"github.com/rubiojr/hookvault/pkg/log"
	"github.com/rubiojr/hookvault/pkg/pipeline"
	"golang.org/x/text/language"
)

var logger = log.ForService("browse")

// Config holds what the browser needs to start.
type Config struct {
	Gateway core.Gateway
	// CopyFeedback is how long a copied card stays marked.
	CopyFeedback time.Duration
	// Language selects the date layout.
	Language language.Tag
}

type rowKind int

const (
	rowCategory rowKind = iota
	rowSubcategory
	rowCard
)

// row is one focusable line of the browser.
type row struct {
	kind  rowKind
	value string
	card  int
}

type hooksLoadedMsg struct {
	hooks []core.Hook
	err   error
}

type copyResultMsg struct {
	generation uint64
	card       int
	err        error
}

type copyExpiredMsg struct {
	card  int
	token uint64
}

// Model is the bubbletea model of the browser.
type Model struct {
	ctx      context.Context
	gateway  core.Gateway
	feedback time.Duration
	tag      language.Tag
	copy     func(string) error

	// noClipboard is set when the platform has no clipboard utility.
	noClipboard bool

	styles  Styles
	spinner spinner.Model
	loading bool
	err     error

	session *pipeline.Session
	state   pipeline.State
	view    pipeline.View
	rows    []row
	cursor  int

	copied *clipboard.Indicator
	// generation changes whenever the visible page changes so that copy
	// results for a page no longer on screen are dropped.
	generation uint64

	width int
}

// New returns a browser in its loading state.
func New(ctx context.Context, cfg Config) Model {
	if cfg.CopyFeedback <= 0 {
		cfg.CopyFeedback = clipboard.FeedbackWindow
	}
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return Model{
		ctx:         ctx,
		gateway:     cfg.Gateway,
		feedback:    cfg.CopyFeedback,
		tag:         cfg.Language,
		copy:        clipboard.Copy,
		noClipboard: clipboard.Unsupported(),
		styles:      styles,
		spinner:     sp,
		loading:     true,
		session:     pipeline.NewSession(nil),
		state:       pipeline.State{Page: 1},
		copied:      &clipboard.Indicator{},
	}
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, cfg Config) error {
	p := tea.NewProgram(New(ctx, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchHooks())
}

// fetchHooks reads the whole collection once.
func (m Model) fetchHooks() tea.Cmd {
	gateway, ctx := m.gateway, m.ctx
	return func() tea.Msg {
		hooks, err := gateway.FetchAllHooks(ctx)
		return hooksLoadedMsg{hooks: hooks, err: err}
	}
}

func (m Model) copyHook(card int, text string) tea.Cmd {
	copyFn, generation := m.copy, m.generation
	return func() tea.Msg {
		return copyResultMsg{generation: generation, card: card, err: copyFn(text)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case hooksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			logger.Errorf("failed to load hooks: %v", msg.err)
			m.err = msg.err
			m.session = pipeline.NewSession(nil)
		} else {
			logger.Debugf("loaded %d hooks", len(msg.hooks))
			m.err = nil
			m.session = pipeline.NewSession(msg.hooks)
		}
		m.setState(pipeline.State{Page: 1})
		m.cursor = 0
		return m, nil

	case copyResultMsg:
		if msg.err != nil || msg.generation != m.generation {
			return m, nil
		}
		token := m.copied.Mark(msg.card)
		card := msg.card
		return m, tea.Tick(m.feedback, func(time.Time) tea.Msg {
			return copyExpiredMsg{card: card, token: token}
		})

	case copyExpiredMsg:
		m.copied.Expire(msg.card, msg.token)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	}

	if m.loading {
		return m, nil
	}

	switch msg.String() {
	case "r":
		if m.err != nil {
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.fetchHooks())
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "right", "n":
		m.setState(m.state.Next(m.view.TotalPages))
	case "left", "p":
		m.setState(m.state.Prev())
	case "home", "g":
		m.setState(m.state.GoTo(1, m.view.TotalPages))
	case "end", "G":
		m.setState(m.state.GoTo(m.view.TotalPages, m.view.TotalPages))
	case "enter", " ":
		return m.activate()
	}
	return m, nil
}

// activate acts on the row under the cursor.
func (m Model) activate() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.rows) {
		return m, nil
	}
	r := m.rows[m.cursor]
	switch r.kind {
	case rowCategory:
		m.setState(m.state.SelectCategory(r.value))
		m.cursor = m.rowIndex(rowCategory, r.value)
	case rowSubcategory:
		m.setState(m.state.SelectSubcategory(r.value))
		m.cursor = m.rowIndex(rowSubcategory, r.value)
	case rowCard:
		return m, m.copyHook(r.card, m.view.Cards[r.card].Hook)
	}
	return m, nil
}

// setState recomputes the view for s and keeps the cursor in range.
func (m *Model) setState(s pipeline.State) {
	pageChanged := s != m.state
	m.state = s
	m.view = m.session.View(s, m.tag)
	m.rows = buildRows(m.view)
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
	if pageChanged {
		m.generation++
		m.copied.Reset()
	}
}

func (m Model) rowIndex(kind rowKind, value string) int {
	for i, r := range m.rows {
		if r.kind == kind && r.value == value {
			return i
		}
	}
	return 0
}

func buildRows(v pipeline.View) []row {
	rows := make([]row, 0, len(v.Categories)+len(v.Subcategories)+len(v.Cards))
	for _, opt := range v.Categories {
		rows = append(rows, row{kind: rowCategory, value: opt.Value})
	}
	for _, opt := range v.Subcategories {
		rows = append(rows, row{kind: rowSubcategory, value: opt.Value})
	}
	for _, c := range v.Cards {
		rows = append(rows, row{kind: rowCard, card: c.Index})
	}
	return rows
}

func (m Model) View() string {
	var b strings.Builder
	s := m.styles

	b.WriteString(s.Title.Render("Welcome to HookVault"))
	b.WriteString("\n")
	b.WriteString(s.Subtitle.Render("Discover, generate, and save viral social media hooks"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading hooks...\n")
		b.WriteString(s.Muted.Render("\nq quit"))
		return b.String()
	}

	cursor := 0
	line := func(focusable bool, text string) {
		prefix := "  "
		if focusable {
			if cursor == m.cursor {
				prefix = s.Cursor.Render("› ")
			}
			cursor++
		}
		b.WriteString(prefix)
		b.WriteString(text)
		b.WriteString("\n")
	}

	b.WriteString(s.Section.Render("Choose your category"))
	b.WriteString("\n")
	if len(m.view.Categories) == 0 {
		line(false, s.Muted.Render("No categories available"))
	}
	for _, opt := range m.view.Categories {
		line(true, m.option(opt))
	}

	if m.state.Category != "" {
		b.WriteString(s.Section.Render("Choose your subcategory"))
		b.WriteString("\n")
		if len(m.view.Subcategories) == 0 {
			line(false, s.Muted.Render("No subcategories available"))
		}
		for _, opt := range m.view.Subcategories {
			line(true, m.option(opt))
		}
	}

	b.WriteString(s.Heading.Render(m.view.Heading))
	b.WriteString("\n")
	switch {
	case m.err != nil:
		line(false, s.Error.Render("Hooks are unavailable right now."))
		line(false, s.Muted.Render("Press r to retry."))
	case len(m.view.Cards) == 0:
		line(false, s.Muted.Render("No hooks available."))
	default:
		cardStyle := s.Card
		if m.width > 4 {
			cardStyle = cardStyle.MaxWidth(m.width - 4)
		}
		for _, c := range m.view.Cards {
			text := cardStyle.Render(c.Hook)
			if m.copied.Copied(c.Index) {
				text += "  " + s.Copied.Render("Copied!")
			}
			line(true, text)
			b.WriteString(s.Meta.Render(fmt.Sprintf("Category: %s · Generated on: %s", c.CategoryLabel, c.Date)))
			b.WriteString("\n")
		}
	}

	if m.view.ShowPagination() {
		b.WriteString("\n")
		b.WriteString(m.pagination())
		b.WriteString("\n")
	}

	if m.noClipboard {
		b.WriteString("\n")
		b.WriteString(s.Error.Render("Copying is unavailable: no clipboard utility was found."))
	}
	b.WriteString(s.Muted.Render("\n↑/↓ move · enter select/copy · ←/→ page · q quit"))
	return b.String()
}

func (m Model) option(opt pipeline.Option) string {
	if opt.Selected {
		return m.styles.Selected.Render(opt.Label)
	}
	return m.styles.Option.Render(opt.Label)
}

func (m Model) pagination() string {
	s := m.styles
	parts := make([]string, 0, len(m.view.Pages)+2)
	if m.view.HasPrev {
		parts = append(parts, "‹ Previous")
	} else {
		parts = append(parts, s.Muted.Render("‹ Previous"))
	}
	for _, link := range m.view.Pages {
		if link.Gap {
			parts = append(parts, "…")
		}
		num := fmt.Sprintf("%d", link.Number)
		if link.Active {
			num = s.Selected.Render(num)
		}
		parts = append(parts, num)
	}
	if m.view.HasNext {
		parts = append(parts, "Next ›")
	} else {
		parts = append(parts, s.Muted.Render("Next ›"))
	}
	return strings.Join(parts, " ") + "\n" +
		s.Muted.Render(fmt.Sprintf("Page %d of %d", m.state.CurrentPage(), m.view.TotalPages))
}
