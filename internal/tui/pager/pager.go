// Package pager is the interactive document viewer: a scrollable composite
// with a scrollbar, a status bar and a filterable table of contents.
package pager

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shahbajlive/mdskin/internal/composite"
	"github.com/shahbajlive/mdskin/internal/doc"
	"github.com/shahbajlive/mdskin/internal/listview"
	"github.com/shahbajlive/mdskin/internal/render"
	"github.com/shahbajlive/mdskin/internal/skin"
	"github.com/shahbajlive/mdskin/internal/styled"
	"github.com/shahbajlive/mdskin/internal/tui/layout"
	"github.com/shahbajlive/mdskin/internal/viewport"
)

// WheelLines is how far one mouse wheel notch scrolls.
const WheelLines = 3

// ReloadMsg replaces the document, typically after its file changed.
type ReloadMsg struct {
	Doc doc.Document
	Err error
}

// SkinMsg replaces the skin. Warnings are shown but do not block the swap.
type SkinMsg struct {
	Skin     *skin.Skin
	Warnings []error
	Err      error
}

// Options are the pager's display settings.
type Options struct {
	Title          string
	Scrollbar      bool
	Progress       bool
	TOC            bool
	MaxWidth       int
	MaxColumnWidth int
}

// Entry is one table of contents row.
type Entry struct {
	Title string
	Level int
	Line  int
}

// Model is the pager model.
type Model struct {
	Logger *slog.Logger
	Keys   KeyMap

	opts     Options
	doc      doc.Document
	skin     *skin.Skin
	builder  *composite.Builder
	renderer *render.Renderer
	copyText func(string) error

	width, height int
	comp          *composite.Composite
	view          viewport.State
	buildErr      error
	status        string

	toc       *listview.List[Entry]
	tocOpen   bool
	filter    textinput.Model
	filtering bool
	progress  progress.Model
	quitting  bool
}

// Option configures a Model.
type Option func(*Model)

// WithBuilder sets the builder used to lay the document out.
func WithBuilder(b *composite.Builder) Option {
	return func(m *Model) {
		if b != nil {
			m.builder = b
		}
	}
}

// WithClipboard replaces the system clipboard writer used by the copy key.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.copyText = write
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.Logger = l }
}

// New returns a pager for d. The document is laid out on the first
// tea.WindowSizeMsg.
func New(d doc.Document, s *skin.Skin, r *render.Renderer, opts Options, mopts ...Option) Model {
	if s == nil {
		s = skin.Default()
	}
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter"

	m := Model{
		Keys:     DefaultKeyMap,
		opts:     opts,
		doc:      d,
		skin:     s,
		builder:  composite.NewBuilder(),
		renderer: r,
		copyText: clipboard.WriteAll,
		filter:   filter,
		progress: progress.New(progress.WithoutPercentage(), progress.WithColorProfile(r.Profile())),
	}
	m.toc = listview.New([]listview.Column[Entry]{{
		Title: "Contents",
		Max:   opts.MaxColumnWidth,
		Cell: func(e Entry) string {
			return strings.Repeat("  ", max(0, e.Level-1)) + e.Title
		},
	}}, 0)
	for _, opt := range mopts {
		opt(&m)
	}
	return m
}

func (m *Model) loggerSafe() *slog.Logger {
	if m != nil && m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Composite returns the current layout, nil before the first size message.
func (m Model) Composite() *composite.Composite { return m.comp }

// Viewport returns the scroll state of the document.
func (m Model) Viewport() viewport.State { return m.view }

// TOCOpen reports whether the table of contents is showing.
func (m Model) TOCOpen() bool { return m.tocOpen }

// TOC returns the table of contents list.
func (m Model) TOC() *listview.List[Entry] { return m.toc }

// Status returns the last status message.
func (m Model) Status() string { return m.status }

func (m Model) bodyHeight() int { return max(0, m.height-1) }

// panes returns the widths of the contents pane and the document pane.
func (m Model) panes() (toc, document int) {
	if !m.tocOpen {
		return 0, m.width
	}
	if layout.TierForWidth(m.width) != layout.TierSplit {
		return m.width, 0
	}
	return layout.SplitProportions(m.width)
}

// relayout rebuilds the composite for the current size, document and skin,
// keeping the reading position proportionally.
func (m *Model) relayout() {
	bodyH := m.bodyHeight()
	_, docW := m.panes()
	if docW <= 0 {
		// The document is hidden behind the contents; lay it out at full
		// width so jumps land where they will be shown.
		docW = m.width
	}
	if m.width <= 0 || docW <= 0 {
		return
	}

	ratio := 0.0
	if m.comp != nil {
		ratio = m.view.Percent()
		if m.view.AtTop() {
			ratio = 0
		}
	}

	width := func(avail int) int {
		if m.opts.MaxWidth > 0 {
			return min(avail, m.opts.MaxWidth)
		}
		return avail
	}
	c, err := m.builder.Build(m.doc, m.skin, width(docW))
	if m.opts.Scrollbar && c != nil && c.Len() > bodyH && docW > 1 && width(docW) == docW {
		c, err = c.Rewrap(docW - 1)
	}
	if c == nil {
		m.loggerSafe().Warn("layout failed", "width", docW, "error", err)
		m.buildErr = err
		return
	}
	m.comp, m.buildErr = c, err

	m.view.SetHeight(bodyH)
	m.view.SetContentLen(c.Len())
	m.view.ScrollTo(int(math.Round(ratio * float64(max(0, c.Len()-bodyH)))))

	var entries []Entry
	for _, h := range c.Headers() {
		entries = append(entries, Entry{Title: h.Title, Level: h.Level, Line: h.Start})
	}
	prev, hadSelection := m.toc.SelectedRow()
	m.toc.SetRows(entries)
	m.applyFilter()
	m.toc.Resize(max(0, bodyH-1))
	if hadSelection {
		m.reselect(prev)
	}

	m.loggerSafe().Debug("pager relayout",
		"width", c.Width,
		"lines", c.Len(),
		"height", bodyH,
		"headers", len(entries),
	)
}

func (m *Model) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if q == "" {
		m.toc.ClearFilter()
		return
	}
	m.toc.SetFilter(func(e Entry) bool {
		return strings.Contains(strings.ToLower(e.Title), q)
	})
}

// selectCurrentSection selects the last header at or above the top line.
func (m *Model) selectCurrentSection() {
	top := m.view.Offset()
	best := 0
	for pos, e := range m.toc.Displayed() {
		if e.Line <= top {
			best = pos
		}
	}
	m.toc.Select(best)
}

// reselect selects the displayed entry matching prev, if it survived a
// rebuild.
func (m *Model) reselect(prev Entry) {
	for pos, e := range m.toc.Displayed() {
		if e.Title == prev.Title && e.Level == prev.Level {
			m.toc.Select(pos)
			return
		}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil

	case ReloadMsg:
		if msg.Err != nil {
			m.status = "reload failed: " + msg.Err.Error()
			m.loggerSafe().Warn("document reload failed", "error", msg.Err)
			return m, nil
		}
		m.doc = msg.Doc
		m.status = "reloaded"
		m.relayout()
		return m, nil

	case SkinMsg:
		if msg.Err != nil {
			m.status = "skin reload failed: " + msg.Err.Error()
			m.loggerSafe().Warn("skin reload failed", "error", msg.Err)
			return m, nil
		}
		m.skin = msg.Skin
		m.renderer.SetSkin(msg.Skin)
		m.status = "skin " + msg.Skin.Name()
		if n := len(msg.Warnings); n > 0 {
			m.status = fmt.Sprintf("skin %s (%d warnings)", msg.Skin.Name(), n)
		}
		m.relayout()
		return m, nil

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(-WheelLines)
		case tea.MouseButtonWheelDown:
			m.scroll(WheelLines)
		}
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *Model) scroll(n int) {
	if m.tocOpen {
		m.toc.ScrollLines(n)
		return
	}
	m.view.ScrollLines(n)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.Keys.TOC):
		if !m.opts.TOC {
			return m, nil
		}
		m.tocOpen = !m.tocOpen
		m.relayout()
		if m.tocOpen {
			m.selectCurrentSection()
		}
		slog.Debug("toggled contents", "open", m.tocOpen)

	case key.Matches(msg, m.Keys.Back):
		if m.tocOpen {
			m.tocOpen = false
			m.relayout()
		}

	case m.tocOpen:
		return m.updateTOC(msg)

	case key.Matches(msg, m.Keys.Up):
		m.view.ScrollLines(-1)
	case key.Matches(msg, m.Keys.Down):
		m.view.ScrollLines(1)
	case key.Matches(msg, m.Keys.PageUp):
		m.view.ScrollPages(-1)
	case key.Matches(msg, m.Keys.PageDown):
		m.view.ScrollPages(1)
	case key.Matches(msg, m.Keys.Top):
		m.view.Top()
	case key.Matches(msg, m.Keys.Bottom):
		m.view.Bottom()
	case key.Matches(msg, m.Keys.Copy):
		m.copySection()
	}
	return m, nil
}

// sectionText returns the unstyled text of the section at the top of the
// view: from the last header at or above it up to the next header.
func (m Model) sectionText() string {
	if m.comp == nil || m.comp.Len() == 0 {
		return ""
	}
	top := m.view.Offset()
	start, end := 0, m.comp.Len()
	for _, h := range m.comp.Headers() {
		if h.Start <= top {
			start = h.Start
			continue
		}
		end = h.Start
		break
	}
	var b strings.Builder
	for _, l := range m.comp.Lines[start:end] {
		b.WriteString(strings.TrimRight(l.Text(), " "))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (m *Model) copySection() {
	text := m.sectionText()
	if text == "" {
		return
	}
	if err := m.copyText(text); err != nil {
		m.status = "copy failed: " + err.Error()
		m.loggerSafe().Warn("clipboard write failed", "error", err)
		return
	}
	m.status = fmt.Sprintf("copied %d lines", strings.Count(text, "\n"))
}

func (m Model) updateTOC(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Up):
		m.toc.SelectPrev()
	case key.Matches(msg, m.Keys.Down):
		m.toc.SelectNext()
	case key.Matches(msg, m.Keys.PageUp):
		m.toc.Select(m.selected() - max(1, m.toc.Height()-1))
	case key.Matches(msg, m.Keys.PageDown):
		m.toc.Select(m.selected() + max(1, m.toc.Height()-1))
	case key.Matches(msg, m.Keys.Top):
		m.toc.SelectFirst()
	case key.Matches(msg, m.Keys.Bottom):
		m.toc.SelectLast()
	case key.Matches(msg, m.Keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(msg, m.Keys.Select):
		m.jump()
	}
	return m, nil
}

func (m Model) selected() int {
	pos, _ := m.toc.Selected()
	return pos
}

// jump scrolls the document to the selected section. In narrow layouts the
// contents close so the section is visible.
func (m *Model) jump() {
	e, ok := m.toc.SelectedRow()
	if !ok {
		return
	}
	m.view.ScrollTo(e.Line)
	if toc, _ := m.panes(); toc == m.width {
		m.tocOpen = false
		m.relayout()
		m.view.ScrollTo(e.Line)
	}
	m.loggerSafe().Debug("jumped to section", "title", e.Title, "line", e.Line)
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Select):
		m.filtering = false
		m.filter.Blur()
		if _, ok := m.toc.Selected(); !ok {
			m.toc.SelectFirst()
		}
		return m, nil
	case key.Matches(msg, m.Keys.Back):
		m.filtering = false
		m.filter.Blur()
		m.filter.Reset()
		m.applyFilter()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	if _, ok := m.toc.Selected(); !ok {
		m.toc.SelectFirst()
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 || m.comp == nil {
		return ""
	}
	bodyH := m.bodyHeight()
	tocW, docW := m.panes()

	var docRows, tocRows []string
	if docW > 0 {
		docRows = m.renderer.Page(m.comp.Lines, docW, m.view, m.opts.Scrollbar)
	}
	if tocW > 0 {
		lines := m.toc.Lines(m.skin, tocW)
		if m.filtering || m.filter.Value() != "" {
			lines = append(lines[:min(len(lines), max(0, bodyH-1))], m.filterLine(tocW))
		}
		tocRows = m.renderer.Page(lines, tocW, viewport.New(len(lines), bodyH), false)
	}

	var b strings.Builder
	for i := range bodyH {
		switch {
		case tocW > 0 && docW > 0:
			b.WriteString(tocRows[i])
			b.WriteByte(' ')
			b.WriteString(docRows[i])
		case tocW > 0:
			b.WriteString(tocRows[i])
		default:
			b.WriteString(docRows[i])
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) filterLine(width int) styled.Line {
	text := m.filter.Prompt + m.filter.Value()
	if !m.filtering {
		text += "  (esc in filter clears)"
	}
	return styled.Line{Tokens: []styled.Token{
		styled.Tok(layout.Truncate(text, width, m.skin.Ellipsis()), m.skin.Resolve(skin.InlineCode)),
	}}
}

func (m Model) statusLine() string {
	st := m.skin.Resolve(skin.Selection)
	start, end := m.view.Visible()
	info := fmt.Sprintf(" %d-%d/%d %3.0f%% ", min(start+1, end), end, m.view.ContentLen(), m.view.Percent()*100)
	if m.buildErr != nil {
		info = " malformed" + info
	}

	bar := ""
	if m.opts.Progress && layout.TierForWidth(m.width) != layout.TierNarrow {
		p := m.progress
		p.Width = 20
		bar = p.ViewAs(m.view.Percent()) + " "
	}
	right := m.renderer.Token(styled.Tok(info, st)) + bar

	title := m.opts.Title
	if title == "" {
		title = "mdskin"
	}
	title = filepath.Base(title)
	if m.status != "" {
		title += " · " + m.status
	}
	leftW := max(0, m.width-render.Width(right))
	left := layout.Truncate(" "+title, leftW, m.skin.Ellipsis())
	left += strings.Repeat(" ", max(0, leftW-styled.StringWidth(left)))
	return render.Truncate(m.renderer.Token(styled.Tok(left, st))+right, m.width, "")
}
