package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zuo-Peng/wa-viewer/internal/locale"
	"github.com/Zuo-Peng/wa-viewer/internal/media"
	"github.com/Zuo-Peng/wa-viewer/internal/open"
	"github.com/Zuo-Peng/wa-viewer/internal/parse"
	"github.com/Zuo-Peng/wa-viewer/internal/render"
	"github.com/Zuo-Peng/wa-viewer/internal/scan"
	"github.com/Zuo-Peng/wa-viewer/internal/search"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const debounceDelay = 200 * time.Millisecond

// Options configures the viewer for one chat.
type Options struct {
	Chat       scan.Chat
	Transcript string
	Parse      parse.Options
	Locale     *locale.Table
	Query      search.Query
	ShowSender bool
	ShowDate   bool
}

type exitAction int

const (
	exitNone exitAction = iota
	exitCopy
	exitOpenMedia
)

// message types

type loadedMsg struct {
	messages []parse.Message
	err      error
}

type filterResultMsg struct {
	gen     int
	results []parse.Message
}

type debounceTickMsg struct {
	query string
}

// model

type model struct {
	opts        Options
	extractor   *media.Extractor
	messages    []parse.Message // whole chat, re-read on reload
	query       search.Query
	showSender  bool
	showDate    bool
	gen         int // bumps whenever the visible result set changes
	results     []parse.Message
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string
	status      string
	width       int
	height      int
	ready       bool
	quitting    bool
	action      exitAction
	selected    *parse.Message
}

func initialModel(opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Focus()
	ti.SetValue(opts.Query.Text)
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	if opts.Locale == nil {
		opts.Locale = locale.MustDefault()
	}

	return model{
		opts:        opts,
		extractor:   media.NewExtractor(opts.Locale),
		query:       opts.Query,
		showSender:  opts.ShowSender,
		showDate:    opts.ShowDate,
		filterInput: ti,
		preview:     viewport.New(0, 0),
	}
}

// Run starts the viewer and blocks until it exits. Enter copies the selected
// message to the clipboard; ctrl+o opens its first resolved media file.
func Run(opts Options) error {
	m := initialModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.selected == nil {
		return nil
	}
	switch fm.action {
	case exitCopy:
		return copyMessage(*fm.selected)
	case exitOpenMedia:
		for _, ml := range render.ResolveMedia(fm.selected.Body, opts.Chat.Dir, fm.extractor) {
			if ml.Resolved {
				return open.OpenMedia(ml.Path)
			}
		}
		fmt.Println("No media found for the selected message.")
	}
	return nil
}

// copyMessage copies "[date] sender: body" to the clipboard, printing it
// instead when no clipboard is available.
func copyMessage(msg parse.Message) error {
	text := fmt.Sprintf("[%s] %s: %s", msg.Timestamp.Format("02/01/2006 15:04"), msg.Sender, msg.Body)
	if err := clipboard.WriteAll(text); err != nil {
		fmt.Println(text)
		return nil
	}
	fmt.Printf("Copied to clipboard: %s\n", text)
	return nil
}

// loadCmd re-reads the transcript from disk.
func (m model) loadCmd() tea.Cmd {
	path := m.opts.Transcript
	popts := m.opts.Parse
	return func() tea.Msg {
		msgs, err := parse.ParseFile(path, popts)
		return loadedMsg{messages: msgs, err: err}
	}
}

// Init triggers the initial transcript load.
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCmd())
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		m.previewKey = ""
		cmds = append(cmds, m.loadCurrentPreview())
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.OpenMedia):
			if len(m.results) > 0 && m.cursor < len(m.results) {
				sel := m.results[m.cursor]
				m.selected = &sel
				m.action = exitCopy
				if key.Matches(msg, keys.OpenMedia) {
					m.action = exitOpenMedia
				}
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.ToggleCase):
			m.query.CaseSensitive = !m.query.CaseSensitive
			cmd := m.doFilter()
			return m, cmd

		case key.Matches(msg, keys.ToggleWord):
			m.query.WholeWord = !m.query.WholeWord
			cmd := m.doFilter()
			return m, cmd

		case key.Matches(msg, keys.ToggleOrder):
			if m.query.Order == search.OrderAsc {
				m.query.Order = search.OrderDesc
			} else {
				m.query.Order = search.OrderAsc
			}
			cmd := m.doFilter()
			return m, cmd

		case key.Matches(msg, keys.ToggleSender):
			m.showSender = !m.showSender
			m.previewKey = ""
			return m, m.loadCurrentPreview()

		case key.Matches(msg, keys.ToggleDate):
			m.showDate = !m.showDate
			m.previewKey = ""
			return m, m.loadCurrentPreview()

		case key.Matches(msg, keys.Reload):
			m.status = "reloading..."
			return m, m.loadCmd()
		}

		// Pass remaining keys to text input
		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		// Check if query changed
		newQuery := m.filterInput.Value()
		if newQuery != m.query.Text {
			m.query.Text = newQuery
			cmds = append(cmds, m.scheduleDebouncedFilter(newQuery))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.results) == 0 {
			return m, nil
		}

		region, itemIdx := m.hitTest(msg.X, msg.Y)

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			visibleItems := m.panelHeight() / linesPerItem
			maxOffset := len(m.results) - visibleItems
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < len(m.results) && m.cursor != itemIdx {
				m.cursor = itemIdx
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var vpCmd tea.Cmd
			m.preview, vpCmd = m.preview.Update(msg)
			if vpCmd != nil {
				cmds = append(cmds, vpCmd)
			}
			return m, tea.Batch(cmds...)
		}

		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.status = "load error: " + msg.err.Error()
			m.messages = nil
		} else {
			m.status = ""
			m.messages = msg.messages
		}
		cmd := m.doFilter()
		return m, cmd

	case debounceTickMsg:
		// Only filter if the query hasn't changed since the tick was scheduled
		if msg.query == m.query.Text {
			cmd := m.doFilter()
			return m, cmd
		}
		return m, nil

	case filterResultMsg:
		if msg.gen != m.gen {
			return m, nil // stale
		}
		m.results = msg.results
		m.cursor = 0
		m.listOffset = 0
		m.previewKey = ""
		if len(m.results) > 0 {
			cmds = append(cmds, m.loadCurrentPreview())
		} else {
			m.preview.SetContent("")
		}
		return m, tea.Batch(cmds...)

	case previewRenderedMsg:
		if msg.key == m.previewKey {
			return m, nil
		}
		if msg.key != m.currentPreviewKey() {
			return m, nil // stale preview
		}
		m.preview.SetContent(msg.content)
		if msg.hitLine > 0 {
			m.preview.SetYOffset(msg.hitLine)
		} else {
			m.preview.GotoTop()
		}
		m.previewKey = msg.key
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	inputRow := m.filterInput.View()

	listContent := m.renderList(listW, panelH)
	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(listContent)

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

// helper methods

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	// 40% for list, minus border padding
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	// 60% for preview, minus border padding
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	pH := m.panelHeight()
	contentYStart := 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + pH - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // col 0=border, 1..lw=content, lw+1=border

	if x >= 1 && x <= lw {
		itemIndex := m.listOffset + (relY / linesPerItem)
		return regionList, itemIndex
	}

	if x > listBoxRight+1 {
		return regionPreview, -1
	}

	return regionNone, -1
}

func toggle(label string, on bool) string {
	if on {
		return styleToggleOn.Render(label)
	}
	return label
}

func (m model) statusBar() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%s: %d/%d", m.opts.Chat.Name, len(m.results), len(m.messages)))
	parts = append(parts, toggle("M-c case", m.query.CaseSensitive)+" "+toggle("M-w word", m.query.WholeWord))
	parts = append(parts, "M-o "+m.query.Order.String())
	parts = append(parts, toggle("M-s sender", m.showSender)+" "+toggle("M-d date", m.showDate))
	parts = append(parts, "Enter copy | C-o media | C-r reload | Esc quit")
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

// doFilter applies the current query to the loaded messages.
func (m *model) doFilter() tea.Cmd {
	m.gen++
	gen := m.gen
	q := m.query
	msgs := m.messages
	return func() tea.Msg {
		return filterResultMsg{gen: gen, results: q.Apply(msgs)}
	}
}

func (m model) scheduleDebouncedFilter(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}

func (m model) renderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.ShowSender = m.showSender
	opts.ShowDate = m.showDate
	opts.Width = m.previewWidth()
	opts.Query = m.query.Text
	opts.Locale = m.opts.Locale
	opts.MediaDir = m.opts.Chat.Dir
	opts.Extractor = m.extractor
	return opts
}

func (m model) currentPreviewKey() string {
	return fmt.Sprintf("%d:%d:%t:%t", m.gen, m.cursor, m.showSender, m.showDate)
}

func (m model) loadCurrentPreview() tea.Cmd {
	if len(m.results) == 0 || m.cursor >= len(m.results) {
		return nil
	}
	key := m.currentPreviewKey()
	if key == m.previewKey {
		return nil // already showing this preview
	}
	return loadPreviewCmd(m.results, m.cursor, key, m.renderOptions())
}
