package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/hnsearch/internal/browser"
	"github.com/matheuskafuri/hnsearch/internal/search"
	"go.uber.org/zap"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeFilter
	modeHelp
)

const errorText = "Something went wrong! Please try again."

type App struct {
	store *search.Store
	log   *zap.Logger
	open  func(string) error

	cursor int
	mode   mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	filter      titleFilter
	spinner     spinner.Model

	// Fetches started but not yet applied
	pending int
	// Last browser launch failure; cleared on the next key
	notice error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Store  *search.Store
	Logger *zap.Logger
	// Opener opens a URL; defaults to the system browser.
	Opener func(string) error
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search stories..."
	ti.Prompt = searchPromptStyle.Render("Search: ")
	ti.CharLimit = 200
	ti.SetValue(opts.Store.Snapshot().SearchTerm)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	open := opts.Opener
	if open == nil {
		open = browser.Open
	}

	return &App{
		store:       opts.Store,
		log:         log,
		open:        open,
		searchInput: ti,
		filter:      newTitleFilter(),
		spinner:     sp,
	}
}

func (a *App) Init() tea.Cmd {
	return a.fetch(a.store.Start())
}

// fetch runs f off the event loop; the result comes back as fetchDoneMsg.
func (a *App) fetch(f search.Fetch) tea.Cmd {
	a.pending++
	run := func() tea.Msg {
		return fetchDoneMsg{result: f.Run(context.Background())}
	}
	if a.pending == 1 {
		return tea.Batch(run, a.spinner.Tick)
	}
	return run
}

func (a *App) openCmd(url string) tea.Cmd {
	open := a.open
	return func() tea.Msg {
		if err := open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.store.Close()
	return a, tea.Quit
}

// visibleHits is the active key's hits narrowed by the title filter.
func (a *App) visibleHits() []search.Hit {
	return search.FilterHits(a.store.Snapshot().Hits, a.filter.term())
}

func (a *App) clampCursor() {
	n := len(a.visibleHits())
	if a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.notice = nil
		return a.handleKey(msg)

	case fetchDoneMsg:
		if a.pending > 0 {
			a.pending--
		}
		if !a.store.Apply(msg.result) {
			a.log.Debug("result not applied", zap.String("key", msg.result.Fetch.Key))
		}
		a.clampCursor()
		return a, nil

	case openErrMsg:
		a.log.Warn("opening browser", zap.Error(msg.err))
		a.notice = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.pending > 0 {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a.quit()
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = modeNormal
		}
		return a, nil
	}

	hits := a.visibleHits()
	// Row actions are disabled while the error pane hides the list.
	if a.store.Snapshot().Err != nil {
		hits = nil
	}

	switch msg.String() {
	case "q":
		return a.quit()
	case "j", "down":
		if a.cursor < len(hits)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "/", "s":
		a.mode = modeSearch
		a.searchInput.SetValue(a.store.Snapshot().SearchTerm)
		a.searchInput.CursorEnd()
		return a, a.searchInput.Focus()
	case "f":
		a.mode = modeFilter
		return a, a.filter.input.Focus()
	case "x", "d":
		if a.cursor < len(hits) {
			a.store.Dismiss(hits[a.cursor].ObjectID)
			a.clampCursor()
		}
		return a, nil
	case "n":
		return a, a.fetch(a.store.FetchNextPage())
	case "o", "enter":
		if a.cursor < len(hits) {
			return a, a.openCmd(hits[a.cursor].Link())
		}
		return a, nil
	case "c":
		if a.cursor < len(hits) {
			return a, a.openCmd(hits[a.cursor].DiscussionURL())
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		a.filter.clear()
		a.cursor = 0
		if f, ok := a.store.SubmitSearch(); ok {
			return a, a.fetch(f)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.store.SetSearchTerm(a.searchInput.Value())
	return a, cmd
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.filter.clear()
		a.clampCursor()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.filter.input.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.filter.input, cmd = a.filter.input.Update(msg)
	a.cursor = 0
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 {
		return headerStyle.Render("hnsearch")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	view := a.store.Snapshot()
	hits := search.FilterHits(view.Hits, a.filter.term())

	// Layout calculations
	headerHeight := 1
	searchHeight := 1
	filterHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - searchHeight - filterHeight - statusHeight - 2 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	listWidth := int(float64(a.width) * 0.55)
	previewWidth := a.width - listWidth - 1 // gap

	// Header
	headerLeft := headerStyle.Render("hnsearch")
	headerRight := headerInfoStyle.Render(fmt.Sprintf("page %d ", view.Page))
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	searchBar := " " + a.searchInput.View()
	filterBar := a.filter.render(a.width, a.mode == modeFilter)

	var content string
	if view.Err != nil {
		content = errorPaneStyle.Width(a.width - 2).Height(contentHeight).Render(lipglossCenter(errorText, a.width-4, contentHeight))
	} else {
		listContent := renderList(hits, a.cursor, contentHeight, listWidth-4, a.pending > 0)
		listPane := listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)

		var selected *search.Hit
		if a.cursor < len(hits) {
			selected = &hits[a.cursor]
		}
		previewPane := previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(renderPreview(selected, previewWidth-4, contentHeight))

		content = lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)
	}

	status := renderStatusBar(statusInfo{
		shown:     len(hits),
		total:     len(view.Hits),
		searchKey: view.SearchKey,
		page:      view.Page,
		filter:    a.filter.term(),
		mode:      a.mode,
		loading:   a.pending > 0,
	}, a.width)
	if a.pending > 0 {
		status = a.spinner.View() + " " + status
	}
	if a.notice != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.notice.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, searchBar, filterBar, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("hnsearch")
	dim := helpDimStyle

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Move through results\n\n" +
		dim.Render("Actions") + "\n" +
		"  /, s          Edit the search and submit with enter\n" +
		"  f             Filter loaded titles\n" +
		"  x, d          Dismiss the selected story\n" +
		"  n             Load the next page\n" +
		"  o, enter      Open the story link\n" +
		"  c             Open the comments\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI and closes the store when it exits.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	defer opts.Store.Close()
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
