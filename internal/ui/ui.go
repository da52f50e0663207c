package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/songtable/internal/services"
)

// Mode is the current input mode of the TUI.
type Mode int

const (
	BrowseMode Mode = iota
	SearchMode
	UploadMode
	ConfirmClearMode
)

// columnWidths are the minimum widths of the Band, Song and Year columns.
var columnWidths = []int{24, 32, 6}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	client  services.SongService
	logger  *log.Logger
	state   *TableState
	table   table.Model
	search  textinput.Model
	path    textinput.Model
	mode    Mode
	loading bool
	status  string
	err     error
	width   int
	height  int
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model backed by client.
func NewModel(ctx context.Context, client services.SongService, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.Default()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "filter by song, band or year"

	path := textinput.New()
	path.Prompt = "CSV file: "
	path.Placeholder = "./songs.csv"

	t := table.New(
		table.WithColumns(tableColumns(ColumnNone, Ascending, 0)),
		table.WithFocused(true),
		table.WithHeight(DefaultPageSize),
	)
	ts := table.DefaultStyles()
	ts.Header = styles.header
	ts.Selected = styles.selected
	t.SetStyles(ts)

	return &Model{
		ctx:     ctx,
		client:  client,
		logger:  logger,
		state:   NewTableState(),
		table:   t,
		search:  search,
		path:    path,
		mode:    BrowseMode,
		loading: true,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// State exposes the table state backing the view.
func (m *Model) State() *TableState { return m.state }

// Mode returns the current input mode.
func (m *Model) Mode() Mode { return m.mode }

// Init fetches the song list from the server.
func (m *Model) Init() tea.Cmd {
	return m.fetchSongs()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.syncTable()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case SearchMode:
			return m.handleSearchKeys(msg)
		case UploadMode:
			return m.handleUploadKeys(msg)
		case ConfirmClearMode:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSongsFetched:
		data := msg.data.(songsFetched)
		m.loading = false
		if data.err != nil {
			m.err = data.err
			m.logger.Error("failed to fetch songs", "error", data.err)
			return m, nil
		}
		m.err = nil
		m.state.SetRecords(data.songs)
		m.syncTable()

	case MsgUploadComplete:
		data := msg.data.(uploadComplete)
		if data.err != nil {
			m.loading = false
			m.err = data.err
			m.logger.Warn("upload failed", "error", data.err)
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("✓ Uploaded %d rows", data.result.Total)
		m.logger.Info("uploaded songs", "total", data.result.Total)
		return m, m.fetchSongs()

	case MsgClearComplete:
		if err, _ := msg.data.(error); err != nil {
			m.loading = false
			m.err = err
			m.logger.Error("clear failed", "error", err)
			return m, nil
		}
		m.err = nil
		m.status = "✓ Cleared all songs"
		m.state.SetRecords(nil)
		m.syncTable()
		return m, m.fetchSongs()
	}

	return m, nil
}

// View renders the table, its status line and contextual help.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Songs"))
	b.WriteString("\n")

	switch m.mode {
	case SearchMode:
		b.WriteString(m.search.View())
	case UploadMode:
		b.WriteString(m.path.View())
	case ConfirmClearMode:
		b.WriteString(styles.warn.Render(fmt.Sprintf("Delete all %d songs? (y/n)", m.state.Len())))
	default:
		if q := m.state.Search(); q != "" {
			b.WriteString(styles.help.Render(fmt.Sprintf("filter: %q", q)))
		}
	}
	b.WriteString("\n\n")

	if m.loading && m.state.Len() == 0 {
		b.WriteString("Loading songs...\n")
	} else if m.state.Filtered() == 0 {
		b.WriteString(styles.help.Render("No songs. Press u to upload a CSV."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(styles.ok.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m *Model) footer() string {
	return styles.help.Render(fmt.Sprintf(
		"page %d/%d • %d of %d songs • %d per page",
		m.state.Page(), m.state.PageCount(), m.state.Filtered(), m.state.Len(), m.state.PageSize(),
	))
}

func (m *Model) helpView() string {
	switch m.mode {
	case SearchMode, UploadMode:
		return m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back})
	case ConfirmClearMode:
		return m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	default:
		return m.help.View(m.keys)
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.mode = SearchMode
		m.search.SetValue(m.state.Search())
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.sortBand):
		m.state.ToggleSort(ColumnBand)
	case key.Matches(msg, m.keys.sortName):
		m.state.ToggleSort(ColumnName)
	case key.Matches(msg, m.keys.sortYear):
		m.state.ToggleSort(ColumnYear)
	case key.Matches(msg, m.keys.pageSize):
		m.state.CyclePageSize()
	case key.Matches(msg, m.keys.prev):
		m.state.PrevPage()
	case key.Matches(msg, m.keys.next):
		m.state.NextPage()
	case key.Matches(msg, m.keys.upload):
		m.mode = UploadMode
		m.path.SetValue("")
		return m, m.path.Focus()
	case key.Matches(msg, m.keys.clear):
		m.mode = ConfirmClearMode
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		m.status = ""
		return m, m.fetchSongs()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	m.syncTable()
	return m, nil
}

// handleSearchKeys filters as the user types; esc clears the filter.
func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		m.mode = BrowseMode
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.back):
		m.mode = BrowseMode
		m.search.Blur()
		m.search.SetValue("")
		m.state.SetSearch("")
		m.syncTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.state.SetSearch(m.search.Value())
	m.syncTable()
	return m, cmd
}

func (m *Model) handleUploadKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		path := strings.TrimSpace(m.path.Value())
		m.mode = BrowseMode
		m.path.Blur()
		if path == "" {
			return m, nil
		}
		m.loading = true
		m.status = fmt.Sprintf("Uploading %s...", filepath.Base(path))
		return m, m.uploadFile(path)
	case key.Matches(msg, m.keys.back):
		m.mode = BrowseMode
		m.path.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		m.mode = BrowseMode
		m.loading = true
		return m, m.clearSongs()
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.mode = BrowseMode
	}
	return m, nil
}

// syncTable copies the current page of the table state into the table widget.
func (m *Model) syncTable() {
	col, dir := m.state.Sort()
	cols := tableColumns(col, dir, m.width)
	m.table.SetColumns(cols)
	m.table.SetWidth(tableWidth(cols))
	m.table.SetRows(tableRows(m.state.Rows()))
	m.table.SetHeight(m.state.PageSize() + 1)

	if cursor := m.table.Cursor(); cursor >= len(m.table.Rows()) {
		m.table.SetCursor(max(0, len(m.table.Rows())-1))
	}
}

func (m *Model) fetchSongs() tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		songs, err := m.client.ListSongs(m.ctx, "")
		return songsFetchedMsg(songs, err)
	}
}

func (m *Model) uploadFile(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadCompleteMsg(nil, fmt.Errorf("failed to open %s: %w", path, err))
		}
		defer f.Close()

		result, err := m.client.UploadCSV(m.ctx, path, f)
		var apiErr *services.APIError
		if errors.As(err, &apiErr) {
			err = errors.New(apiErr.Message)
		}
		return uploadCompleteMsg(result, err)
	}
}

func (m *Model) clearSongs() tea.Cmd {
	return func() tea.Msg {
		return clearCompleteMsg(m.client.ClearSongs(m.ctx))
	}
}
