package saved

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "gothere/internal/modules/progress/dto"
	"gothere/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SavedPort interface {
	Saved(ctx context.Context, relationshipID, vibeID, query string) ([]progressdto.SavedQuestionOutput, error)
	Unsave(ctx context.Context, question, relationshipID, vibeID string) (progressdto.SaveOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Query string
	Items []progressdto.SavedQuestionOutput
	Err   error
}

type UnsavedMsg struct {
	Out progressdto.SaveOutput
	Err error
}

// ─── list item ───────────────────────────────────────────────────────────────

type savedItem struct {
	q progressdto.SavedQuestionOutput
}

func (i savedItem) Title() string { return i.q.Question }
func (i savedItem) Description() string {
	return fmt.Sprintf("%s · %s · %s", i.q.RelationshipID, i.q.VibeID, i.q.SavedAt.Format("Jan 2"))
}
func (i savedItem) FilterValue() string { return i.q.Question }

// ─── model ───────────────────────────────────────────────────────────────────

// Model lists saved questions with a search box. Searching is delegated to
// the port so case folding matches the CLI.
type Model struct {
	port      SavedPort
	list      list.Model
	search    textinput.Model
	searching bool
	query     string
	err       error
	width     int
	height    int
}

func New(port SavedPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Saved questions"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "search saved questions"
	ti.Prompt = "/ "
	ti.CharLimit = 128

	return Model{port: port, list: l, search: ti}
}

// Reload refreshes the list with the current query.
func (m Model) Reload() tea.Cmd {
	return m.loadCmd(m.query)
}

// SetQuery replaces the search text and reloads.
func (m *Model) SetQuery(query string) tea.Cmd {
	m.query = query
	m.search.SetValue(query)
	return m.loadCmd(query)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = m.width - 4
		m.list.SetSize(m.width, m.height-2)
		return m, nil

	case LoadedMsg:
		if msg.Query != m.query {
			return m, nil
		}
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		items := make([]list.Item, len(msg.Items))
		for i, q := range msg.Items {
			items[i] = savedItem{q: q}
		}
		m.list.Title = fmt.Sprintf("Saved questions (%d)", len(items))
		cmd := m.list.SetItems(items)
		return m, cmd

	case UnsavedMsg:
		m.err = msg.Err
		return m, m.loadCmd(m.query)

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "/":
			m.searching = true
			cmd := m.search.Focus()
			return m, cmd
		case "d", "delete":
			if item, ok := m.list.SelectedItem().(savedItem); ok {
				return m, m.unsaveCmd(item.q)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.query {
		m.query = q
		return m, tea.Batch(cmd, m.loadCmd(q))
	}
	return m, cmd
}

func (m Model) View() string {
	header := m.search.View()
	if !m.searching && m.query == "" {
		header = theme.Muted.Render("/: search  d: remove  esc: back")
	}
	body := m.list.View()
	if len(m.list.Items()) == 0 {
		empty := "Nothing saved yet. Press ← on a card to keep it."
		if m.query != "" {
			empty = "No saved question matches \"" + m.query + "\"."
		}
		body = lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, theme.Muted.Render(empty))
	}
	if m.err != nil {
		header += "  " + theme.Hot.Render(m.err.Error())
	}
	return header + "\n\n" + body
}

// Searching reports whether the search box has focus, in which case the app
// must not treat keys as global shortcuts.
func (m Model) Searching() bool {
	return m.searching
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) loadCmd(query string) tea.Cmd {
	return func() tea.Msg {
		items, err := m.port.Saved(context.Background(), "", "", query)
		return LoadedMsg{Query: query, Items: items, Err: err}
	}
}

func (m Model) unsaveCmd(q progressdto.SavedQuestionOutput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Unsave(context.Background(), q.Question, q.RelationshipID, q.VibeID)
		return UnsavedMsg{Out: out, Err: err}
	}
}
