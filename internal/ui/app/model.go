package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "gothere/internal/modules/progress/dto"
	"gothere/internal/platform/clipboard"
	"gothere/internal/ui/components"
	"gothere/internal/ui/theme"
	deckview "gothere/internal/ui/views/deck"
	journeyview "gothere/internal/ui/views/journey"
	pickerview "gothere/internal/ui/views/picker"
	savedview "gothere/internal/ui/views/saved"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// The root model only needs a few progress calls of its own; the rest are
// handed to sub-views through their narrower ports.

type progressPort interface {
	deckview.ProgressPort
	savedview.SavedPort
	journeyview.JourneyPort
	Start(ctx context.Context) (progressdto.StateOutput, error)
	EvaluateBadges(ctx context.Context) (progressdto.EvaluateOutput, error)
	SessionSummary(ctx context.Context) (progressdto.SessionSummaryOutput, error)
	ExportSaved(ctx context.Context, path string) (progressdto.ExportSavedOutput, error)
}

// ─── screens ─────────────────────────────────────────────────────────────────

type screen int

const (
	screenHome screen = iota
	screenDeck
	screenSaved
	screenJourney
)

var screenLabels = map[screen]string{
	screenHome:    "Home",
	screenDeck:    "Deck",
	screenSaved:   "Saved",
	screenJourney: "Journey",
}

// ─── async messages ──────────────────────────────────────────────────────────

type stateLoadedMsg struct {
	state progressdto.StateOutput
	err   error
}

type summaryLoadedMsg struct {
	summary progressdto.SessionSummaryOutput
	err     error
}

type badgeEvaluatedMsg struct {
	out progressdto.EvaluateOutput
	err error
}

type exportedMsg struct {
	out progressdto.ExportSavedOutput
	err error
}

type statusMsg struct{ text string }

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Next     key.Binding
	SaveNext key.Binding
	Save     key.Binding
	Copy     key.Binding
	Back     key.Binding
	Saved    key.Binding
	Journey  key.Binding
	Palette  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next card")),
		SaveNext: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "save & next")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save card")),
		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy card")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Saved:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "saved")),
		Journey:  key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "journey")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Saved, k.Journey, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.SaveNext, k.Save, k.Copy, k.Back},
		{k.Saved, k.Journey, k.Palette},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes between screens, shows the
// stats header, the status bar and the badge modal. Progress logic stays
// behind the ports.
type Model struct {
	catalog  pickerview.CatalogPort
	progress progressPort

	picker  pickerview.Model
	deck    deckview.Model
	saved   savedview.Model
	journey journeyview.Model

	active   screen
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	state    progressdto.StateOutput
	badge    *progressdto.BadgeOutput
	status   string
	width    int
	height   int
}

func NewModel(catalog pickerview.CatalogPort, progress progressPort, clip clipboard.Writer) Model {
	return Model{
		catalog:  catalog,
		progress: progress,
		picker:   pickerview.New(catalog),
		deck:     deckview.New(progress, clip),
		saved:    savedview.New(progress),
		journey:  journeyview.New(progress),
		active:   screenHome,
		keys:     defaultKeys(),
		help:     help.New(),
		palette:  components.NewPalette(),
		status:   "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStateCmd(), m.picker.Init())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.palette.SetWidth(min(m.width-4, 72))
		m.propagateSize()
		return m, nil

	case stateLoadedMsg:
		if msg.err != nil {
			m.status = "progress: " + msg.err.Error()
			return m, nil
		}
		m.state = msg.state
		if m.state.Degraded {
			m.status = "progress is not being saved this session"
		}
		return m, nil

	case summaryLoadedMsg:
		if msg.err == nil {
			s := msg.summary
			m.status = fmt.Sprintf("this session: %d viewed · %d saved", s.Viewed, s.Saved)
			if len(s.BadgesUnlocked) > 0 {
				m.status += fmt.Sprintf(" · %d badge(s)", len(s.BadgesUnlocked))
			}
		}
		return m, nil

	case badgeEvaluatedMsg:
		if msg.err == nil && msg.out.Badge != nil {
			m.badge = msg.out.Badge
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = "export: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("exported %d saved question(s) to %s", msg.out.Count, msg.out.Path)
		}
		return m, nil

	case statusMsg:
		m.status = msg.text
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case pickerview.ChosenMsg:
		m.active = screenDeck
		m.status = fmt.Sprintf("%s · %s", msg.Relationship.Label, msg.Vibe.Label)
		cmd := m.deck.Open(msg.Relationship, msg.Vibe, msg.Vibes)
		return m, cmd

	// Seen and saved results pass through here first so the root model can
	// raise the badge modal and refresh the header before the deck redraws.
	case deckview.SeenMsg:
		if msg.Err == nil {
			m.state = msg.Out.State
			m.noteSeen(msg.Out)
		}
		var cmd tea.Cmd
		m.deck, cmd = m.deck.Update(msg)
		return m, cmd

	case deckview.SavedMsg:
		if msg.Err == nil {
			m.state.SavedCount = msg.Out.SavedCount
			if msg.Out.Badge != nil {
				m.badge = msg.Out.Badge
			}
		}
		var cmd tea.Cmd
		m.deck, cmd = m.deck.Update(msg)
		return m, cmd

	case deckview.ExitMsg:
		m.active = screenHome
		return m, tea.Batch(m.loadSummaryCmd(), m.loadStateCmd())

	case savedview.UnsavedMsg:
		var cmd tea.Cmd
		m.saved, cmd = m.saved.Update(msg)
		return m, tea.Batch(cmd, m.loadStateCmd())

	case savedview.LoadedMsg:
		var cmd tea.Cmd
		m.saved, cmd = m.saved.Update(msg)
		return m, cmd

	case journeyview.LoadedMsg:
		var cmd tea.Cmd
		m.journey, cmd = m.journey.Update(msg)
		return m, cmd

	case pickerview.RelationshipsLoadedMsg, pickerview.VibesLoadedMsg:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if handled, next, cmd := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	if m.palette.Visible() {
		var paletteCmd tea.Cmd
		m.palette, paletteCmd = m.palette.Update(msg)
		next, cmd := m.updateActive(msg)
		return next, tea.Batch(paletteCmd, cmd)
	}
	return m.updateActive(msg)
}

// handleKey applies global bindings. It reports false when the key belongs
// to the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m, tea.Quit
	}
	if m.badge != nil {
		if msg.String() == "enter" || msg.String() == "esc" {
			m.badge = nil
			return true, m, m.evaluateBadgesCmd()
		}
		return true, m, nil
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Back) {
			m.showHelp = false
		}
		return true, m, nil
	}
	if m.active == screenSaved && m.saved.Searching() {
		return false, m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return true, m, nil
	case key.Matches(msg, m.keys.Palette) && m.active != screenDeck:
		cmd := m.palette.Open()
		return true, m, cmd
	}

	switch m.active {
	case screenHome:
		switch {
		case key.Matches(msg, m.keys.Quit) && m.picker.AtRoot():
			return true, m, tea.Quit
		case key.Matches(msg, m.keys.Saved):
			cmd := m.openSaved("")
			return true, m, cmd
		case key.Matches(msg, m.keys.Journey):
			cmd := m.openJourney()
			return true, m, cmd
		}
	case screenSaved, screenJourney:
		if key.Matches(msg, m.keys.Back) {
			m.active = screenHome
			return true, m, nil
		}
	}
	return false, m, nil
}

func (m *Model) openSaved(query string) tea.Cmd {
	m.active = screenSaved
	return m.saved.SetQuery(query)
}

func (m *Model) openJourney() tea.Cmd {
	m.active = screenJourney
	return m.journey.Reload()
}

func (m *Model) noteSeen(out progressdto.MarkSeenOutput) {
	if out.Badge != nil {
		m.badge = out.Badge
	}
	switch {
	case out.Milestone != "":
		m.status = "✨ " + out.Milestone
	case out.StreakIncreased:
		m.status = fmt.Sprintf("🔥 streak: %d day(s)", out.State.Streak)
	case out.DeckComplete:
		m.status = "deck complete"
	}
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.active {
	case screenHome:
		m.picker, cmd = m.picker.Update(msg)
	case screenDeck:
		m.deck, cmd = m.deck.Update(msg)
	case screenSaved:
		m.saved, cmd = m.saved.Update(msg)
	case screenJourney:
		m.journey, cmd = m.journey.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.badge != nil:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			components.BadgeModal(m.badge.Icon, m.badge.Name, m.badge.Description, min(m.width-8, 48)))
	case m.showHelp:
		m.help.ShowAll = true
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).Render(m.activeView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) activeView() string {
	switch m.active {
	case screenHome:
		return m.picker.View()
	case screenDeck:
		return m.deck.View()
	case screenSaved:
		return m.saved.View()
	case screenJourney:
		return m.journey.View()
	}
	return ""
}

func (m Model) renderHeader() string {
	stats := fmt.Sprintf("🔥 %d  👀 %d  ❤️ %d  🏅 %d",
		m.state.Streak, m.state.TotalViewed, m.state.SavedCount, len(m.state.UnlockedBadges))
	left := theme.Hot.Render("gothere") + "  " + theme.Muted.Render(screenLabels[m.active])
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(stats)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + stats
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.state.FirstUse && m.active == screenHome {
		left = "pick who you're with, then a vibe  " + theme.Muted.Render(left)
	}
	right := theme.Muted.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "deck":
		if len(parts) != 3 {
			m.status = "usage: deck <relationship> <vibe>"
			return m, nil
		}
		return m, m.chooseCmd(parts[1], parts[2])
	case "saved":
		cmd := m.openSaved(rest)
		return m, cmd
	case "journey":
		cmd := m.openJourney()
		return m, cmd
	case "export":
		if rest == "" {
			m.status = "usage: export <path>"
			return m, nil
		}
		return m, m.exportCmd(rest)
	case "home":
		m.active = screenHome
		return m, nil
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 4}
	m.picker, _ = m.picker.Update(sz)
	m.deck, _ = m.deck.Update(sz)
	m.saved, _ = m.saved.Update(sz)
	m.journey, _ = m.journey.Update(sz)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadStateCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.progress.Start(context.Background())
		return stateLoadedMsg{state: state, err: err}
	}
}

func (m Model) loadSummaryCmd() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.progress.SessionSummary(context.Background())
		return summaryLoadedMsg{summary: summary, err: err}
	}
}

func (m Model) evaluateBadgesCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.progress.EvaluateBadges(context.Background())
		return badgeEvaluatedMsg{out: out, err: err}
	}
}

func (m Model) exportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.progress.ExportSaved(context.Background(), path)
		return exportedMsg{out: out, err: err}
	}
}

// chooseCmd resolves palette ids to catalog entries the way the picker does.
func (m Model) chooseCmd(relationshipID, vibeID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		rels, err := m.catalog.Relationships(ctx)
		if err != nil {
			return statusMsg{text: "catalog: " + err.Error()}
		}
		for _, rel := range rels {
			if rel.ID != relationshipID {
				continue
			}
			vibes, err := m.catalog.Vibes(ctx, rel.ID)
			if err != nil {
				return statusMsg{text: "catalog: " + err.Error()}
			}
			for _, v := range vibes {
				if v.ID == vibeID {
					return pickerview.ChosenMsg{Relationship: rel, Vibe: v, Vibes: vibes}
				}
			}
		}
		return statusMsg{text: fmt.Sprintf("no deck for %s/%s", relationshipID, vibeID)}
	}
}
