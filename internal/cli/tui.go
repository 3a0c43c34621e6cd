package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wronai/repodash/pkg/card"
	"github.com/wronai/repodash/pkg/card/sink"
	"github.com/wronai/repodash/pkg/catalog"
	"github.com/wronai/repodash/pkg/dashboard"
	"github.com/wronai/repodash/pkg/filter"
	"github.com/wronai/repodash/pkg/prefs"
)

// cardHeight is a rough line budget per rendered card, used for paging.
const cardHeight = 9

// =============================================================================
// Messages
// =============================================================================

// loadedMsg carries a finished catalog load back to the update loop.
type loadedMsg struct {
	res catalog.Result
}

// resetMsg fires card.ResetAfter after a copy.
type resetMsg struct {
	ev dashboard.EventReset
}

// changedMsg reports that a watched catalog file changed.
type changedMsg struct {
	path string
}

// =============================================================================
// DashboardModel - Interactive dashboard
// =============================================================================

// DashboardModel is the bubbletea model for the browse command. All
// controller mutations happen in Update.
type DashboardModel struct {
	ctx     context.Context
	ctrl    *dashboard.Controller
	loader  dashboard.Loader
	changes <-chan string

	title     string
	dark      bool
	prefs     prefs.Prefs
	prefsPath string
	savePrefs func(string, prefs.Prefs) error

	Cursor  int // focused card
	Block   int // focused code block on that card
	Offset  int
	Height  int
	Width   int
	Loading bool
	Status  string
}

// NewDashboardModel creates the model. The first load starts in Init.
func NewDashboardModel(ctx context.Context, ctrl *dashboard.Controller, loader dashboard.Loader, title string, p prefs.Prefs, path string) DashboardModel {
	return DashboardModel{
		ctx:       ctx,
		ctrl:      ctrl,
		loader:    loader,
		title:     title,
		dark:      darkMode(p),
		prefs:     p,
		prefsPath: path,
		savePrefs: prefs.Save,
		Height:    24,
		Width:     100,
		Loading:   true,
	}
}

// WithChanges makes the model reload when a path arrives on ch.
func (m DashboardModel) WithChanges(ch <-chan string) DashboardModel {
	m.changes = ch
	return m
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.waitForChange())
}

func (m DashboardModel) load() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{res: m.loader.Load(m.ctx)}
	}
}

func (m DashboardModel) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return changedMsg{path: path}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.ctrl.Apply(msg.res)
		m.Loading = false
		m.Cursor, m.Block, m.Offset = 0, 0, 0
		if msg.res.Failed() {
			m.Status = ""
		} else {
			m.Status = "Loaded from " + msg.res.Source.Location
		}
		return m, nil

	case changedMsg:
		m.Loading = true
		m.Status = "Reloading after change to " + msg.path
		return m, tea.Batch(m.load(), m.waitForChange())

	case resetMsg:
		m.ctrl.Handle(msg.ev)
		return m, nil

	case tea.WindowSizeMsg:
		m.Height = max(msg.Height, 10)
		m.Width = max(msg.Width, 40)
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.ctrl.Cards()

	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
			m.Block = 0
		}
	case "down", "j":
		if m.Cursor < len(cards)-1 {
			m.Cursor++
			m.Block = 0
		}
	case "tab", "right", "l":
		if m.Cursor < len(cards) && m.Block < len(cards[m.Cursor].Blocks)-1 {
			m.Block++
		}
	case "shift+tab", "left", "h":
		if m.Block > 0 {
			m.Block--
		}

	case "enter", "c":
		return m, m.copyBlock(m.Block)
	case "i":
		return m, m.copyKind(card.BlockInstall)
	case "s":
		return m, m.copyKind(card.BlockCloneSSH)

	case "a":
		m.selectFilter(filter.All)
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		selectors := append([]string{filter.All}, m.ctrl.Languages()...)
		if idx := int(key[0] - '0'); idx < len(selectors) {
			m.selectFilter(selectors[idx])
		}

	case "d":
		m.prefs.Toggle(m.dark)
		m.dark = !m.dark
		if m.prefsPath != "" {
			if err := m.savePrefs(m.prefsPath, m.prefs); err != nil {
				m.Status = "Could not save theme: " + err.Error()
			}
		}

	case "r":
		m.Loading = true
		m.Status = "Reloading..."
		return m, m.load()
	}

	m.scroll()
	return m, nil
}

// selectFilter dispatches a filter event and resets the focus on success.
func (m *DashboardModel) selectFilter(lang string) {
	if out := m.ctrl.Handle(dashboard.EventFilter{Language: lang}); out.Rerendered {
		m.Cursor, m.Block, m.Offset = 0, 0, 0
	}
}

// copyBlock copies block idx of the focused card and schedules the reset.
func (m DashboardModel) copyBlock(idx int) tea.Cmd {
	out := m.ctrl.Handle(dashboard.EventCopy{Card: m.Cursor, Block: idx})
	if out.Reset == nil {
		return nil
	}
	ev := *out.Reset
	return tea.Tick(card.ResetAfter, func(time.Time) tea.Msg {
		return resetMsg{ev: ev}
	})
}

func (m DashboardModel) copyKind(kind card.BlockKind) tea.Cmd {
	cards := m.ctrl.Cards()
	if m.Cursor >= len(cards) {
		return nil
	}
	for i, b := range cards[m.Cursor].Blocks {
		if b.Kind == kind {
			return m.copyBlock(i)
		}
	}
	return nil
}

// perPage is how many cards fit on screen.
func (m DashboardModel) perPage() int {
	return max((m.Height-7)/cardHeight, 1)
}

// scroll keeps the cursor inside the visible window.
func (m *DashboardModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if n := m.perPage(); m.Cursor >= m.Offset+n {
		m.Offset = m.Cursor - n + 1
	}
}

func (m DashboardModel) View() string {
	th := sink.ThemeFor(m.dark)
	dim := lipgloss.NewStyle().Foreground(th.Muted)
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(th.Title).Render(m.title))
	b.WriteString("\n")
	b.WriteString(dim.Render("↑/↓ card  ←/→ block  ⏎ copy  i install  s ssh  0-9 filter  a all  d theme  r reload  q quit"))
	b.WriteString("\n\n")

	if m.Loading && len(m.ctrl.Catalog()) == 0 {
		b.WriteString(dim.Render("Loading catalog..."))
		return b.String()
	}

	if banner := m.ctrl.Banner(); banner != "" {
		b.WriteString(sink.RenderBanner(banner, th, m.Width))
		b.WriteString("\n")
	}
	selectors := append([]string{filter.All}, m.ctrl.Languages()...)
	b.WriteString(sink.RenderFilters(selectors, m.ctrl.Active(), th))
	b.WriteString("\n\n")

	cards := m.ctrl.Cards()
	end := min(m.Offset+m.perPage(), len(cards))
	for i := m.Offset; i < end; i++ {
		focused := i == m.Cursor
		b.WriteString(sink.RenderCard(cards[i], th, m.Width, focused, m.Block))
		b.WriteString("\n")
	}

	footer := fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(cards)), len(cards))
	if m.Status != "" {
		footer += "  " + m.Status
	}
	b.WriteString(dim.Render(footer))
	return b.String()
}
