package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "neurocalm/internal/modules/analytics/dto"
	"neurocalm/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type HistoryPort interface {
	Sessions(ctx context.Context, query analyticsdto.QueryInput) ([]analyticsdto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Query    analyticsdto.QueryInput
	Sessions []analyticsdto.SessionOutput
	Err      error
}

// ─── list item ───────────────────────────────────────────────────────────────

type sessionItem struct{ s analyticsdto.SessionOutput }

func (i sessionItem) Title() string { return i.s.Title }
func (i sessionItem) Description() string {
	return fmt.Sprintf("%s · stress %d%%", i.s.Date, i.s.StressLevel)
}
func (i sessionItem) FilterValue() string { return i.s.Title + " " + i.s.Notes }

// ─── model ───────────────────────────────────────────────────────────────────

var (
	timeFrames = []string{"all", "month", "week"}
	sortOrders = []string{"newest", "oldest", "stressHigh", "stressLow"}
)

type Model struct {
	port   HistoryPort
	list   list.Model
	detail viewport.Model
	query  analyticsdto.QueryInput
	count  int
	err    error
	width  int
	height int
}

func New(port HistoryPort) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Therapy sessions"
	l.SetShowHelp(false)
	l.Styles.Title = theme.Title

	return Model{
		port:   port,
		list:   l,
		detail: viewport.New(0, 0),
		query:  analyticsdto.QueryInput{TimeFrame: "all", Sort: "newest"},
	}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

// Reload re-runs the current query.
func (m Model) Reload() tea.Cmd { return m.load(m.query) }

// Search replaces the free-text part of the query.
func (m Model) Search(text string) tea.Cmd {
	q := m.query
	q.Text = strings.TrimSpace(text)
	return m.load(q)
}

func (m Model) Query() analyticsdto.QueryInput { return m.query }

// Filtering reports whether the list's own filter input is active.
func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

func (m Model) load(q analyticsdto.QueryInput) tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Query: q, Err: fmt.Errorf("history is not configured")}
		}
		sessions, err := m.port.Sessions(context.Background(), q)
		return LoadedMsg{Query: q, Sessions: sessions, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listW := m.width / 2
		m.list.SetSize(listW, max(1, m.height-4))
		m.detail.Width = max(1, m.width-listW-6)
		m.detail.Height = max(1, m.height-6)
		m.refreshDetail()
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.query = msg.Query
		m.count = len(msg.Sessions)
		items := make([]list.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[i] = sessionItem{s: s}
		}
		cmd := m.list.SetItems(items)
		m.refreshDetail()
		return m, cmd

	case tea.KeyMsg:
		if !m.Filtering() {
			switch msg.String() {
			case "t":
				q := m.query
				q.TimeFrame = next(timeFrames, q.TimeFrame)
				return m, m.load(q)
			case "o":
				q := m.query
				q.Sort = next(sortOrders, q.Sort)
				return m, m.load(q)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.refreshDetail()
	return m, cmd
}

func (m *Model) refreshDetail() {
	item, ok := m.list.SelectedItem().(sessionItem)
	if !ok {
		m.detail.SetContent(theme.Muted.Render("No sessions match."))
		return
	}
	s := item.s
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(s.Title) + "\n")
	sb.WriteString(theme.Muted.Render(s.Date) + "\n\n")
	sb.WriteString("Stress " + theme.Stress(s.StressLevel).Render(fmt.Sprintf("%d%%", s.StressLevel)) + "\n\n")
	notes := s.Notes
	if notes == "" {
		notes = theme.Muted.Render("(no notes)")
	}
	sb.WriteString(lipgloss.NewStyle().Width(max(10, m.detail.Width)).Render(notes))
	m.detail.SetContent(sb.String())
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Error.Render("history: " + m.err.Error())
	}
	header := theme.Muted.Render(fmt.Sprintf("%d sessions · frame %s · sort %s", m.count, m.query.TimeFrame, m.query.Sort))
	if m.query.Text != "" {
		header += theme.Muted.Render(fmt.Sprintf(" · search %q", m.query.Text))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.list.View(),
		theme.Pane.Render(m.detail.View()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func next(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
