package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "neurocalm/internal/modules/analytics/dto"
	"neurocalm/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type DashboardPort interface {
	Dashboard(ctx context.Context) (analyticsdto.DashboardOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Data analyticsdto.DashboardOutput
	Err  error
}

// ─── model ───────────────────────────────────────────────────────────────────

const barHeight = 8

type Model struct {
	port    DashboardPort
	data    analyticsdto.DashboardOutput
	err     error
	spinner spinner.Model
	meter   progress.Model
	loading bool
	width   int
	height  int
}

func New(port DashboardPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	meter := progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Lavender)))
	meter.Width = 30

	return Model{port: port, spinner: sp, meter: meter, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches fresh figures, typically after a mutation.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("dashboard is not configured")}
		}
		data, err := m.port.Dashboard(context.Background())
		return LoadedMsg{Data: data, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.meter.Width = max(10, min(40, m.width/3))
	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.data = msg.Data
		}
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading dashboard…")
	}
	if m.err != nil {
		return theme.Error.Render("dashboard: " + m.err.Error())
	}
	d := m.data

	header := theme.Title.Render("Welcome back, "+d.Greeting) + "\n" +
		theme.Muted.Render("Here's an overview of your therapy progress and stress levels.")

	stress := theme.Pane.Render(
		theme.Title.Render("Current stress") + "\n" +
			theme.Stress(d.TodayStress).Render(d.Band) + theme.Muted.Render(fmt.Sprintf(" (%d%%)", d.TodayStress)) + "\n" +
			m.meter.ViewAs(float64(d.TodayStress)/100))

	sessions := theme.Pane.Render(
		theme.Title.Render("Sessions") + "\n" +
			fmt.Sprintf("%d / %d completed\n", d.Completed, d.Total) +
			m.meter.ViewAs(clampFraction(d.Completion/100)))

	streak := theme.Pane.Render(
		theme.Title.Render("Streak") + "\n" +
			theme.Hot.Render(fmt.Sprintf("%d", d.Streak)) + theme.Muted.Render(" sessions") + "\n" +
			theme.Muted.Render(fmt.Sprintf("avg stress %d · %s", d.Average, d.Trend)))

	cards := lipgloss.JoinHorizontal(lipgloss.Top, stress, sessions, streak)
	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Render(theme.Title.Render("Stress, last 7 days")+"\n"+RenderStressBars(d.Stress)),
		theme.Pane.Render(theme.Title.Render("Sessions per week")+"\n"+RenderWeeks(d.Weeks)),
		theme.Pane.Render(theme.Title.Render("Progress")+"\n"+m.renderProgress(d.Progress)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", cards, charts)
}

// RenderStressBars draws one vertical bar per day, coloured by stress band.
func RenderStressBars(points []analyticsdto.StressPointOutput) string {
	if len(points) == 0 {
		return theme.Muted.Render("no data")
	}
	var rows []string
	for level := barHeight; level >= 1; level-- {
		var row strings.Builder
		for _, p := range points {
			filled := (p.Value*barHeight + 99) / 100
			cell := "    "
			if filled >= level {
				cell = theme.Stress(p.Value).Render(" ██ ")
			}
			row.WriteString(cell)
		}
		rows = append(rows, row.String())
	}
	var labels strings.Builder
	for _, p := range points {
		labels.WriteString(fmt.Sprintf("%-4s", p.Day))
	}
	rows = append(rows, theme.Muted.Render(labels.String()))
	return strings.Join(rows, "\n")
}

func RenderWeeks(weeks []analyticsdto.WeekCountOutput) string {
	var sb strings.Builder
	for _, w := range weeks {
		sb.WriteString(fmt.Sprintf("%-7s %s %d\n", w.Week, theme.Hot.Render(strings.Repeat("■", w.Sessions)), w.Sessions))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderProgress(p analyticsdto.ProgressOutput) string {
	rows := []struct {
		label string
		value int
	}{
		{"Stress management", p.StressManagement},
		{"Emotional regulation", p.EmotionalRegulation},
		{"Trauma processing", p.TraumaProcessing},
		{"Sleep quality", p.SleepQuality},
	}
	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-21s %3d%%\n", r.label, r.value))
		sb.WriteString(m.meter.ViewAs(clampFraction(float64(r.value)/100)) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
