package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "neurocalm/internal/modules/account/dto"
	analyticsdto "neurocalm/internal/modules/analytics/dto"
	chatdto "neurocalm/internal/modules/chat/dto"
	"neurocalm/internal/platform/notify"
	"neurocalm/internal/ui/components"
	"neurocalm/internal/ui/theme"
	chatview "neurocalm/internal/ui/views/chat"
	dashboardview "neurocalm/internal/ui/views/dashboard"
	historyview "neurocalm/internal/ui/views/history"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type accountPort interface {
	Current(ctx context.Context) (accountdto.AccountOutput, error)
	Logout(ctx context.Context) error
	SendVerificationEmail(ctx context.Context, email string) error
	UpdateProgress(ctx context.Context, input accountdto.ProgressInput) (accountdto.AccountOutput, error)
	AddTherapySession(ctx context.Context, input accountdto.AddSessionInput) (accountdto.AddSessionOutput, error)
	UpdateProfile(ctx context.Context, input accountdto.ProfileInput) (accountdto.AccountOutput, error)
}

type analyticsPort interface {
	Dashboard(ctx context.Context) (analyticsdto.DashboardOutput, error)
	Sessions(ctx context.Context, query analyticsdto.QueryInput) ([]analyticsdto.SessionOutput, error)
	CompleteExercise(ctx context.Context, name string) (analyticsdto.CompleteExerciseOutput, error)
	Export(ctx context.Context, input analyticsdto.ExportInput) (analyticsdto.ExportOutput, error)
}

type chatPort interface {
	Greeting(ctx context.Context) chatdto.MessageOutput
	Respond(ctx context.Context, text string) (chatdto.MessageOutput, error)
	SuggestedPrompts(ctx context.Context) []string
}

// notificationSource hands over notifications raised since the last call.
type notificationSource interface {
	Drain() []notify.Notification
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabHistory
	tabChat
	tabCount
)

var tabLabels = [tabCount]string{
	"Dashboard", "History", "Chat",
}

// ─── async messages ───────────────────────────────────────────────────────────

type accountLoadedMsg struct {
	account accountdto.AccountOutput
	err     error
}

// actionDoneMsg reports a palette mutation. Status text comes from the
// notifications the action raised; ok is used when it raised none.
type actionDoneMsg struct {
	ok     string
	err    error
	logout bool
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab       key.Binding
	Help      key.Binding
	Palette   key.Binding
	Quit      key.Binding
	Refresh   key.Binding
	TimeFrame key.Binding
	Sort      key.Binding
	Suggest   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		TimeFrame: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "history time frame")),
		Sort:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "history sort")),
		Suggest:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "suggested message")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh},
		{k.TimeFrame, k.Sort, k.Suggest},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the signed-in
// account banner, the global help overlay, and the command palette. All
// business logic is delegated to port interfaces; all rendering is delegated
// to sub-views.
type Model struct {
	account       accountPort
	analytics     analyticsPort
	notifications notificationSource

	dashView dashboardview.Model
	histView historyview.Model
	chatView chatview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	user      accountdto.AccountOutput
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(account accountPort, analytics analyticsPort, chat chatPort, notifications notificationSource) Model {
	var chatV chatview.Model
	if chat != nil {
		chatV = chatview.New(chatPortBridge{p: chat})
	} else {
		chatV = chatview.New(nil)
	}
	return Model{
		account:       account,
		analytics:     analytics,
		notifications: notifications,
		dashView:      dashboardview.New(dashboardPortBridge{p: analytics}),
		histView:      historyview.New(historyPortBridge{p: analytics}),
		chatView:      chatV,
		activeTab:     tabDashboard,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashView.Init(),
		m.histView.Init(),
		m.chatView.Init(),
		m.loadAccountCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case accountLoadedMsg:
		if msg.err != nil {
			m.status = "account: " + msg.err.Error()
		} else {
			m.user = msg.account
		}
		return m, nil

	case actionDoneMsg:
		m.status = m.statusFor(msg)
		if msg.logout {
			return m, tea.Quit
		}
		return m, tea.Batch(m.dashView.Reload(), m.histView.Reload(), m.loadAccountCmd())

	// Sub-view results are routed regardless of the visible tab so that
	// background reloads land in the right place.
	case dashboardview.LoadedMsg:
		var cmd tea.Cmd
		m.dashView, cmd = m.dashView.Update(msg)
		return m, cmd

	case historyview.LoadedMsg:
		var cmd tea.Cmd
		m.histView, cmd = m.histView.Update(msg)
		return m, cmd

	case chatview.RespondedMsg:
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		}

		// Yield to sub-view when it is taking text input.
		if m.subViewTyping() {
			break
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		case "r":
			return m, tea.Batch(m.dashView.Reload(), m.histView.Reload(), m.loadAccountCmd())
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabDashboard:
		m.dashView, tabCmd = m.dashView.Update(msg)
	case tabHistory:
		m.histView, tabCmd = m.histView.Update(msg)
	case tabChat:
		m.chatView, tabCmd = m.chatView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabHistory:
		return m.histView.View()
	case tabChat:
		return m.chatView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "neurocalm  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.user.Email != "" {
		badge := "● " + m.user.Name
		if !m.user.EmailVerified {
			badge += " (unverified)"
		}
		left = theme.Hot.Render(badge) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// statusFor prefers the last notification the action raised, since that is
// what the account module considers the outcome.
func (m Model) statusFor(msg actionDoneMsg) string {
	if m.notifications != nil {
		if drained := m.notifications.Drain(); len(drained) > 0 {
			last := drained[len(drained)-1]
			text := last.Title
			if last.Description != "" {
				text += ": " + last.Description
			}
			if last.Variant == notify.VariantDestructive {
				return theme.Error.Render(text)
			}
			return text
		}
	}
	if msg.err != nil {
		return theme.Error.Render(msg.err.Error())
	}
	return msg.ok
}

// ─── palette execution ────────────────────────────────────────────────────────

var progressFields = map[string]func(*accountdto.ProgressInput, *int){
	"stress":    func(p *accountdto.ProgressInput, v *int) { p.StressManagement = v },
	"emotional": func(p *accountdto.ProgressInput, v *int) { p.EmotionalRegulation = v },
	"trauma":    func(p *accountdto.ProgressInput, v *int) { p.TraumaProcessing = v },
	"sleep":     func(p *accountdto.ProgressInput, v *int) { p.SleepQuality = v },
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := func(n int) string {
		text := input
		for _, p := range parts[:n] {
			text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), p))
		}
		return text
	}

	switch parts[0] {
	case "session:add":
		if len(parts) < 4 {
			m.status = "usage: session:add <date> <stress> <title>"
			return m, nil
		}
		stress, err := strconv.Atoi(parts[2])
		if err != nil {
			m.status = "invalid stress level"
			return m, nil
		}
		return m, m.actionCmd("session added", func(ctx context.Context) error {
			_, err := m.account.AddTherapySession(ctx, accountdto.AddSessionInput{
				Date:        parts[1],
				Title:       rest(3),
				StressLevel: stress,
			})
			return err
		})

	case "exercise":
		name := rest(1)
		if name == "" {
			m.status = "usage: exercise <name>"
			return m, nil
		}
		return m, m.actionCmd("exercise completed", func(ctx context.Context) error {
			_, err := m.analytics.CompleteExercise(ctx, name)
			return err
		})

	case "progress":
		if len(parts) != 3 {
			m.status = "usage: progress <stress|emotional|trauma|sleep> <value>"
			return m, nil
		}
		set, ok := progressFields[parts[1]]
		if !ok {
			m.status = "unknown metric: " + parts[1]
			return m, nil
		}
		value, err := strconv.Atoi(parts[2])
		if err != nil {
			m.status = "invalid value"
			return m, nil
		}
		var in accountdto.ProgressInput
		set(&in, &value)
		return m, m.actionCmd("progress updated", func(ctx context.Context) error {
			_, err := m.account.UpdateProgress(ctx, in)
			return err
		})

	case "profile:name":
		name := rest(1)
		if name == "" {
			m.status = "usage: profile:name <name>"
			return m, nil
		}
		return m, m.actionCmd("profile updated", func(ctx context.Context) error {
			_, err := m.account.UpdateProfile(ctx, accountdto.ProfileInput{Name: &name})
			return err
		})

	case "search":
		m.activeTab = tabHistory
		return m, m.histView.Search(rest(1))

	case "chat":
		m.activeTab = tabChat
		cmd := m.chatView.Send(rest(1))
		return m, cmd

	case "export":
		dir := rest(1)
		if dir == "" {
			m.status = "usage: export <dir>"
			return m, nil
		}
		return m, func() tea.Msg {
			out, err := m.analytics.Export(context.Background(), analyticsdto.ExportInput{Dir: dir})
			return actionDoneMsg{ok: fmt.Sprintf("exported %d notes to %s", len(out.Notes), out.Dir), err: err}
		}

	case "verify-email":
		email := m.user.Email
		return m, m.actionCmd("verification email sent", func(ctx context.Context) error {
			return m.account.SendVerificationEmail(ctx, email)
		})

	case "refresh":
		return m, tea.Batch(m.dashView.Reload(), m.histView.Reload(), m.loadAccountCmd())

	case "logout":
		return m, func() tea.Msg {
			err := m.account.Logout(context.Background())
			return actionDoneMsg{ok: "logged out", err: err, logout: err == nil}
		}

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewTyping reports whether the active tab is taking free text, in which
// case global key bindings must yield.
func (m Model) subViewTyping() bool {
	switch m.activeTab {
	case tabHistory:
		return m.histView.Filtering()
	case tabChat:
		return m.chatView.Typing()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.dashView, _ = m.dashView.Update(sz)
	m.histView, _ = m.histView.Update(sz)
	m.chatView, _ = m.chatView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadAccountCmd() tea.Cmd {
	return func() tea.Msg {
		if m.account == nil {
			return accountLoadedMsg{err: errors.New("account adapter not configured")}
		}
		acct, err := m.account.Current(context.Background())
		return accountLoadedMsg{account: acct, err: err}
	}
}

func (m Model) actionCmd(ok string, run func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{ok: ok, err: run(context.Background())}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type dashboardPortBridge struct{ p analyticsPort }

func (b dashboardPortBridge) Dashboard(ctx context.Context) (analyticsdto.DashboardOutput, error) {
	if b.p == nil {
		return analyticsdto.DashboardOutput{}, errors.New("analytics adapter not configured")
	}
	return b.p.Dashboard(ctx)
}

type historyPortBridge struct{ p analyticsPort }

func (b historyPortBridge) Sessions(ctx context.Context, q analyticsdto.QueryInput) ([]analyticsdto.SessionOutput, error) {
	if b.p == nil {
		return nil, errors.New("analytics adapter not configured")
	}
	return b.p.Sessions(ctx, q)
}

type chatPortBridge struct{ p chatPort }

func (b chatPortBridge) Greeting(ctx context.Context) chatdto.MessageOutput { return b.p.Greeting(ctx) }
func (b chatPortBridge) Respond(ctx context.Context, text string) (chatdto.MessageOutput, error) {
	return b.p.Respond(ctx, text)
}
func (b chatPortBridge) SuggestedPrompts(ctx context.Context) []string {
	return b.p.SuggestedPrompts(ctx)
}
