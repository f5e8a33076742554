package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	chatdto "neurocalm/internal/modules/chat/dto"
	"neurocalm/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ChatPort interface {
	Greeting(ctx context.Context) chatdto.MessageOutput
	Respond(ctx context.Context, text string) (chatdto.MessageOutput, error)
	SuggestedPrompts(ctx context.Context) []string
}

// ─── messages ────────────────────────────────────────────────────────────────

type RespondedMsg struct {
	Reply chatdto.MessageOutput
	Err   error
}

// ─── model ───────────────────────────────────────────────────────────────────

const disclaimer = "Responses are generated. In case of emergency, please contact a healthcare professional."

var (
	userStyle = lipgloss.NewStyle().Foreground(theme.Base).Background(theme.Lavender).Padding(0, 1)
	botStyle  = lipgloss.NewStyle().Foreground(theme.Text).Background(theme.Surface0).Padding(0, 1)
)

type Model struct {
	port     ChatPort
	messages []chatdto.MessageOutput
	prompts  []string
	prompt   int
	input    textinput.Model
	log      viewport.Model
	spinner  spinner.Model
	waiting  bool
	err      error
	width    int
	height   int
}

func New(port ChatPort) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your message…"
	ti.CharLimit = 1000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Ellipsis
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{port: port, input: ti, log: viewport.New(0, 0), spinner: sp, prompt: -1}
	if port != nil {
		ctx := context.Background()
		m.messages = []chatdto.MessageOutput{port.Greeting(ctx)}
		m.prompts = port.SuggestedPrompts(ctx)
	}
	m.render()
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Typing reports whether key presses belong to the message input.
func (m Model) Typing() bool { return m.input.Focused() }

// Focus gives the input back its cursor.
func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

// Send submits text as if the user had typed it.
func (m *Model) Send(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" || m.waiting || m.port == nil {
		return nil
	}
	m.messages = append(m.messages, chatdto.MessageOutput{Sender: "user", Content: text})
	m.waiting = true
	m.err = nil
	m.render()
	port := m.port
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		reply, err := port.Respond(context.Background(), text)
		return RespondedMsg{Reply: reply, Err: err}
	})
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, m.width-6)
		m.log.Width = max(10, m.width-2)
		m.log.Height = max(1, m.height-7)
		m.render()
		return m, nil

	case RespondedMsg:
		m.waiting = false
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.messages = append(m.messages, msg.Reply)
		}
		m.render()
		return m, nil

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.render()
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if !m.input.Focused() {
			switch msg.String() {
			case "i", "enter":
				cmd := m.input.Focus()
				return m, cmd
			}
			var cmd tea.Cmd
			m.log, cmd = m.log.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "esc":
			m.input.Blur()
			return m, nil
		case "enter":
			text := m.input.Value()
			m.input.SetValue("")
			m.prompt = -1
			cmd := m.Send(text)
			return m, cmd
		case "ctrl+p":
			if len(m.prompts) > 0 {
				m.prompt = (m.prompt + 1) % len(m.prompts)
				m.input.SetValue(m.prompts[m.prompt])
				m.input.CursorEnd()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) render() {
	var sb strings.Builder
	width := max(20, m.log.Width*4/5)
	for _, msg := range m.messages {
		sb.WriteString(renderMessage(msg, width, m.log.Width) + "\n\n")
	}
	if m.waiting {
		sb.WriteString(botStyle.Render(m.spinner.View()) + "\n")
	}
	if m.err != nil {
		sb.WriteString(theme.Error.Render("chat: "+m.err.Error()) + "\n")
	}
	m.log.SetContent(sb.String())
	m.log.GotoBottom()
}

func renderMessage(msg chatdto.MessageOutput, width, total int) string {
	meta := ""
	if !msg.At.IsZero() {
		meta = msg.At.Format("15:04")
	}
	if msg.StressLevel > 0 {
		meta += " " + theme.Stress(msg.StressLevel).Render(fmt.Sprintf("♥ %d%%", msg.StressLevel))
	}
	if msg.Sender == "user" {
		bubble := userStyle.MaxWidth(width).Render(msg.Content)
		return lipgloss.PlaceHorizontal(max(total, lipgloss.Width(bubble)), lipgloss.Right, bubble)
	}
	bubble := botStyle.MaxWidth(width).Render(msg.Content)
	if meta != "" {
		bubble += "\n" + theme.Muted.Render(strings.TrimSpace(meta))
	}
	return bubble
}

func (m Model) View() string {
	header := theme.Title.Render("NeuroCalm Assistant") + "  " + theme.Muted.Render("supportive check-ins")
	hint := theme.Muted.Render("enter: send · ctrl+p: suggested message · esc: scroll")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.log.View(),
		theme.PaneActive.Padding(0, 1).Render(m.input.View()),
		hint,
		theme.Muted.Render(disclaimer),
	)
}
