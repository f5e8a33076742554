package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"neurocalm/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Lavender).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle     = lipgloss.NewStyle().Foreground(theme.Subtext0)
	selectedStyle = lipgloss.NewStyle().Foreground(theme.Peach)
)

// paletteHints must stay in sync with executePalette in app/model.go.
var paletteHints = []string{
	"session:add <date> <stress> <title>",
	"exercise <name>",
	"progress <stress|emotional|trauma|sleep> <value>",
	"profile:name <name>",
	"search <text>",
	"chat <message>",
	"export <dir>",
	"verify-email",
	"refresh",
	"logout",
}

const maxHints = 5

// Palette is a command overlay: a text input with prefix hints, tab
// completion of the command word and up/down recall of earlier commands.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int

	history []string
	recall  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	ti.Prompt = ": "
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.recall = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// History lists submitted commands, oldest first.
func (p Palette) History() []string { return append([]string(nil), p.history...) }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			if val != "" && (len(p.history) == 0 || p.history[len(p.history)-1] != val) {
				p.history = append(p.history, val)
			}
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if matches := p.matches(); len(matches) > 0 {
				word, _, _ := strings.Cut(matches[0], " ")
				p.input.SetValue(word + " ")
				p.input.CursorEnd()
			}
			return p, nil
		case "up":
			if p.recall > 0 {
				p.recall--
				p.input.SetValue(p.history[p.recall])
				p.input.CursorEnd()
			}
			return p, nil
		case "down":
			if p.recall < len(p.history)-1 {
				p.recall++
				p.input.SetValue(p.history[p.recall])
			} else {
				p.recall = len(p.history)
				p.input.SetValue("")
			}
			p.input.CursorEnd()
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// matches returns the hints whose command word starts with the typed word.
func (p Palette) matches() []string {
	typed := strings.ToLower(strings.TrimSpace(p.input.Value()))
	word, _, hasArgs := strings.Cut(typed, " ")
	var out []string
	for _, h := range paletteHints {
		cmd, _, _ := strings.Cut(h, " ")
		if (hasArgs && cmd == word) || (!hasArgs && strings.HasPrefix(cmd, word)) {
			out = append(out, h)
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(p.input.View() + "\n")
	if matches := p.matches(); len(matches) > 0 {
		sb.WriteString("\n")
		for i, h := range matches {
			if i == maxHints {
				break
			}
			style := hintStyle
			if i == 0 {
				style = selectedStyle
			}
			sb.WriteString(style.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
