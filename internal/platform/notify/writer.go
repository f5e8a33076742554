package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Bold(true)
	failureTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)
	description  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
)

// Writer prints one line per notification, styled by variant.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Notify(_ context.Context, n Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, Format(n))
}

// Format renders a notification as its title followed by the description.
func Format(n Notification) string {
	title := successTitle
	if n.Variant == VariantDestructive {
		title = failureTitle
	}
	if n.Description == "" {
		return title.Render(n.Title)
	}
	return title.Render(n.Title) + " " + description.Render(n.Description)
}
