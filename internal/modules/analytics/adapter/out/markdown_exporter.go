package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"neurocalm/internal/modules/analytics/domain"
	analyticsout "neurocalm/internal/modules/analytics/port/out"
	"neurocalm/internal/platform/markdown"
	"neurocalm/internal/platform/slug"
)

const exportSchemaVersion = 1

var (
	detailsBlock = markdown.Block{Start: "<!-- neurocalm:session:start -->", End: "<!-- neurocalm:session:end -->"}
	historyBlock = markdown.Block{Start: "<!-- neurocalm:history:start -->", End: "<!-- neurocalm:history:end -->"}
)

// SessionNote is the frontmatter of an exported session note.
type SessionNote struct {
	SchemaVersion int    `yaml:"schema_version"`
	ID            string `yaml:"id"`
	Date          string `yaml:"date"`
	Title         string `yaml:"title"`
	StressLevel   int    `yaml:"stress_level"`
	Band          string `yaml:"band"`
	ExportedAt    string `yaml:"exported_at"`
}

// MarkdownExporter writes one note per session under
// <dir>/sessions/YYYY/MM/DD/ and a history.md index. Re-exporting rewrites
// the generated blocks and keeps anything the user added around them.
type MarkdownExporter struct {
	now    func() time.Time
	logger *zap.Logger
}

func NewMarkdownExporter(now func() time.Time, logger *zap.Logger) analyticsout.HistoryExporter {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkdownExporter{now: now, logger: logger}
}

func (e *MarkdownExporter) Export(ctx context.Context, dir, owner string, sessions []domain.Session) ([]string, error) {
	exportedAt := e.now().Format(time.RFC3339)
	written := make([]string, 0, len(sessions)+1)
	links := make([]string, 0, len(sessions))
	for _, s := range sessions {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		path, err := e.writeSession(dir, s, exportedAt)
		if err != nil {
			return written, err
		}
		written = append(written, path)
		rel, _ := filepath.Rel(dir, path)
		links = append(links, fmt.Sprintf("| %s | [%s](%s) | %d |", s.Date, s.Title, filepath.ToSlash(rel), s.StressLevel))
	}

	index, err := e.writeIndex(dir, owner, sessions, links)
	if err != nil {
		return written, err
	}
	written = append(written, index)
	e.logger.Info("history exported", zap.String("dir", dir), zap.Int("sessions", len(sessions)))
	return written, nil
}

func (e *MarkdownExporter) writeSession(dir string, s domain.Session, exportedAt string) (string, error) {
	day, ok := s.Day(time.UTC)
	if !ok {
		return "", fmt.Errorf("export session %s: bad date %q", s.ID, s.Date)
	}
	noteDir := filepath.Join(dir, "sessions", day.Format("2006"), day.Format("01"), day.Format("02"))
	if err := os.MkdirAll(noteDir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}
	path := filepath.Join(noteDir, fmt.Sprintf("%s-%s.md", slug.Make(s.ID), slug.Make(s.Title)))

	body, err := existingBody(path)
	if err != nil {
		return "", err
	}
	if body == "" {
		body = fmt.Sprintf("# %s\n\n## Reflection\n\n", s.Title)
	}
	details := fmt.Sprintf("- Date: %s\n- Stress: %d (%s)\n\n%s", s.Date, s.StressLevel, domain.Band(s.StressLevel), notesOrPlaceholder(s.Notes))
	body = detailsBlock.Replace(body, details)

	meta := SessionNote{
		SchemaVersion: exportSchemaVersion,
		ID:            s.ID,
		Date:          s.Date,
		Title:         s.Title,
		StressLevel:   s.StressLevel,
		Band:          string(domain.Band(s.StressLevel)),
		ExportedAt:    exportedAt,
	}
	rendered, err := markdown.Render(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}

func (e *MarkdownExporter) writeIndex(dir, owner string, sessions []domain.Session, rows []string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, "history.md")
	body, err := existingBody(path)
	if err != nil {
		return "", err
	}
	if body == "" {
		body = fmt.Sprintf("# Therapy history of %s\n\n", owner)
	}
	table := strings.Join(append([]string{"| Date | Session | Stress |", "|---|---|---|"}, rows...), "\n")
	summary := fmt.Sprintf("Sessions: %d, average stress: %d\n\n%s", len(sessions), domain.AverageStress(sessions), table)
	body = historyBlock.Replace(body, summary)

	rendered, err := markdown.Render(map[string]any{
		"schema_version": exportSchemaVersion,
		"owner":          owner,
		"sessions":       len(sessions),
	}, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write history index: %w", err)
	}
	return path, nil
}

// existingBody returns the body of a previously exported note, or "" when
// there is none.
func existingBody(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	var meta map[string]any
	body, err := markdown.Split(string(raw), &meta)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	return strings.TrimLeft(body, "\n"), nil
}

func notesOrPlaceholder(notes string) string {
	if strings.TrimSpace(notes) == "" {
		return "_No notes._"
	}
	return notes
}
