package out

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"neurocalm/internal/modules/analytics/domain"
	"neurocalm/internal/platform/markdown"
)

func TestMarkdownExporterWritesNotesAndKeepsUserText(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	at := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	exporter := NewMarkdownExporter(func() time.Time { return at }, nil)
	sessions := []domain.Session{
		{ID: "session-1", Date: "2024-03-14", Title: "Box Breathing", Notes: "felt calmer", StressLevel: 35},
		{ID: "session-2", Date: "2024-03-15", Title: "CBT", StressLevel: 72},
	}

	written, err := exporter.Export(context.Background(), dir, "Ann", sessions)
	require.NoError(t, err)
	require.Len(t, written, 3)

	notePath := filepath.Join(dir, "sessions", "2024", "03", "14", "session-1-box-breathing.md")
	require.Equal(t, notePath, written[0])
	require.Equal(t, filepath.Join(dir, "history.md"), written[2])

	raw, err := os.ReadFile(notePath)
	require.NoError(t, err)
	meta := SessionNote{}
	body, err := markdown.Split(string(raw), &meta)
	require.NoError(t, err)
	require.Equal(t, SessionNote{
		SchemaVersion: 1,
		ID:            "session-1",
		Date:          "2024-03-14",
		Title:         "Box Breathing",
		StressLevel:   35,
		Band:          "Low",
		ExportedAt:    "2024-03-15T09:30:00Z",
	}, meta)
	require.Contains(t, body, "felt calmer")

	edited := strings.Replace(string(raw), "## Reflection\n", "## Reflection\n\nBreathing helped before bed.\n", 1)
	require.NoError(t, os.WriteFile(notePath, []byte(edited), 0o644))

	sessions[0].Notes = "felt much calmer"
	_, err = exporter.Export(context.Background(), dir, "Ann", sessions)
	require.NoError(t, err)

	raw, err = os.ReadFile(notePath)
	require.NoError(t, err)
	require.Contains(t, string(raw), "Breathing helped before bed.")
	require.Contains(t, string(raw), "felt much calmer")
	require.Equal(t, 1, strings.Count(string(raw), "neurocalm:session:start"))

	index, err := os.ReadFile(filepath.Join(dir, "history.md"))
	require.NoError(t, err)
	require.Contains(t, string(index), "Sessions: 2, average stress: 54")
	require.Contains(t, string(index), "(sessions/2024/03/15/session-2-cbt.md)")
}

func TestMarkdownExporterRejectsBadDate(t *testing.T) {
	t.Parallel()
	exporter := NewMarkdownExporter(nil, nil)
	_, err := exporter.Export(context.Background(), t.TempDir(), "Ann", []domain.Session{{ID: "x", Date: "yesterday", Title: "Oops"}})
	require.Error(t, err)
}
