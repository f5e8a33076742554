package out

import (
	"context"

	"neurocalm/internal/modules/analytics/domain"
)

type ProfileReader interface {
	CurrentProfile(ctx context.Context) (domain.Profile, error)
}

type ExerciseRecorder interface {
	RecordExercise(ctx context.Context, name string, stress int) (domain.Session, error)
}

// HistoryExporter writes the session log somewhere outside the record store
// and returns the paths it wrote.
type HistoryExporter interface {
	Export(ctx context.Context, dir string, owner string, sessions []domain.Session) ([]string, error)
}
