package in

import (
	"context"

	"neurocalm/internal/modules/analytics/dto"
)

// Usecase derives views from the signed-in account's session log. Every call
// except the exercise catalog fails with apperrors.ErrNotAuthenticated when
// nobody is signed in.
type Usecase interface {
	Dashboard(ctx context.Context) (dto.DashboardOutput, error)
	WeeklyStress(ctx context.Context) ([]dto.StressPointOutput, error)
	WeeklyCounts(ctx context.Context) ([]dto.WeekCountOutput, error)
	Sessions(ctx context.Context, query dto.QueryInput) ([]dto.SessionOutput, error)
	AverageStress(ctx context.Context) (int, error)
	Trend(ctx context.Context) (dto.TrendOutput, error)
	Exercises(ctx context.Context, category string) ([]dto.ExerciseOutput, error)
	// CompleteExercise accepts a catalog id or title, or any free-form name.
	CompleteExercise(ctx context.Context, name string) (dto.CompleteExerciseOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
