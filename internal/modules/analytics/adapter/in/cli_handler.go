package in

import (
	"context"

	analyticsdto "neurocalm/internal/modules/analytics/dto"
	analyticsin "neurocalm/internal/modules/analytics/port/in"
)

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Dashboard(ctx context.Context) (analyticsdto.DashboardOutput, error) {
	return h.usecase.Dashboard(ctx)
}

func (h CLIHandler) WeeklyStress(ctx context.Context) ([]analyticsdto.StressPointOutput, error) {
	return h.usecase.WeeklyStress(ctx)
}

func (h CLIHandler) WeeklyCounts(ctx context.Context) ([]analyticsdto.WeekCountOutput, error) {
	return h.usecase.WeeklyCounts(ctx)
}

func (h CLIHandler) Sessions(ctx context.Context, text, timeFrame, sort string) ([]analyticsdto.SessionOutput, error) {
	return h.usecase.Sessions(ctx, analyticsdto.QueryInput{Text: text, TimeFrame: timeFrame, Sort: sort})
}

func (h CLIHandler) AverageStress(ctx context.Context) (int, error) {
	return h.usecase.AverageStress(ctx)
}

func (h CLIHandler) Trend(ctx context.Context) (analyticsdto.TrendOutput, error) {
	return h.usecase.Trend(ctx)
}

func (h CLIHandler) Exercises(ctx context.Context, category string) ([]analyticsdto.ExerciseOutput, error) {
	return h.usecase.Exercises(ctx, category)
}

func (h CLIHandler) CompleteExercise(ctx context.Context, name string) (analyticsdto.CompleteExerciseOutput, error) {
	return h.usecase.CompleteExercise(ctx, name)
}

func (h CLIHandler) Export(ctx context.Context, dir string) (analyticsdto.ExportOutput, error) {
	return h.usecase.Export(ctx, analyticsdto.ExportInput{Dir: dir})
}
