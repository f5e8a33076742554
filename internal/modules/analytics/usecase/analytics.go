package usecase

import (
	"context"

	"neurocalm/internal/modules/analytics/domain"
	"neurocalm/internal/modules/analytics/dto"
	analyticsin "neurocalm/internal/modules/analytics/port/in"
	"neurocalm/internal/modules/analytics/service"
)

type Interactor struct {
	svc *service.AnalyticsService
}

func NewInteractor(svc *service.AnalyticsService) analyticsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Dashboard(ctx context.Context) (dto.DashboardOutput, error) {
	d, err := i.svc.Dashboard(ctx)
	if err != nil {
		return dto.DashboardOutput{}, err
	}
	return dto.DashboardOutput{
		Greeting:    d.Greeting,
		TodayStress: d.TodayStress,
		Band:        string(d.Band),
		Stress:      toStressPoints(d.Stress),
		Weeks:       toWeekCounts(d.Weeks),
		Average:     d.Average,
		Trend:       string(d.Trend),
		Streak:      d.Streak,
		Completed:   d.Completed,
		Total:       d.Total,
		Completion:  d.Completion,
		Progress: dto.ProgressOutput{
			StressManagement:    d.Progress.StressManagement,
			EmotionalRegulation: d.Progress.EmotionalRegulation,
			TraumaProcessing:    d.Progress.TraumaProcessing,
			SleepQuality:        d.Progress.SleepQuality,
		},
	}, nil
}

func (i *Interactor) WeeklyStress(ctx context.Context) ([]dto.StressPointOutput, error) {
	profile, now, err := i.svc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return toStressPoints(domain.WeeklyStressSeries(profile.Sessions, now)), nil
}

func (i *Interactor) WeeklyCounts(ctx context.Context) ([]dto.WeekCountOutput, error) {
	profile, now, err := i.svc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return toWeekCounts(domain.WeeklySessionCounts(profile.Sessions, now)), nil
}

func (i *Interactor) Sessions(ctx context.Context, query dto.QueryInput) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.Sessions(ctx, domain.Query{
		Text:      query.Text,
		TimeFrame: domain.TimeFrame(query.TimeFrame),
		Sort:      domain.SortOrder(query.Sort),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSession(s))
	}
	return out, nil
}

func (i *Interactor) AverageStress(ctx context.Context) (int, error) {
	profile, _, err := i.svc.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return domain.AverageStress(profile.Sessions), nil
}

func (i *Interactor) Trend(ctx context.Context) (dto.TrendOutput, error) {
	profile, _, err := i.svc.Snapshot(ctx)
	if err != nil {
		return dto.TrendOutput{}, err
	}
	points := domain.RecentStress(profile.Sessions, domain.TrendWindow)
	return dto.TrendOutput{Points: points, Trend: string(domain.ClassifyTrend(points))}, nil
}

func (i *Interactor) Exercises(_ context.Context, category string) ([]dto.ExerciseOutput, error) {
	exercises, err := i.svc.Exercises(category)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExerciseOutput, 0, len(exercises))
	for _, e := range exercises {
		out = append(out, dto.ExerciseOutput{
			ID:            e.ID,
			Title:         e.Title,
			Category:      string(e.Category),
			Duration:      e.Duration,
			Description:   e.Description,
			Difficulty:    e.Difficulty,
			Effectiveness: e.Effectiveness,
			Steps:         e.Steps,
		})
	}
	return out, nil
}

func (i *Interactor) CompleteExercise(ctx context.Context, name string) (dto.CompleteExerciseOutput, error) {
	session, today, err := i.svc.CompleteExercise(ctx, name)
	if err != nil {
		return dto.CompleteExerciseOutput{}, err
	}
	return dto.CompleteExerciseOutput{Session: toSession(session), TodayStress: today}, nil
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	notes, err := i.svc.Export(ctx, input.Dir)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Dir: input.Dir, Notes: notes}, nil
}

func toSession(s domain.Session) dto.SessionOutput {
	return dto.SessionOutput{ID: s.ID, Date: s.Date, Title: s.Title, Notes: s.Notes, StressLevel: s.StressLevel}
}

func toStressPoints(points []domain.StressPoint) []dto.StressPointOutput {
	out := make([]dto.StressPointOutput, 0, len(points))
	for _, p := range points {
		out = append(out, dto.StressPointOutput{Day: p.Day, Value: p.Value})
	}
	return out
}

func toWeekCounts(weeks []domain.WeekCount) []dto.WeekCountOutput {
	out := make([]dto.WeekCountOutput, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, dto.WeekCountOutput{Week: w.Week, Sessions: w.Sessions})
	}
	return out
}
