package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"neurocalm/internal/modules/analytics/domain"
	analyticsout "neurocalm/internal/modules/analytics/port/out"
	"neurocalm/internal/platform/clock"
	apperrors "neurocalm/internal/platform/errors"
)

type AnalyticsService struct {
	clock    clock.Clock
	profiles analyticsout.ProfileReader
	recorder analyticsout.ExerciseRecorder
	exporter analyticsout.HistoryExporter
}

func NewAnalyticsService(
	clk clock.Clock,
	profiles analyticsout.ProfileReader,
	recorder analyticsout.ExerciseRecorder,
	exporter analyticsout.HistoryExporter,
) *AnalyticsService {
	return &AnalyticsService{clock: clk, profiles: profiles, recorder: recorder, exporter: exporter}
}

// Snapshot returns the signed-in profile together with the instant the
// derived views should be computed for.
func (s *AnalyticsService) Snapshot(ctx context.Context) (domain.Profile, time.Time, error) {
	profile, err := s.profiles.CurrentProfile(ctx)
	if err != nil {
		return domain.Profile{}, time.Time{}, err
	}
	return profile, s.clock.Now(), nil
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	profile, err := s.profiles.CurrentProfile(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}
	return domain.BuildDashboard(profile, s.clock.Now()), nil
}

func (s *AnalyticsService) Sessions(ctx context.Context, q domain.Query) ([]domain.Session, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	profile, err := s.profiles.CurrentProfile(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterSessions(profile.Sessions, q, s.clock.Now()), nil
}

// CompleteExercise logs the exercise at ten points under today's stress.
func (s *AnalyticsService) CompleteExercise(ctx context.Context, name string) (domain.Session, int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Session{}, 0, fmt.Errorf("%w: exercise name is required", apperrors.ErrInvalidInput)
	}
	if e, ok := domain.FindExercise(name); ok {
		name = e.Title
	}
	profile, err := s.profiles.CurrentProfile(ctx)
	if err != nil {
		return domain.Session{}, 0, err
	}
	today := domain.TodayStress(domain.WeeklyStressSeries(profile.Sessions, s.clock.Now()))
	session, err := s.recorder.RecordExercise(ctx, name, domain.ExerciseStress(today))
	if err != nil {
		return domain.Session{}, 0, err
	}
	return session, today, nil
}

func (s *AnalyticsService) Exercises(category string) ([]domain.Exercise, error) {
	exercises, err := domain.Exercises(domain.ExerciseCategory(strings.ToLower(strings.TrimSpace(category))))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return exercises, nil
}

func (s *AnalyticsService) Export(ctx context.Context, dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: export dir is required", apperrors.ErrInvalidInput)
	}
	profile, err := s.profiles.CurrentProfile(ctx)
	if err != nil {
		return nil, err
	}
	return s.exporter.Export(ctx, dir, profile.Name, profile.Sessions)
}
