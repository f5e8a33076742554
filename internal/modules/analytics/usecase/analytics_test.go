package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	accountout "neurocalm/internal/modules/account/adapter/out"
	accountdto "neurocalm/internal/modules/account/dto"
	accountin "neurocalm/internal/modules/account/port/in"
	accountservice "neurocalm/internal/modules/account/service"
	accountusecase "neurocalm/internal/modules/account/usecase"
	analyticsout "neurocalm/internal/modules/analytics/adapter/out"
	"neurocalm/internal/modules/analytics/dto"
	analyticsin "neurocalm/internal/modules/analytics/port/in"
	"neurocalm/internal/modules/analytics/service"
	analyticsusecase "neurocalm/internal/modules/analytics/usecase"
	apperrors "neurocalm/internal/platform/errors"
	"neurocalm/internal/platform/id"
	"neurocalm/internal/platform/latency"
	"neurocalm/internal/platform/notify"
	"neurocalm/internal/platform/tx"
)

type fixedClock struct{ at time.Time }

func (f fixedClock) Now() time.Time { return f.at }

// Friday.
var friday = fixedClock{at: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}

func newModules(t *testing.T) (accountin.Usecase, analyticsin.Usecase) {
	t.Helper()
	store := accountout.NewFileKeyValueStore(filepath.Join(t.TempDir(), "records"))
	account := accountusecase.NewInteractor(
		accountservice.NewAccountService(friday, id.UUID{}, id.NewTimeBased("session", friday), accountout.NewBcryptHasher(4)),
		accountservice.NewRecordService(store),
		accountout.NewSimulatedGateway(latency.None(), false, nil),
		&notify.Recorder{},
		&tx.SerialManager{},
		id.UUID{},
		nil,
		accountusecase.Options{},
	)
	adapter := analyticsout.NewAccountAdapter(account)
	analytics := analyticsusecase.NewInteractor(service.NewAnalyticsService(
		friday,
		adapter,
		adapter,
		analyticsout.NewMarkdownExporter(friday.Now, nil),
	))
	return account, analytics
}

func TestAnalyticsRequireSession(t *testing.T) {
	t.Parallel()
	_, analytics := newModules(t)
	ctx := context.Background()

	if _, err := analytics.Dashboard(ctx); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
	if _, err := analytics.CompleteExercise(ctx, "Breathing"); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
}

func TestDashboardAndSeriesFollowTheLog(t *testing.T) {
	t.Parallel()
	account, analytics := newModules(t)
	ctx := context.Background()
	if _, err := account.Register(ctx, accountdto.RegisterInput{Name: "Ann Lee", Email: "ann@x.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, in := range []accountdto.AddSessionInput{
		{Date: "2024-03-01", Title: "Intake", StressLevel: 80},
		{Date: "2024-03-13", Title: "CBT", Notes: "work stress", StressLevel: 60},
		{Date: "2024-03-15", Title: "EMDR", StressLevel: 40},
	} {
		if _, err := account.AddTherapySession(ctx, in); err != nil {
			t.Fatalf("add session: %v", err)
		}
	}

	d, err := analytics.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.Greeting != "Ann" || d.TodayStress != 40 || d.Band != "Moderate" || d.Average != 60 {
		t.Fatalf("unexpected dashboard %+v", d)
	}
	if d.Completed != 4 || d.Streak != 4 || d.Total != 30 || d.Trend != "Decreasing" {
		t.Fatalf("unexpected counters %+v", d)
	}

	weeks, err := analytics.WeeklyCounts(ctx)
	if err != nil {
		t.Fatalf("weekly counts: %v", err)
	}
	want := []dto.WeekCountOutput{{Week: "Week 1", Sessions: 0}, {Week: "Week 2", Sessions: 1}, {Week: "Week 3", Sessions: 0}, {Week: "Week 4", Sessions: 2}}
	if diff := cmp.Diff(want, weeks); diff != "" {
		t.Fatalf("weekly counts mismatch (-want +got):\n%s", diff)
	}

	series, err := analytics.WeeklyStress(ctx)
	if err != nil || len(series) != 7 || series[6].Day != "Fri" {
		t.Fatalf("unexpected series %+v err=%v", series, err)
	}

	found, err := analytics.Sessions(ctx, dto.QueryInput{Text: "STRESS", TimeFrame: "week", Sort: "stressHigh"})
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(found) != 1 || found[0].Title != "CBT" {
		t.Fatalf("unexpected filtered sessions %+v", found)
	}
	if _, err := analytics.Sessions(ctx, dto.QueryInput{Sort: "random"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	avg, err := analytics.AverageStress(ctx)
	if err != nil || avg != 60 {
		t.Fatalf("average = %d err=%v", avg, err)
	}
	trend, err := analytics.Trend(ctx)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if diff := cmp.Diff([]int{80, 60, 40}, trend.Points); diff != "" {
		t.Fatalf("trend points mismatch:\n%s", diff)
	}
}

func TestCompleteExerciseRecordsThroughAccount(t *testing.T) {
	t.Parallel()
	account, analytics := newModules(t)
	ctx := context.Background()
	if _, err := account.Register(ctx, accountdto.RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := account.AddTherapySession(ctx, accountdto.AddSessionInput{Date: "2024-03-15", Title: "CBT", StressLevel: 80}); err != nil {
		t.Fatalf("add session: %v", err)
	}

	out, err := analytics.CompleteExercise(ctx, "Box Breathing")
	if err != nil {
		t.Fatalf("complete exercise: %v", err)
	}
	if out.TodayStress != 80 || out.Session.StressLevel != 70 || out.Session.Date != "2024-03-15" {
		t.Fatalf("unexpected exercise %+v", out)
	}
	if out.Session.Notes != "Completed Box Breathing exercise" {
		t.Fatalf("unexpected notes %q", out.Session.Notes)
	}

	current, err := account.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.Progress.StressManagement != 12 || current.Progress.EmotionalRegulation != 7 {
		t.Fatalf("progress not bumped: %+v", current.Progress)
	}
	if len(current.Sessions) != 2 {
		t.Fatalf("exercise session not appended")
	}

	if _, err := analytics.CompleteExercise(ctx, "  "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank name, got %v", err)
	}
}

func TestExerciseCatalog(t *testing.T) {
	t.Parallel()
	account, analytics := newModules(t)
	ctx := context.Background()

	// The catalog is readable while signed out.
	mindful, err := analytics.Exercises(ctx, "Mindfulness")
	if err != nil {
		t.Fatalf("exercises: %v", err)
	}
	if len(mindful) != 2 || mindful[0].Title != "Guided Visualization" || len(mindful[0].Steps) != 6 {
		t.Fatalf("unexpected mindfulness exercises %+v", mindful)
	}
	if _, err := analytics.Exercises(ctx, "yoga"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown category, got %v", err)
	}

	if _, err := account.Register(ctx, accountdto.RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	out, err := analytics.CompleteExercise(ctx, "4")
	if err != nil {
		t.Fatalf("complete exercise: %v", err)
	}
	if out.Session.Title != "5-4-3-2-1 Grounding" || out.Session.Notes != "Completed 5-4-3-2-1 Grounding exercise" {
		t.Fatalf("catalog id not resolved to its title: %+v", out.Session)
	}
}

func TestExportWritesHistory(t *testing.T) {
	t.Parallel()
	account, analytics := newModules(t)
	ctx := context.Background()
	if _, err := account.Register(ctx, accountdto.RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := account.AddTherapySession(ctx, accountdto.AddSessionInput{Date: "2024-03-15", Title: "CBT", StressLevel: 50}); err != nil {
		t.Fatalf("add session: %v", err)
	}
	dir := t.TempDir()
	out, err := analytics.Export(ctx, dto.ExportInput{Dir: dir})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(out.Notes) != 2 || out.Notes[1] != filepath.Join(dir, "history.md") {
		t.Fatalf("unexpected export %+v", out)
	}
	if _, err := analytics.Export(ctx, dto.ExportInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty dir, got %v", err)
	}
}
