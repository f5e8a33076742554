package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// Friday.
var now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func session(id, date string, stress int) Session {
	return Session{ID: id, Date: date, Title: "Session " + id, StressLevel: stress}
}

func values(points []StressPoint) []int {
	out := make([]int, 0, len(points))
	for _, p := range points {
		out = append(out, p.Value)
	}
	return out
}

func TestWeeklyStressSeriesEmptyLog(t *testing.T) {
	t.Parallel()
	got := WeeklyStressSeries(nil, now)
	want := []StressPoint{{"Sun", 50}, {"Mon", 50}, {"Tue", 50}, {"Wed", 50}, {"Thu", 50}, {"Fri", 50}, {"Sat", 50}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("empty series mismatch (-want +got):\n%s", diff)
	}
}

func TestWeeklyStressSeriesMatchesWeekdayOfLatestSession(t *testing.T) {
	t.Parallel()
	sessions := []Session{
		session("a", "2024-03-13", 20),
		session("b", "2024-03-06", 99),
		session("c", "not-a-date", 5),
	}
	got := WeeklyStressSeries(sessions, now)

	labels := make([]string, 0, len(got))
	for _, p := range got {
		labels = append(labels, p.Day)
	}
	if diff := cmp.Diff([]string{"Sat", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri"}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	// Wednesday takes the last inserted Wednesday session, not the closest date.
	if diff := cmp.Diff([]int{100, 90, 80, 70, 99, 50, 40}, values(got)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if TodayStress(got) != 40 {
		t.Fatalf("today stress should be the last point, got %d", TodayStress(got))
	}
}

func TestWeeklyStressSeriesFallbackFloor(t *testing.T) {
	t.Parallel()
	// A session that never lands in the window still switches off the empty case.
	got := WeeklyStressSeries([]Session{session("x", "garbage", 10)}, now)
	if diff := cmp.Diff([]int{100, 90, 80, 70, 60, 50, 40}, values(got)); diff != "" {
		t.Fatalf("fallback mismatch (-want +got):\n%s", diff)
	}
	for _, v := range values(got) {
		if v < 30 {
			t.Fatalf("fallback below floor: %d", v)
		}
	}
}

func TestWeeklySessionCountsChronological(t *testing.T) {
	t.Parallel()
	sessions := []Session{
		session("1", "2024-03-15", 10),
		session("2", "2024-03-10", 10),
		session("3", "2024-03-08", 10),
		session("4", "2024-03-01", 10),
		session("5", "2024-02-23", 10),
		session("6", "2024-02-16", 10),
		session("7", "2024-03-20", 10),
	}
	want := []WeekCount{{"Week 1", 1}, {"Week 2", 1}, {"Week 3", 1}, {"Week 4", 2}}
	if diff := cmp.Diff(want, WeeklySessionCounts(sessions, now)); diff != "" {
		t.Fatalf("weekly counts mismatch (-want +got):\n%s", diff)
	}
	empty := WeeklySessionCounts(nil, now)
	if len(empty) != 4 || empty[0].Sessions != 0 || empty[3].Week != "Week 4" {
		t.Fatalf("unexpected empty counts %+v", empty)
	}
}

func TestFilterSessionsTextFrameAndSort(t *testing.T) {
	t.Parallel()
	sessions := []Session{
		{ID: "1", Date: "2024-03-14", Title: "Breathing", Notes: "calm evening", StressLevel: 40},
		{ID: "2", Date: "2024-03-08", Title: "CBT", Notes: "Worked on BREATHING", StressLevel: 70},
		{ID: "3", Date: "2024-03-07", Title: "Walk", Notes: "", StressLevel: 40},
		{ID: "4", Date: "2024-02-14", Title: "Intake", Notes: "first visit", StressLevel: 90},
	}
	original := append([]Session(nil), sessions...)

	ids := func(in []Session) []string {
		out := []string{}
		for _, s := range in {
			out = append(out, s.ID)
		}
		return out
	}

	cases := []struct {
		name string
		q    Query
		want []string
	}{
		{"default newest", Query{}, []string{"1", "2", "3", "4"}},
		{"oldest", Query{Sort: SortOldest}, []string{"4", "3", "2", "1"}},
		{"text matches title or notes", Query{Text: "breathing"}, []string{"1", "2"}},
		{"week drops the day seven days back", Query{TimeFrame: TimeFrameWeek}, []string{"1"}},
		{"month", Query{TimeFrame: TimeFrameMonth, Sort: SortOldest}, []string{"3", "2", "1"}},
		{"stress high is stable", Query{Sort: SortStressHigh}, []string{"4", "2", "1", "3"}},
		{"stress low is stable", Query{Sort: SortStressLow}, []string{"1", "3", "2", "4"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, ids(FilterSessions(sessions, tc.q, now))); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
	if diff := cmp.Diff(original, sessions); diff != "" {
		t.Fatalf("input mutated:\n%s", diff)
	}
}

func TestFilterSessionsFrameBoundaries(t *testing.T) {
	t.Parallel()
	sessions := []Session{
		{ID: "week-edge", Date: "2024-03-08", StressLevel: 50},
		{ID: "week-in", Date: "2024-03-09", StressLevel: 50},
		{ID: "month-edge", Date: "2024-02-15", StressLevel: 50},
		{ID: "month-in", Date: "2024-02-16", StressLevel: 50},
	}
	ids := func(in []Session) []string {
		out := []string{}
		for _, s := range in {
			out = append(out, s.ID)
		}
		return out
	}

	week := FilterSessions(sessions, Query{TimeFrame: TimeFrameWeek}, now)
	if diff := cmp.Diff([]string{"week-in"}, ids(week)); diff != "" {
		t.Fatalf("week mismatch (-want +got):\n%s", diff)
	}
	month := FilterSessions(sessions, Query{TimeFrame: TimeFrameMonth}, now)
	if diff := cmp.Diff([]string{"week-in", "week-edge", "month-in"}, ids(month)); diff != "" {
		t.Fatalf("month mismatch (-want +got):\n%s", diff)
	}

	// At midnight the cutoff lands on the boundary day itself, which stays.
	midnight := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	week = FilterSessions(sessions, Query{TimeFrame: TimeFrameWeek}, midnight)
	if diff := cmp.Diff([]string{"week-in", "week-edge"}, ids(week)); diff != "" {
		t.Fatalf("midnight week mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryValidate(t *testing.T) {
	t.Parallel()
	if err := (Query{TimeFrame: "year"}).Validate(); err == nil {
		t.Fatalf("expected unknown time frame error")
	}
	if err := (Query{Sort: "random"}).Validate(); err == nil {
		t.Fatalf("expected unknown sort error")
	}
	if err := (Query{TimeFrame: TimeFrameWeek, Sort: SortStressLow}).Validate(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestAverageAndTrend(t *testing.T) {
	t.Parallel()
	log := []Session{session("a", "2024-01-03", 80), session("b", "2024-01-01", 60), session("c", "2024-01-02", 40)}
	if got := AverageStress(log); got != 60 {
		t.Fatalf("expected 60, got %d", got)
	}
	if got := AverageStress(nil); got != 0 {
		t.Fatalf("expected 0 for empty log, got %d", got)
	}
	if got := AverageStress([]Session{session("a", "2024-01-01", 1), session("b", "2024-01-01", 2)}); got != 2 {
		t.Fatalf("expected 1.5 to round to 2, got %d", got)
	}

	recent := RecentStress(log, TrendWindow)
	if diff := cmp.Diff([]int{60, 40, 80}, recent); diff != "" {
		t.Fatalf("recent stress mismatch:\n%s", diff)
	}
	if ClassifyTrend(recent) != TrendIncreasing {
		t.Fatalf("expected increasing")
	}
	if ClassifyTrend([]int{70, 90, 50}) != TrendDecreasing {
		t.Fatalf("expected decreasing")
	}
	if ClassifyTrend([]int{50, 50}) != TrendIncreasing {
		t.Fatalf("equal endpoints count as increasing")
	}
	if ClassifyTrend([]int{50}) != TrendNone {
		t.Fatalf("expected no trend")
	}

	var many []Session
	for i := 0; i < 15; i++ {
		many = append(many, session("s", time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC).Format(DateLayout), i))
	}
	window := RecentStress(many, TrendWindow)
	if len(window) != TrendWindow || window[0] != 5 {
		t.Fatalf("window should hold the last ten by date: %v", window)
	}
}

func TestBandCompletionAndExerciseStress(t *testing.T) {
	t.Parallel()
	for stress, want := range map[int]StressBand{70: BandHigh, 69: BandModerate, 40: BandModerate, 39: BandLow} {
		if got := Band(stress); got != want {
			t.Fatalf("band(%d) = %s, want %s", stress, got, want)
		}
	}
	if got := Completion(3, 30); got != 10 {
		t.Fatalf("expected 10%%, got %v", got)
	}
	if got := Completion(3, 0); got != 0 {
		t.Fatalf("expected 0 for zero total, got %v", got)
	}
	if ExerciseStress(60) != 50 || ExerciseStress(30) != 25 {
		t.Fatalf("unexpected exercise stress")
	}
}

func TestBuildDashboard(t *testing.T) {
	t.Parallel()
	d := BuildDashboard(Profile{
		Name:              "Ann Lee",
		Sessions:          []Session{session("a", "2024-03-15", 72)},
		Streak:            2,
		TotalSessions:     30,
		CompletedSessions: 2,
	}, now)
	if d.Greeting != "Ann" || d.TodayStress != 72 || d.Band != BandHigh {
		t.Fatalf("unexpected dashboard %+v", d)
	}
	if d.Trend != TrendNone || d.Average != 72 || len(d.Stress) != 7 || len(d.Weeks) != 4 {
		t.Fatalf("unexpected dashboard %+v", d)
	}
	if BuildDashboard(Profile{}, now).Greeting != "User" {
		t.Fatalf("blank name should greet User")
	}
}
