package domain

import (
	"strings"
	"time"
)

type Progress struct {
	StressManagement    int
	EmotionalRegulation int
	TraumaProcessing    int
	SleepQuality        int
}

// Profile is the slice of an account the analytics read.
type Profile struct {
	Name              string
	Progress          Progress
	Sessions          []Session
	Streak            int
	TotalSessions     int
	CompletedSessions int
}

type Dashboard struct {
	Greeting    string
	TodayStress int
	Band        StressBand
	Stress      []StressPoint
	Weeks       []WeekCount
	Average     int
	Trend       Trend
	Streak      int
	Completed   int
	Total       int
	Completion  float64
	Progress    Progress
}

func BuildDashboard(p Profile, now time.Time) Dashboard {
	series := WeeklyStressSeries(p.Sessions, now)
	today := TodayStress(series)
	return Dashboard{
		Greeting:    firstName(p.Name),
		TodayStress: today,
		Band:        Band(today),
		Stress:      series,
		Weeks:       WeeklySessionCounts(p.Sessions, now),
		Average:     AverageStress(p.Sessions),
		Trend:       ClassifyTrend(RecentStress(p.Sessions, TrendWindow)),
		Streak:      p.Streak,
		Completed:   p.CompletedSessions,
		Total:       p.TotalSessions,
		Completion:  Completion(p.CompletedSessions, p.TotalSessions),
		Progress:    p.Progress,
	}
}

func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "User"
	}
	return fields[0]
}
