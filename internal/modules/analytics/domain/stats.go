package domain

import (
	"math"
	"slices"
	"strings"
)

type Trend string

const (
	TrendDecreasing Trend = "Decreasing"
	TrendIncreasing Trend = "Increasing"
	TrendNone       Trend = "No trend"
)

const TrendWindow = 10

// AverageStress is the rounded mean stress, 0 for an empty log.
func AverageStress(sessions []Session) int {
	if len(sessions) == 0 {
		return 0
	}
	total := 0
	for _, s := range sessions {
		total += s.StressLevel
	}
	return int(math.Round(float64(total) / float64(len(sessions))))
}

// RecentStress returns the stress of the last n sessions by date, oldest first.
func RecentStress(sessions []Session, n int) []int {
	ordered := slices.Clone(sessions)
	slices.SortStableFunc(ordered, func(a, b Session) int { return strings.Compare(a.Date, b.Date) })
	if n > 0 && len(ordered) > n {
		ordered = ordered[len(ordered)-n:]
	}
	out := make([]int, 0, len(ordered))
	for _, s := range ordered {
		out = append(out, s.StressLevel)
	}
	return out
}

// ClassifyTrend compares the newest point with the oldest one.
func ClassifyTrend(points []int) Trend {
	if len(points) < 2 {
		return TrendNone
	}
	if points[len(points)-1] < points[0] {
		return TrendDecreasing
	}
	return TrendIncreasing
}

type StressBand string

const (
	BandHigh     StressBand = "High"
	BandModerate StressBand = "Moderate"
	BandLow      StressBand = "Low"
)

func Band(stress int) StressBand {
	switch {
	case stress >= 70:
		return BandHigh
	case stress >= 40:
		return BandModerate
	default:
		return BandLow
	}
}

// Completion is completed/total as a percentage, 0 when total is not positive.
func Completion(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) * 100 / float64(total)
}

// ExerciseStress is the stress recorded for a finished exercise: ten points
// under today's level, never below 25.
func ExerciseStress(todayStress int) int {
	return max(todayStress-10, 25)
}
