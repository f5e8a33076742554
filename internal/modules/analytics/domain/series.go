package domain

import (
	"fmt"
	"time"
)

const (
	SeriesDays  = 7
	SeriesWeeks = 4

	// EmptyStress is the value of every point when there is no history.
	EmptyStress = 50
)

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type StressPoint struct {
	Day   string
	Value int
}

type WeekCount struct {
	Week     string
	Sessions int
}

// WeeklyStressSeries returns one point for each of the seven days ending
// today, oldest first. A day takes the stress of the most recently logged
// session falling on the same weekday; days without one get the synthetic
// baseline max(30, 100-10*offset).
func WeeklyStressSeries(sessions []Session, now time.Time) []StressPoint {
	points := make([]StressPoint, 0, SeriesDays)
	if len(sessions) == 0 {
		for _, label := range weekdayLabels {
			points = append(points, StressPoint{Day: label, Value: EmptyStress})
		}
		return points
	}

	today := int(now.Weekday())
	for offset := 0; offset < SeriesDays; offset++ {
		weekday := (today - (SeriesDays - 1) + offset + 7) % 7
		value := max(30, 100-10*offset)
		for i := len(sessions) - 1; i >= 0; i-- {
			day, ok := sessions[i].Day(now.Location())
			if ok && int(day.Weekday()) == weekday {
				value = sessions[i].StressLevel
				break
			}
		}
		points = append(points, StressPoint{Day: weekdayLabels[weekday], Value: value})
	}
	return points
}

// WeeklySessionCounts counts sessions in the four trailing 7-day windows.
// Output is chronological: "Week 1" is the oldest window, "Week 4" the
// current one.
func WeeklySessionCounts(sessions []Session, now time.Time) []WeekCount {
	var buckets [SeriesWeeks]int
	week := 7 * 24 * time.Hour
	for _, s := range sessions {
		day, ok := s.Day(now.Location())
		if !ok {
			continue
		}
		elapsed := now.Sub(day)
		if elapsed < 0 {
			continue
		}
		bucket := int(elapsed / week)
		if bucket < SeriesWeeks {
			buckets[bucket]++
		}
	}
	out := make([]WeekCount, 0, SeriesWeeks)
	for bucket := SeriesWeeks - 1; bucket >= 0; bucket-- {
		out = append(out, WeekCount{Week: fmt.Sprintf("Week %d", SeriesWeeks-bucket), Sessions: buckets[bucket]})
	}
	return out
}

// TodayStress is the last point of the weekly series.
func TodayStress(series []StressPoint) int {
	if len(series) == 0 {
		return EmptyStress
	}
	return series[len(series)-1].Value
}
