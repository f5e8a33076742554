package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type TimeFrame string

const (
	TimeFrameAll   TimeFrame = "all"
	TimeFrameMonth TimeFrame = "month"
	TimeFrameWeek  TimeFrame = "week"
)

type SortOrder string

const (
	SortNewest     SortOrder = "newest"
	SortOldest     SortOrder = "oldest"
	SortStressHigh SortOrder = "stressHigh"
	SortStressLow  SortOrder = "stressLow"
)

type Query struct {
	Text      string
	TimeFrame TimeFrame
	Sort      SortOrder
}

func (q Query) Validate() error {
	switch q.TimeFrame {
	case "", TimeFrameAll, TimeFrameMonth, TimeFrameWeek:
	default:
		return fmt.Errorf("unknown time frame %q", q.TimeFrame)
	}
	switch q.Sort {
	case "", SortNewest, SortOldest, SortStressHigh, SortStressLow:
	default:
		return fmt.Errorf("unknown sort order %q", q.Sort)
	}
	return nil
}

// FilterSessions returns a filtered and sorted copy; sessions is not touched.
// Ties keep their input order. Sessions with unparseable dates drop out of
// month and week frames. The frame cutoff keeps now's time of day, so a
// session dated exactly seven days (or one month) back falls outside it.
func FilterSessions(sessions []Session, q Query, now time.Time) []Session {
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	cutoff, bounded := cutoffFor(q.TimeFrame, now)

	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if needle != "" &&
			!strings.Contains(strings.ToLower(s.Title), needle) &&
			!strings.Contains(strings.ToLower(s.Notes), needle) {
			continue
		}
		if bounded {
			day, ok := s.Day(now.Location())
			if !ok || day.Before(cutoff) {
				continue
			}
		}
		out = append(out, s)
	}

	switch q.Sort {
	case SortOldest:
		slices.SortStableFunc(out, func(a, b Session) int { return strings.Compare(a.Date, b.Date) })
	case SortStressHigh:
		slices.SortStableFunc(out, func(a, b Session) int { return b.StressLevel - a.StressLevel })
	case SortStressLow:
		slices.SortStableFunc(out, func(a, b Session) int { return a.StressLevel - b.StressLevel })
	default:
		slices.SortStableFunc(out, func(a, b Session) int { return strings.Compare(b.Date, a.Date) })
	}
	return out
}

func cutoffFor(frame TimeFrame, now time.Time) (time.Time, bool) {
	switch frame {
	case TimeFrameMonth:
		return now.AddDate(0, -1, 0), true
	case TimeFrameWeek:
		return now.AddDate(0, 0, -7), true
	default:
		return time.Time{}, false
	}
}
