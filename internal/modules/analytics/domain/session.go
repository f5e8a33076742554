package domain

import "time"

const DateLayout = "2006-01-02"

// Session is the analytics view of one logged therapy session.
type Session struct {
	ID          string
	Date        string
	Title       string
	Notes       string
	StressLevel int
}

// Day parses Date as a calendar day in loc.
func (s Session) Day(loc *time.Location) (time.Time, bool) {
	day, err := time.ParseInLocation(DateLayout, s.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
