package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar-date form used for join dates and session dates.
const DateLayout = "2006-01-02"

// Seeded values for a freshly registered account.
const (
	SeedStreak            = 1
	SeedTotalSessions     = 30
	SeedCompletedSessions = 1
)

type ProgressMetrics struct {
	StressManagement    int `json:"stressManagement"`
	EmotionalRegulation int `json:"emotionalRegulation"`
	TraumaProcessing    int `json:"traumaProcessing"`
	SleepQuality        int `json:"sleepQuality"`
}

func SeedProgress() ProgressMetrics {
	return ProgressMetrics{StressManagement: 10, EmotionalRegulation: 5, TraumaProcessing: 0, SleepQuality: 25}
}

// Clamp bounds every score to [0,100]. Merging a patch does not clamp;
// callers that want bounded values clamp first.
func (p ProgressMetrics) Clamp() ProgressMetrics {
	return ProgressMetrics{
		StressManagement:    clampPercent(p.StressManagement),
		EmotionalRegulation: clampPercent(p.EmotionalRegulation),
		TraumaProcessing:    clampPercent(p.TraumaProcessing),
		SleepQuality:        clampPercent(p.SleepQuality),
	}
}

// ProgressPatch carries the metrics a caller wants to overwrite; nil fields
// keep their current value.
type ProgressPatch struct {
	StressManagement    *int
	EmotionalRegulation *int
	TraumaProcessing    *int
	SleepQuality        *int
}

func (p ProgressMetrics) Merge(patch ProgressPatch) ProgressMetrics {
	out := p
	if patch.StressManagement != nil {
		out.StressManagement = *patch.StressManagement
	}
	if patch.EmotionalRegulation != nil {
		out.EmotionalRegulation = *patch.EmotionalRegulation
	}
	if patch.TraumaProcessing != nil {
		out.TraumaProcessing = *patch.TraumaProcessing
	}
	if patch.SleepQuality != nil {
		out.SleepQuality = *patch.SleepQuality
	}
	return out
}

type TherapySession struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Notes       string `json:"notes"`
	StressLevel int    `json:"stressLevel"`
}

// NewTherapySession is a session as supplied by a caller, before an id is assigned.
type NewTherapySession struct {
	Date        string
	Title       string
	Notes       string
	StressLevel int
}

func (s NewTherapySession) Validate() error {
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return fmt.Errorf("session date must be YYYY-MM-DD: %q", s.Date)
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("session title is required")
	}
	if s.StressLevel < 0 || s.StressLevel > 100 {
		return fmt.Errorf("stress level must be within 0..100, got %d", s.StressLevel)
	}
	return nil
}

type UserAccount struct {
	ID                string           `json:"id,omitempty"`
	Name              string           `json:"name"`
	Email             string           `json:"email"`
	JoinDate          string           `json:"joinDate"`
	Progress          ProgressMetrics  `json:"progress"`
	TherapySessions   []TherapySession `json:"therapySessions"`
	Streak            int              `json:"streak"`
	TotalSessions     int              `json:"totalSessions"`
	CompletedSessions int              `json:"completedSessions"`
	EmailVerified     bool             `json:"emailVerified"`
	Avatar            string           `json:"avatar,omitempty"`
}

// NewAccount builds a registration-time account with the seeded defaults.
func NewAccount(id, name, email string, joined time.Time) UserAccount {
	return UserAccount{
		ID:                id,
		Name:              name,
		Email:             email,
		JoinDate:          joined.Format(DateLayout),
		Progress:          SeedProgress(),
		TherapySessions:   []TherapySession{},
		Streak:            SeedStreak,
		TotalSessions:     SeedTotalSessions,
		CompletedSessions: SeedCompletedSessions,
		EmailVerified:     false,
	}
}

// HasSession reports whether id is already taken in the history.
func (a UserAccount) HasSession(id string) bool {
	for _, s := range a.TherapySessions {
		if s.ID == id {
			return true
		}
	}
	return false
}

// WithSession appends a session and counts it as a completion. The streak
// grows on every completion with no day-boundary check.
func (a UserAccount) WithSession(session TherapySession) UserAccount {
	out := a
	out.TherapySessions = make([]TherapySession, 0, len(a.TherapySessions)+1)
	out.TherapySessions = append(out.TherapySessions, a.TherapySessions...)
	out.TherapySessions = append(out.TherapySessions, session)
	out.CompletedSessions = a.CompletedSessions + 1
	out.Streak = a.Streak + 1
	return out
}

// ProfilePatch is a shallow update of top-level account fields; nil fields
// are left alone.
type ProfilePatch struct {
	Name          *string
	Email         *string
	JoinDate      *string
	TotalSessions *int
	EmailVerified *bool
	Avatar        *string
}

func (a UserAccount) Merge(patch ProfilePatch) UserAccount {
	out := a
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Email != nil {
		out.Email = *patch.Email
	}
	if patch.JoinDate != nil {
		out.JoinDate = *patch.JoinDate
	}
	if patch.TotalSessions != nil {
		out.TotalSessions = *patch.TotalSessions
	}
	if patch.EmailVerified != nil {
		out.EmailVerified = *patch.EmailVerified
	}
	if patch.Avatar != nil {
		out.Avatar = *patch.Avatar
	}
	return out
}

func (p ProfilePatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	if p.Email != nil && !strings.Contains(*p.Email, "@") {
		return fmt.Errorf("email %q is not valid", *p.Email)
	}
	if p.JoinDate != nil {
		if _, err := time.Parse(DateLayout, *p.JoinDate); err != nil {
			return fmt.Errorf("join date must be YYYY-MM-DD: %q", *p.JoinDate)
		}
	}
	if p.TotalSessions != nil && *p.TotalSessions < 0 {
		return fmt.Errorf("total sessions must be non-negative")
	}
	return nil
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
