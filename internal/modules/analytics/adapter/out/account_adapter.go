package out

import (
	"context"

	accountdto "neurocalm/internal/modules/account/dto"
	accountin "neurocalm/internal/modules/account/port/in"
	"neurocalm/internal/modules/analytics/domain"
)

// AccountAdapter reads and extends the signed-in account through the account
// module's public port.
type AccountAdapter struct {
	account accountin.Usecase
}

func NewAccountAdapter(account accountin.Usecase) *AccountAdapter {
	return &AccountAdapter{account: account}
}

func (a *AccountAdapter) CurrentProfile(ctx context.Context) (domain.Profile, error) {
	current, err := a.account.Current(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	sessions := make([]domain.Session, 0, len(current.Sessions))
	for _, s := range current.Sessions {
		sessions = append(sessions, fromAccountSession(s))
	}
	return domain.Profile{
		Name: current.Name,
		Progress: domain.Progress{
			StressManagement:    current.Progress.StressManagement,
			EmotionalRegulation: current.Progress.EmotionalRegulation,
			TraumaProcessing:    current.Progress.TraumaProcessing,
			SleepQuality:        current.Progress.SleepQuality,
		},
		Sessions:          sessions,
		Streak:            current.Streak,
		TotalSessions:     current.TotalSessions,
		CompletedSessions: current.CompletedSessions,
	}, nil
}

func (a *AccountAdapter) RecordExercise(ctx context.Context, name string, stress int) (domain.Session, error) {
	out, err := a.account.CompleteExercise(ctx, accountdto.CompleteExerciseInput{Name: name, StressLevel: stress})
	if err != nil {
		return domain.Session{}, err
	}
	return fromAccountSession(out.Session), nil
}

func fromAccountSession(s accountdto.SessionOutput) domain.Session {
	return domain.Session{ID: s.ID, Date: s.Date, Title: s.Title, Notes: s.Notes, StressLevel: s.StressLevel}
}
