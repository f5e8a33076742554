package usecase

import (
	"neurocalm/internal/modules/account/domain"
	"neurocalm/internal/modules/account/dto"
)

func toOutput(a domain.UserAccount) dto.AccountOutput {
	sessions := make([]dto.SessionOutput, 0, len(a.TherapySessions))
	for _, s := range a.TherapySessions {
		sessions = append(sessions, toSessionOutput(s))
	}
	return dto.AccountOutput{
		ID:       a.ID,
		Name:     a.Name,
		Email:    a.Email,
		JoinDate: a.JoinDate,
		Progress: dto.Progress{
			StressManagement:    a.Progress.StressManagement,
			EmotionalRegulation: a.Progress.EmotionalRegulation,
			TraumaProcessing:    a.Progress.TraumaProcessing,
			SleepQuality:        a.Progress.SleepQuality,
		},
		Sessions:          sessions,
		Streak:            a.Streak,
		TotalSessions:     a.TotalSessions,
		CompletedSessions: a.CompletedSessions,
		EmailVerified:     a.EmailVerified,
		Avatar:            a.Avatar,
	}
}

func toSessionOutput(s domain.TherapySession) dto.SessionOutput {
	return dto.SessionOutput{
		ID:          s.ID,
		Date:        s.Date,
		Title:       s.Title,
		Notes:       s.Notes,
		StressLevel: s.StressLevel,
	}
}
