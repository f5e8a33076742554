package service

import (
	"fmt"
	"strings"

	"neurocalm/internal/modules/account/domain"
	accountout "neurocalm/internal/modules/account/port/out"
	"neurocalm/internal/platform/clock"
	apperrors "neurocalm/internal/platform/errors"
	"neurocalm/internal/platform/id"
)

// AccountService builds new accounts and sessions. It holds no state.
type AccountService struct {
	clock      clock.Clock
	accountIDs id.Generator
	sessionIDs id.Generator
	hasher     accountout.PasswordHasher
}

func NewAccountService(clock clock.Clock, accountIDs, sessionIDs id.Generator, hasher accountout.PasswordHasher) *AccountService {
	return &AccountService{clock: clock, accountIDs: accountIDs, sessionIDs: sessionIDs, hasher: hasher}
}

// NewEntry seeds a registration-time account together with its credential.
func (s *AccountService) NewEntry(name, email, password string) (domain.DirectoryEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.DirectoryEntry{}, fmt.Errorf("%w: name is required", apperrors.ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return domain.DirectoryEntry{}, fmt.Errorf("%w: email %q is not valid", apperrors.ErrInvalidInput, email)
	}
	if password == "" {
		return domain.DirectoryEntry{}, fmt.Errorf("%w: password is required", apperrors.ErrInvalidInput)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.DirectoryEntry{}, err
	}
	return domain.DirectoryEntry{
		UserAccount:  domain.NewAccount(s.accountIDs.New(), name, email, s.clock.Now()),
		PasswordHash: hash,
	}, nil
}

// NewSession assigns an id that is unused in account's history.
func (s *AccountService) NewSession(account domain.UserAccount, input domain.NewTherapySession) (domain.TherapySession, error) {
	if err := input.Validate(); err != nil {
		return domain.TherapySession{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	sessionID := s.sessionIDs.New()
	for account.HasSession(sessionID) {
		sessionID = s.sessionIDs.New()
	}
	return domain.TherapySession{
		ID:          sessionID,
		Date:        input.Date,
		Title:       input.Title,
		Notes:       input.Notes,
		StressLevel: input.StressLevel,
	}, nil
}

// Today is the calendar date of the service clock.
func (s *AccountService) Today() string {
	return s.clock.Now().Format(domain.DateLayout)
}

func (s *AccountService) HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is required", apperrors.ErrInvalidInput)
	}
	return s.hasher.Hash(password)
}

func (s *AccountService) CheckPassword(entry domain.DirectoryEntry, password string) error {
	if entry.PasswordHash == "" {
		return apperrors.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(entry.PasswordHash, password); err != nil {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}
