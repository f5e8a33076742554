package service

import (
	"context"
	"encoding/json"
	"fmt"

	"neurocalm/internal/modules/account/domain"
	accountout "neurocalm/internal/modules/account/port/out"
)

const authenticatedValue = "true"

// RecordService gives typed access to the three fixed records of the store.
type RecordService struct {
	store accountout.KeyValueStore
}

func NewRecordService(store accountout.KeyValueStore) *RecordService {
	return &RecordService{store: store}
}

// LoadCurrent returns the persisted current account; ok is false when the
// slot is empty.
func (s *RecordService) LoadCurrent(ctx context.Context) (domain.UserAccount, bool, error) {
	raw, ok, err := s.store.Get(ctx, accountout.KeyCurrentUser)
	if err != nil || !ok {
		return domain.UserAccount{}, false, err
	}
	account := domain.UserAccount{}
	if err := json.Unmarshal([]byte(raw), &account); err != nil {
		return domain.UserAccount{}, false, fmt.Errorf("decode %s: %w", accountout.KeyCurrentUser, err)
	}
	return account, true, nil
}

func (s *RecordService) SaveCurrent(ctx context.Context, account domain.UserAccount) error {
	payload, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode %s: %w", accountout.KeyCurrentUser, err)
	}
	return s.store.Set(ctx, accountout.KeyCurrentUser, string(payload))
}

func (s *RecordService) IsAuthenticated(ctx context.Context) (bool, error) {
	raw, ok, err := s.store.Get(ctx, accountout.KeyAuthenticated)
	if err != nil {
		return false, err
	}
	return ok && raw == authenticatedValue, nil
}

// OpenSession writes the current account and raises the flag.
func (s *RecordService) OpenSession(ctx context.Context, account domain.UserAccount) error {
	if err := s.SaveCurrent(ctx, account); err != nil {
		return err
	}
	return s.store.Set(ctx, accountout.KeyAuthenticated, authenticatedValue)
}

// CloseSession drops the flag and the current account together.
func (s *RecordService) CloseSession(ctx context.Context) error {
	if err := s.store.Delete(ctx, accountout.KeyAuthenticated); err != nil {
		return err
	}
	return s.store.Delete(ctx, accountout.KeyCurrentUser)
}

func (s *RecordService) LoadDirectory(ctx context.Context) (domain.Directory, error) {
	raw, ok, err := s.store.Get(ctx, accountout.KeyRegisteredUsers)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return domain.Directory{}, nil
	}
	dir := domain.Directory{}
	if err := json.Unmarshal([]byte(raw), &dir); err != nil {
		return nil, fmt.Errorf("decode %s: %w", accountout.KeyRegisteredUsers, err)
	}
	return dir, nil
}

func (s *RecordService) SaveDirectory(ctx context.Context, dir domain.Directory) error {
	if dir == nil {
		dir = domain.Directory{}
	}
	payload, err := json.Marshal(dir)
	if err != nil {
		return fmt.Errorf("encode %s: %w", accountout.KeyRegisteredUsers, err)
	}
	return s.store.Set(ctx, accountout.KeyRegisteredUsers, string(payload))
}
