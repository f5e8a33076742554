package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	accountout "neurocalm/internal/modules/account/port/out"
	apperrors "neurocalm/internal/platform/errors"
)

// FileKeyValueStore keeps each record in its own file under dir.
type FileKeyValueStore struct {
	dir string
}

func NewFileKeyValueStore(dir string) accountout.KeyValueStore {
	return &FileKeyValueStore{dir: dir}
}

func (s *FileKeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return "", false, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read record %s: %w", key, err)
	}
	return string(payload), true, nil
}

func (s *FileKeyValueStore) Set(_ context.Context, key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create records dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write record %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close record %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("commit record %s: %w", key, err)
	}
	return nil
}

func (s *FileKeyValueStore) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete record %s: %w", key, err)
	}
	return nil
}

func (s *FileKeyValueStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("%w: record key %q", apperrors.ErrInvalidInput, key)
	}
	return filepath.Join(s.dir, key), nil
}
