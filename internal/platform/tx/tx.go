package tx

import (
	"context"
	"sync"
)

// Manager wraps transactional boundaries for multi-adapter operations.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// SerialManager runs one boundary at a time. It does not roll back; a failed
// fn leaves whatever it already wrote.
type SerialManager struct {
	mu sync.Mutex
}

func (m *SerialManager) Within(ctx context.Context, fn func(context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
