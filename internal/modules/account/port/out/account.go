package out

import (
	"context"

	"neurocalm/internal/platform/notify"
)

// Fixed record keys of the durable store.
const (
	KeyCurrentUser     = "currentUser"
	KeyAuthenticated   = "authenticated-flag"
	KeyRegisteredUsers = "registeredUsers"
)

// KeyValueStore is the durable record store. Readers see the last written
// value. Grouping writes is up to the tx.Manager wired next to the store.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Gateway performs the latency-bound external calls. Calls are not
// cancellable; a failure is reported as apperrors.ErrExternalCallFailure.
type Gateway interface {
	SendVerificationEmail(ctx context.Context, email string) error
	// SendPasswordReset is called for known and unknown addresses alike; an
	// empty link means there is no account to reset.
	SendPasswordReset(ctx context.Context, email, link string) error
	UpdatePassword(ctx context.Context, email string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type Notifier interface {
	Notify(ctx context.Context, n notify.Notification)
}
