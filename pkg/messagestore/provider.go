package messagestore

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the requested key holds no entry.
	ErrNotFound = errors.New("message not found")

	// ErrInvalidEntry indicates the stored entry is corrupted and
	// cannot be restored into a message.
	ErrInvalidEntry = errors.New("invalid stored entry")
)

// Provider is a keyed byte store with per-entry expiry. A ttl of zero
// or less means the entry never expires. Providers are safe for
// concurrent use.
type Provider interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Get returns the entry stored under key, ErrNotFound when the
	// key holds nothing or the entry has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores data under key, replacing any previous entry.
	Put(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the entry under key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
