package messagestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/magnologan/httpmsg/pkg/logging"
	"github.com/magnologan/httpmsg/pkg/message"
	"github.com/magnologan/httpmsg/pkg/state"
)

// Store persists messages through a Provider, serializing them as
// state snapshots. Transcode caches are not persisted; a message read
// back decodes lazily like a freshly captured one.
type Store struct {
	provider Provider
	log      zerolog.Logger
}

// New creates a store on the given provider.
func New(provider Provider) *Store {
	if provider == nil {
		panic("provider cannot be nil")
	}
	return &Store{
		provider: provider,
		log:      logging.NewLogger("messagestore").With().Str("backend", provider.Name()).Logger(),
	}
}

// Put snapshots m and stores it under key. A ttl of zero or less means
// the entry never expires.
func (s *Store) Put(ctx context.Context, key string, m *message.Message, ttl time.Duration) error {
	data, err := state.Marshal(state.Capture(m))
	if err != nil {
		StoreErrors.WithLabelValues("put").Inc()
		return err
	}
	if err := s.provider.Put(ctx, key, data, ttl); err != nil {
		StoreErrors.WithLabelValues("put").Inc()
		return fmt.Errorf("store put: %w", err)
	}
	StoreBytesWritten.WithLabelValues(s.provider.Name()).Add(float64(len(data)))
	s.log.Debug().
		Str("key", key).
		Int("bytes", len(data)).
		Dur("ttl", ttl).
		Msg("message stored")
	return nil
}

// Get restores the message stored under key. Returns ErrNotFound for
// absent or expired entries and ErrInvalidEntry for entries that no
// longer unmarshal.
func (s *Store) Get(ctx context.Context, key string) (*message.Message, error) {
	data, err := s.provider.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			StoreMisses.Inc()
			return nil, ErrNotFound
		}
		StoreErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("store get: %w", err)
	}
	st, err := state.Unmarshal(data)
	if err != nil {
		StoreErrors.WithLabelValues("get").Inc()
		s.log.Warn().
			Str("key", key).
			Err(err).
			Msg("stored entry does not unmarshal")
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	StoreHits.WithLabelValues(s.provider.Name()).Inc()
	s.log.Debug().
		Str("key", key).
		Int("bytes", len(data)).
		Msg("message restored")
	return st.Message(), nil
}

// Delete removes the entry under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.provider.Delete(ctx, key); err != nil {
		StoreErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("store delete: %w", err)
	}
	return nil
}

// Close closes the underlying provider.
func (s *Store) Close() error {
	return s.provider.Close()
}
