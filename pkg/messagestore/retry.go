package messagestore

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/magnologan/httpmsg/pkg/logging"
)

// ErrRetryExhausted indicates an operation kept failing after all
// retry attempts.
var ErrRetryExhausted = errors.New("retry attempts exhausted")

// RetryConfig holds the configuration for retrying provider operations.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including the initial one).
	MaxAttempts int

	// InitialBackoff is the initial backoff duration.
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration.
	MaxBackoff time.Duration

	// BackoffMultiplier is the multiplier for exponential backoff.
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration. Store
// backends are cache-scale, so backoffs stay under a few seconds.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        2 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// RetryProvider decorates a Provider with exponential backoff on
// failing operations. ErrNotFound is a definitive answer and is never
// retried.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    zerolog.Logger
}

// NewRetryProvider wraps inner with retry behavior.
func NewRetryProvider(inner Provider, config RetryConfig) *RetryProvider {
	if inner == nil {
		panic("provider cannot be nil")
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	return &RetryProvider{
		inner:  inner,
		config: config,
		log:    logging.NewLogger("messagestore").With().Str("backend", inner.Name()).Logger(),
	}
}

// Name identifies the wrapped backend.
func (p *RetryProvider) Name() string {
	return p.inner.Name()
}

// Get returns the entry stored under key, retrying transient failures.
func (p *RetryProvider) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := p.retryWithBackoff(ctx, "get", func() error {
		var err error
		data, err = p.inner.Get(ctx, key)
		return err
	})
	return data, err
}

// Put stores data under key, retrying transient failures.
func (p *RetryProvider) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return p.retryWithBackoff(ctx, "put", func() error {
		return p.inner.Put(ctx, key, data, ttl)
	})
}

// Delete removes the entry under key, retrying transient failures.
func (p *RetryProvider) Delete(ctx context.Context, key string) error {
	return p.retryWithBackoff(ctx, "delete", func() error {
		return p.inner.Delete(ctx, key)
	})
}

// Close closes the wrapped provider without retrying.
func (p *RetryProvider) Close() error {
	return p.inner.Close()
}

// retryWithBackoff executes fn with exponential backoff. It respects
// context cancellation and adds jitter to prevent thundering herd.
func (p *RetryProvider) retryWithBackoff(ctx context.Context, operation string, fn func() error) error {
	var lastErr error
	backoff := p.config.InitialBackoff

	for attempt := 1; attempt <= p.config.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 1 {
				p.log.Info().
					Str("operation", operation).
					Int("attempt", attempt).
					Msg("operation succeeded after retry")
			}
			return nil
		}

		lastErr = err

		// A miss is an answer, not a failure.
		if errors.Is(err, ErrNotFound) {
			return lastErr
		}

		if attempt >= p.config.MaxAttempts {
			break
		}

		StoreRetries.WithLabelValues(operation).Inc()

		// Add jitter (±20% randomness)
		jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))

		p.log.Debug().
			Str("operation", operation).
			Int("attempt", attempt).
			Dur("backoff", jitter).
			Msg("retrying operation after backoff")

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", lastErr, ctx.Err())
		case <-time.After(jitter):
		}

		backoff = time.Duration(float64(backoff) * p.config.BackoffMultiplier)
		if backoff > p.config.MaxBackoff {
			backoff = p.config.MaxBackoff
		}
	}

	p.log.Warn().
		Str("operation", operation).
		Int("max_attempts", p.config.MaxAttempts).
		Msg("retry attempts exhausted")

	return fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, p.config.MaxAttempts, lastErr)
}
