package messagestore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/magnologan/httpmsg/pkg/logging"
	"github.com/magnologan/httpmsg/pkg/message"
)

// BatchConfig holds batch restore configuration.
type BatchConfig struct {
	// MaxConcurrency is the maximum number of parallel restores.
	MaxConcurrency int

	// Timeout per single-key restore.
	Timeout time.Duration
}

// DefaultBatchConfig returns a safe default configuration.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxConcurrency: 8,
		Timeout:        5 * time.Second,
	}
}

// Getter restores a single message; *Store satisfies it.
type Getter interface {
	Get(ctx context.Context, key string) (*message.Message, error)
}

// keyResult is the outcome of restoring one key.
type keyResult struct {
	key string
	msg *message.Message
	err error
}

// BatchRestorer restores many stored messages in parallel through a
// worker pool. Useful for bringing a whole capture session back from
// a dump file or shared cache.
type BatchRestorer struct {
	getter Getter
	config BatchConfig
	log    zerolog.Logger
}

// NewBatchRestorer creates a batch restorer over the given getter.
func NewBatchRestorer(getter Getter, config BatchConfig) *BatchRestorer {
	if getter == nil {
		panic("getter cannot be nil")
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 8
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}

	return &BatchRestorer{
		getter: getter,
		config: config,
		log:    logging.NewLogger("messagestore"),
	}
}

// RestoreAll restores all keys and returns a map of key to message for
// the ones that exist. Absent or expired keys are skipped. Any other
// failure stops the batch early; the partial map is returned together
// with the first error.
func (b *BatchRestorer) RestoreAll(ctx context.Context, keys []string) (map[string]*message.Message, error) {
	start := time.Now()

	results := make(map[string]*message.Message, len(keys))
	if len(keys) == 0 {
		return results, nil
	}

	b.log.Debug().
		Int("keys", len(keys)).
		Int("workers", b.config.MaxConcurrency).
		Msg("starting batch restore")

	keyQueue := make(chan string, len(keys))
	keyResults := make(chan keyResult, len(keys))

	go func() {
		for _, key := range keys {
			keyQueue <- key
		}
		close(keyQueue)
	}()

	var wg sync.WaitGroup
	for i := 0; i < b.config.MaxConcurrency; i++ {
		wg.Add(1)
		go b.worker(ctx, keyQueue, keyResults, &wg)
	}

	go func() {
		wg.Wait()
		close(keyResults)
	}()

	var firstErr error
	restored, missing := 0, 0
	for result := range keyResults {
		switch {
		case result.err == nil:
			results[result.key] = result.msg
			restored++
		case errors.Is(result.err, ErrNotFound):
			missing++
		default:
			if firstErr == nil {
				firstErr = result.err
			}
			b.log.Warn().
				Err(result.err).
				Str("key", result.key).
				Msg("batch restore failed for key")
		}
	}

	b.log.Debug().
		Int("restored", restored).
		Int("missing", missing).
		Dur("duration", time.Since(start)).
		Msg("batch restore complete")

	return results, firstErr
}

// worker restores keys from the queue until it drains or the context
// is cancelled.
func (b *BatchRestorer) worker(ctx context.Context, keyQueue <-chan string, results chan<- keyResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for key := range keyQueue {
		select {
		case <-ctx.Done():
			results <- keyResult{key: key, err: ctx.Err()}
			continue
		default:
		}

		keyCtx, cancel := context.WithTimeout(ctx, b.config.Timeout)
		msg, err := b.getter.Get(keyCtx, key)
		cancel()

		results <- keyResult{key: key, msg: msg, err: err}
	}
}
