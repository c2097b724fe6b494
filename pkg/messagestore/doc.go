// Package messagestore persists HTTP message snapshots in pluggable backends.
//
// The store serializes messages through pkg/state into deterministic CBOR
// and writes the resulting snapshot through a Provider:
//
// - MemoryProvider: in-process map, useful for tests and single runs
// - RedisProvider: shared cache with native TTL expiry
// - SQLiteProvider: durable file (or :memory:) database with lazy expiry
// - RetryProvider: wraps another provider with exponential backoff
//
// Transcode caches are never persisted. A message read back from the
// store carries only wire bytes and headers and decodes lazily on the
// first strict or lenient read, exactly like a freshly captured one.
//
// # Basic Usage
//
//	provider, err := messagestore.NewSQLiteProvider("messages.db")
//	if err != nil {
//		return err
//	}
//	store := messagestore.New(provider)
//	defer store.Close()
//
//	// Store a message for an hour
//	if err := store.Put(ctx, "flow-1", msg, time.Hour); err != nil {
//		return err
//	}
//
//	// Restore it later
//	msg, err := store.Get(ctx, "flow-1")
//	if errors.Is(err, messagestore.ErrNotFound) {
//		// absent or expired
//	}
//
// # Metrics
//
// The store exports Prometheus metrics:
//
//   - httpmsg_store_hits_total{backend} - Messages restored
//   - httpmsg_store_misses_total - Lookups that found no entry
//   - httpmsg_store_bytes_written_total{backend} - Snapshot bytes written
//   - httpmsg_store_errors_total{operation} - Store operation errors
//   - httpmsg_store_retries_total{operation} - Retried provider operations
package messagestore
