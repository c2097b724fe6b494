// Package metrics provides the centralized Prometheus metrics registry for
// the message transcoder. All metrics are defined in their respective
// packages (message, messagestore) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the transcoder.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Transcode Metrics (pkg/message):
//   - httpmsg_cache_hits_total{layer} (Counter): Transcode cache hits by layer (content, text)
//   - httpmsg_cache_misses_total{layer} (Counter): Transcode cache misses by layer
//   - httpmsg_transcode_errors_total{layer} (Counter): Strict transcode failures by layer
//   - httpmsg_transcode_fallbacks_total{layer} (Counter): Lenient fallbacks by layer
//
// Store Metrics (pkg/messagestore):
//   - httpmsg_store_hits_total{backend} (Counter): Messages restored by backend
//   - httpmsg_store_misses_total (Counter): Lookups that found no entry
//   - httpmsg_store_bytes_written_total{backend} (Counter): Snapshot bytes written by backend
//   - httpmsg_store_errors_total{operation} (Counter): Store operation errors
//   - httpmsg_store_retries_total{operation} (Counter): Retried provider operations
//
// Example Prometheus Queries:
//
//   # Transcode Cache Hit Rate
//   sum(rate(httpmsg_cache_hits_total[5m])) /
//   (sum(rate(httpmsg_cache_hits_total[5m])) + sum(rate(httpmsg_cache_misses_total[5m])))
//
//   # Lenient Fallback Rate
//   rate(httpmsg_transcode_fallbacks_total[5m])
//
//   # Store Error Rate
//   rate(httpmsg_store_errors_total[5m])
//
//   # Store Write Throughput
//   rate(httpmsg_store_bytes_written_total[5m])
