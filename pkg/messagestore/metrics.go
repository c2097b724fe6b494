package messagestore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreHits tracks restored messages by backend
	StoreHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpmsg_store_hits_total",
			Help: "Total number of messages restored from the store",
		},
		[]string{"backend"}, // "memory", "redis", "sqlite"
	)

	// StoreMisses tracks lookups of absent or expired entries
	StoreMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "httpmsg_store_misses_total",
			Help: "Total number of store lookups that found no entry",
		},
	)

	// StoreBytesWritten tracks serialized snapshot bytes by backend
	StoreBytesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpmsg_store_bytes_written_total",
			Help: "Total number of snapshot bytes written to the store",
		},
		[]string{"backend"}, // "memory", "redis", "sqlite"
	)

	// StoreErrors tracks store operation errors
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpmsg_store_errors_total",
			Help: "Total number of store operation errors",
		},
		[]string{"operation"}, // "get", "put", "delete"
	)

	// StoreRetries tracks retried provider operations
	StoreRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpmsg_store_retries_total",
			Help: "Total number of retried store operations",
		},
		[]string{"operation"}, // "get", "put", "delete"
	)
)
