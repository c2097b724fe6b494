package message

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks transcode cache hits by layer
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpmsg_cache_hits_total",
			Help: "Total number of transcode cache hits",
		},
		[]string{"layer"}, // "content", "text"
	)

	// CacheMisses tracks transcode cache misses by layer
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpmsg_cache_misses_total",
			Help: "Total number of transcode cache misses",
		},
		[]string{"layer"}, // "content", "text"
	)

	// TranscodeErrors tracks strict-mode transcode failures by layer
	TranscodeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpmsg_transcode_errors_total",
			Help: "Total number of strict transcode failures",
		},
		[]string{"layer"}, // "content", "text"
	)

	// TranscodeFallbacks tracks lenient-mode fallbacks by layer
	TranscodeFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpmsg_transcode_fallbacks_total",
			Help: "Total number of lenient transcode fallbacks",
		},
		[]string{"layer"}, // "content", "text"
	)
)
