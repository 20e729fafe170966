// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// RateLimitRejections counts requests rejected by the write rate limiter.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_rate_limit_rejections_total",
		Help: "Total number of requests rejected by the rate limiter",
	}, []string{"resource"})

	// TweetEvents counts tweet lifecycle events (created, deleted).
	TweetEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_tweet_events_total",
		Help: "Total tweet lifecycle events by type",
	}, []string{"event"})

	// MediaAttachedRejected counts media ids silently dropped at tweet creation.
	MediaAttachedRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "microblog_media_attach_rejected_total",
		Help: "Media ids dropped because they were missing, foreign or already attached",
	})

	// MediaUploads counts image uploads by result.
	MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_media_uploads_total",
		Help: "Total image uploads by result",
	}, []string{"result"})

	// MediaUploadBytes records stored upload sizes.
	MediaUploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "microblog_media_upload_bytes",
		Help:    "Size of stored image uploads in bytes",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})

	// MediaCleanupFailures counts files that could not be removed from storage.
	MediaCleanupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "microblog_media_cleanup_failures_total",
		Help: "Stored files that could not be removed",
	})

	// SocialEvents counts like/follow graph mutations.
	SocialEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_social_events_total",
		Help: "Total like and follow mutations by kind and action",
	}, []string{"kind", "action"})

	// FeedSize records the number of tweets returned per feed request.
	FeedSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "microblog_feed_size",
		Help:    "Number of tweets returned per feed request",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the HTTP metrics middleware. The collectors are
// registered once per process; repeated calls return the same instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}
