// Package metrics exposes prometheus collectors for the HTTP layer and the feed pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_social_http_requests_total",
		Help: "The total number of handled HTTP requests",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "campus_social_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	FeedPages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_social_feed_pages_total",
		Help: "The total number of assembled feed pages",
	}, []string{"source"}) // feed, user_posts

	FeedAuthors = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "campus_social_feed_visible_authors",
		Help:    "Size of the visible author set per feed request",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_social_like_toggles_total",
		Help: "The total number of like toggles",
	}, []string{"result"}) // liked, unliked, error

	OTPIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_social_otp_issued_total",
		Help: "The total number of issued one-time codes",
	}, []string{"purpose"})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_social_rate_limited_total",
		Help: "Requests rejected by a rate limiter",
	}, []string{"route"})
)

// HTTP records request counts and latency per route template.
func HTTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
