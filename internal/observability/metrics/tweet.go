package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TweetsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tweets_created_total",
			Help: "Total number of tweets created",
		},
	)

	TweetsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tweets_deleted_total",
			Help: "Total number of tweets deleted by their owner",
		},
	)

	TweetLikesToggled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tweet_likes_toggled_total",
			Help: "Total number of like toggles by resulting action",
		},
		[]string{"action"},
	)

	TweetAuthorizationDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tweet_authorization_denied_total",
			Help: "Total number of ownership policy denials by operation",
		},
		[]string{"operation"},
	)

	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tweet_image_uploads_total",
			Help: "Total number of tweet image uploads by result",
		},
		[]string{"result"},
	)

	ImageUploadDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tweet_image_upload_duration_seconds",
			Help:    "Duration of tweet image uploads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
