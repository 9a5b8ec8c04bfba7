package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	PostsScheduled    = prometheus.NewCounter(prometheus.CounterOpts{Name: "scheduled_posts_created_total", Help: "Posts accepted for future publication"})
	UploadsDispatched = prometheus.NewCounter(prometheus.CounterOpts{Name: "upload_dispatches_total", Help: "Upload requests acknowledged by the automation service"})
	UploadFailures    = prometheus.NewCounter(prometheus.CounterOpts{Name: "upload_dispatch_failures_total", Help: "Upload requests that failed at dispatch time"})
	WebhookPosted     = prometheus.NewCounter(prometheus.CounterOpts{Name: "upload_callbacks_posted_total", Help: "Webhook callbacks reporting a successful upload"})
	WebhookFailed     = prometheus.NewCounter(prometheus.CounterOpts{Name: "upload_callbacks_failed_total", Help: "Webhook callbacks reporting a failed upload"})
)

// Handler exposes the /metrics HTTP handler with a singleton registry.
func Handler() http.Handler {
	once.Do(func() {
		prometheus.MustRegister(
			PostsScheduled,
			UploadsDispatched,
			UploadFailures,
			WebhookPosted,
			WebhookFailed,
		)
	})
	return promhttp.Handler()
}
