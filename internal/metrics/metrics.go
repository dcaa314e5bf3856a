package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service counters exposed on /metrics.
type Metrics struct {
	Uploads     prometheus.Counter
	Detections  *prometheus.CounterVec
	RateLimited *prometheus.CounterVec
	Contacts    *prometheus.CounterVec
}

// New registers the counters on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Uploads: factory.NewCounter(prometheus.CounterOpts{
			Name: "faceshape_uploads_total",
			Help: "Total upload requests accepted for processing.",
		}),
		Detections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "faceshape_detections_total",
			Help: "Classification outcomes by result.",
		}, []string{"outcome"}),
		RateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "faceshape_rate_limited_total",
			Help: "Requests rejected by the cooldown limiter.",
		}, []string{"endpoint"}),
		Contacts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "faceshape_contact_submissions_total",
			Help: "Contact form submissions by outcome.",
		}, []string{"outcome"}),
	}
}

// NewDefault registers on the default Prometheus registry.
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer)
}
