// Package metrics holds the Prometheus collectors for the waitlist.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes used as the "outcome" label.
const (
	OutcomeJoined    = "joined"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// Metrics holds Prometheus metrics for waitlist signups.
//
// Metrics:
//   - waitlist_submissions_total{outcome} - signup attempts by outcome
//   - waitlist_store_duration_seconds - time spent inserting a record
//   - waitlist_size - last known number of records
//   - waitlist_rate_limited_total - requests rejected by the rate limiter
//   - waitlist_emails_failed_total - confirmation emails that could not be sent
type Metrics struct {
	Submissions   *prometheus.CounterVec
	StoreDuration prometheus.Histogram
	Size          prometheus.Gauge
	RateLimited   prometheus.Counter
	EmailsFailed  prometheus.Counter
}

// New registers the waitlist metrics with reg. A nil reg uses a private registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waitlist_submissions_total",
				Help: "Total number of waitlist signup attempts by outcome",
			},
			[]string{"outcome"},
		),
		StoreDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "waitlist_store_duration_seconds",
			Help:    "Duration of waitlist inserts in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		Size: f.NewGauge(prometheus.GaugeOpts{
			Name: "waitlist_size",
			Help: "Number of emails on the waitlist at last refresh",
		}),
		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "waitlist_rate_limited_total",
			Help: "Total number of signup requests rejected by the rate limiter",
		}),
		EmailsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "waitlist_emails_failed_total",
			Help: "Total number of confirmation emails that failed to send",
		}),
	}
}

// ObserveSubmission increments the counter for outcome.
func (m *Metrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

// ObserveStore records how long an insert took.
func (m *Metrics) ObserveStore(d time.Duration) {
	if m == nil {
		return
	}
	m.StoreDuration.Observe(d.Seconds())
}

// SetSize records the current waitlist size.
func (m *Metrics) SetSize(n int) {
	if m == nil {
		return
	}
	m.Size.Set(float64(n))
}

// IncRateLimited counts a rejected request.
func (m *Metrics) IncRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}

// IncEmailFailed counts a confirmation email that was not delivered.
func (m *Metrics) IncEmailFailed() {
	if m == nil {
		return
	}
	m.EmailsFailed.Inc()
}
