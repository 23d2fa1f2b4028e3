package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		TeamsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kickabout_teams_generated_total",
			Help: "The total number of team pairings generated.",
		}),
		GenerationAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kickabout_generation_attempts",
			Help:    "The number of balancing attempts needed per generated pairing.",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 30, 40, 50},
		}),
		NotifSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kickabout_notifications_sent_total",
			Help: "The total number of announcements successfully delivered, by channel.",
		}, []string{"channel"}),
		NotifFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kickabout_notifications_failed_total",
			Help: "The total number of announcements that failed to deliver, by channel.",
		}, []string{"channel"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kickabout_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.TeamsGenerated,
		s.GenerationAttempts,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncTeamsGenerated() {
	s.TeamsGenerated.Inc()
}

func (s *Service) ObserveGenerationAttempts(attempts int) {
	s.GenerationAttempts.Observe(float64(attempts))
}

func (s *Service) IncNotifSent(channel string) {
	s.NotifSent.WithLabelValues(channel).Inc()
}

func (s *Service) IncNotifFailed(channel string) {
	s.NotifFailed.WithLabelValues(channel).Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
