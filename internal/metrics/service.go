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
		MatchesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canchita_matches_recorded_total",
			Help: "The total number of matches recorded.",
		}),
		MatchesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canchita_matches_deleted_total",
			Help: "The total number of matches deleted.",
		}),
		AsadosRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canchita_asados_recorded_total",
			Help: "The total number of asados recorded.",
		}),
		AsadosDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canchita_asados_deleted_total",
			Help: "The total number of asados deleted.",
		}),
		RebuildsRun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canchita_standings_rebuilds_total",
			Help: "The total number of standings rebuilds run after a deletion.",
		}),
		RebuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "canchita_standings_rebuild_duration_seconds",
			Help:    "The duration of a full standings rebuild.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canchita_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canchita_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "canchita_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesRecorded,
		s.MatchesDeleted,
		s.AsadosRecorded,
		s.AsadosDeleted,
		s.RebuildsRun,
		s.RebuildDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesRecorded() {
	s.MatchesRecorded.Inc()
}

func (s *Service) IncMatchesDeleted() {
	s.MatchesDeleted.Inc()
}

func (s *Service) IncAsadosRecorded() {
	s.AsadosRecorded.Inc()
}

func (s *Service) IncAsadosDeleted() {
	s.AsadosDeleted.Inc()
}

func (s *Service) IncRebuildsRun() {
	s.RebuildsRun.Inc()
}

func (s *Service) ObserveRebuildDuration(duration float64) {
	s.RebuildDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
