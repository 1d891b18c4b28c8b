package http

import (
	"net/http"

	"github.com/mauv0809/la-canchita/internal/asado"
	"github.com/mauv0809/la-canchita/internal/config"
	"github.com/mauv0809/la-canchita/internal/league"
	"github.com/mauv0809/la-canchita/internal/metrics"
	"github.com/mauv0809/la-canchita/internal/notifier"
)

func NewServer(store league.LeagueStore, asadoStore asado.AsadoStore, metricsSvc metrics.Metrics, counters metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier) *Server {
	server := &Server{
		Store:          store,
		Asados:         asadoStore,
		Metrics:        metricsSvc,
		Counters:       counters,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Mutating routes additionally go through adminOnly, which resolves
	// the caller from the X-User-ID header against the season admins.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /stats", Chain(s.StatsHandler(), paramsMiddleware))

	s.Router.Handle("POST /seasons", Chain(s.CreateSeasonHandler(), paramsMiddleware))
	s.Router.Handle("GET /seasons/{seasonID}", Chain(s.GetSeasonHandler(), paramsMiddleware))

	s.Router.Handle("POST /seasons/{seasonID}/players", Chain(s.AddPlayerHandler(), paramsMiddleware, s.adminOnly))
	s.Router.Handle("GET /seasons/{seasonID}/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("PATCH /seasons/{seasonID}/players/{playerID}", Chain(s.SetPlayerActiveHandler(), paramsMiddleware, s.adminOnly))
	s.Router.Handle("DELETE /seasons/{seasonID}/players/{playerID}", Chain(s.RemovePlayerHandler(), paramsMiddleware, s.adminOnly))

	s.Router.Handle("POST /seasons/{seasonID}/matches", Chain(s.CreateMatchHandler(), paramsMiddleware, s.adminOnly))
	s.Router.Handle("GET /seasons/{seasonID}/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /seasons/{seasonID}/matches/{matchID}", Chain(s.DeleteMatchHandler(), paramsMiddleware, s.adminOnly))

	s.Router.Handle("GET /seasons/{seasonID}/standings", Chain(s.ListStandingsHandler(), paramsMiddleware))
	s.Router.Handle("GET /seasons/{seasonID}/table", Chain(s.SeasonTableHandler(), paramsMiddleware))
	s.Router.Handle("POST /seasons/{seasonID}/notify-table", Chain(s.NotifyTableHandler(), paramsMiddleware, s.adminOnly))

	s.Router.Handle("POST /seasons/{seasonID}/asados", Chain(s.CreateAsadoHandler(), paramsMiddleware, s.adminOnly))
	s.Router.Handle("GET /seasons/{seasonID}/asados", Chain(s.ListAsadosHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /seasons/{seasonID}/asados/{asadoID}", Chain(s.DeleteAsadoHandler(), paramsMiddleware, s.adminOnly))
	s.Router.Handle("GET /seasons/{seasonID}/asado-standings", Chain(s.ListAsadoStandingsHandler(), paramsMiddleware))

	s.Router.Handle("GET /seasons/{seasonID}/h2h", Chain(s.HeadToHeadHandler(), paramsMiddleware))
	s.Router.Handle("GET /seasons/{seasonID}/players/{playerID}/profile", Chain(s.PlayerProfileHandler(), paramsMiddleware))
	s.Router.Handle("GET /seasons/{seasonID}/smoke-stats", Chain(s.SmokeStatsHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
