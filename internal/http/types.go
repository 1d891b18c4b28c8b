package http

import (
	"net/http"

	"github.com/mauv0809/la-canchita/internal/asado"
	"github.com/mauv0809/la-canchita/internal/config"
	"github.com/mauv0809/la-canchita/internal/league"
	"github.com/mauv0809/la-canchita/internal/metrics"
	"github.com/mauv0809/la-canchita/internal/notifier"
)

type Server struct {
	Store          league.LeagueStore
	Asados         asado.AsadoStore
	Metrics        metrics.Metrics
	Counters       metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
}
