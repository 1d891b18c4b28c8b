package notifier

import (
	"github.com/mauv0809/la-canchita/internal/asado"
	"github.com/mauv0809/la-canchita/internal/league"
	"github.com/mauv0809/la-canchita/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For freshly recorded matches
	SendMatchResult(match *league.Match, players []league.Player, dryRun bool) error
	// For posting the current leaderboard
	SendSeasonTable(seasonName string, rows []stats.TableRow, dryRun bool) error
	// For freshly recorded asados
	SendAsadoRecorded(event *asado.Asado, players []league.Player, dryRun bool) error
}
