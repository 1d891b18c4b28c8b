package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/la-canchita/internal/asado"
	"github.com/mauv0809/la-canchita/internal/league"
	"github.com/mauv0809/la-canchita/internal/stats"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StatsHandler serves the persisted business counters.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.Counters.GetAll()
		if err != nil {
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			log.Error("Failed to get business counters", "error", err)
			return
		}
		writeJSON(w, counters)
	}
}

// respondStoreError maps the store error taxonomy onto HTTP status codes.
// Validation failures are the caller's fault, missing entities are 404,
// lost rebuild races are 409 and anything else is a 500.
func respondStoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case league.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, league.ErrSeasonNotFound), errors.Is(err, league.ErrPlayerNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, league.ErrConflict):
		http.Error(w, "Concurrent update detected, retry the request", http.StatusConflict)
	default:
		http.Error(w, fallback, http.StatusInternalServerError)
		log.Error(fallback, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func (s *Server) CreateSeasonHandler() http.HandlerFunc {
	type request struct {
		Name   string              `json:"name"`
		Points *league.PointValues `json:"points,omitempty"`
		Admins []string            `json:"admins"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "Season name is required", http.StatusBadRequest)
			return
		}

		points := league.DefaultPointValues()
		if req.Points != nil {
			points = *req.Points
		}

		season, err := s.Store.CreateSeason(req.Name, points, req.Admins)
		if err != nil {
			respondStoreError(w, err, "Failed to create season")
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, season)
	}
}

func (s *Server) GetSeasonHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season, err := s.Store.GetSeason(r.PathValue("seasonID"))
		if err != nil {
			respondStoreError(w, err, "Failed to get season")
			return
		}
		writeJSON(w, season)
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	type request struct {
		Name     string `json:"name"`
		Nickname string `json:"nickname"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		player, err := s.Store.AddPlayer(r.PathValue("seasonID"), req.Name, req.Nickname)
		if err != nil {
			respondStoreError(w, err, "Failed to add player")
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, player)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.ListPlayers(r.PathValue("seasonID"))
		if err != nil {
			respondStoreError(w, err, "Failed to get players")
			return
		}
		writeJSON(w, players)
	}
}

func (s *Server) SetPlayerActiveHandler() http.HandlerFunc {
	type request struct {
		IsActive bool `json:"is_active"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		err := s.Store.SetPlayerActive(r.PathValue("seasonID"), r.PathValue("playerID"), req.IsActive)
		if err != nil {
			respondStoreError(w, err, "Failed to update player")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.Store.RemovePlayer(r.PathValue("seasonID"), r.PathValue("playerID"))
		if err != nil {
			respondStoreError(w, err, "Failed to remove player")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonID := r.PathValue("seasonID")

		var input league.NewMatch
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		input.CreatedBy = userIDFromContext(r)
		if input.Date.IsZero() {
			input.Date = time.Now()
		}

		match, err := s.Store.CreateMatch(seasonID, input)
		if err != nil {
			respondStoreError(w, err, "Failed to record match")
			return
		}
		s.Metrics.IncMatchesRecorded()
		s.Counters.Increment("matches_recorded")

		// The match is committed at this point. A notification failure is
		// logged, never surfaced to the caller.
		players, perr := s.Store.ListPlayers(seasonID)
		if perr != nil {
			log.Error("Failed to load roster for notification", "error", perr, "seasonID", seasonID)
		}
		if err := s.Notifier.SendMatchResult(match, players, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to send match notification", "error", err, "matchID", match.ID)
		}

		w.WriteHeader(http.StatusCreated)
		writeJSON(w, match)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.ListMatches(r.PathValue("seasonID"))
		if err != nil {
			respondStoreError(w, err, "Failed to get matches")
			return
		}
		writeJSON(w, matches)
	}
}

func (s *Server) DeleteMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		err := s.Store.DeleteMatch(r.PathValue("seasonID"), r.PathValue("matchID"))
		if err != nil {
			respondStoreError(w, err, "Failed to delete match")
			return
		}
		s.Metrics.IncMatchesDeleted()
		s.Metrics.IncRebuildsRun()
		s.Metrics.ObserveRebuildDuration(time.Since(start).Seconds())
		s.Counters.Increment("matches_deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ListStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Store.ListStandings(r.PathValue("seasonID"))
		if err != nil {
			respondStoreError(w, err, "Failed to get standings")
			return
		}
		writeJSON(w, standings)
	}
}

// seasonTable loads everything the leaderboard needs in one place so the
// table and notify-table handlers stay in sync.
func (s *Server) seasonTable(seasonID string) ([]stats.TableRow, error) {
	players, err := s.Store.ListPlayers(seasonID)
	if err != nil {
		return nil, err
	}
	standings, err := s.Store.ListStandings(seasonID)
	if err != nil {
		return nil, err
	}
	matches, err := s.Store.ListMatches(seasonID)
	if err != nil {
		return nil, err
	}
	return stats.SeasonTable(players, standings, matches), nil
}

func (s *Server) SeasonTableHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.seasonTable(r.PathValue("seasonID"))
		if err != nil {
			respondStoreError(w, err, "Failed to build season table")
			return
		}
		writeJSON(w, rows)
	}
}

func (s *Server) NotifyTableHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonID := r.PathValue("seasonID")

		season, err := s.Store.GetSeason(seasonID)
		if err != nil {
			respondStoreError(w, err, "Failed to get season")
			return
		}
		rows, err := s.seasonTable(seasonID)
		if err != nil {
			respondStoreError(w, err, "Failed to build season table")
			return
		}

		if err := s.Notifier.SendSeasonTable(season.Name, rows, isDryRunFromContext(r)); err != nil {
			http.Error(w, "Failed to send season table", http.StatusInternalServerError)
			log.Error("Failed to send season table", "error", err, "seasonID", seasonID)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Season table sent.")
	}
}

func (s *Server) CreateAsadoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonID := r.PathValue("seasonID")

		var input asado.NewAsado
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		input.CreatedBy = userIDFromContext(r)
		if input.Date.IsZero() {
			input.Date = time.Now()
		}

		event, err := s.Asados.CreateAsado(seasonID, input)
		if err != nil {
			respondStoreError(w, err, "Failed to record asado")
			return
		}
		s.Metrics.IncAsadosRecorded()
		s.Counters.Increment("asados_recorded")

		players, perr := s.Store.ListPlayers(seasonID)
		if perr != nil {
			log.Error("Failed to load roster for notification", "error", perr, "seasonID", seasonID)
		}
		if err := s.Notifier.SendAsadoRecorded(event, players, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to send asado notification", "error", err, "asadoID", event.ID)
		}

		w.WriteHeader(http.StatusCreated)
		writeJSON(w, event)
	}
}

func (s *Server) ListAsadosHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := s.Asados.ListAsados(r.PathValue("seasonID"))
		if err != nil {
			respondStoreError(w, err, "Failed to get asados")
			return
		}
		writeJSON(w, events)
	}
}

func (s *Server) DeleteAsadoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		err := s.Asados.DeleteAsado(r.PathValue("seasonID"), r.PathValue("asadoID"))
		if err != nil {
			respondStoreError(w, err, "Failed to delete asado")
			return
		}
		s.Metrics.IncAsadosDeleted()
		s.Metrics.IncRebuildsRun()
		s.Metrics.ObserveRebuildDuration(time.Since(start).Seconds())
		s.Counters.Increment("asados_deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ListAsadoStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Asados.ListStandings(r.PathValue("seasonID"))
		if err != nil {
			respondStoreError(w, err, "Failed to get asado standings")
			return
		}
		writeJSON(w, standings)
	}
}

func (s *Server) HeadToHeadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerA := r.URL.Query().Get("a")
		playerB := r.URL.Query().Get("b")
		if playerA == "" || playerB == "" || playerA == playerB {
			http.Error(w, "Query parameters 'a' and 'b' must name two different players", http.StatusBadRequest)
			return
		}

		matches, err := s.Store.ListMatches(r.PathValue("seasonID"))
		if err != nil {
			respondStoreError(w, err, "Failed to get matches")
			return
		}
		writeJSON(w, stats.ComputeHeadToHead(matches, playerA, playerB))
	}
}

func (s *Server) PlayerProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonID := r.PathValue("seasonID")
		playerID := r.PathValue("playerID")

		players, err := s.Store.ListPlayers(seasonID)
		if err != nil {
			respondStoreError(w, err, "Failed to get players")
			return
		}
		found := false
		for _, p := range players {
			if p.ID == playerID {
				found = true
				break
			}
		}
		if !found {
			respondStoreError(w, league.ErrPlayerNotFound, "")
			return
		}

		matches, err := s.Store.ListMatches(seasonID)
		if err != nil {
			respondStoreError(w, err, "Failed to get matches")
			return
		}
		writeJSON(w, stats.ComputePlayerProfile(matches, playerID))
	}
}

func (s *Server) SmokeStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.ListMatches(r.PathValue("seasonID"))
		if err != nil {
			respondStoreError(w, err, "Failed to get matches")
			return
		}
		writeJSON(w, stats.ComputeSmokeStats(matches))
	}
}
