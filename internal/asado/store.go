package asado

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/la-canchita/internal/league"
)

// store handles all database operations for the attendance league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new AsadoStore.
func New(db *sql.DB) AsadoStore {
	return &store{db: db}
}

// CreateAsado validates the event, then inserts it and updates every
// impacted player's attendance standing in a single transaction.
func (s *store) CreateAsado(seasonID string, input NewAsado) (*Asado, error) {
	input.PresentPlayerIDs = dedupe(input.PresentPlayerIDs)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	_, err = seasonGeneration(tx, seasonID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	event := &Asado{
		ID:               uuid.NewString(),
		SeasonID:         seasonID,
		Date:             input.Date,
		Venue:            strings.TrimSpace(input.Venue),
		PresentPlayerIDs: input.PresentPlayerIDs,
		HostPlayerID:     input.HostPlayerID,
		AsadorPlayerID:   input.AsadorPlayerID,
		CreatedBy:        input.CreatedBy,
		CreatedAt:        now,
	}

	presentJSON, err := json.Marshal(event.PresentPlayerIDs)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	_, err = tx.Exec(`
		INSERT INTO asados (id, season_id, date, venue, present_json, host_player_id, asador_player_id, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, seasonID, event.Date.Unix(), nullable(event.Venue), string(presentJSON),
		nullable(event.HostPlayerID), nullable(event.AsadorPlayerID), nullable(event.CreatedBy), now.Unix(),
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, pid := range impactedIDs(*event) {
		st, err := getStandingTx(tx, seasonID, pid)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := upsertStandingTx(tx, seasonID, pid, ApplyEvent(st, *event, pid), now); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if _, err := tx.Exec("UPDATE seasons SET generation = generation + 1 WHERE id = ?", seasonID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapConflict(err)
	}
	log.Info("Recorded asado and updated attendance standings", "seasonID", seasonID, "asadoID", event.ID, "present", len(event.PresentPlayerIDs))
	return event, nil
}

func (s *store) ListAsados(seasonID string) ([]Asado, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listAsados(s.db, seasonID, "")
}

func listAsados(db *sql.DB, seasonID, excludeID string) ([]Asado, error) {
	rows, err := db.Query(`
		SELECT id, season_id, date, venue, present_json, host_player_id, asador_player_id, created_by, created_at
		FROM asados WHERE season_id = ? ORDER BY date DESC, id DESC`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Asado
	for rows.Next() {
		var (
			a                              Asado
			date, createdAt                int64
			venue, host, asador, createdBy sql.NullString
			present                        string
		)
		if err := rows.Scan(&a.ID, &a.SeasonID, &date, &venue, &present, &host, &asador, &createdBy, &createdAt); err != nil {
			log.Error("Failed to scan asado row", "error", err)
			continue
		}
		if a.ID == excludeID {
			continue
		}
		a.Date = time.Unix(date, 0).UTC()
		a.CreatedAt = time.Unix(createdAt, 0).UTC()
		a.Venue = venue.String
		a.HostPlayerID = host.String
		a.AsadorPlayerID = asador.String
		a.CreatedBy = createdBy.String
		if err := json.Unmarshal([]byte(present), &a.PresentPlayerIDs); err != nil {
			log.Error("Failed to unmarshal present_json", "error", err, "asadoID", a.ID)
			a.PresentPlayerIDs = []string{}
		}
		events = append(events, a)
	}
	return events, rows.Err()
}

// DeleteAsado removes an event and recomputes every attendance standing
// in the season from the remaining events. Same shape as the match
// rebuild: unisolated read phase, final transaction guarded by the
// season generation. Deleting a nonexistent event is a no-op.
func (s *store) DeleteAsado(seasonID, asadoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM asados WHERE id = ? AND season_id = ?)",
		asadoID, seasonID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		log.Warn("Asado to delete does not exist, nothing to rebuild", "seasonID", seasonID, "asadoID", asadoID)
		return nil
	}

	var gen int64
	err = s.db.QueryRow("SELECT generation FROM seasons WHERE id = ?", seasonID).Scan(&gen)
	if err == sql.ErrNoRows {
		return league.ErrSeasonNotFound
	}
	if err != nil {
		return err
	}

	remaining, err := listAsados(s.db, seasonID, asadoID)
	if err != nil {
		return err
	}
	standings := FoldEvents(remaining)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM asados WHERE id = ? AND season_id = ?", asadoID, seasonID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("DELETE FROM asado_standings WHERE season_id = ?", seasonID); err != nil {
		tx.Rollback()
		return err
	}
	now := time.Now()
	for playerID, st := range standings {
		if err := upsertStandingTx(tx, seasonID, playerID, st, now); err != nil {
			tx.Rollback()
			return err
		}
	}

	res, err := tx.Exec("UPDATE seasons SET generation = ? WHERE id = ? AND generation = ?", gen+1, seasonID, gen)
	if err != nil {
		tx.Rollback()
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return fmt.Errorf("season %s changed during rebuild: %w", seasonID, league.ErrConflict)
	}

	if err := tx.Commit(); err != nil {
		return wrapConflict(err)
	}
	log.Info("Deleted asado and rebuilt attendance standings", "seasonID", seasonID, "asadoID", asadoID, "players", len(standings), "eventsReplayed", len(remaining))
	return nil
}

func (s *store) ListStandings(seasonID string) (map[string]AsadoStanding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT player_id, points, attended, hosted, asador, last_seen_at, updated_at
		FROM asado_standings WHERE season_id = ?`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make(map[string]AsadoStanding)
	for rows.Next() {
		var (
			playerID   string
			st         AsadoStanding
			lastSeenAt sql.NullInt64
			updatedAt  int64
		)
		if err := rows.Scan(&playerID, &st.Points, &st.Attended, &st.Hosted, &st.Asador, &lastSeenAt, &updatedAt); err != nil {
			log.Error("Failed to scan asado standing row", "error", err)
			continue
		}
		if lastSeenAt.Valid {
			st.LastSeenAt = time.Unix(lastSeenAt.Int64, 0).UTC()
		}
		st.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		standings[playerID] = st
	}
	return standings, rows.Err()
}

// seasonGeneration reads the season row inside the transaction, erroring
// with ErrSeasonNotFound when it is missing.
func seasonGeneration(tx *sql.Tx, seasonID string) (int64, error) {
	var gen int64
	err := tx.QueryRow("SELECT generation FROM seasons WHERE id = ?", seasonID).Scan(&gen)
	if err == sql.ErrNoRows {
		return 0, league.ErrSeasonNotFound
	}
	return gen, err
}

func getStandingTx(tx *sql.Tx, seasonID, playerID string) (AsadoStanding, error) {
	var (
		st         AsadoStanding
		lastSeenAt sql.NullInt64
		updatedAt  int64
	)
	err := tx.QueryRow(`
		SELECT points, attended, hosted, asador, last_seen_at, updated_at
		FROM asado_standings WHERE season_id = ? AND player_id = ?`, seasonID, playerID).
		Scan(&st.Points, &st.Attended, &st.Hosted, &st.Asador, &lastSeenAt, &updatedAt)
	if err == sql.ErrNoRows {
		return AsadoStanding{}, nil
	}
	if err != nil {
		return AsadoStanding{}, err
	}
	if lastSeenAt.Valid {
		st.LastSeenAt = time.Unix(lastSeenAt.Int64, 0).UTC()
	}
	st.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return st, nil
}

func upsertStandingTx(tx *sql.Tx, seasonID, playerID string, st AsadoStanding, now time.Time) error {
	var lastSeenAt any
	if !st.LastSeenAt.IsZero() {
		lastSeenAt = st.LastSeenAt.Unix()
	}
	_, err := tx.Exec(`
		INSERT INTO asado_standings (season_id, player_id, points, attended, hosted, asador, last_seen_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(season_id, player_id) DO UPDATE SET
			points = excluded.points,
			attended = excluded.attended,
			hosted = excluded.hosted,
			asador = excluded.asador,
			last_seen_at = excluded.last_seen_at,
			updated_at = excluded.updated_at;`,
		seasonID, playerID, st.Points, st.Attended, st.Hosted, st.Asador, lastSeenAt, now.Unix(),
	)
	return err
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func wrapConflict(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY") {
		return fmt.Errorf("%s: %w", msg, league.ErrConflict)
	}
	return err
}
