package league

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{db: db}
}

func (s *store) CreateSeason(name string, pv PointValues, admins []string) (*Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Validationf("season name is required")
	}

	season := &Season{
		ID:        uuid.NewString(),
		Name:      name,
		Points:    pv,
		CreatedAt: time.Now(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(`
		INSERT INTO seasons (id, name, points_win, points_draw, points_loss, generation, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)`,
		season.ID, season.Name, pv.Win, pv.Draw, pv.Loss, season.CreatedAt.Unix(),
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	for _, uid := range admins {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO season_admins (season_id, uid) VALUES (?, ?)`, season.ID, uid); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, wrapConflict(err)
	}
	log.Info("Created season", "seasonID", season.ID, "name", season.Name)
	return season, nil
}

func (s *store) GetSeason(seasonID string) (*Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getSeason(s.db, seasonID)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func getSeason(q querier, seasonID string) (*Season, error) {
	var (
		season    Season
		createdAt int64
	)
	err := q.QueryRow(`
		SELECT id, name, points_win, points_draw, points_loss, generation, created_at
		FROM seasons WHERE id = ?`, seasonID).
		Scan(&season.ID, &season.Name, &season.Points.Win, &season.Points.Draw, &season.Points.Loss, &season.Generation, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrSeasonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read season: %w", err)
	}
	season.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &season, nil
}

func (s *store) IsSeasonAdmin(seasonID, uid string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM season_admins WHERE season_id = ? AND uid = ?)",
		seasonID, uid,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *store) AddPlayer(seasonID, name, nickname string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	nickname = strings.TrimSpace(nickname)
	if name == "" {
		return nil, Validationf("player name is required")
	}
	if _, err := getSeason(s.db, seasonID); err != nil {
		return nil, err
	}

	player := &Player{
		ID:        uuid.NewString(),
		SeasonID:  seasonID,
		Name:      name,
		Nickname:  nickname,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	_, err := s.db.Exec(`
		INSERT INTO players (id, season_id, name, nickname, is_active, created_at)
		VALUES (?, ?, ?, ?, 1, ?)`,
		player.ID, seasonID, player.Name, nullable(player.Nickname), player.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, err
	}
	log.Info("Added player", "seasonID", seasonID, "playerID", player.ID, "name", name)
	return player, nil
}

func (s *store) ListPlayers(seasonID string) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, season_id, name, nickname, is_active, created_at
		FROM players WHERE season_id = ? ORDER BY created_at ASC, id ASC`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var (
			p         Player
			nickname  sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&p.ID, &p.SeasonID, &p.Name, &nickname, &p.IsActive, &createdAt); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		p.Nickname = nickname.String
		p.CreatedAt = time.Unix(createdAt, 0).UTC()
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) SetPlayerActive(seasonID, playerID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE players SET is_active = ? WHERE id = ? AND season_id = ?", active, playerID, seasonID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (s *store) RemovePlayer(seasonID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM players WHERE id = ? AND season_id = ?", playerID, seasonID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// CreateMatch validates the input, then runs the whole write protocol in a
// single transaction: read season config, read the current standing of all
// ten players (missing rows default to the empty standing), resolve
// outcomes, insert the match and upsert the ten standings. Either all of
// it commits or none of it does.
func (s *store) CreateMatch(seasonID string, input NewMatch) (*Match, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	participants := input.Participants()
	smoked := dedupeWithin(input.SmokedPlayerIDs, participants)

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	season, err := getSeason(tx, seasonID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	resA, resB := ResultFromGoalDiff(input.GoalDiff)
	now := time.Now()

	match := &Match{
		ID:              uuid.NewString(),
		SeasonID:        seasonID,
		Date:            input.Date,
		TeamA:           input.TeamA,
		TeamB:           input.TeamB,
		GoalDiff:        input.GoalDiff,
		SmokedPlayerIDs: smoked,
		CreatedBy:       input.CreatedBy,
		CreatedAt:       now,
	}

	teamAJSON, err := json.Marshal(match.TeamA)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	teamBJSON, err := json.Marshal(match.TeamB)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	smokedJSON, err := json.Marshal(smoked)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	_, err = tx.Exec(`
		INSERT INTO matches (id, season_id, date, team_a_json, team_b_json, goal_diff, smoked_json, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		match.ID, seasonID, match.Date.Unix(), string(teamAJSON), string(teamBJSON),
		match.GoalDiff, string(smokedJSON), nullable(match.CreatedBy), now.Unix(),
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	apply := func(playerID string, r Outcome) error {
		st, err := getStandingTx(tx, seasonID, playerID)
		if err != nil {
			return err
		}
		return upsertStandingTx(tx, seasonID, playerID, ApplyResult(st, r, season.Points), now)
	}
	for _, pid := range input.TeamA {
		if err := apply(pid, resA); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	for _, pid := range input.TeamB {
		if err := apply(pid, resB); err != nil {
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
	log.Info("Recorded match and updated standings", "seasonID", seasonID, "matchID", match.ID, "goalDiff", match.GoalDiff)
	return match, nil
}

func (s *store) ListMatches(seasonID string) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listMatches(s.db, seasonID, "")
}

func listMatches(db *sql.DB, seasonID, excludeID string) ([]Match, error) {
	rows, err := db.Query(`
		SELECT id, season_id, date, team_a_json, team_b_json, goal_diff, smoked_json, created_by, created_at
		FROM matches WHERE season_id = ? ORDER BY date DESC, id DESC`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var (
			m                 Match
			date, createdAt   int64
			teamA, teamB      string
			smoked, createdBy sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.SeasonID, &date, &teamA, &teamB, &m.GoalDiff, &smoked, &createdBy, &createdAt); err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		if m.ID == excludeID {
			continue
		}
		m.Date = time.Unix(date, 0).UTC()
		m.CreatedAt = time.Unix(createdAt, 0).UTC()
		m.TeamA = decodeIDs(teamA, m.ID, "team_a_json")
		m.TeamB = decodeIDs(teamB, m.ID, "team_b_json")
		m.SmokedPlayerIDs = decodeIDs(smoked.String, m.ID, "smoked_json")
		m.CreatedBy = createdBy.String
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// DeleteMatch removes a match and recomputes every standing in the season
// from the remaining history. The read phase (matches + generation) is not
// isolated from concurrent writers; the final transaction re-checks the
// season generation and fails with ErrConflict if anything committed in
// between. Deleting a match that does not exist is a no-op.
func (s *store) DeleteMatch(seasonID, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM matches WHERE id = ? AND season_id = ?)",
		matchID, seasonID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		log.Warn("Match to delete does not exist, nothing to rebuild", "seasonID", seasonID, "matchID", matchID)
		return nil
	}

	season, err := getSeason(s.db, seasonID)
	if err != nil {
		return err
	}

	remaining, err := listMatches(s.db, seasonID, matchID)
	if err != nil {
		return err
	}

	standings := FoldMatches(remaining, season.Points)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM matches WHERE id = ? AND season_id = ?", matchID, seasonID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("DELETE FROM standings WHERE season_id = ?", seasonID); err != nil {
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

	// Compare-and-swap on the generation read before the fold: if any
	// other write committed in between, the fold is stale.
	res, err := tx.Exec(
		"UPDATE seasons SET generation = ? WHERE id = ? AND generation = ?",
		season.Generation+1, seasonID, season.Generation,
	)
	if err != nil {
		tx.Rollback()
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return fmt.Errorf("season %s changed during rebuild: %w", seasonID, ErrConflict)
	}

	if err := tx.Commit(); err != nil {
		return wrapConflict(err)
	}
	log.Info("Deleted match and rebuilt standings", "seasonID", seasonID, "matchID", matchID, "players", len(standings), "matchesReplayed", len(remaining))
	return nil
}

func (s *store) ListStandings(seasonID string) (map[string]Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT player_id, played, wins, draws, losses, points, last5_json, streak_type, streak_count, updated_at
		FROM standings WHERE season_id = ?`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make(map[string]Standing)
	for rows.Next() {
		var (
			playerID          string
			st                Standing
			last5, streakType sql.NullString
			updatedAt         int64
		)
		if err := rows.Scan(&playerID, &st.Played, &st.Wins, &st.Draws, &st.Losses, &st.Points, &last5, &streakType, &st.StreakCount, &updatedAt); err != nil {
			log.Error("Failed to scan standing row", "error", err)
			continue
		}
		st.Last5 = decodeLast5(last5.String, playerID)
		st.StreakType = Outcome(streakType.String)
		st.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		standings[playerID] = st
	}
	return standings, rows.Err()
}

func getStandingTx(tx *sql.Tx, seasonID, playerID string) (Standing, error) {
	var (
		st                Standing
		last5, streakType sql.NullString
		updatedAt         int64
	)
	err := tx.QueryRow(`
		SELECT played, wins, draws, losses, points, last5_json, streak_type, streak_count, updated_at
		FROM standings WHERE season_id = ? AND player_id = ?`, seasonID, playerID).
		Scan(&st.Played, &st.Wins, &st.Draws, &st.Losses, &st.Points, &last5, &streakType, &st.StreakCount, &updatedAt)
	if err == sql.ErrNoRows {
		return EmptyStanding(), nil
	}
	if err != nil {
		return Standing{}, err
	}
	st.Last5 = decodeLast5(last5.String, playerID)
	st.StreakType = Outcome(streakType.String)
	st.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return st, nil
}

func upsertStandingTx(tx *sql.Tx, seasonID, playerID string, st Standing, now time.Time) error {
	last5JSON, err := json.Marshal(st.Last5)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO standings (season_id, player_id, played, wins, draws, losses, points, last5_json, streak_type, streak_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(season_id, player_id) DO UPDATE SET
			played = excluded.played,
			wins = excluded.wins,
			draws = excluded.draws,
			losses = excluded.losses,
			points = excluded.points,
			last5_json = excluded.last5_json,
			streak_type = excluded.streak_type,
			streak_count = excluded.streak_count,
			updated_at = excluded.updated_at;`,
		seasonID, playerID, st.Played, st.Wins, st.Draws, st.Losses, st.Points,
		string(last5JSON), nullable(string(st.StreakType)), st.StreakCount, now.Unix(),
	)
	return err
}

// dedupeWithin keeps the ids that are members of allowed, deduplicated,
// in first-seen order.
func dedupeWithin(ids, allowed []string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, id := range allowed {
		allowedSet[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := allowedSet[id]; !ok {
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

func decodeIDs(raw, rowID, column string) []string {
	if raw == "" {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Error("Failed to unmarshal id list", "error", err, "column", column, "rowID", rowID)
		return []string{}
	}
	return ids
}

func decodeLast5(raw, playerID string) []Outcome {
	if raw == "" {
		return []Outcome{}
	}
	var last5 []Outcome
	if err := json.Unmarshal([]byte(raw), &last5); err != nil {
		log.Error("Failed to unmarshal last5_json", "error", err, "playerID", playerID)
		return []Outcome{}
	}
	return last5
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// wrapConflict maps SQLite lock contention onto ErrConflict so callers can
// decide whether to resubmit.
func wrapConflict(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY") {
		return fmt.Errorf("%s: %w", msg, ErrConflict)
	}
	return err
}
