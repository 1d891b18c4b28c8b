package league_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mauv0809/la-canchita/internal/database"
	"github.com/mauv0809/la-canchita/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	teamA = []string{"p1", "p2", "p3", "p4", "p5"}
	teamB = []string{"p6", "p7", "p8", "p9", "p10"}
)

func day(d int) time.Time {
	return time.Date(2025, 4, d, 21, 0, 0, 0, time.UTC)
}

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (league.LeagueStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := league.New(db)
	return store, db, dbTeardown
}

func newSeason(t *testing.T, store league.LeagueStore) *league.Season {
	t.Helper()
	season, err := store.CreateSeason("Clausura 2025", league.DefaultPointValues(), []string{"admin-uid"})
	require.NoError(t, err)
	return season
}

func TestCreateSeasonAndAdmins(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	season := newSeason(t, store)

	got, err := store.GetSeason(season.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clausura 2025", got.Name)
	assert.Equal(t, league.DefaultPointValues(), got.Points)

	isAdmin, err := store.IsSeasonAdmin(season.ID, "admin-uid")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = store.IsSeasonAdmin(season.ID, "someone-else")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	_, err = store.GetSeason("nope")
	assert.ErrorIs(t, err, league.ErrSeasonNotFound)
}

func TestPlayerLifecycle(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	season := newSeason(t, store)

	p, err := store.AddPlayer(season.ID, "Juan Pérez", "Juancho")
	require.NoError(t, err)
	assert.True(t, p.IsActive)

	_, err = store.AddPlayer(season.ID, "   ", "")
	assert.True(t, league.IsValidation(err), "blank name must fail validation")

	require.NoError(t, store.SetPlayerActive(season.ID, p.ID, false))
	players, err := store.ListPlayers(season.ID)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.False(t, players[0].IsActive)

	require.NoError(t, store.RemovePlayer(season.ID, p.ID))
	assert.ErrorIs(t, store.RemovePlayer(season.ID, p.ID), league.ErrPlayerNotFound)
}

func TestCreateMatch_BasicWin(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	season := newSeason(t, store)

	_, err := store.CreateMatch(season.ID, league.NewMatch{
		Date: day(1), TeamA: teamA, TeamB: teamB, GoalDiff: 3, CreatedBy: "admin-uid",
	})
	require.NoError(t, err)

	standings, err := store.ListStandings(season.ID)
	require.NoError(t, err)
	require.Len(t, standings, 10)

	p1 := standings["p1"]
	assert.Equal(t, 1, p1.Played)
	assert.Equal(t, 1, p1.Wins)
	assert.Equal(t, 0, p1.Draws)
	assert.Equal(t, 0, p1.Losses)
	assert.Equal(t, 2, p1.Points)
	assert.Equal(t, []league.Outcome{league.OutcomeWin}, p1.Last5)
	assert.Equal(t, league.OutcomeWin, p1.StreakType)
	assert.Equal(t, 1, p1.StreakCount)

	p6 := standings["p6"]
	assert.Equal(t, 1, p6.Played)
	assert.Equal(t, 1, p6.Losses)
	assert.Equal(t, 0, p6.Points)
	assert.Equal(t, []league.Outcome{league.OutcomeLoss}, p6.Last5)
	assert.Equal(t, league.OutcomeLoss, p6.StreakType)
	assert.Equal(t, 1, p6.StreakCount)
}

func TestCreateMatch_DrawThenLossResetsStreak(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	season := newSeason(t, store)

	_, err := store.CreateMatch(season.ID, league.NewMatch{Date: day(1), TeamA: teamA, TeamB: teamB, GoalDiff: 0})
	require.NoError(t, err)
	_, err = store.CreateMatch(season.ID, league.NewMatch{Date: day(2), TeamA: teamA, TeamB: teamB, GoalDiff: -2})
	require.NoError(t, err)

	standings, err := store.ListStandings(season.ID)
	require.NoError(t, err)

	p1 := standings["p1"]
	assert.Equal(t, []league.Outcome{league.OutcomeDraw, league.OutcomeLoss}, p1.Last5)
	assert.Equal(t, league.OutcomeLoss, p1.StreakType)
	assert.Equal(t, 1, p1.StreakCount)
	assert.Equal(t, 1, p1.Points)
}

func TestCreateMatch_ValidationWritesNothing(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	season := newSeason(t, store)

	// p1 appears on both teams.
	_, err := store.CreateMatch(season.ID, league.NewMatch{
		Date:  day(1),
		TeamA: teamA,
		TeamB: []string{"p1", "p7", "p8", "p9", "p10"},
	})
	assert.True(t, league.IsValidation(err))

	_, err = store.CreateMatch(season.ID, league.NewMatch{
		Date:  day(1),
		TeamA: []string{"p1", "p2"},
		TeamB: teamB,
	})
	assert.True(t, league.IsValidation(err))

	var matchCount, standingCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM matches").Scan(&matchCount))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM standings").Scan(&standingCount))
	assert.Zero(t, matchCount, "no match may be written on validation failure")
	assert.Zero(t, standingCount, "no standing may be written on validation failure")
}

func TestCreateMatch_SeasonNotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.CreateMatch("missing-season", league.NewMatch{Date: day(1), TeamA: teamA, TeamB: teamB, GoalDiff: 1})
	assert.ErrorIs(t, err, league.ErrSeasonNotFound)
}

func TestCreateMatch_SmokedIDsDeduplicatedAndBounded(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	season := newSeason(t, store)

	match, err := store.CreateMatch(season.ID, league.NewMatch{
		Date:            day(1),
		TeamA:           teamA,
		TeamB:           teamB,
		GoalDiff:        1,
		SmokedPlayerIDs: []string{"p1", "p1", "p6", "spectator"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p6"}, match.SmokedPlayerIDs)

	matches, err := store.ListMatches(season.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, []string{"p1", "p6"}, matches[0].SmokedPlayerIDs)
}

func TestDeleteMatch_RebuildsFromRemainingHistory(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	season := newSeason(t, store)

	// Outcomes for p1: W, L, W.
	_, err := store.CreateMatch(season.ID, league.NewMatch{Date: day(1), TeamA: teamA, TeamB: teamB, GoalDiff: 2})
	require.NoError(t, err)
	loss, err := store.CreateMatch(season.ID, league.NewMatch{Date: day(2), TeamA: teamA, TeamB: teamB, GoalDiff: -1})
	require.NoError(t, err)
	_, err = store.CreateMatch(season.ID, league.NewMatch{Date: day(3), TeamA: teamA, TeamB: teamB, GoalDiff: 4})
	require.NoError(t, err)

	require.NoError(t, store.DeleteMatch(season.ID, loss.ID))

	standings, err := store.ListStandings(season.ID)
	require.NoError(t, err)

	p1 := standings["p1"]
	assert.Equal(t, 2, p1.Played)
	assert.Equal(t, []league.Outcome{league.OutcomeWin, league.OutcomeWin}, p1.Last5)
	assert.Equal(t, league.OutcomeWin, p1.StreakType)
	assert.Equal(t, 2, p1.StreakCount)
	assert.Equal(t, 4, p1.Points)

	matches, err := store.ListMatches(season.ID)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestDeleteMatch_NonexistentIsNoOp(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	season := newSeason(t, store)
	_, err := store.CreateMatch(season.ID, league.NewMatch{Date: day(1), TeamA: teamA, TeamB: teamB, GoalDiff: 1})
	require.NoError(t, err)

	before, err := store.ListStandings(season.ID)
	require.NoError(t, err)

	require.NoError(t, store.DeleteMatch(season.ID, "never-existed"))

	after, err := store.ListStandings(season.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestWriteAndRebuildNeverDiverge(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	season := newSeason(t, store)

	diffs := []int{3, 0, -1, -1, 2, 0, -5, 1}
	for i, diff := range diffs {
		_, err := store.CreateMatch(season.ID, league.NewMatch{Date: day(i + 1), TeamA: teamA, TeamB: teamB, GoalDiff: diff})
		require.NoError(t, err)
	}

	incremental, err := store.ListStandings(season.ID)
	require.NoError(t, err)

	matches, err := store.ListMatches(season.ID)
	require.NoError(t, err)
	rebuilt := league.FoldMatches(matches, season.Points)

	require.Len(t, incremental, len(rebuilt))
	for playerID, want := range rebuilt {
		got := incremental[playerID]
		got.UpdatedAt = time.Time{}
		assert.Equal(t, want, got, "player %s", playerID)
	}
}

func TestMutationsBumpGeneration(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	season := newSeason(t, store)
	assert.EqualValues(t, 0, season.Generation)

	match, err := store.CreateMatch(season.ID, league.NewMatch{Date: day(1), TeamA: teamA, TeamB: teamB, GoalDiff: 1})
	require.NoError(t, err)

	got, err := store.GetSeason(season.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Generation)

	require.NoError(t, store.DeleteMatch(season.ID, match.ID))
	got, err = store.GetSeason(season.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Generation)
}
