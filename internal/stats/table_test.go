package stats

import (
	"testing"
	"time"

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

func match(id string, d int, a, b []string, goalDiff int, smoked ...string) league.Match {
	return league.Match{
		ID:              id,
		SeasonID:        "s1",
		Date:            day(d),
		TeamA:           a,
		TeamB:           b,
		GoalDiff:        goalDiff,
		SmokedPlayerIDs: smoked,
	}
}

func player(id, name string, active bool) league.Player {
	return league.Player{ID: id, SeasonID: "s1", Name: name, IsActive: active}
}

func TestSeasonTable_SortAndGoalDiff(t *testing.T) {
	players := []league.Player{
		player("p1", "Ana", true),
		player("p6", "Beto", true),
		player("p2", "Cata", true),
	}
	standings := map[string]league.Standing{
		"p1": {Played: 2, Wins: 2, Points: 4, Last5: []league.Outcome{"W", "W"}, StreakType: "W", StreakCount: 2},
		"p2": {Played: 2, Wins: 2, Points: 4, Last5: []league.Outcome{"W", "W"}, StreakType: "W", StreakCount: 2},
		"p6": {Played: 2, Losses: 2, Points: 0, Last5: []league.Outcome{"L", "L"}, StreakType: "L", StreakCount: 2},
	}
	matches := []league.Match{
		match("m1", 1, teamA, teamB, 3),
		match("m2", 2, teamA, teamB, 1),
	}

	rows := SeasonTable(players, standings, matches)
	require.Len(t, rows, 3)

	// Equal points and wins: ties break alphabetically on display name.
	assert.Equal(t, "p1", rows[0].PlayerID)
	assert.Equal(t, "p2", rows[1].PlayerID)
	assert.Equal(t, "p6", rows[2].PlayerID)

	assert.Equal(t, 4, rows[0].GoalDiff)
	assert.Equal(t, -4, rows[2].GoalDiff)
	assert.Equal(t, "WW", rows[0].Last5)
	assert.Equal(t, "W2", rows[0].Streak)
	assert.Equal(t, "L2", rows[2].Streak)
}

func TestSeasonTable_SkipsInactivePlayers(t *testing.T) {
	players := []league.Player{
		player("p1", "Ana", true),
		player("p2", "Beto", false),
	}

	rows := SeasonTable(players, map[string]league.Standing{}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "p1", rows[0].PlayerID)
}

func TestSeasonTable_NoHistoryYet(t *testing.T) {
	players := []league.Player{player("p1", "Ana", true)}

	rows := SeasonTable(players, map[string]league.Standing{}, nil)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].Played)
	assert.Equal(t, "-", rows[0].Last5)
	assert.Equal(t, "-", rows[0].Streak)
}

func TestSeasonTable_DisplayNamePrefersNickname(t *testing.T) {
	players := []league.Player{
		{ID: "p1", Name: "Anastasio", Nickname: "Tolo", IsActive: true},
	}

	rows := SeasonTable(players, map[string]league.Standing{}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "Tolo", rows[0].DisplayName)
}
