package stats

import (
	"testing"

	"github.com/mauv0809/la-canchita/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePlayerProfile_Splits(t *testing.T) {
	matches := []league.Match{
		match("m1", 1, teamA, teamB, 2, "p1"),
		match("m2", 2, teamA, teamB, -1),
		match("m3", 3, teamA, teamB, 0, "p1"),
	}

	profile := ComputePlayerProfile(matches, "p1")

	assert.Equal(t, 3, profile.All.Played)
	assert.Equal(t, 1, profile.All.Wins)
	assert.Equal(t, 1, profile.All.Draws)
	assert.Equal(t, 1, profile.All.Losses)
	assert.Equal(t, 3, profile.All.Points)

	assert.Equal(t, 2, profile.Smoked.Played)
	assert.Equal(t, 1, profile.Smoked.Wins)
	assert.Equal(t, 1, profile.Smoked.Draws)
	assert.Equal(t, 1, profile.Sober.Played)
	assert.Equal(t, 1, profile.Sober.Losses)
	assert.InDelta(t, 2.0/3.0, profile.SmokedRate, 1e-9)
}

func TestComputePlayerProfile_RecentFormAndStreak(t *testing.T) {
	var matches []league.Match
	// 12 wins then a loss on the most recent date.
	for d := 1; d <= 12; d++ {
		matches = append(matches, match("m"+string(rune('a'+d)), d, teamA, teamB, 1))
	}
	matches = append(matches, match("mz", 13, teamA, teamB, -2))

	profile := ComputePlayerProfile(matches, "p1")

	require.Len(t, profile.Last10, 10)
	assert.Equal(t, league.OutcomeLoss, profile.Last10[0], "most recent first")
	assert.Equal(t, Streak{Outcome: league.OutcomeLoss, Count: 1}, profile.Streak)
	require.Len(t, profile.RecentMatches, 10)
	assert.Equal(t, "mz", profile.RecentMatches[0].ID)
}

func TestComputePlayerProfile_StreakLongerThanWindow(t *testing.T) {
	var matches []league.Match
	matches = append(matches, match("m0", 1, teamA, teamB, -1))
	for d := 2; d <= 13; d++ {
		matches = append(matches, match("m"+string(rune('a'+d)), d, teamA, teamB, 1))
	}

	profile := ComputePlayerProfile(matches, "p1")
	assert.Equal(t, Streak{Outcome: league.OutcomeWin, Count: 12}, profile.Streak)
}

func TestComputePlayerProfile_NoMatches(t *testing.T) {
	profile := ComputePlayerProfile(nil, "p1")

	assert.Zero(t, profile.All.Played)
	assert.Zero(t, profile.SmokedRate)
	assert.Empty(t, profile.Last10)
	assert.Equal(t, Streak{}, profile.Streak)
}
