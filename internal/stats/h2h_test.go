package stats

import (
	"testing"

	"github.com/mauv0809/la-canchita/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHeadToHead_SplitsVersusAndTogether(t *testing.T) {
	matches := []league.Match{
		// p1 and p6 on opposite sides, p1's team wins.
		match("m1", 1, teamA, teamB, 2),
		// Sides swapped: p1 now on team B, loses by 1.
		match("m2", 2, teamB, teamA, 1),
		// Same team: p1 and p6 together on team A, draw.
		match("m3", 3, []string{"p1", "p6", "p3", "p4", "p5"}, []string{"p2", "p7", "p8", "p9", "p10"}, 0),
	}

	h2h := ComputeHeadToHead(matches, "p1", "p6")

	require.Len(t, h2h.Versus.Matches, 2)
	assert.Equal(t, 2, h2h.Versus.Stats.Played)
	assert.Equal(t, 1, h2h.Versus.Stats.Wins)
	assert.Equal(t, 1, h2h.Versus.Stats.Losses)
	assert.Equal(t, 2, h2h.Versus.Stats.Points)
	assert.InDelta(t, 0.5, h2h.Versus.Stats.WinRate, 1e-9)

	require.Len(t, h2h.Together.Matches, 1)
	assert.Equal(t, 1, h2h.Together.Stats.Draws)
	assert.Equal(t, 1, h2h.Together.Stats.Points)
}

func TestComputeHeadToHead_FormIsMostRecentFirst(t *testing.T) {
	matches := []league.Match{
		match("m1", 1, teamA, teamB, 1),
		match("m2", 2, teamA, teamB, -1),
		match("m3", 3, teamA, teamB, 0),
	}

	h2h := ComputeHeadToHead(matches, "p1", "p6")
	assert.Equal(t, "D L W", h2h.Versus.Last10)
	assert.Equal(t, "-", h2h.Together.Last10)
}

func TestComputeHeadToHead_IgnoresMatchesMissingEitherPlayer(t *testing.T) {
	matches := []league.Match{
		// p6 did not play.
		match("m1", 1, teamA, []string{"p11", "p12", "p13", "p14", "p15"}, 1),
	}

	h2h := ComputeHeadToHead(matches, "p1", "p6")
	assert.Empty(t, h2h.Versus.Matches)
	assert.Empty(t, h2h.Together.Matches)
	assert.Zero(t, h2h.Versus.Stats.Played)
}
