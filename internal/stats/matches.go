package stats

import (
	"sort"

	"github.com/mauv0809/la-canchita/internal/league"
)

// sortRecentFirst returns a copy of matches ordered newest first, ties
// broken by id so callers see a stable order regardless of input.
func sortRecentFirst(matches []league.Match) []league.Match {
	sorted := make([]league.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].ID > sorted[j].ID
	})
	return sorted
}

// outcomeForPlayer resolves the match outcome from the given player's
// perspective. ok is false when the player did not play.
func outcomeForPlayer(m league.Match, playerID string) (league.Outcome, bool) {
	a, b := league.ResultFromGoalDiff(m.GoalDiff)
	if contains(m.TeamA, playerID) {
		return a, true
	}
	if contains(m.TeamB, playerID) {
		return b, true
	}
	return "", false
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func addOutcome(s *SplitStats, o league.Outcome) {
	s.Played++
	switch o {
	case league.OutcomeWin:
		s.Wins++
	case league.OutcomeDraw:
		s.Draws++
	case league.OutcomeLoss:
		s.Losses++
	}
	s.Points += league.PointsFor(o, league.DefaultPointValues())
}

func finishSplit(s *SplitStats) {
	if s.Played > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Played)
	}
}
