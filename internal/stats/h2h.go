package stats

import (
	"strings"

	"github.com/mauv0809/la-canchita/internal/league"
)

const h2hFormWindow = 10

// ComputeHeadToHead splits the match history into the games where the
// two players faced each other and the games where they shared a team.
// Outcomes and points are always taken from player A's perspective and
// scored with the standard 2/1/0 values so comparisons stay uniform
// across seasons.
func ComputeHeadToHead(matches []league.Match, playerA, playerB string) HeadToHead {
	var h2h HeadToHead
	h2h.Versus.Matches = []league.Match{}
	h2h.Together.Matches = []league.Match{}

	var versusForm, togetherForm []league.Outcome
	for _, m := range sortRecentFirst(matches) {
		aOnA := contains(m.TeamA, playerA)
		aOnB := contains(m.TeamB, playerA)
		bOnA := contains(m.TeamA, playerB)
		bOnB := contains(m.TeamB, playerB)
		if !(aOnA || aOnB) || !(bOnA || bOnB) {
			continue
		}

		outcome, _ := outcomeForPlayer(m, playerA)
		if aOnA == bOnA {
			h2h.Together.Matches = append(h2h.Together.Matches, m)
			addOutcome(&h2h.Together.Stats, outcome)
			togetherForm = append(togetherForm, outcome)
		} else {
			h2h.Versus.Matches = append(h2h.Versus.Matches, m)
			addOutcome(&h2h.Versus.Stats, outcome)
			versusForm = append(versusForm, outcome)
		}
	}

	finishSplit(&h2h.Versus.Stats)
	finishSplit(&h2h.Together.Stats)
	h2h.Versus.Last10 = formString(versusForm)
	h2h.Together.Last10 = formString(togetherForm)
	return h2h
}

// formString joins the most recent outcomes as "W D L", capped at the
// form window, "-" when there are none.
func formString(outcomes []league.Outcome) string {
	if len(outcomes) == 0 {
		return "-"
	}
	if len(outcomes) > h2hFormWindow {
		outcomes = outcomes[:h2hFormWindow]
	}
	parts := make([]string, len(outcomes))
	for i, o := range outcomes {
		parts[i] = string(o)
	}
	return strings.Join(parts, " ")
}
