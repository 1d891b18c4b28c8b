package league

import "sort"

// EmptyStanding is the implicit default for a player with no history.
func EmptyStanding() Standing {
	return Standing{Last5: []Outcome{}}
}

// ApplyResult folds one match outcome into a standing. It is the single
// source of truth for standings accounting: the incremental writer and
// the rebuild both go through it, so they cannot diverge.
func ApplyResult(st Standing, r Outcome, pv PointValues) Standing {
	st.Played++
	switch r {
	case OutcomeWin:
		st.Wins++
	case OutcomeDraw:
		st.Draws++
	case OutcomeLoss:
		st.Losses++
	}
	st.Points += PointsFor(r, pv)

	last5 := append(append([]Outcome{}, st.Last5...), r)
	if len(last5) > 5 {
		last5 = last5[len(last5)-5:]
	}
	st.Last5 = last5

	if st.StreakType == r {
		st.StreakCount++
	} else {
		st.StreakType = r
		st.StreakCount = 1
	}
	return st
}

// FoldMatches replays matches chronologically (ties broken by id, so the
// rebuild is deterministic) and returns the standing of every player that
// appeared in any match.
func FoldMatches(matches []Match, pv PointValues) map[string]Standing {
	ordered := make([]Match, len(matches))
	copy(ordered, matches)
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID < ordered[j].ID
	})

	standings := make(map[string]Standing)
	apply := func(playerID string, r Outcome) {
		st, ok := standings[playerID]
		if !ok {
			st = EmptyStanding()
		}
		standings[playerID] = ApplyResult(st, r, pv)
	}

	for _, m := range ordered {
		resA, resB := ResultFromGoalDiff(m.GoalDiff)
		for _, pid := range m.TeamA {
			apply(pid, resA)
		}
		for _, pid := range m.TeamB {
			apply(pid, resB)
		}
	}
	return standings
}
