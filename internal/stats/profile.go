package stats

import "github.com/mauv0809/la-canchita/internal/league"

const profileRecentWindow = 10

// ComputePlayerProfile folds the full history into the player's career
// view: the overall record plus the split between matches where the
// player was reported smoking and matches where they were not. Points
// use the standard 2/1/0 values. Last10 and the streak run from the
// most recent match backwards.
func ComputePlayerProfile(matches []league.Match, playerID string) PlayerProfile {
	profile := PlayerProfile{
		Last10:        []league.Outcome{},
		RecentMatches: []league.Match{},
	}

	for _, m := range sortRecentFirst(matches) {
		outcome, played := outcomeForPlayer(m, playerID)
		if !played {
			continue
		}

		addOutcome(&profile.All, outcome)
		if contains(m.SmokedPlayerIDs, playerID) {
			addOutcome(&profile.Smoked, outcome)
		} else {
			addOutcome(&profile.Sober, outcome)
		}

		if len(profile.Last10) < profileRecentWindow {
			profile.Last10 = append(profile.Last10, outcome)
			profile.RecentMatches = append(profile.RecentMatches, m)
		}
	}

	profile.Streak = streakFromRecent(profile.Last10, profile.All.Played, matches, playerID)

	finishSplit(&profile.All)
	finishSplit(&profile.Smoked)
	finishSplit(&profile.Sober)
	if profile.All.Played > 0 {
		profile.SmokedRate = float64(profile.Smoked.Played) / float64(profile.All.Played)
	}
	return profile
}

// streakFromRecent counts how many consecutive matches from the most
// recent one share the same outcome. The Last10 window is enough unless
// the streak is longer than the window, in which case the full history
// is consulted.
func streakFromRecent(last10 []league.Outcome, played int, matches []league.Match, playerID string) Streak {
	if len(last10) == 0 {
		return Streak{}
	}
	streak := Streak{Outcome: last10[0], Count: 0}
	for _, o := range last10 {
		if o != streak.Outcome {
			return streak
		}
		streak.Count++
	}
	if streak.Count < profileRecentWindow || streak.Count == played {
		return streak
	}

	skipped := 0
	for _, m := range sortRecentFirst(matches) {
		outcome, ok := outcomeForPlayer(m, playerID)
		if !ok {
			continue
		}
		if skipped < profileRecentWindow {
			skipped++
			continue
		}
		if outcome != streak.Outcome {
			return streak
		}
		streak.Count++
	}
	return streak
}
