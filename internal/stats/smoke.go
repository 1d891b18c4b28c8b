package stats

import (
	"sort"

	"github.com/mauv0809/la-canchita/internal/league"
)

const (
	smokeTopN          = 5
	minSmokedForRating = 3
)

// ComputeSmokeStats builds the season-wide smoking report: per-player
// records over the matches they smoked in, the split between matches
// with and without any smoker, and the comparable subset where exactly
// one team smoked.
func ComputeSmokeStats(matches []league.Match) SmokeStats {
	stats := SmokeStats{
		MostSmoked:  []SmokerRecord{},
		BestWinRate: []SmokerRecord{},
	}

	records := make(map[string]*SmokerRecord)
	for _, m := range matches {
		if len(m.SmokedPlayerIDs) == 0 {
			stats.MatchesWithoutSmokers++
			continue
		}
		stats.MatchesWithSmokers++

		for _, pid := range m.SmokedPlayerIDs {
			outcome, played := outcomeForPlayer(m, pid)
			if !played {
				continue
			}
			rec, ok := records[pid]
			if !ok {
				rec = &SmokerRecord{PlayerID: pid}
				records[pid] = rec
			}
			rec.Smoked++
			switch outcome {
			case league.OutcomeWin:
				rec.Wins++
			case league.OutcomeDraw:
				rec.Draws++
			case league.OutcomeLoss:
				rec.Losses++
			}
		}

		smokedA := anySmoked(m.TeamA, m.SmokedPlayerIDs)
		smokedB := anySmoked(m.TeamB, m.SmokedPlayerIDs)
		if smokedA != smokedB {
			stats.TeamComparison.Comparable++
			a, b := league.ResultFromGoalDiff(m.GoalDiff)
			if smokedA {
				addOutcome(&stats.TeamComparison.SmokingTeam, a)
				addOutcome(&stats.TeamComparison.CleanTeam, b)
			} else {
				addOutcome(&stats.TeamComparison.SmokingTeam, b)
				addOutcome(&stats.TeamComparison.CleanTeam, a)
			}
		}
	}

	finishSplit(&stats.TeamComparison.SmokingTeam)
	finishSplit(&stats.TeamComparison.CleanTeam)

	all := make([]SmokerRecord, 0, len(records))
	for _, rec := range records {
		rec.WinRate = float64(rec.Wins) / float64(rec.Smoked)
		all = append(all, *rec)
	}

	stats.MostSmoked = topBy(all, func(a, b SmokerRecord) bool {
		if a.Smoked != b.Smoked {
			return a.Smoked > b.Smoked
		}
		return a.PlayerID < b.PlayerID
	}, func(SmokerRecord) bool { return true })

	stats.BestWinRate = topBy(all, func(a, b SmokerRecord) bool {
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.Smoked != b.Smoked {
			return a.Smoked > b.Smoked
		}
		return a.PlayerID < b.PlayerID
	}, func(r SmokerRecord) bool { return r.Smoked >= minSmokedForRating })

	return stats
}

func anySmoked(team, smoked []string) bool {
	for _, id := range team {
		if contains(smoked, id) {
			return true
		}
	}
	return false
}

func topBy(records []SmokerRecord, less func(a, b SmokerRecord) bool, keep func(SmokerRecord) bool) []SmokerRecord {
	filtered := make([]SmokerRecord, 0, len(records))
	for _, r := range records {
		if keep(r) {
			filtered = append(filtered, r)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool { return less(filtered[i], filtered[j]) })
	if len(filtered) > smokeTopN {
		filtered = filtered[:smokeTopN]
	}
	return filtered
}
