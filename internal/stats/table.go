package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mauv0809/la-canchita/internal/league"
)

// SeasonTable builds the leaderboard from the active roster, the
// maintained standings and the raw match history. Goal difference is
// not kept in the standings documents, so it is summed from matches
// here. Ties break on points, then wins, then matches played, then
// display name.
func SeasonTable(players []league.Player, standings map[string]league.Standing, matches []league.Match) []TableRow {
	goalDiffs := goalDiffByPlayer(matches)

	rows := make([]TableRow, 0, len(players))
	for _, p := range players {
		if !p.IsActive {
			continue
		}
		st := standings[p.ID]
		rows = append(rows, TableRow{
			PlayerID:    p.ID,
			DisplayName: p.DisplayName(),
			Played:      st.Played,
			Wins:        st.Wins,
			Draws:       st.Draws,
			Losses:      st.Losses,
			GoalDiff:    goalDiffs[p.ID],
			Points:      st.Points,
			Last5:       FormatLast5(st.Last5),
			Streak:      FormatStreak(st.StreakType, st.StreakCount),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Played != b.Played {
			return a.Played > b.Played
		}
		return strings.ToLower(a.DisplayName) < strings.ToLower(b.DisplayName)
	})
	return rows
}

func goalDiffByPlayer(matches []league.Match) map[string]int {
	diffs := make(map[string]int)
	for _, m := range matches {
		for _, id := range m.TeamA {
			diffs[id] += m.GoalDiff
		}
		for _, id := range m.TeamB {
			diffs[id] -= m.GoalDiff
		}
	}
	return diffs
}

// FormatLast5 renders the recent-form window as "WWDLW", "-" when the
// player has no matches yet.
func FormatLast5(last5 []league.Outcome) string {
	if len(last5) == 0 {
		return "-"
	}
	var b strings.Builder
	for _, o := range last5 {
		b.WriteString(string(o))
	}
	return b.String()
}

// FormatStreak renders the current run as "W3", "-" when there is none.
func FormatStreak(outcome league.Outcome, count int) string {
	if outcome == "" || count == 0 {
		return "-"
	}
	return fmt.Sprintf("%s%d", outcome, count)
}
