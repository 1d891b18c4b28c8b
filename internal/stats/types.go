package stats

import "github.com/mauv0809/la-canchita/internal/league"

// TableRow is one line of the season leaderboard.
type TableRow struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Played      int    `json:"played"`
	Wins        int    `json:"wins"`
	Draws       int    `json:"draws"`
	Losses      int    `json:"losses"`
	GoalDiff    int    `json:"goal_diff"`
	Points      int    `json:"points"`
	Last5       string `json:"last5"`
	Streak      string `json:"streak"`
}

// SplitStats is a W/D/L/points aggregate over some subset of matches.
type SplitStats struct {
	Played  int     `json:"played"`
	Wins    int     `json:"wins"`
	Draws   int     `json:"draws"`
	Losses  int     `json:"losses"`
	Points  int     `json:"points"`
	WinRate float64 `json:"win_rate"`
}

// Streak is a run of identical outcomes ending at the most recent match.
type Streak struct {
	Outcome league.Outcome `json:"outcome,omitempty"`
	Count   int            `json:"count"`
}

// H2HSide is one half of a head-to-head comparison: the matches that
// qualified and the aggregate over them.
type H2HSide struct {
	Matches []league.Match `json:"matches"`
	Stats   SplitStats     `json:"stats"`
	Last10  string         `json:"last10"`
}

// HeadToHead compares two players: matches on opposite teams (from
// player A's perspective) and matches on the same team.
type HeadToHead struct {
	Versus   H2HSide `json:"versus"`
	Together H2HSide `json:"together"`
}

// PlayerProfile is the per-player breakdown: overall record, the smoking
// and sober splits, recent form and the current streak.
type PlayerProfile struct {
	All           SplitStats       `json:"all"`
	Smoked        SplitStats       `json:"smoked"`
	Sober         SplitStats       `json:"sober"`
	SmokedRate    float64          `json:"smoked_rate"`
	Last10        []league.Outcome `json:"last10"`
	Streak        Streak           `json:"streak"`
	RecentMatches []league.Match   `json:"recent_matches"`
}

// SmokerRecord is one player's record over the matches they smoked in.
type SmokerRecord struct {
	PlayerID string  `json:"player_id"`
	Smoked   int     `json:"smoked"`
	Wins     int     `json:"wins"`
	Draws    int     `json:"draws"`
	Losses   int     `json:"losses"`
	WinRate  float64 `json:"win_rate"`
}

// TeamSmokeComparison aggregates the comparable subset: matches where
// exactly one team had any smoking participant.
type TeamSmokeComparison struct {
	Comparable  int        `json:"comparable"`
	SmokingTeam SplitStats `json:"smoking_team"`
	CleanTeam   SplitStats `json:"clean_team"`
}

// SmokeStats is the season-wide smoking report.
type SmokeStats struct {
	MatchesWithSmokers    int                 `json:"matches_with_smokers"`
	MatchesWithoutSmokers int                 `json:"matches_without_smokers"`
	MostSmoked            []SmokerRecord      `json:"most_smoked"`
	BestWinRate           []SmokerRecord      `json:"best_win_rate"`
	TeamComparison        TeamSmokeComparison `json:"team_comparison"`
}
