package league

import "time"

// TeamSize is the number of players on each side of a match.
const TeamSize = 5

// Outcome is a single match result from one team's perspective.
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeDraw Outcome = "D"
	OutcomeLoss Outcome = "L"
)

// PointValues holds the points awarded per outcome for a season.
type PointValues struct {
	Win  int `json:"win"`
	Draw int `json:"draw"`
	Loss int `json:"loss"`
}

// DefaultPointValues returns the standard 2/1/0 ruleset.
func DefaultPointValues() PointValues {
	return PointValues{Win: 2, Draw: 1, Loss: 0}
}

// Season is the namespace every other entity lives under. Generation is a
// monotonic counter bumped by every mutating operation; the rebuild path
// uses it as a compare-and-swap guard against concurrent writes.
type Season struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Points     PointValues `json:"points"`
	Generation int64       `json:"generation"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Player is a season member.
type Player struct {
	ID        string    `json:"id"`
	SeasonID  string    `json:"season_id"`
	Name      string    `json:"name"`
	Nickname  string    `json:"nickname,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName prefers the nickname over the registered name.
func (p Player) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Match is an immutable 5v5 result. GoalDiff is signed: positive means
// team A won by that margin, negative means team B won, zero is a draw.
type Match struct {
	ID              string    `json:"id"`
	SeasonID        string    `json:"season_id"`
	Date            time.Time `json:"date"`
	TeamA           []string  `json:"team_a"`
	TeamB           []string  `json:"team_b"`
	GoalDiff        int       `json:"goal_diff"`
	SmokedPlayerIDs []string  `json:"smoked_player_ids,omitempty"`
	CreatedBy       string    `json:"created_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewMatch is the input for recording a match.
type NewMatch struct {
	Date            time.Time `json:"date"`
	TeamA           []string  `json:"team_a"`
	TeamB           []string  `json:"team_b"`
	GoalDiff        int       `json:"goal_diff"`
	SmokedPlayerIDs []string  `json:"smoked_player_ids,omitempty"`
	CreatedBy       string    `json:"created_by,omitempty"`
}

// Validate checks team sizes and disjointness before anything is written.
func (nm NewMatch) Validate() error {
	if len(nm.TeamA) != TeamSize || len(nm.TeamB) != TeamSize {
		return Validationf("both teams must have exactly %d players", TeamSize)
	}
	seen := make(map[string]struct{}, 2*TeamSize)
	for _, id := range append(append([]string{}, nm.TeamA...), nm.TeamB...) {
		if _, dup := seen[id]; dup {
			return Validationf("player %s appears more than once across teams", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Participants returns the union of both teams.
func (nm NewMatch) Participants() []string {
	all := make([]string, 0, 2*TeamSize)
	all = append(all, nm.TeamA...)
	all = append(all, nm.TeamB...)
	return all
}

// Standing is the materialized per-player aggregate. It must always equal
// the fold of the player's full chronological match history through
// ApplyResult.
type Standing struct {
	Played      int       `json:"played"`
	Wins        int       `json:"wins"`
	Draws       int       `json:"draws"`
	Losses      int       `json:"losses"`
	Points      int       `json:"points"`
	Last5       []Outcome `json:"last5"`
	StreakType  Outcome   `json:"streak_type,omitempty"`
	StreakCount int       `json:"streak_count"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}
