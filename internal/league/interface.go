package league

// LeagueStore defines the interface for interacting with seasons, players,
// matches and the standings aggregate.
type LeagueStore interface {
	CreateSeason(name string, pv PointValues, admins []string) (*Season, error)
	GetSeason(seasonID string) (*Season, error)
	IsSeasonAdmin(seasonID, uid string) (bool, error)

	AddPlayer(seasonID, name, nickname string) (*Player, error)
	ListPlayers(seasonID string) ([]Player, error)
	SetPlayerActive(seasonID, playerID string, active bool) error
	RemovePlayer(seasonID, playerID string) error

	CreateMatch(seasonID string, input NewMatch) (*Match, error)
	ListMatches(seasonID string) ([]Match, error)
	DeleteMatch(seasonID, matchID string) error

	ListStandings(seasonID string) (map[string]Standing, error)
}
