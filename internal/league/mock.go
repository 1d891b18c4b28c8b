package league

import "sync"

// MockStore is a mock implementation of the LeagueStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateSeasonFunc    func(name string, pv PointValues, admins []string) (*Season, error)
	GetSeasonFunc       func(seasonID string) (*Season, error)
	IsSeasonAdminFunc   func(seasonID, uid string) (bool, error)
	AddPlayerFunc       func(seasonID, name, nickname string) (*Player, error)
	ListPlayersFunc     func(seasonID string) ([]Player, error)
	SetPlayerActiveFunc func(seasonID, playerID string, active bool) error
	RemovePlayerFunc    func(seasonID, playerID string) error
	CreateMatchFunc     func(seasonID string, input NewMatch) (*Match, error)
	ListMatchesFunc     func(seasonID string) ([]Match, error)
	DeleteMatchFunc     func(seasonID, matchID string) error
	ListStandingsFunc   func(seasonID string) (map[string]Standing, error)

	// Call records
	CreateMatchCalls []struct {
		SeasonID string
		Input    NewMatch
	}
	DeleteMatchCalls []struct {
		SeasonID string
		MatchID  string
	}
	AddPlayerCalls []struct {
		SeasonID string
		Name     string
		Nickname string
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

var _ LeagueStore = (*MockStore)(nil)

func (m *MockStore) CreateSeason(name string, pv PointValues, admins []string) (*Season, error) {
	if m.CreateSeasonFunc != nil {
		return m.CreateSeasonFunc(name, pv, admins)
	}
	return &Season{Name: name, Points: pv}, nil
}

func (m *MockStore) GetSeason(seasonID string) (*Season, error) {
	if m.GetSeasonFunc != nil {
		return m.GetSeasonFunc(seasonID)
	}
	return &Season{ID: seasonID, Points: DefaultPointValues()}, nil
}

func (m *MockStore) IsSeasonAdmin(seasonID, uid string) (bool, error) {
	if m.IsSeasonAdminFunc != nil {
		return m.IsSeasonAdminFunc(seasonID, uid)
	}
	return true, nil
}

func (m *MockStore) AddPlayer(seasonID, name, nickname string) (*Player, error) {
	m.mu.Lock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, struct {
		SeasonID string
		Name     string
		Nickname string
	}{seasonID, name, nickname})
	m.mu.Unlock()
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(seasonID, name, nickname)
	}
	return &Player{SeasonID: seasonID, Name: name, Nickname: nickname, IsActive: true}, nil
}

func (m *MockStore) ListPlayers(seasonID string) ([]Player, error) {
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(seasonID)
	}
	return nil, nil
}

func (m *MockStore) SetPlayerActive(seasonID, playerID string, active bool) error {
	if m.SetPlayerActiveFunc != nil {
		return m.SetPlayerActiveFunc(seasonID, playerID, active)
	}
	return nil
}

func (m *MockStore) RemovePlayer(seasonID, playerID string) error {
	if m.RemovePlayerFunc != nil {
		return m.RemovePlayerFunc(seasonID, playerID)
	}
	return nil
}

func (m *MockStore) CreateMatch(seasonID string, input NewMatch) (*Match, error) {
	m.mu.Lock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, struct {
		SeasonID string
		Input    NewMatch
	}{seasonID, input})
	m.mu.Unlock()
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(seasonID, input)
	}
	return &Match{SeasonID: seasonID, TeamA: input.TeamA, TeamB: input.TeamB, GoalDiff: input.GoalDiff}, nil
}

func (m *MockStore) ListMatches(seasonID string) ([]Match, error) {
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(seasonID)
	}
	return nil, nil
}

func (m *MockStore) DeleteMatch(seasonID, matchID string) error {
	m.mu.Lock()
	m.DeleteMatchCalls = append(m.DeleteMatchCalls, struct {
		SeasonID string
		MatchID  string
	}{seasonID, matchID})
	m.mu.Unlock()
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(seasonID, matchID)
	}
	return nil
}

func (m *MockStore) ListStandings(seasonID string) (map[string]Standing, error) {
	if m.ListStandingsFunc != nil {
		return m.ListStandingsFunc(seasonID)
	}
	return map[string]Standing{}, nil
}
