package asado

import "sync"

// MockStore is a mock implementation of the AsadoStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateAsadoFunc   func(seasonID string, input NewAsado) (*Asado, error)
	ListAsadosFunc    func(seasonID string) ([]Asado, error)
	DeleteAsadoFunc   func(seasonID, asadoID string) error
	ListStandingsFunc func(seasonID string) (map[string]AsadoStanding, error)

	// Call records
	CreateAsadoCalls []struct {
		SeasonID string
		Input    NewAsado
	}
	DeleteAsadoCalls []struct {
		SeasonID string
		AsadoID  string
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

var _ AsadoStore = (*MockStore)(nil)

func (m *MockStore) CreateAsado(seasonID string, input NewAsado) (*Asado, error) {
	m.mu.Lock()
	m.CreateAsadoCalls = append(m.CreateAsadoCalls, struct {
		SeasonID string
		Input    NewAsado
	}{seasonID, input})
	m.mu.Unlock()
	if m.CreateAsadoFunc != nil {
		return m.CreateAsadoFunc(seasonID, input)
	}
	return &Asado{SeasonID: seasonID, PresentPlayerIDs: input.PresentPlayerIDs}, nil
}

func (m *MockStore) ListAsados(seasonID string) ([]Asado, error) {
	if m.ListAsadosFunc != nil {
		return m.ListAsadosFunc(seasonID)
	}
	return nil, nil
}

func (m *MockStore) DeleteAsado(seasonID, asadoID string) error {
	m.mu.Lock()
	m.DeleteAsadoCalls = append(m.DeleteAsadoCalls, struct {
		SeasonID string
		AsadoID  string
	}{seasonID, asadoID})
	m.mu.Unlock()
	if m.DeleteAsadoFunc != nil {
		return m.DeleteAsadoFunc(seasonID, asadoID)
	}
	return nil
}

func (m *MockStore) ListStandings(seasonID string) (map[string]AsadoStanding, error) {
	if m.ListStandingsFunc != nil {
		return m.ListStandingsFunc(seasonID)
	}
	return map[string]AsadoStanding{}, nil
}
