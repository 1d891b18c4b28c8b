package asado

// AsadoStore defines the interface for interacting with attendance events
// and their standings.
type AsadoStore interface {
	CreateAsado(seasonID string, input NewAsado) (*Asado, error)
	ListAsados(seasonID string) ([]Asado, error)
	DeleteAsado(seasonID, asadoID string) error
	ListStandings(seasonID string) (map[string]AsadoStanding, error)
}
