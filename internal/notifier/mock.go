package notifier

import (
	"sync"

	"github.com/mauv0809/la-canchita/internal/asado"
	"github.com/mauv0809/la-canchita/internal/league"
	"github.com/mauv0809/la-canchita/internal/stats"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendMatchResultCalls   []*league.Match
	SendSeasonTableCalls   [][]stats.TableRow
	SendAsadoRecordedCalls []*asado.Asado

	// Spies
	SendMatchResultFunc   func(match *league.Match, players []league.Player, dryRun bool) error
	SendSeasonTableFunc   func(seasonName string, rows []stats.TableRow, dryRun bool) error
	SendAsadoRecordedFunc func(event *asado.Asado, players []league.Player, dryRun bool) error
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.SendSeasonTableCalls = nil
	m.SendAsadoRecordedCalls = nil
}

func (m *Mock) SendMatchResult(match *league.Match, players []league.Player, dryRun bool) error {
	m.mu.Lock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, match)
	m.mu.Unlock()
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(match, players, dryRun)
	}
	return nil
}

func (m *Mock) SendSeasonTable(seasonName string, rows []stats.TableRow, dryRun bool) error {
	m.mu.Lock()
	m.SendSeasonTableCalls = append(m.SendSeasonTableCalls, rows)
	m.mu.Unlock()
	if m.SendSeasonTableFunc != nil {
		return m.SendSeasonTableFunc(seasonName, rows, dryRun)
	}
	return nil
}

func (m *Mock) SendAsadoRecorded(event *asado.Asado, players []league.Player, dryRun bool) error {
	m.mu.Lock()
	m.SendAsadoRecordedCalls = append(m.SendAsadoRecordedCalls, event)
	m.mu.Unlock()
	if m.SendAsadoRecordedFunc != nil {
		return m.SendAsadoRecordedFunc(event, players, dryRun)
	}
	return nil
}
