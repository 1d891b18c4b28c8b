package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	matchesRecorded  int
	matchesDeleted   int
	asadosRecorded   int
	asadosDeleted    int
	rebuildsRun      int
	rebuildDurations []float64
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		rebuildDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncMatchesDeleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesDeleted++
}

func (m *Mock) IncAsadosRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.asadosRecorded++
}

func (m *Mock) IncAsadosDeleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.asadosDeleted++
}

func (m *Mock) IncRebuildsRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rebuildsRun++
}

func (m *Mock) ObserveRebuildDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rebuildDurations = append(m.rebuildDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// MatchesDeleted returns the number of times IncMatchesDeleted was called.
func (m *Mock) MatchesDeleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesDeleted
}

// AsadosRecorded returns the number of times IncAsadosRecorded was called.
func (m *Mock) AsadosRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.asadosRecorded
}

// AsadosDeleted returns the number of times IncAsadosDeleted was called.
func (m *Mock) AsadosDeleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.asadosDeleted
}

// RebuildsRun returns the number of times IncRebuildsRun was called.
func (m *Mock) RebuildsRun() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rebuildsRun
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
