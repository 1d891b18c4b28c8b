package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesRecorded()
	IncMatchesDeleted()
	IncAsadosRecorded()
	IncAsadosDeleted()
	IncRebuildsRun()
	ObserveRebuildDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore persists business counters in the database so they
// survive restarts, unlike the in-process Prometheus state.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
