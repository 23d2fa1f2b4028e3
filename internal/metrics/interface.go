package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncTeamsGenerated()
	ObserveGenerationAttempts(attempts int)
	IncNotifSent(channel string)
	IncNotifFailed(channel string)
	SetStartupTime(duration float64)
}

// Store keeps durable business counters, unlike Metrics which resets with the process.
type Store interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}

// Keys used with Store.
const (
	KeyTeamsGenerated     = "teams_generated"
	KeyMatchesPlanned     = "matches_planned"
	KeyMatchesCompleted   = "matches_completed"
	KeyAnnouncementsSent  = "announcements_sent"
	KeyAnnouncementsQueue = "announcements_queued"
)
