package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	teamsGenerated     int
	generationAttempts []int
	notifSent          map[string]int
	notifFailed        map[string]int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		generationAttempts: make([]int, 0),
		notifSent:          make(map[string]int),
		notifFailed:        make(map[string]int),
	}
}

func (m *Mock) IncTeamsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teamsGenerated++
}

func (m *Mock) ObserveGenerationAttempts(attempts int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generationAttempts = append(m.generationAttempts, attempts)
}

func (m *Mock) IncNotifSent(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent[channel]++
}

func (m *Mock) IncNotifFailed(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed[channel]++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// TeamsGenerated returns the number of times IncTeamsGenerated was called.
func (m *Mock) TeamsGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teamsGenerated
}

// GenerationAttempts returns every value passed to ObserveGenerationAttempts.
func (m *Mock) GenerationAttempts() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.generationAttempts...)
}

// NotifSent returns the number of successful deliveries on channel.
func (m *Mock) NotifSent(channel string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent[channel]
}

// NotifFailed returns the number of failed deliveries on channel.
func (m *Mock) NotifFailed(channel string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed[channel]
}
