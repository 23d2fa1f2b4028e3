package notifier

import (
	"context"
	"sync"
)

// Mock is a mock implementation of Notifier for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	AnnounceFunc func(ctx context.Context, userID string, a *Announcement, dryRun bool) error

	// Call records
	AnnounceCalls []AnnounceCall
}

type AnnounceCall struct {
	UserID       string
	Announcement *Announcement
	DryRun       bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Announce(ctx context.Context, userID string, a *Announcement, dryRun bool) error {
	m.mu.Lock()
	m.AnnounceCalls = append(m.AnnounceCalls, AnnounceCall{UserID: userID, Announcement: a, DryRun: dryRun})
	m.mu.Unlock()
	if m.AnnounceFunc != nil {
		return m.AnnounceFunc(ctx, userID, a, dryRun)
	}
	return nil
}

// Calls returns a copy of the recorded calls.
func (m *Mock) Calls() []AnnounceCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AnnounceCall(nil), m.AnnounceCalls...)
}
