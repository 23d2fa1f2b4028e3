package fixture

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockStore is an in-memory FixtureStore for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu      sync.Mutex
	matches map[string]*Match

	MarkAnnouncedFunc func(ownerID, id string, kind AnnouncementKind) error

	// Call records
	MarkAnnouncedCalls []struct {
		OwnerID string
		ID      string
		Kind    AnnouncementKind
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{matches: make(map[string]*Match)}
}

func (m *MockStore) Plan(ownerID string, plan Plan) (*Match, error) {
	if err := plan.validate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	match := &Match{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		TeamA:      plan.TeamA,
		TeamB:      plan.TeamB,
		Stats:      plan.Stats,
		Prediction: plan.Prediction,
		Location:   plan.Location,
		Date:       plan.Date,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	m.matches[match.ID] = match
	out := *match
	return &out, nil
}

func (m *MockStore) Get(ownerID, id string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.matches[id]
	if !ok || match.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	out := *match
	return &out, nil
}

func (m *MockStore) List(ownerID string) ([]Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Match{}
	for _, match := range m.matches {
		if match.OwnerID == ownerID {
			out = append(out, *match)
		}
	}
	slices.SortFunc(out, func(a, b Match) int { return b.Date.Compare(a.Date) })
	return out, nil
}

func (m *MockStore) Update(ownerID, id string, u Update) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.matches[id]
	if !ok || match.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	updated, err := u.apply(*match)
	if err != nil {
		return nil, err
	}
	*match = updated
	return &updated, nil
}

func (m *MockStore) Delete(ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.matches[id]
	if !ok || match.OwnerID != ownerID {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	delete(m.matches, id)
	return nil
}

func (m *MockStore) MarkAnnounced(ownerID, id string, kind AnnouncementKind) error {
	m.mu.Lock()
	m.MarkAnnouncedCalls = append(m.MarkAnnouncedCalls, struct {
		OwnerID string
		ID      string
		Kind    AnnouncementKind
	}{ownerID, id, kind})
	m.mu.Unlock()
	if m.MarkAnnouncedFunc != nil {
		return m.MarkAnnouncedFunc(ownerID, id, kind)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.matches[id]
	if !ok || match.OwnerID != ownerID {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	now := time.Now().UTC()
	if kind == AnnouncementResult {
		match.ResultAnnouncedAt = &now
	} else {
		match.PlannedAnnouncedAt = &now
	}
	return nil
}
