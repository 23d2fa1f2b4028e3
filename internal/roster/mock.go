package roster

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockStore is an in-memory RosterStore for testing. The Func hooks, when
// set, replace the default behaviour. It is safe for concurrent use.
type MockStore struct {
	mu      sync.Mutex
	players map[string][]Player

	AddPlayerFunc      func(ownerID string, in PlayerInput) (*Player, error)
	GetPlayersByIDFunc func(ownerID string, ids []string) ([]Player, error)

	// Call records
	GetPlayersByIDCalls [][]string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{players: make(map[string][]Player)}
}

func (m *MockStore) AddPlayer(ownerID string, in PlayerInput) (*Player, error) {
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(ownerID, in)
	}
	in, err := in.validate()
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := Player{OwnerID: ownerID, CreatedAt: time.Now().UTC()}
	p.ID = uuid.NewString()
	p.Name, p.Position, p.Rating = in.Name, in.Position, in.Rating
	m.players[ownerID] = append(m.players[ownerID], p)
	return &p, nil
}

func (m *MockStore) GetPlayers(ownerID string) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Player{}, m.players[ownerID]...), nil
}

func (m *MockStore) GetPlayersByID(ownerID string, ids []string) ([]Player, error) {
	m.mu.Lock()
	m.GetPlayersByIDCalls = append(m.GetPlayersByIDCalls, ids)
	m.mu.Unlock()
	if m.GetPlayersByIDFunc != nil {
		return m.GetPlayersByIDFunc(ownerID, ids)
	}
	if err := checkUniqueIDs(ids); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Player, 0, len(ids))
	for _, id := range ids {
		i := m.indexLocked(ownerID, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
		}
		out = append(out, m.players[ownerID][i])
	}
	return out, nil
}

func (m *MockStore) UpdatePlayer(ownerID, id string, in PlayerInput) (*Player, error) {
	in, err := in.validate()
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexLocked(ownerID, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	p := &m.players[ownerID][i]
	p.Name, p.Position, p.Rating = in.Name, in.Position, in.Rating
	updated := *p
	return &updated, nil
}

func (m *MockStore) DeletePlayer(ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexLocked(ownerID, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	m.players[ownerID] = append(m.players[ownerID][:i], m.players[ownerID][i+1:]...)
	return nil
}

func (m *MockStore) Count(ownerID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.players[ownerID]), nil
}

func (m *MockStore) indexLocked(ownerID, id string) int {
	for i, p := range m.players[ownerID] {
		if p.ID == id {
			return i
		}
	}
	return -1
}
