package roster

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/kickabout/internal/balancer"
)

// store handles all database operations for the roster.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new RosterStore.
func New(db *sql.DB) RosterStore {
	return &store{
		db: db,
	}
}

func (in PlayerInput) validate() (PlayerInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, fmt.Errorf("%w: name is required", ErrInvalidPlayer)
	}
	if !in.Position.Valid() {
		return in, fmt.Errorf("%w: unknown position %q", ErrInvalidPlayer, in.Position)
	}
	if in.Rating < MinRating || in.Rating > MaxRating {
		return in, fmt.Errorf("%w: rating must be between %d and %d, got %d", ErrInvalidPlayer, MinRating, MaxRating, in.Rating)
	}
	return in, nil
}

func (s *store) AddPlayer(ownerID string, in PlayerInput) (*Player, error) {
	in, err := in.validate()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &Player{OwnerID: ownerID, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	p.ID = uuid.NewString()
	p.Name = in.Name
	p.Position = in.Position
	p.Rating = in.Rating

	_, err = s.db.Exec(`
		INSERT INTO players (id, owner_id, name, position, rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, ownerID, p.Name, string(p.Position), p.Rating, p.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}
	log.Info("Added player", "owner", ownerID, "id", p.ID, "name", p.Name)
	return p, nil
}

func (s *store) GetPlayers(ownerID string) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, owner_id, name, position, rating, created_at
		FROM players
		WHERE owner_id = ?
		ORDER BY rating DESC, name ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// GetPlayersByID returns the requested players in the order of ids. Every id
// must belong to ownerID and appear once.
func (s *store) GetPlayersByID(ownerID string, ids []string) ([]Player, error) {
	if err := checkUniqueIDs(ids); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]Player, 0, len(ids))
	for _, id := range ids {
		p, err := s.getLocked(ownerID, id)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, nil
}

func (s *store) UpdatePlayer(ownerID, id string, in PlayerInput) (*Player, error) {
	in, err := in.validate()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE players SET name = ?, position = ?, rating = ?
		WHERE owner_id = ? AND id = ?
	`, in.Name, string(in.Position), in.Rating, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update player %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	log.Info("Updated player", "owner", ownerID, "id", id)
	return s.getLocked(ownerID, id)
}

func (s *store) DeletePlayer(ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM players WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	log.Info("Deleted player", "owner", ownerID, "id", id)
	return nil
}

func (s *store) Count(ownerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM players WHERE owner_id = ?`, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return n, nil
}

func (s *store) getLocked(ownerID, id string) (*Player, error) {
	row := s.db.QueryRow(`
		SELECT id, owner_id, name, position, rating, created_at
		FROM players
		WHERE owner_id = ? AND id = ?
	`, ownerID, id)
	p, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	return p, err
}

func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var (
		p         Player
		position  string
		createdAt int64
	)
	if err := scanner.Scan(&p.ID, &p.OwnerID, &p.Name, &position, &p.Rating, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	pos, err := balancer.ParsePosition(position)
	if err != nil {
		log.Warn("Stored player has an unknown position", "id", p.ID, "position", position)
		pos = balancer.Position(position)
	}
	p.Position = pos
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &p, nil
}

// checkUniqueIDs rejects a selection that names the same player twice.
func checkUniqueIDs(ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: player %s is selected more than once", ErrInvalidPlayer, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
