package fixture

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// store handles all database operations for matches.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new FixtureStore.
func New(db *sql.DB) FixtureStore {
	return &store{
		db: db,
	}
}

const selectMatch = `
	SELECT id, owner_id, teams_blob, power_a, power_b, power_diff, prediction, location,
		match_date, score_a, score_b, mvp, status, created_at, planned_announced_at, result_announced_at
	FROM matches`

func (s *store) Plan(ownerID string, plan Plan) (*Match, error) {
	if err := plan.validate(); err != nil {
		return nil, err
	}
	blob, err := msgpack.Marshal(teams{TeamA: plan.TeamA, TeamB: plan.TeamB})
	if err != nil {
		return nil, fmt.Errorf("failed to encode teams: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := &Match{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		TeamA:      plan.TeamA,
		TeamB:      plan.TeamB,
		Stats:      plan.Stats,
		Prediction: plan.Prediction,
		Location:   plan.Location,
		Date:       plan.Date.UTC().Truncate(time.Second),
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	_, err = s.db.Exec(`
		INSERT INTO matches (id, owner_id, teams_blob, power_a, power_b, power_diff, prediction, location, match_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, ownerID, blob, m.Stats.PowerA, m.Stats.PowerB, m.Stats.Diff, m.Prediction, m.Location,
		m.Date.Unix(), string(m.Status), m.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}
	log.Info("Planned match", "owner", ownerID, "id", m.ID, "date", m.Date)
	return m, nil
}

func (s *store) Get(ownerID, id string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(ownerID, id)
}

func (s *store) List(ownerID string) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(selectMatch+` WHERE owner_id = ? ORDER BY match_date DESC, created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

// Update applies u to the match inside a transaction so concurrent result
// entries are not lost.
func (s *store) Update(ownerID, id string, u Update) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := scanMatch(tx.QueryRow(selectMatch+` WHERE owner_id = ? AND id = ?`, ownerID, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	updated, err := u.apply(*current)
	if err != nil {
		return nil, err
	}

	var mvp *string
	if updated.MVP != "" {
		mvp = &updated.MVP
	}
	_, err = tx.Exec(`
		UPDATE matches SET score_a = ?, score_b = ?, mvp = ?, location = ?, match_date = ?, status = ?
		WHERE owner_id = ? AND id = ?
	`, updated.ScoreA, updated.ScoreB, mvp, updated.Location, updated.Date.Unix(), string(updated.Status), ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update match %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match update: %w", err)
	}
	log.Info("Updated match", "owner", ownerID, "id", id, "status", updated.Status)
	return &updated, nil
}

func (s *store) Delete(ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM matches WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	log.Info("Deleted match", "owner", ownerID, "id", id)
	return nil
}

// MarkAnnounced records when the planned or result announcement went out.
func (s *store) MarkAnnounced(ownerID, id string, kind AnnouncementKind) error {
	var column string
	switch kind {
	case AnnouncementPlanned:
		column = "planned_announced_at"
	case AnnouncementResult:
		column = "result_announced_at"
	default:
		return fmt.Errorf("unknown announcement kind %q", kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE matches SET `+column+` = ? WHERE owner_id = ? AND id = ?`, time.Now().Unix(), ownerID, id)
	if err != nil {
		return fmt.Errorf("failed to mark match %s announced: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	log.Debug("Marked match announced", "id", id, "kind", kind)
	return nil
}

func (s *store) getLocked(ownerID, id string) (*Match, error) {
	m, err := scanMatch(s.db.QueryRow(selectMatch+` WHERE owner_id = ? AND id = ?`, ownerID, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	return m, err
}

func scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var (
		m                   Match
		blob                []byte
		status              string
		date, createdAt     int64
		scoreA, scoreB      sql.NullInt64
		mvp                 sql.NullString
		plannedAt, resultAt sql.NullInt64
	)
	err := scanner.Scan(&m.ID, &m.OwnerID, &blob, &m.Stats.PowerA, &m.Stats.PowerB, &m.Stats.Diff,
		&m.Prediction, &m.Location, &date, &scoreA, &scoreB, &mvp, &status, &createdAt, &plannedAt, &resultAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}

	var t teams
	if err := msgpack.Unmarshal(blob, &t); err != nil {
		return nil, fmt.Errorf("failed to decode teams of match %s: %w", m.ID, err)
	}
	m.TeamA, m.TeamB = t.TeamA, t.TeamB
	m.Date = time.Unix(date, 0).UTC()
	m.CreatedAt = time.Unix(createdAt, 0).UTC()
	m.Status = Status(status)
	m.MVP = mvp.String
	if scoreA.Valid {
		v := int(scoreA.Int64)
		m.ScoreA = &v
	}
	if scoreB.Valid {
		v := int(scoreB.Int64)
		m.ScoreB = &v
	}
	if plannedAt.Valid {
		v := time.Unix(plannedAt.Int64, 0).UTC()
		m.PlannedAnnouncedAt = &v
	}
	if resultAt.Valid {
		v := time.Unix(resultAt.Int64, 0).UTC()
		m.ResultAnnouncedAt = &v
	}
	return &m, nil
}
