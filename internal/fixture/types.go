package fixture

import (
	"errors"
	"fmt"
	"time"

	"github.com/mauv0809/kickabout/internal/balancer"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrInvalidMatch  = errors.New("invalid match")
	ErrInvalidUpdate = errors.New("invalid match update")
)

// Status is the lifecycle state of a match.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// AnnouncementKind tells which announcement of a match was sent.
type AnnouncementKind string

const (
	AnnouncementPlanned AnnouncementKind = "planned"
	AnnouncementResult  AnnouncementKind = "result"
)

// Outcome of a completed match.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeA    Outcome = "A"
	OutcomeB    Outcome = "B"
	OutcomeDraw Outcome = "draw"
)

// Match is a planned or played game between two generated teams.
type Match struct {
	ID                 string            `json:"id"`
	OwnerID            string            `json:"ownerId"`
	TeamA              []balancer.Player `json:"teamA"`
	TeamB              []balancer.Player `json:"teamB"`
	Stats              balancer.Stats    `json:"stats"`
	Prediction         string            `json:"prediction"`
	Location           string            `json:"location"`
	Date               time.Time         `json:"date"`
	ScoreA             *int              `json:"scoreA"`
	ScoreB             *int              `json:"scoreB"`
	MVP                string            `json:"mvp"`
	Status             Status            `json:"status"`
	CreatedAt          time.Time         `json:"createdAt"`
	PlannedAnnouncedAt *time.Time        `json:"plannedAnnouncedAt,omitempty"`
	ResultAnnouncedAt  *time.Time        `json:"resultAnnouncedAt,omitempty"`
}

// Winner returns the outcome of a completed match, OutcomeNone otherwise.
func (m *Match) Winner() Outcome {
	if m.Status != StatusCompleted || m.ScoreA == nil || m.ScoreB == nil {
		return OutcomeNone
	}
	switch {
	case *m.ScoreA > *m.ScoreB:
		return OutcomeA
	case *m.ScoreB > *m.ScoreA:
		return OutcomeB
	default:
		return OutcomeDraw
	}
}

// Plan carries what is known about a match before it is played.
type Plan struct {
	TeamA      []balancer.Player `json:"teamA"`
	TeamB      []balancer.Player `json:"teamB"`
	Stats      balancer.Stats    `json:"stats"`
	Prediction string            `json:"prediction"`
	Location   string            `json:"location"`
	Date       time.Time         `json:"date"`
}

func (p Plan) validate() error {
	if len(p.TeamA) == 0 || len(p.TeamB) == 0 {
		return fmt.Errorf("%w: both teams need at least one player", ErrInvalidMatch)
	}
	if p.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidMatch)
	}
	return nil
}

// Update is a partial change to a match. Nil fields are left untouched.
type Update struct {
	ScoreA   *int
	ScoreB   *int
	MVP      *string
	Location *string
	Date     *time.Time
	Status   *Status
}

// apply checks u against m and returns the updated copy.
func (u Update) apply(m Match) (Match, error) {
	if u.ScoreA != nil {
		if *u.ScoreA < 0 {
			return m, fmt.Errorf("%w: scoreA must not be negative", ErrInvalidUpdate)
		}
		m.ScoreA = u.ScoreA
	}
	if u.ScoreB != nil {
		if *u.ScoreB < 0 {
			return m, fmt.Errorf("%w: scoreB must not be negative", ErrInvalidUpdate)
		}
		m.ScoreB = u.ScoreB
	}
	if u.MVP != nil {
		m.MVP = *u.MVP
	}
	if u.Location != nil {
		m.Location = *u.Location
	}
	if u.Date != nil {
		if u.Date.IsZero() {
			return m, fmt.Errorf("%w: date must not be empty", ErrInvalidUpdate)
		}
		m.Date = *u.Date
	}
	if u.Status != nil {
		if !u.Status.Valid() {
			return m, fmt.Errorf("%w: unknown status %q", ErrInvalidUpdate, *u.Status)
		}
		m.Status = *u.Status
	}
	if m.Status == StatusCompleted && (m.ScoreA == nil || m.ScoreB == nil) {
		return m, fmt.Errorf("%w: a completed match needs both scores", ErrInvalidUpdate)
	}
	return m, nil
}

// teams is the stored form of the two line-ups.
type teams struct {
	TeamA []balancer.Player `msgpack:"team_a"`
	TeamB []balancer.Player `msgpack:"team_b"`
}
