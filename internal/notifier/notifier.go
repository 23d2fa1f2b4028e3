package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kickabout/internal/balancer"
	"github.com/mauv0809/kickabout/internal/settings"
)

// ErrNotConfigured is returned when an organizer has no delivery channel set up.
var ErrNotConfigured = errors.New("no notification channel configured, set one up in settings")

// Announcement is what gets posted to the organizer's group. It is a result
// announcement when both scores are present, otherwise a planned one.
type Announcement struct {
	TeamA      []balancer.Player `json:"teamA" msgpack:"team_a"`
	TeamB      []balancer.Player `json:"teamB" msgpack:"team_b"`
	Location   string            `json:"location" msgpack:"location"`
	Date       time.Time         `json:"date" msgpack:"date"`
	Prediction string            `json:"prediction" msgpack:"prediction"`
	ScoreA     *int              `json:"scoreA,omitempty" msgpack:"score_a"`
	ScoreB     *int              `json:"scoreB,omitempty" msgpack:"score_b"`
	MVP        string            `json:"mvp,omitempty" msgpack:"mvp"`
}

// IsResult reports whether a carries a final score.
func (a *Announcement) IsResult() bool {
	return a.ScoreA != nil && a.ScoreB != nil
}

// Sender delivers announcements on one channel.
type Sender interface {
	Name() string
	Configured(s settings.Settings) bool
	Send(ctx context.Context, s settings.Settings, a *Announcement, dryRun bool) error
}

// Notifier announces matches to an organizer's group on every channel they set up.
type Notifier interface {
	Announce(ctx context.Context, userID string, a *Announcement, dryRun bool) error
}

var _ Notifier = (*Dispatcher)(nil)

// Dispatcher fans an announcement out to the configured senders.
type Dispatcher struct {
	settings settings.Store
	senders  []Sender
}

func NewDispatcher(store settings.Store, senders ...Sender) *Dispatcher {
	return &Dispatcher{settings: store, senders: senders}
}

// PartialError is returned when some channels delivered and others failed.
// The announcement reached the group, Err holds the failures.
type PartialError struct {
	Delivered []string
	Err       error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("delivered on %s only: %v", strings.Join(e.Delivered, ", "), e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}

// Announce sends a on every channel configured for userID. A failing channel
// does not stop the others. If every configured channel fails the failures
// are returned joined, if only some fail a *PartialError is returned.
func (d *Dispatcher) Announce(ctx context.Context, userID string, a *Announcement, dryRun bool) error {
	s, err := d.settings.Get(userID)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var (
		errs      []error
		delivered []string
		attempted int
	)
	for _, sender := range d.senders {
		if !sender.Configured(s) {
			continue
		}
		attempted++
		if err := sender.Send(ctx, s, a, dryRun); err != nil {
			log.Error("Failed to send announcement", "channel", sender.Name(), "user", userID, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", sender.Name(), err))
			continue
		}
		delivered = append(delivered, sender.Name())
	}
	if attempted == 0 {
		return ErrNotConfigured
	}
	if len(errs) > 0 && len(delivered) > 0 {
		return &PartialError{Delivered: delivered, Err: errors.Join(errs...)}
	}
	return errors.Join(errs...)
}

// Delivered reports whether err still means the announcement reached at
// least one channel.
func Delivered(err error) bool {
	var partial *PartialError
	return err == nil || errors.As(err, &partial)
}
