package announcer

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kickabout/internal/fixture"
	"github.com/mauv0809/kickabout/internal/metrics"
	"github.com/mauv0809/kickabout/internal/notifier"
	"github.com/mauv0809/kickabout/internal/pubsub"
)

// New creates a new Announcer. ps may be nil, announcements are then sent
// synchronously.
func New(store Store, notifier notifier.Notifier, ps pubsub.PubSubClient, counters metrics.Store) *Announcer {
	return &Announcer{
		store:    store,
		notifier: notifier,
		pubsub:   ps,
		counters: counters,
	}
}

// FromMatch builds the announcement for a stored match. Scores are only
// included once the match is completed.
func FromMatch(m *fixture.Match) *notifier.Announcement {
	a := &notifier.Announcement{
		TeamA:      m.TeamA,
		TeamB:      m.TeamB,
		Location:   m.Location,
		Date:       m.Date,
		Prediction: m.Prediction,
	}
	if m.Status == fixture.StatusCompleted {
		a.ScoreA = m.ScoreA
		a.ScoreB = m.ScoreB
		a.MVP = m.MVP
	}
	return a
}

func kindOf(a *notifier.Announcement) fixture.AnnouncementKind {
	if a.IsResult() {
		return fixture.AnnouncementResult
	}
	return fixture.AnnouncementPlanned
}

// AnnounceMatch announces a stored match: the line-ups while it is pending,
// the result once it is completed.
func (p *Announcer) AnnounceMatch(ctx context.Context, ownerID, matchID string, dryRun bool) (Delivery, error) {
	m, err := p.store.Get(ownerID, matchID)
	if err != nil {
		return "", err
	}
	a := FromMatch(m)
	log.Info("Announcing match", "owner", ownerID, "matchID", matchID, "kind", kindOf(a))
	return p.deliver(ctx, AnnounceEvent{UserID: ownerID, MatchID: matchID, Kind: kindOf(a), Announcement: *a}, dryRun)
}

// Announce delivers an ad-hoc announcement that is not tied to a stored match.
func (p *Announcer) Announce(ctx context.Context, ownerID string, a *notifier.Announcement, dryRun bool) (Delivery, error) {
	if a == nil {
		return "", errors.New("announcement is required")
	}
	return p.deliver(ctx, AnnounceEvent{UserID: ownerID, Kind: kindOf(a), Announcement: *a}, dryRun)
}

// HandleEvent delivers a queued announcement pushed back by Pub/Sub. A nil
// return acknowledges the event. Partial deliveries and organizers without a
// channel are acknowledged, only a send that failed on every channel is
// returned for redelivery.
func (p *Announcer) HandleEvent(ctx context.Context, data []byte) error {
	var ev AnnounceEvent
	if err := p.decode(data, &ev); err != nil {
		return err
	}
	err := p.send(ctx, ev, false)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, notifier.ErrNotConfigured):
		log.Warn("Dropping queued announcement, no channel configured", "owner", ev.UserID, "matchID", ev.MatchID)
		return nil
	case notifier.Delivered(err):
		log.Warn("Queued announcement only partly delivered", "owner", ev.UserID, "matchID", ev.MatchID, "error", err)
		return nil
	}
	return err
}

func (p *Announcer) decode(data []byte, ev *AnnounceEvent) error {
	if p.pubsub != nil {
		return p.pubsub.ProcessMessage(data, ev)
	}
	return pubsub.Decode(data, ev)
}

func (p *Announcer) deliver(ctx context.Context, ev AnnounceEvent, dryRun bool) (Delivery, error) {
	if dryRun {
		if err := p.send(ctx, ev, true); err != nil {
			return "", err
		}
		return DeliveryDryRun, nil
	}
	if p.pubsub != nil {
		if err := p.pubsub.SendMessage(pubsub.EventAnnounce, ev); err != nil {
			return "", fmt.Errorf("failed to queue announcement: %w", err)
		}
		p.counters.Increment(metrics.KeyAnnouncementsQueue)
		return DeliveryQueued, nil
	}
	err := p.send(ctx, ev, false)
	switch {
	case err == nil:
		return DeliverySent, nil
	case notifier.Delivered(err):
		log.Warn("Announcement only partly delivered", "owner", ev.UserID, "matchID", ev.MatchID, "error", err)
		return DeliveryPartial, nil
	}
	return "", err
}

// send hands ev to the notifier. The announcement counts as sent, and the
// match as announced, as soon as one channel delivered it.
func (p *Announcer) send(ctx context.Context, ev AnnounceEvent, dryRun bool) error {
	err := p.notifier.Announce(ctx, ev.UserID, &ev.Announcement, dryRun)
	if dryRun || !notifier.Delivered(err) {
		return err
	}
	p.counters.Increment(metrics.KeyAnnouncementsSent)
	if ev.MatchID == "" {
		return err
	}
	// Marking is best effort once the message is out.
	if markErr := p.store.MarkAnnounced(ev.UserID, ev.MatchID, ev.Kind); markErr != nil {
		log.Error("Failed to mark match announced", "error", markErr, "matchID", ev.MatchID, "kind", ev.Kind)
	}
	return err
}
