package announcer

import (
	"github.com/mauv0809/kickabout/internal/fixture"
	"github.com/mauv0809/kickabout/internal/metrics"
	"github.com/mauv0809/kickabout/internal/notifier"
	"github.com/mauv0809/kickabout/internal/pubsub"
)

// Store defines the match operations required by the announcer.
type Store interface {
	Get(ownerID, id string) (*fixture.Match, error)
	MarkAnnounced(ownerID, id string, kind fixture.AnnouncementKind) error
}

// Announcer turns matches into announcements and gets them delivered, either
// right away or through Pub/Sub.
type Announcer struct {
	store    Store
	notifier notifier.Notifier
	pubsub   pubsub.PubSubClient
	counters metrics.Store
}

// Delivery says what happened to an announcement.
type Delivery string

const (
	DeliverySent    Delivery = "sent"
	DeliveryPartial Delivery = "partial"
	DeliveryQueued  Delivery = "queued"
	DeliveryDryRun  Delivery = "dry-run"
)

// AnnounceEvent is the Pub/Sub payload of a queued announcement. MatchID is
// empty for ad-hoc announcements.
type AnnounceEvent struct {
	UserID       string                   `msgpack:"user_id"`
	MatchID      string                   `msgpack:"match_id"`
	Kind         fixture.AnnouncementKind `msgpack:"kind"`
	Announcement notifier.Announcement    `msgpack:"announcement"`
}
