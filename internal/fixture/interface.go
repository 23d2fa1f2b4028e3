package fixture

// FixtureStore persists the matches of each organizer.
type FixtureStore interface {
	Plan(ownerID string, plan Plan) (*Match, error)
	Get(ownerID, id string) (*Match, error)
	List(ownerID string) ([]Match, error)
	Update(ownerID, id string, u Update) (*Match, error)
	Delete(ownerID, id string) error
	MarkAnnounced(ownerID, id string, kind AnnouncementKind) error
}
