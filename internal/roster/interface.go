package roster

// RosterStore defines the interface for an organizer's player list.
type RosterStore interface {
	AddPlayer(ownerID string, in PlayerInput) (*Player, error)
	GetPlayers(ownerID string) ([]Player, error)
	GetPlayersByID(ownerID string, ids []string) ([]Player, error)
	UpdatePlayer(ownerID, id string, in PlayerInput) (*Player, error)
	DeletePlayer(ownerID, id string) error
	Count(ownerID string) (int, error)
}
