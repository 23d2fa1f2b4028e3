package roster

import (
	"errors"
	"time"

	"github.com/mauv0809/kickabout/internal/balancer"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidPlayer  = errors.New("invalid player")
)

const (
	MinRating = 1
	MaxRating = 100
)

// Player is a roster entry owned by one organizer.
type Player struct {
	balancer.Player
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// PlayerInput carries the editable fields of a player.
type PlayerInput struct {
	Name     string            `json:"name"`
	Position balancer.Position `json:"position"`
	Rating   int               `json:"rating"`
}

// EnginePlayers strips the roster metadata for the balancer.
func EnginePlayers(players []Player) []balancer.Player {
	out := make([]balancer.Player, len(players))
	for i, p := range players {
		out[i] = p.Player
	}
	return out
}
