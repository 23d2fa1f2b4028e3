package balancer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Position is the role a player usually takes on the pitch.
type Position string

const (
	Goalkeeper Position = "Goalkeeper"
	Defender   Position = "Defender"
	Midfielder Position = "Midfielder"
	Forward    Position = "Forward"
)

// positionAliases maps accepted spellings to a Position. The Turkish labels
// are what the first version of the roster screens stored.
var positionAliases = map[string]Position{
	"goalkeeper": Goalkeeper,
	"gk":         Goalkeeper,
	"keeper":     Goalkeeper,
	"kaleci":     Goalkeeper,
	"defender":   Defender,
	"def":        Defender,
	"defans":     Defender,
	"midfielder": Midfielder,
	"mid":        Midfielder,
	"ortasaha":   Midfielder,
	"forward":    Forward,
	"fwd":        Forward,
	"forvet":     Forward,
}

// ParsePosition resolves a position name, case-insensitively.
func ParsePosition(s string) (Position, error) {
	if p, ok := positionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown position %q", s)
}

// Valid reports whether p is one of the four known positions.
func (p Position) Valid() bool {
	switch p {
	case Goalkeeper, Defender, Midfielder, Forward:
		return true
	}
	return false
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("position must be a string: %w", err)
	}
	parsed, err := ParsePosition(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Player is the engine's view of a roster entry. It is treated as a value and
// never modified.
type Player struct {
	ID       string   `json:"id" msgpack:"id"`
	Name     string   `json:"name" msgpack:"name"`
	Position Position `json:"position" msgpack:"position"`
	Rating   int      `json:"rating" msgpack:"rating"`
}

// Pairing is a split of players into two teams.
type Pairing struct {
	TeamA []Player `json:"teamA" msgpack:"team_a"`
	TeamB []Player `json:"teamB" msgpack:"team_b"`
}

// Stats holds the summed ratings of both teams. Diff is always non-negative.
type Stats struct {
	PowerA int `json:"powerA" msgpack:"power_a"`
	PowerB int `json:"powerB" msgpack:"power_b"`
	Diff   int `json:"diff" msgpack:"diff"`
}

// Side names one of the two teams.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Result is the outcome of a Generate call.
type Result struct {
	TeamA      []Player `json:"teamA"`
	TeamB      []Player `json:"teamB"`
	Stats      Stats    `json:"stats"`
	Prediction string   `json:"prediction"`
	Favourite  Side     `json:"favourite"`
	Attempts   int      `json:"attempts"`
}

// Pairing returns the teams of r, suitable as the previous pairing of a re-roll.
func (r *Result) Pairing() *Pairing {
	return &Pairing{TeamA: r.TeamA, TeamB: r.TeamB}
}
