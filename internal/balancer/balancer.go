// Package balancer splits a selection of players into two teams of similar
// strength.
//
// Each attempt sorts the field players by rating, randomly swaps adjacent
// pairs, spreads the goalkeepers across both teams and then hands every field
// player to the weaker side. When a previous pairing is supplied the search
// (with a Team A, possibly empty) retries until Team A differs enough from the
// previous Team A, giving up
// after MaxAttempts and returning the last attempt.
package balancer

import (
	"errors"
	"fmt"
	"slices"
)

const (
	// MaxAttempts bounds the search loop of Generate.
	MaxAttempts = 50
	// MinPlayers is the smallest selection that can be split.
	MinPlayers = 2
	// MaxGoalkeepers is the number of goalkeepers a match supports.
	MaxGoalkeepers = 2
	// diversityMinPlayers is the selection size from which re-rolls must
	// change Team A.
	diversityMinPlayers = 6
	// diversityMinChanged is how many Team A members must be new.
	diversityMinChanged = 3
)

var (
	ErrInsufficientPlayers = errors.New("at least 2 players are required")
	ErrTooManyGoalkeepers  = errors.New("at most 2 goalkeepers can be selected")
)

// Engine generates balanced pairings. The zero value is not usable, use New.
type Engine struct {
	rand Source
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource makes the engine draw its random decisions from src.
func WithSource(src Source) Option {
	return func(e *Engine) {
		e.rand = src
	}
}

// New creates an Engine. Without options it uses the process-wide generator,
// which is safe for concurrent use.
func New(opts ...Option) *Engine {
	e := &Engine{rand: processSource{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Partition separates goalkeepers from field players, keeping the input order
// within each group.
func Partition(players []Player) (goalkeepers, field []Player, err error) {
	if len(players) < MinPlayers {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInsufficientPlayers, len(players))
	}
	for _, p := range players {
		if p.Position == Goalkeeper {
			goalkeepers = append(goalkeepers, p)
		} else {
			field = append(field, p)
		}
	}
	if len(goalkeepers) > MaxGoalkeepers {
		return nil, nil, fmt.Errorf("%w: got %d", ErrTooManyGoalkeepers, len(goalkeepers))
	}
	return goalkeepers, field, nil
}

// Generate splits players into two teams. previous may be nil, a previous
// pairing whose TeamA is nil is treated as absent.
func (e *Engine) Generate(players []Player, previous *Pairing) (*Result, error) {
	goalkeepers, field, err := Partition(players)
	if err != nil {
		return nil, err
	}

	checkDiversity := previous != nil && previous.TeamA != nil && len(players) >= diversityMinPlayers

	var res *Result
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		res = e.attempt(field, goalkeepers)
		res.Attempts = attempt
		if !checkDiversity || changedMembers(res.TeamA, previous.TeamA) >= diversityMinChanged {
			break
		}
	}
	return res, nil
}

// attempt runs one shuffle, assign and score cycle. It never touches its
// arguments.
func (e *Engine) attempt(field, goalkeepers []Player) *Result {
	order := e.biasedShuffle(field)

	var teamA, teamB []Player
	powerA, powerB := 0, 0

	if len(goalkeepers) > 0 {
		keepers := slices.Clone(goalkeepers)
		if e.rand.Float64() < 0.5 {
			slices.Reverse(keepers)
		}
		for i, gk := range keepers {
			if i%2 == 0 {
				teamA = append(teamA, gk)
				powerA += gk.Rating
			} else {
				teamB = append(teamB, gk)
				powerB += gk.Rating
			}
		}
	}

	for _, p := range order {
		if powerA <= powerB {
			teamA = append(teamA, p)
			powerA += p.Rating
		} else {
			teamB = append(teamB, p)
			powerB += p.Rating
		}
	}

	diff := powerA - powerB
	prediction, favourite := e.predict(diff)
	if diff < 0 {
		diff = -diff
	}

	return &Result{
		TeamA:      teamA,
		TeamB:      teamB,
		Stats:      Stats{PowerA: powerA, PowerB: powerB, Diff: diff},
		Prediction: prediction,
		Favourite:  favourite,
	}
}

// biasedShuffle returns a copy of players sorted by rating, strongest first,
// in which each adjacent pair (0,1), (2,3), ... is swapped with probability
// one half. Players only ever move within their pair.
func (e *Engine) biasedShuffle(players []Player) []Player {
	out := slices.Clone(players)
	slices.SortStableFunc(out, func(a, b Player) int {
		return b.Rating - a.Rating
	})
	for i := 0; i+1 < len(out); i += 2 {
		if e.rand.Float64() < 0.5 {
			out[i], out[i+1] = out[i+1], out[i]
		}
	}
	return out
}

// predict names the stronger team for a signed power difference. A perfect
// balance is settled by a coin toss.
func (e *Engine) predict(diff int) (string, Side) {
	switch {
	case diff > 0:
		return fmt.Sprintf("🏆 Team A favoured (+%d power)", diff), SideA
	case diff < 0:
		return fmt.Sprintf("🏆 Team B favoured (+%d power)", -diff), SideB
	}
	winner := SideA
	if e.rand.Float64() >= 0.5 {
		winner = SideB
	}
	return fmt.Sprintf("🔥 Perfect balance! Team %s takes it on penalties!", winner), winner
}

// changedMembers counts the players of teamA that were not in previousA.
func changedMembers(teamA, previousA []Player) int {
	seen := make(map[string]struct{}, len(previousA))
	for _, p := range previousA {
		seen[p.ID] = struct{}{}
	}
	same := 0
	for _, p := range teamA {
		if _, ok := seen[p.ID]; ok {
			same++
		}
	}
	return len(teamA) - same
}
