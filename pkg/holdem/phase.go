package holdem

import (
	"encoding/json"
	"fmt"
)

// Phase represents where the hand is in its lifecycle
type Phase int

// constants for Phase
const (
	PhaseWaiting Phase = iota
	PhasePreFlop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
	PhaseHandOverByFold
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePreFlop:
		return "pre-flop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	case PhaseHandOverByFold:
		return "hand-over-by-fold"
	}

	panic(fmt.Sprintf("unknown phase: %d", int(p)))
}

// MarshalJSON encodes JSON
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(p),
		Name: p.String(),
	})
}

// CommunityCardCount returns the number of community cards that must be
// revealed in the phase
func (p Phase) CommunityCardCount() int {
	switch p {
	case PhaseFlop:
		return 3
	case PhaseTurn:
		return 4
	case PhaseRiver, PhaseShowdown:
		return 5
	}

	return 0
}

// IsBetting returns true if the phase accepts player actions
func (p Phase) IsBetting() bool {
	switch p {
	case PhasePreFlop, PhaseFlop, PhaseTurn, PhaseRiver:
		return true
	}

	return false
}

// IsTerminal returns true once the hand has ended
func (p Phase) IsTerminal() bool {
	return p == PhaseShowdown || p == PhaseHandOverByFold
}
