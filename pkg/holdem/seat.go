package holdem

import (
	"encoding/json"
	"fmt"

	"galaxypoker-server/pkg/deck"
)

// SeatStatus is the status of a seat within the current hand
type SeatStatus int

// seat status constants
const (
	StatusActive SeatStatus = iota
	StatusFolded
	StatusAllIn
	StatusSittingOut
)

func (s SeatStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusFolded:
		return "folded"
	case StatusAllIn:
		return "all-in"
	case StatusSittingOut:
		return "sitting-out"
	}

	panic(fmt.Sprintf("unknown seat status: %d", int(s)))
}

// MarshalJSON encodes JSON
func (s SeatStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Seat is a single seat in the hand. Seats are mutated only by the betting
// state machine in response to a validated action.
type Seat struct {
	Number   int
	PlayerID int64

	Stack            int
	HoleCards        deck.Hand
	RoundBet         int
	TotalContributed int
	Status           SeatStatus

	IsDealer     bool
	IsSmallBlind bool
	IsBigBlind   bool

	// acted is true once the seat has acted since the last full raise
	acted bool
	// canRaise is false when a short all-in failed to reopen the betting
	canRaise bool
	// revealed is true when the hole cards were shown at showdown
	revealed bool
}

// commit moves up to amount chips from the seat's stack into its round bet,
// returning the amount actually committed. A commit that exhausts the stack
// puts the seat all-in.
func (s *Seat) commit(amount int) int {
	if amount > s.Stack {
		amount = s.Stack
	}

	s.Stack -= amount
	s.RoundBet += amount
	s.TotalContributed += amount

	if s.Stack == 0 && s.Status == StatusActive {
		s.Status = StatusAllIn
	}

	return amount
}

// canAct returns true if the seat can still take betting actions
func (s *Seat) canAct() bool {
	return s.Status == StatusActive
}

// inHand returns true if the seat has not folded and is playing this hand
func (s *Seat) inHand() bool {
	return s.Status == StatusActive || s.Status == StatusAllIn
}
