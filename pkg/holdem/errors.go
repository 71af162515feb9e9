package holdem

import (
	"errors"
	"fmt"
)

// InvalidActionError is a recoverable rejection of a player action.
// The message is safe to surface to the acting client, and the game
// state is guaranteed to be unchanged.
type InvalidActionError struct {
	Reason string
}

func (e InvalidActionError) Error() string {
	return e.Reason
}

func invalidActionf(format string, a ...interface{}) InvalidActionError {
	return InvalidActionError{Reason: fmt.Sprintf(format, a...)}
}

// InsufficientStackError is returned when an action requires more chips
// than the seat has behind. Recoverable; state is unchanged.
type InsufficientStackError struct {
	SeatNumber int
	Amount     int
	Stack      int
}

func (e InsufficientStackError) Error() string {
	return fmt.Sprintf("seat %d cannot cover %d with a stack of %d", e.SeatNumber, e.Amount, e.Stack)
}

// ErrDeckExhausted is a fatal error when the deck runs out of cards mid-hand.
// It should be unreachable with valid seat counts; if it happens the hand is
// aborted and flagged for audit.
var ErrDeckExhausted = errors.New("deck exhausted")

// StateCorruptionError is a fatal error raised when a consistency check
// fails. The hand is aborted without resolving funds and the event must be
// escalated to an operator.
type StateCorruptionError struct {
	Detail string
}

func (e StateCorruptionError) Error() string {
	return fmt.Sprintf("state corruption: %s", e.Detail)
}

// IsFatal returns true if the error aborts the hand rather than just
// rejecting a single action
func IsFatal(err error) bool {
	if errors.Is(err, ErrDeckExhausted) {
		return true
	}

	var sc StateCorruptionError
	return errors.As(err, &sc)
}
