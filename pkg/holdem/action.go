package holdem

import (
	"encoding/json"
	"fmt"
)

// ActionType enumerates every action a player can take.
// The state machine switches over this type exhaustively; there is no
// catch-all for unknown actions.
type ActionType int

// action type constants
const (
	ActionFold ActionType = iota
	ActionCheck
	ActionCall
	ActionBet
	ActionRaise
	ActionAllIn
)

func (a ActionType) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionBet:
		return "bet"
	case ActionRaise:
		return "raise"
	case ActionAllIn:
		return "all-in"
	}

	panic(fmt.Sprintf("unknown action type: %d", int(a)))
}

// MarshalJSON encodes the action type into JSON
func (a ActionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(a),
		Name: a.String(),
	})
}

// ActionTypeFromString returns an action type for the given identifier
func ActionTypeFromString(s string) (ActionType, error) {
	switch s {
	case "fold":
		return ActionFold, nil
	case "check":
		return ActionCheck, nil
	case "call":
		return ActionCall, nil
	case "bet":
		return ActionBet, nil
	case "raise":
		return ActionRaise, nil
	case "all-in":
		return ActionAllIn, nil
	}

	return 0, fmt.Errorf("unknown action for identifier: %s", s)
}

// Action is a player action. For a bet, Amount is the number of chips the
// seat puts in this round; for a raise, Amount is the total the seat raises
// to (the new round bet). Amount is ignored for all other action types.
type Action struct {
	Type   ActionType `json:"type"`
	Amount int        `json:"amount,omitempty"`
}

// Fold folds the hand
func Fold() Action { return Action{Type: ActionFold} }

// Check passes the action with no bet outstanding
func Check() Action { return Action{Type: ActionCheck} }

// Call matches the outstanding bet
func Call() Action { return Action{Type: ActionCall} }

// Bet opens the betting for the round
func Bet(amount int) Action { return Action{Type: ActionBet, Amount: amount} }

// Raise raises the outstanding bet to the provided total
func Raise(amount int) Action { return Action{Type: ActionRaise, Amount: amount} }

// AllIn commits the seat's entire remaining stack
func AllIn() Action { return Action{Type: ActionAllIn} }

// LogMessage returns a message formatted for the table log
func (a ActionType) LogMessage(amount int) string {
	switch a {
	case ActionFold:
		return "folded"
	case ActionCheck:
		return "checked"
	case ActionCall:
		return fmt.Sprintf("called ${%d}", amount)
	case ActionBet:
		return fmt.Sprintf("bet ${%d}", amount)
	case ActionRaise:
		return fmt.Sprintf("raised to ${%d}", amount)
	case ActionAllIn:
		return fmt.Sprintf("went all-in for ${%d}", amount)
	}

	return ""
}
