package holdem

import (
	"galaxypoker-server/pkg/deck"
	"galaxypoker-server/pkg/poker"
)

// Winner records a payout from a single pot to a single seat
type Winner struct {
	PlayerID   int64 `json:"playerId"`
	SeatNumber int   `json:"seatNumber"`
	WinAmount  int   `json:"winAmount"`
	// SidePotIndex is the index into GameResult.SidePots, or -1 when the
	// hand was won uncontested
	SidePotIndex int             `json:"sidePotIndex"`
	HandRank     *poker.HandRank `json:"handRank,omitempty"`
	HoleCards    deck.Hand       `json:"holeCards,omitempty"`
}

// GameResult is the final accounting for a completed hand
type GameResult struct {
	HandID    string     `json:"handId"`
	Winners   []*Winner  `json:"winners"`
	SidePots  []*SidePot `json:"sidePots"`
	Community deck.Hand  `json:"community"`
	WonByFold bool       `json:"wonByFold"`
}

// TotalPaid returns the sum of all payouts
func (r *GameResult) TotalPaid() int {
	total := 0
	for _, w := range r.Winners {
		total += w.WinAmount
	}

	return total
}
