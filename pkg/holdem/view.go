package holdem

import "galaxypoker-server/pkg/deck"

// SeatView is a seat as seen by a viewer. HoleCards is nil unless the
// viewer is entitled to see them.
type SeatView struct {
	Number           int        `json:"number"`
	PlayerID         int64      `json:"playerId"`
	Stack            int        `json:"stack"`
	RoundBet         int        `json:"roundBet"`
	TotalContributed int        `json:"totalContributed"`
	Status           SeatStatus `json:"status"`
	IsDealer         bool       `json:"isDealer"`
	IsSmallBlind     bool       `json:"isSmallBlind"`
	IsBigBlind       bool       `json:"isBigBlind"`
	HoleCards        deck.Hand  `json:"holeCards,omitempty"`
}

// State is an immutable snapshot of the hand
type State struct {
	HandID     string      `json:"handId"`
	Phase      Phase       `json:"phase"`
	Community  deck.Hand   `json:"community"`
	Pot        int         `json:"pot"`
	SidePots   []*SidePot  `json:"sidePots"`
	CurrentBet int         `json:"currentBet"`
	MinRaiseTo int         `json:"minRaiseTo"`
	ActiveSeat int         `json:"activeSeat"`
	Seats      []*SeatView `json:"seats"`
	Result     *GameResult `json:"result,omitempty"`
}

// State returns an unredacted snapshot with every seat's hole cards
// visible. It is meant for audit trails and tests; player-facing callers
// must use StateForPlayer.
func (g *Game) State() *State {
	return g.snapshot(func(*Seat) bool { return true })
}

// StateForPlayer returns a snapshot as the player is allowed to see it:
// their own hole cards, plus any cards revealed at showdown
func (g *Game) StateForPlayer(playerID int64) *State {
	return g.snapshot(func(s *Seat) bool {
		return s.PlayerID == playerID || s.revealed
	})
}

func (g *Game) snapshot(showCards func(*Seat) bool) *State {
	seats := make([]*SeatView, len(g.seats))
	for i, s := range g.seats {
		view := &SeatView{
			Number:           s.Number,
			PlayerID:         s.PlayerID,
			Stack:            s.Stack,
			RoundBet:         s.RoundBet,
			TotalContributed: s.TotalContributed,
			Status:           s.Status,
			IsDealer:         s.IsDealer,
			IsSmallBlind:     s.IsSmallBlind,
			IsBigBlind:       s.IsBigBlind,
		}

		if showCards(s) {
			view.HoleCards = s.HoleCards.Clone()
		}

		seats[i] = view
	}

	return &State{
		HandID:     g.ID(),
		Phase:      g.phase,
		Community:  g.community.Clone(),
		Pot:        g.Pot(),
		SidePots:   g.SidePots(),
		CurrentBet: g.currentBet,
		MinRaiseTo: g.MinRaiseTo(),
		ActiveSeat: g.ActiveSeatNumber(),
		Seats:      seats,
		Result:     g.result,
	}
}
