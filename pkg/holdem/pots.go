package holdem

import "sort"

// SidePot is a pot contested by the seats that contributed to it. The first
// pot is the main pot; each later pot layers on top for the seats whose
// stacks reached that deep.
type SidePot struct {
	Amount int `json:"amount"`
	// EligibleSeats lists the seat numbers that can win this pot, in
	// ascending seat order
	EligibleSeats []int `json:"eligibleSeats"`
}

// SidePots derives the pot structure from the contribution history. The
// derivation is pure: calling it never changes state, and the sum of the
// returned pots always equals Pot().
//
// Each all-in contribution level closes a tier. Every seat pays into a tier
// up to the tier's level, folded seats included, but only unfolded seats
// that covered the level are eligible to win it.
func (g *Game) SidePots() []*SidePot {
	if g.paidOut {
		return nil
	}

	// a tier boundary exists at each distinct all-in level and at the
	// largest live contribution
	maxLive := 0
	levelSet := make(map[int]bool)
	for _, s := range g.seats {
		if !s.inHand() || s.TotalContributed == 0 {
			continue
		}

		if s.TotalContributed > maxLive {
			maxLive = s.TotalContributed
		}

		if s.Status == StatusAllIn {
			levelSet[s.TotalContributed] = true
		}
	}

	if maxLive == 0 {
		return nil
	}
	levelSet[maxLive] = true

	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	pots := make([]*SidePot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		pot := &SidePot{}
		for _, s := range g.seats {
			contributed := s.TotalContributed
			if contributed > level {
				contributed = level
			}

			if contributed > prev {
				pot.Amount += contributed - prev
			}

			if s.inHand() && s.TotalContributed >= level {
				pot.EligibleSeats = append(pot.EligibleSeats, s.Number)
			}
		}

		pots = append(pots, pot)
		prev = level
	}

	// chips a folded seat put in beyond the deepest live contribution
	// belong to the last pot
	last := pots[len(pots)-1]
	for _, s := range g.seats {
		if !s.inHand() && s.TotalContributed > maxLive {
			last.Amount += s.TotalContributed - maxLive
		}
	}

	return pots
}
