package holdem

import (
	"fmt"
	"sort"

	"galaxypoker-server/pkg/poker"
)

// resolveShowdown evaluates every live seat's best five-card hand and pays
// out each pot to its best eligible hand, splitting exact ties. Odd chips
// that cannot be split evenly go to the tied seats closest to the dealer's
// left, one chip each.
func (g *Game) resolveShowdown() error {
	sidePots := g.SidePots()

	ranks := make(map[int]poker.HandRank)
	for _, s := range g.seats {
		if !s.inHand() {
			continue
		}

		cards := append(s.HoleCards.Clone(), g.community...)
		rank, err := poker.Evaluate(cards)
		if err != nil {
			return StateCorruptionError{Detail: fmt.Sprintf("seat %d: %v", s.Number, err)}
		}

		ranks[s.Number] = rank
		s.revealed = true
		g.appendLog(s, fmt.Sprintf("showed %s (%s)", s.HoleCards.String(), rank.String()), 0)
	}

	result := &GameResult{
		HandID:    g.ID(),
		SidePots:  sidePots,
		Community: g.community.Clone(),
	}

	for potIndex, pot := range sidePots {
		winners := g.bestEligible(pot.EligibleSeats, ranks)
		if len(winners) == 0 {
			return StateCorruptionError{Detail: fmt.Sprintf("pot %d has no eligible winner", potIndex)}
		}

		// odd chips go left of the dealer first
		sort.Slice(winners, func(i, j int) bool {
			return g.distanceFromDealer(winners[i]) < g.distanceFromDealer(winners[j])
		})

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)

		for i, seat := range winners {
			amount := share
			if i < remainder {
				amount++
			}

			if amount == 0 {
				continue
			}

			rank := ranks[seat.Number]
			seat.Stack += amount
			result.Winners = append(result.Winners, &Winner{
				PlayerID:     seat.PlayerID,
				SeatNumber:   seat.Number,
				WinAmount:    amount,
				SidePotIndex: potIndex,
				HandRank:     &rank,
				HoleCards:    seat.HoleCards.Clone(),
			})

			g.appendLog(seat, fmt.Sprintf("won ${%d} with %s", amount, rank.String()), amount)
		}
	}

	g.paidOut = true
	g.result = result
	g.activeIndex = -1
	return nil
}

// bestEligible returns every eligible seat holding the strongest hand
func (g *Game) bestEligible(eligible []int, ranks map[int]poker.HandRank) []*Seat {
	var best poker.HandRank
	var winners []*Seat
	for _, number := range eligible {
		seat := g.seatByNumber(number)
		rank, evaluated := ranks[number]
		if seat == nil || !evaluated {
			continue
		}

		if len(winners) == 0 || rank.Beats(best) {
			best = rank
			winners = winners[:0]
			winners = append(winners, seat)
		} else if rank.Compare(best) == 0 {
			winners = append(winners, seat)
		}
	}

	return winners
}

func (g *Game) seatByNumber(number int) *Seat {
	for _, s := range g.seats {
		if s.Number == number {
			return s
		}
	}

	return nil
}
