package poker

import "galaxypoker-server/pkg/deck"

// checkStraight returns the high card of a straight formed by the five
// descending-sorted ranks, or 0 if they do not form a straight.
// The wheel (A-5-4-3-2) ranks as a 5-high straight, the lowest possible.
func checkStraight(sortedRanks []int) int {
	// wheel: treat the ace as low
	if sortedRanks[0] == deck.Ace &&
		sortedRanks[1] == 5 && sortedRanks[2] == 4 && sortedRanks[3] == 3 && sortedRanks[4] == 2 {
		return 5
	}

	for i := 1; i < len(sortedRanks); i++ {
		if sortedRanks[i-1]-sortedRanks[i] != 1 {
			return 0
		}
	}

	return sortedRanks[0]
}
