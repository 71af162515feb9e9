package poker

import (
	"encoding/json"
	"errors"
	"sort"

	"galaxypoker-server/pkg/deck"
)

// ErrInvalidCardCount is an error when the evaluator is given fewer than 5 or more than 7 cards
var ErrInvalidCardCount = errors.New("hand evaluation requires 5, 6, or 7 cards")

// HandRank is the evaluated strength of a 5-card hand.
// Two ranks compare by Hand first, then by TieBreaks most-significant-first,
// which yields a total order over all valid 5-card hands.
type HandRank struct {
	Hand      Hand  `json:"hand"`
	TieBreaks []int `json:"tieBreaks"`
}

// Compare returns -1 if h is weaker than o, 0 if genuinely tied, and 1 if stronger
func (h HandRank) Compare(o HandRank) int {
	if h.Hand != o.Hand {
		if h.Hand < o.Hand {
			return -1
		}

		return 1
	}

	for i := range h.TieBreaks {
		if i >= len(o.TieBreaks) {
			break
		}

		if h.TieBreaks[i] != o.TieBreaks[i] {
			if h.TieBreaks[i] < o.TieBreaks[i] {
				return -1
			}

			return 1
		}
	}

	return 0
}

// Beats returns true if h is strictly stronger than o
func (h HandRank) Beats(o HandRank) bool {
	return h.Compare(o) > 0
}

func (h HandRank) String() string {
	return h.Hand.String()
}

// MarshalJSON encodes the rank with its display name
func (h HandRank) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Hand      int    `json:"hand"`
		Name      string `json:"name"`
		TieBreaks []int  `json:"tieBreaks"`
	}{
		Hand:      int(h.Hand),
		Name:      h.Hand.String(),
		TieBreaks: h.TieBreaks,
	})
}

// Evaluate returns the best HandRank achievable by any 5-card subset
// of the provided 5, 6, or 7 cards
func Evaluate(cards []*deck.Card) (HandRank, error) {
	n := len(cards)
	if n < 5 || n > 7 {
		return HandRank{}, ErrInvalidCardCount
	}

	var best HandRank
	found := false

	subset := make([]*deck.Card, 5)
	forEachFiveCardSubset(cards, subset, func() {
		rank := evaluateFive(subset)
		if !found || rank.Beats(best) {
			best = rank
			found = true
		}
	})

	return best, nil
}

// forEachFiveCardSubset calls fn once per 5-card subset, reusing the subset slice
func forEachFiveCardSubset(cards, subset []*deck.Card, fn func()) {
	n := len(cards)
	for a := 0; a < n-4; a++ {
		subset[0] = cards[a]
		for b := a + 1; b < n-3; b++ {
			subset[1] = cards[b]
			for c := b + 1; c < n-2; c++ {
				subset[2] = cards[c]
				for d := c + 1; d < n-1; d++ {
					subset[3] = cards[d]
					for e := d + 1; e < n; e++ {
						subset[4] = cards[e]
						fn()
					}
				}
			}
		}
	}
}

// evaluateFive scores exactly five cards
func evaluateFive(cards []*deck.Card) HandRank {
	ranks := make([]int, len(cards))
	for i, card := range cards {
		ranks[i] = card.Rank
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	isFlush := true
	for _, card := range cards[1:] {
		if card.Suit != cards[0].Suit {
			isFlush = false
			break
		}
	}

	straightHigh := checkStraight(ranks)

	if isFlush && straightHigh > 0 {
		hand := StraightFlush
		if straightHigh == deck.Ace {
			hand = RoyalFlush
		}

		return HandRank{Hand: hand, TieBreaks: []int{straightHigh}}
	}

	groups := groupByRank(ranks)

	switch {
	case groups[0].count == 4:
		return HandRank{Hand: FourOfAKind, TieBreaks: []int{groups[0].rank, groups[1].rank}}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandRank{Hand: FullHouse, TieBreaks: []int{groups[0].rank, groups[1].rank}}
	case isFlush:
		return HandRank{Hand: Flush, TieBreaks: ranks}
	case straightHigh > 0:
		return HandRank{Hand: Straight, TieBreaks: []int{straightHigh}}
	case groups[0].count == 3:
		return HandRank{Hand: ThreeOfAKind, TieBreaks: []int{groups[0].rank, groups[1].rank, groups[2].rank}}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandRank{Hand: TwoPair, TieBreaks: []int{groups[0].rank, groups[1].rank, groups[2].rank}}
	case groups[0].count == 2:
		return HandRank{Hand: OnePair, TieBreaks: []int{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank}}
	default:
		return HandRank{Hand: HighCard, TieBreaks: ranks}
	}
}

type rankGroup struct {
	rank  int
	count int
}

// groupByRank groups descending-sorted ranks into (rank, count) pairs ordered
// by count descending, then rank descending
func groupByRank(sortedRanks []int) []rankGroup {
	groups := make([]rankGroup, 0, len(sortedRanks))
	for _, r := range sortedRanks {
		if n := len(groups); n > 0 && groups[n-1].rank == r {
			groups[n-1].count++
			continue
		}

		groups = append(groups, rankGroup{rank: r, count: 1})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}

		return groups[i].rank > groups[j].rank
	})

	return groups
}
