package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSidePots_layeredAllIns(t *testing.T) {
	a := assert.New(t)
	game := testGame(t, []int{100, 50, 200}, 0, DefaultOptions())
	a.NoError(game.StartHand())

	_, err := game.ApplyAction(0, AllIn())
	a.NoError(err)

	_, err = game.ApplyAction(1, AllIn())
	a.NoError(err)

	// side pots reflect contribution tiers even before the call closes
	// the round; only seat 0 covers the top tier so far
	pots := game.SidePots()
	a.Len(pots, 2)
	a.Equal(&SidePot{Amount: 150, EligibleSeats: []int{0, 1, 2}}, pots[0])
	a.Equal(&SidePot{Amount: 50, EligibleSeats: []int{0}}, pots[1])

	rigCards(game, map[int]string{
		0: "13s,13h",
		1: "14s,14h",
		2: "7c,2d",
	}, "3d,5c,8h,9s,12d")

	state, err := game.ApplyAction(2, Call())
	a.NoError(err)
	a.Equal(PhaseShowdown, state.Phase)

	result, err := game.GetResult()
	a.NoError(err)
	a.Len(result.SidePots, 2)
	a.Equal(150, result.SidePots[0].Amount)
	a.Equal([]int{0, 1, 2}, result.SidePots[0].EligibleSeats)
	a.Equal(100, result.SidePots[1].Amount)
	a.Equal([]int{0, 2}, result.SidePots[1].EligibleSeats)

	// the short stack's aces only win the main pot
	a.Len(result.Winners, 2)
	a.Equal(1, result.Winners[0].SeatNumber)
	a.Equal(150, result.Winners[0].WinAmount)
	a.Equal(0, result.Winners[0].SidePotIndex)
	a.Equal(0, result.Winners[1].SeatNumber)
	a.Equal(100, result.Winners[1].WinAmount)
	a.Equal(1, result.Winners[1].SidePotIndex)

	a.Equal(100, game.seatByNumber(0).Stack)
	a.Equal(150, game.seatByNumber(1).Stack)
	a.Equal(100, game.seatByNumber(2).Stack)
	assertChipTotal(t, game, 350)
}

func TestSidePots_foldedOverageGoesToLastPot(t *testing.T) {
	a := assert.New(t)
	game := testGame(t, []int{1000, 40, 1000}, 0, DefaultOptions())
	a.NoError(game.StartHand())

	// seat 0 raises, the short small blind calls all-in, the big blind
	// re-raises and seat 0 folds away its 100
	_, err := game.ApplyAction(0, Raise(100))
	a.NoError(err)

	_, err = game.ApplyAction(1, AllIn())
	a.NoError(err)

	_, err = game.ApplyAction(2, Raise(200))
	a.NoError(err)

	rigCards(game, map[int]string{
		1: "13s,13h",
		2: "7c,2d",
	}, "3d,5c,8h,9s,12d")

	state, err := game.ApplyAction(0, Fold())
	a.NoError(err)

	// seat 1 is all-in and seat 2 cannot bet against anyone
	a.Equal(PhaseShowdown, state.Phase)

	result, err := game.GetResult()
	a.NoError(err)
	a.Len(result.SidePots, 2)

	// 40 from each of the three seats
	a.Equal(120, result.SidePots[0].Amount)
	a.Equal([]int{1, 2}, result.SidePots[0].EligibleSeats)

	// the rest of seat 2's raise plus seat 0's folded 60
	a.Equal(220, result.SidePots[1].Amount)
	a.Equal([]int{2}, result.SidePots[1].EligibleSeats)

	a.Equal(900, game.seatByNumber(0).Stack)
	a.Equal(120, game.seatByNumber(1).Stack)
	a.Equal(1020, game.seatByNumber(2).Stack)
	assertChipTotal(t, game, 2040)
}

func TestSidePots_uncalledOverageFormsSoloTier(t *testing.T) {
	a := assert.New(t)
	game := testGame(t, []int{100, 50, 200}, 0, DefaultOptions())
	a.NoError(game.StartHand())

	_, err := game.ApplyAction(0, AllIn())
	a.NoError(err)

	_, err = game.ApplyAction(1, AllIn())
	a.NoError(err)

	rigCards(game, map[int]string{
		0: "13s,13h",
		1: "14s,14h",
		2: "7c,2d",
	}, "3d,5c,8h,9s,12d")

	// the big stack shoves too; nobody can call the top 100
	state, err := game.ApplyAction(2, AllIn())
	a.NoError(err)
	a.Equal(PhaseShowdown, state.Phase)

	result, err := game.GetResult()
	a.NoError(err)
	a.Len(result.SidePots, 3)
	a.Equal(150, result.SidePots[0].Amount)
	a.Equal(100, result.SidePots[1].Amount)

	// the overage comes straight back as a pot only its owner can win
	a.Equal(100, result.SidePots[2].Amount)
	a.Equal([]int{2}, result.SidePots[2].EligibleSeats)

	a.Equal(100, game.seatByNumber(0).Stack)
	a.Equal(150, game.seatByNumber(1).Stack)
	a.Equal(100, game.seatByNumber(2).Stack)
	assertChipTotal(t, game, 350)
}

func TestSidePots_sumEqualsPot(t *testing.T) {
	a := assert.New(t)
	game := testGame(t, []int{75, 150, 300, 1000}, 3, DefaultOptions())
	a.NoError(game.StartHand())

	actions := []struct {
		seat int
		act  Action
	}{
		{2, AllIn()},
		{3, Call()},
		{0, AllIn()},
		{1, AllIn()},
	}

	for _, step := range actions {
		_, err := game.ApplyAction(step.seat, step.act)
		a.NoError(err)

		sum := 0
		for _, pot := range game.SidePots() {
			sum += pot.Amount
		}
		a.Equal(game.Pot(), sum)
	}

	assertChipTotal(t, game, 1525)
}
