package room

import (
	"testing"
	"time"

	"galaxypoker-server/pkg/holdem"

	"github.com/stretchr/testify/assert"
)

func testTable() *Table {
	return &Table{
		UUID: "test-table",
		Name: "Test Table",
		Options: holdem.Options{
			SmallBlind: 25,
			BigBlind:   50,
		},
		Created: time.Now(),
	}
}

func TestDealer_AddClient(t *testing.T) {
	d := NewDealer(NewPitBoss(nil), testTable(), nil)
	c := NewClient(nil, 1, d.table)
	c2 := NewClient(nil, 2, d.table)

	d.AddClient(c)
	d.AddClient(c2)

	assert.False(t, d.RemoveClient(c))
	assert.True(t, d.RemoveClient(c2))
}

func TestDealer_sitAndStand(t *testing.T) {
	a := assert.New(t)
	d := NewDealer(NewPitBoss(nil), testTable(), nil)

	a.EqualError(d.sit(1, -1, 1000), "seat cannot be negative")
	a.EqualError(d.sit(1, 0, 0), "buy-in must be greater than zero")

	a.NoError(d.sit(1, 0, 1000))
	a.EqualError(d.sit(2, 0, 1000), "seat 0 is taken")
	a.EqualError(d.sit(1, 1, 1000), "you are already seated")
	a.NoError(d.sit(2, 1, 1000))

	a.EqualError(d.stand(3), "you are not seated")
	a.NoError(d.stand(2))
	a.NoError(d.sit(2, 1, 1000))
}

func TestDealer_startHandRequiresPlayers(t *testing.T) {
	a := assert.New(t)
	d := NewDealer(NewPitBoss(nil), testTable(), nil)

	a.EqualError(d.startHand(), "there must be at least two seats")

	a.NoError(d.sit(1, 0, 1000))
	a.EqualError(d.startHand(), "there must be at least two seats")
}

func TestDealer_playHandToFold(t *testing.T) {
	a := assert.New(t)
	d := NewDealer(NewPitBoss(nil), testTable(), nil)

	a.NoError(d.sit(1, 0, 1000))
	a.NoError(d.sit(2, 1, 1000))

	a.NoError(d.startHand())
	a.Equal(0, d.dealerSeat)
	a.EqualError(d.startHand(), "a hand is already in progress")

	a.EqualError(d.playerAction(3, holdem.Fold()), "you are not seated")

	// heads-up, the dealer acts first and folds away the small blind
	a.NoError(d.playerAction(1, holdem.Fold()))
	a.True(d.game.Phase().IsTerminal())

	// final stacks are written back to the table seats
	a.Equal(975, d.seats[0].Stack)
	a.Equal(1025, d.seats[1].Stack)
}

func TestDealer_advanceButton(t *testing.T) {
	a := assert.New(t)
	d := NewDealer(NewPitBoss(nil), testTable(), nil)

	a.NoError(d.sit(1, 2, 1000))
	a.NoError(d.sit(2, 5, 1000))
	a.NoError(d.sit(3, 8, 1000))

	d.advanceButton()
	a.Equal(2, d.dealerSeat)

	d.advanceButton()
	a.Equal(5, d.dealerSeat)

	d.advanceButton()
	a.Equal(8, d.dealerSeat)

	// wraps around, skipping the busted seat
	d.seats[2].Stack = 0
	d.advanceButton()
	a.Equal(5, d.dealerSeat)
}
