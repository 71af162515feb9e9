package deck

import (
	"testing"

	"galaxypoker-server/internal/rng"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a := assert.New(t)

	d := New()
	a.Equal(52, d.CardsLeft())

	// 52 distinct cards
	seen := make(map[string]bool)
	for _, card := range d.Cards {
		seen[CardToString(card)] = true
	}
	a.Equal(52, len(seen))
}

func TestDeck_Shuffle(t *testing.T) {
	a := assert.New(t)

	d := NewShuffled(rng.NewSeeded(42))
	a.Equal(52, d.CardsLeft())
	a.NotEqual(New().HashCode(), d.HashCode())

	// same seed, same order
	d2 := NewShuffled(rng.NewSeeded(42))
	a.Equal(d.HashCode(), d2.HashCode())

	// different seed, different order
	d3 := NewShuffled(rng.NewSeeded(43))
	a.NotEqual(d.HashCode(), d3.HashCode())
}

func TestDeck_Draw(t *testing.T) {
	a := assert.New(t)

	d := New()
	a.True(d.CanDraw(52))
	a.False(d.CanDraw(53))

	card, err := d.Draw()
	a.NoError(err)
	a.NotNil(card)
	a.Equal(51, d.CardsLeft())

	for i := 0; i < 51; i++ {
		_, err := d.Draw()
		a.NoError(err)
	}

	card, err = d.Draw()
	a.Equal(ErrEndOfDeck, err)
	a.Nil(card)
}

func TestHand(t *testing.T) {
	a := assert.New(t)

	h := Hand{}
	h.AddCard(CardFromString("5c"))
	h.AddCard(CardFromString("14s"))

	a.True(h.HasCard(CardFromString("5c")))
	a.False(h.HasCard(CardFromString("5d")))

	a.Equal("5c", CardToString(h.FirstCard()))
	a.Equal("14s", CardToString(h.LastCard()))
	a.Equal("5c,14s", h.String())

	clone := h.Clone()
	clone[0] = CardFromString("2d")
	a.Equal("5c", CardToString(h.FirstCard()))
}
