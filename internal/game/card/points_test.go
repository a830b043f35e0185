package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		card Card
		want int
	}{
		{"Joker", Card{Suit: Joker, Deck: 1, Seq: 1}, 25},
		{"Ace", Card{Suit: Spade, Rank: RankA, Deck: 1}, 15},
		{"Jack", Card{Suit: Heart, Rank: RankJ, Deck: 1}, 10},
		{"Queen", Card{Suit: Club, Rank: RankQ, Deck: 1}, 10},
		{"King", Card{Suit: Diamond, Rank: RankK, Deck: 1}, 10},
		{"Two", Card{Suit: Spade, Rank: Rank2, Deck: 1}, 2},
		{"Ten", Card{Suit: Spade, Rank: Rank10, Deck: 1}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Points(tt.card))
		})
	}
}

func TestHandPoints(t *testing.T) {
	t.Parallel()

	hand := []Card{
		{Suit: Spade, Rank: RankA, Deck: 1},
		{Suit: Joker, Deck: 1, Seq: 1},
	}
	assert.Equal(t, 40, HandPoints(hand))
	assert.Zero(t, HandPoints(nil))
}
