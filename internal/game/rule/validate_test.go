package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/carioca-online/internal/game/card"
)

func joker(seq int) card.Card {
	return card.Card{Suit: card.Joker, Rank: card.RankJoker, Deck: 1, Seq: seq}
}

func c(r card.Rank, s card.Suit) card.Card {
	return card.Card{Rank: r, Suit: s, Deck: 1}
}

func c2(r card.Rank, s card.Suit) card.Card {
	return card.Card{Rank: r, Suit: s, Deck: 2}
}

func TestIsValidTrio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    []card.Card
		expected bool
	}{
		{
			name:     "Three of same rank",
			cards:    []card.Card{c(card.Rank7, card.Spade), c(card.Rank7, card.Heart), c(card.Rank7, card.Club)},
			expected: true,
		},
		{
			name:     "Two of same rank plus joker",
			cards:    []card.Card{c(card.RankK, card.Spade), c(card.RankK, card.Heart), joker(1)},
			expected: true,
		},
		{
			name:     "One card plus one joker is too small",
			cards:    []card.Card{c(card.RankK, card.Spade), joker(1)},
			expected: false,
		},
		{
			name:     "Mixed ranks",
			cards:    []card.Card{c(card.Rank7, card.Spade), c(card.Rank8, card.Heart), c(card.Rank7, card.Club)},
			expected: false,
		},
		{
			name:     "Three jokers only",
			cards:    []card.Card{joker(1), joker(2), joker(3)},
			expected: true,
		},
		{
			name:     "Two jokers only",
			cards:    []card.Card{joker(1), joker(2)},
			expected: false,
		},
		{
			name:     "Four of same rank across decks",
			cards:    []card.Card{c(card.Rank5, card.Spade), c2(card.Rank5, card.Spade), c(card.Rank5, card.Heart), c(card.Rank5, card.Club)},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsValidTrio(tt.cards))
		})
	}
}

func TestIsValidRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    []card.Card
		expected bool
	}{
		{
			name: "Consecutive four of one suit",
			cards: []card.Card{
				c(card.Rank3, card.Heart), c(card.Rank4, card.Heart),
				c(card.Rank5, card.Heart), c(card.Rank6, card.Heart),
			},
			expected: true,
		},
		{
			name: "Joker fills the gap",
			cards: []card.Card{
				c(card.Rank3, card.Heart), c(card.Rank4, card.Heart),
				c(card.Rank6, card.Heart), joker(1),
			},
			expected: true,
		},
		{
			name: "Gap without joker",
			cards: []card.Card{
				c(card.Rank3, card.Heart), c(card.Rank4, card.Heart),
				c(card.Rank6, card.Heart), c(card.Rank7, card.Heart),
			},
			expected: false,
		},
		{
			name: "Duplicate rank from second deck invalidates",
			cards: []card.Card{
				c(card.Rank7, card.Spade), c2(card.Rank7, card.Spade),
				c(card.Rank8, card.Spade), c(card.Rank9, card.Spade),
			},
			expected: false,
		},
		{
			name: "Mixed suits",
			cards: []card.Card{
				c(card.Rank3, card.Heart), c(card.Rank4, card.Spade),
				c(card.Rank5, card.Heart), c(card.Rank6, card.Heart),
			},
			expected: false,
		},
		{
			name: "Three cards is below the minimum",
			cards: []card.Card{
				c(card.Rank3, card.Heart), c(card.Rank4, card.Heart), c(card.Rank5, card.Heart),
			},
			expected: false,
		},
		{
			name:     "Jokers only",
			cards:    []card.Card{joker(1), joker(2), joker(3), joker(4)},
			expected: false,
		},
		{
			name: "Ace is always low",
			cards: []card.Card{
				c(card.RankJ, card.Club), c(card.RankQ, card.Club),
				c(card.RankK, card.Club), c(card.RankA, card.Club),
			},
			expected: false,
		},
		{
			name: "Ace low run",
			cards: []card.Card{
				c(card.RankA, card.Club), c(card.Rank2, card.Club),
				c(card.Rank3, card.Club), c(card.Rank4, card.Club),
			},
			expected: true,
		},
		{
			name: "Two jokers bridge a double gap",
			cards: []card.Card{
				c(card.Rank3, card.Diamond), c(card.Rank6, card.Diamond),
				c(card.Rank7, card.Diamond), joker(1), joker(2),
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsValidRun(tt.cards))
		})
	}
}
