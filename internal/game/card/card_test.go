package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShoe(t *testing.T) {
	t.Parallel()

	shoe := NewShoe(2, 4)
	require.Len(t, shoe, 112)

	jokers := 0
	seen := make(map[string]bool, len(shoe))
	for _, c := range shoe {
		if c.IsJoker() {
			jokers++
		}
		assert.False(t, seen[c.ID()], "duplicate card %s", c.ID())
		seen[c.ID()] = true
	}
	assert.Equal(t, 8, jokers)
}

func TestShuffleKeepsCards(t *testing.T) {
	t.Parallel()

	shoe := NewShoe(2, 4)
	original := make(Deck, len(shoe))
	copy(original, shoe)

	shoe.Shuffle()
	assert.ElementsMatch(t, original, shoe)
}

func TestCardString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A♠", Card{Suit: Spade, Rank: RankA, Deck: 1}.String())
	assert.Equal(t, "10♦", Card{Suit: Diamond, Rank: Rank10, Deck: 1}.String())
	assert.Equal(t, "🃏", Card{Suit: Joker, Deck: 1, Seq: 1}.String())
}

func TestSortHand(t *testing.T) {
	t.Parallel()

	hand := []Card{
		{Suit: Joker, Deck: 1, Seq: 1},
		{Suit: Diamond, Rank: Rank3, Deck: 1},
		{Suit: Spade, Rank: RankK, Deck: 1},
		{Suit: Spade, Rank: Rank2, Deck: 1},
	}
	SortHand(hand)

	assert.Equal(t, []Card{
		{Suit: Spade, Rank: Rank2, Deck: 1},
		{Suit: Spade, Rank: RankK, Deck: 1},
		{Suit: Diamond, Rank: Rank3, Deck: 1},
		{Suit: Joker, Deck: 1, Seq: 1},
	}, hand)
}

func TestRemoveCards(t *testing.T) {
	t.Parallel()

	spade7d1 := Card{Suit: Spade, Rank: Rank7, Deck: 1}
	spade7d2 := Card{Suit: Spade, Rank: Rank7, Deck: 2}
	heart3 := Card{Suit: Heart, Rank: Rank3, Deck: 1}

	hand := []Card{spade7d1, spade7d2, heart3}
	result := RemoveCards(hand, []Card{spade7d1})

	// 同点同花但不同副的牌是不同的物理牌，只移除指定的那张
	assert.Equal(t, []Card{spade7d2, heart3}, result)
	assert.Len(t, hand, 3, "original hand must not change")
}

func TestContainsAll(t *testing.T) {
	t.Parallel()

	hand := []Card{
		{Suit: Spade, Rank: Rank7, Deck: 1},
		{Suit: Heart, Rank: Rank3, Deck: 1},
	}
	assert.True(t, ContainsAll(hand, []Card{{Suit: Heart, Rank: Rank3, Deck: 1}}))
	assert.False(t, ContainsAll(hand, []Card{{Suit: Heart, Rank: Rank3, Deck: 2}}))
}

func TestContainsAllCountsEachCardOnce(t *testing.T) {
	t.Parallel()

	spade7 := Card{Suit: Spade, Rank: Rank7, Deck: 1}
	heart7 := Card{Suit: Heart, Rank: Rank7, Deck: 1}
	hand := []Card{spade7, heart7}

	// 同一张物理牌不能在一次选择里被引用两次
	assert.False(t, ContainsAll(hand, []Card{spade7, spade7, heart7}))
	assert.True(t, ContainsAll(hand, []Card{spade7, heart7}))

	// 两副牌里各有一张 7♠ 时，重复两次是合法的
	spade7d2 := Card{Suit: Spade, Rank: Rank7, Deck: 2}
	assert.True(t, ContainsAll([]Card{spade7, spade7d2}, []Card{spade7, spade7d2}))
}
