package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/carioca-online/internal/game/card"
	"github.com/palemoky/carioca-online/internal/game/contract"
	"github.com/palemoky/carioca-online/internal/game/rule"
	"github.com/palemoky/carioca-online/internal/game/session"
)

func cd(r card.Rank, s card.Suit) card.Card {
	return card.Card{Suit: s, Rank: r, Deck: 1}
}

func cd2(r card.Rank, s card.Suit) card.Card {
	return card.Card{Suit: s, Rank: r, Deck: 2}
}

func jk(seq int) card.Card {
	return card.Card{Suit: card.Joker, Rank: card.RankJoker, Deck: 1, Seq: seq}
}

func TestChooseDrawSource(t *testing.T) {
	t.Parallel()

	brain := &Brain{Level: LevelNormal}

	tests := []struct {
		name string
		hand []card.Card
		top  *card.Card
		want session.DrawSource
	}{
		{
			name: "Empty discard pile",
			hand: []card.Card{cd(card.Rank7, card.Spade)},
			top:  nil,
			want: session.DrawFromDeck,
		},
		{
			name: "Joker on top is always taken",
			hand: []card.Card{cd(card.Rank7, card.Spade)},
			top:  &card.Card{Suit: card.Joker, Deck: 1, Seq: 1},
			want: session.DrawFromDiscard,
		},
		{
			name: "Completes a trio",
			hand: []card.Card{cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart), cd(card.Rank2, card.Club)},
			top:  ptr(cd2(card.Rank7, card.Diamond)),
			want: session.DrawFromDiscard,
		},
		{
			name: "Fills a run gap",
			hand: []card.Card{cd(card.Rank5, card.Diamond), cd(card.Rank7, card.Diamond), cd(card.Rank2, card.Club)},
			top:  ptr(cd2(card.Rank6, card.Diamond)),
			want: session.DrawFromDiscard,
		},
		{
			name: "Useless card stays on the pile",
			hand: []card.Card{cd(card.Rank5, card.Diamond), cd(card.Rank7, card.Diamond)},
			top:  ptr(cd(card.RankK, card.Club)),
			want: session.DrawFromDeck,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, brain.ChooseDrawSource(tt.hand, tt.top))
		})
	}
}

func TestChooseDrawSourceEasyIgnoresRuns(t *testing.T) {
	t.Parallel()

	brain := &Brain{Level: LevelEasy}
	hand := []card.Card{cd(card.Rank5, card.Diamond), cd(card.Rank7, card.Diamond)}
	top := ptr(cd2(card.Rank6, card.Diamond))

	assert.Equal(t, session.DrawFromDeck, brain.ChooseDrawSource(hand, top))
}

func TestPlanLayDownTwoTrios(t *testing.T) {
	t.Parallel()

	brain := &Brain{Level: LevelNormal}
	hand := []card.Card{
		cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart), cd(card.Rank7, card.Club),
		cd(card.RankQ, card.Spade), cd(card.RankQ, card.Heart), cd(card.RankQ, card.Club),
		cd(card.Rank2, card.Diamond), cd(card.Rank5, card.Spade),
	}

	selected := brain.PlanLayDown(hand, contract.Requirement{Trios: 2})
	require.NotNil(t, selected)
	assert.Len(t, selected, 6)

	d := rule.Decompose(selected)
	require.True(t, d.Valid)
	assert.Equal(t, 2, d.Counts.Trios)
}

func TestPlanLayDownUsesJokerForTrio(t *testing.T) {
	t.Parallel()

	brain := &Brain{Level: LevelNormal}
	hand := []card.Card{
		cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart), cd(card.Rank7, card.Club),
		cd(card.RankQ, card.Spade), cd(card.RankQ, card.Heart), jk(1),
		cd(card.Rank2, card.Diamond),
	}

	selected := brain.PlanLayDown(hand, contract.Requirement{Trios: 2})
	require.NotNil(t, selected)
	assert.Contains(t, selected, jk(1))

	d := rule.Decompose(selected)
	require.True(t, d.Valid)
	assert.Equal(t, 2, d.Counts.Trios)
}

func TestPlanLayDownTrioPlusRun(t *testing.T) {
	t.Parallel()

	brain := &Brain{Level: LevelNormal}
	hand := []card.Card{
		cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart), cd(card.Rank7, card.Club),
		cd(card.Rank3, card.Diamond), cd(card.Rank4, card.Diamond),
		cd(card.Rank5, card.Diamond), cd(card.Rank6, card.Diamond),
		cd(card.RankK, card.Spade),
	}

	selected := brain.PlanLayDown(hand, contract.Requirement{Trios: 1, Runs: 1})
	require.NotNil(t, selected)

	d := rule.Decompose(selected)
	require.True(t, d.Valid)
	assert.GreaterOrEqual(t, d.Counts.Trios, 1)
	assert.GreaterOrEqual(t, d.Counts.Runs, 1)
}

func TestPlanLayDownFallsShort(t *testing.T) {
	t.Parallel()

	brain := &Brain{Level: LevelNormal}
	hand := []card.Card{
		cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart),
		cd(card.Rank3, card.Diamond), cd(card.RankK, card.Club),
	}

	assert.Nil(t, brain.PlanLayDown(hand, contract.Requirement{Trios: 2}))
}

func TestPlanLayDownSpecialContract(t *testing.T) {
	t.Parallel()

	brain := &Brain{Level: LevelNormal}
	hand := []card.Card{
		cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart), cd(card.Rank7, card.Club),
	}

	assert.Nil(t, brain.PlanLayDown(hand, contract.Requirement{Special: contract.SpecialRoyalRun}))
}

func TestPlanExtensions(t *testing.T) {
	t.Parallel()

	brain := &Brain{Level: LevelNormal}
	table := []session.TableCombo{
		{OwnerID: "p1", Combo: &rule.Combination{Kind: rule.KindTrio, Cards: []card.Card{
			cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart), cd(card.Rank7, card.Club),
		}}},
		{OwnerID: "p2", Combo: &rule.Combination{Kind: rule.KindRun, Cards: []card.Card{
			cd(card.Rank5, card.Diamond), cd(card.Rank6, card.Diamond),
			cd(card.Rank7, card.Diamond), cd(card.Rank8, card.Diamond),
		}}},
	}

	hand := []card.Card{
		cd2(card.Rank7, card.Diamond),  // fits the trio
		cd(card.Rank9, card.Diamond),   // fits the run
		cd(card.Rank2, card.Spade),     // fits nothing
		jk(1),                          // held back
	}

	cards := brain.PlanExtensions(hand, table)
	assert.ElementsMatch(t, []card.Card{cd2(card.Rank7, card.Diamond), cd(card.Rank9, card.Diamond)}, cards)
}

func TestChooseDiscard(t *testing.T) {
	t.Parallel()

	brain := &Brain{Level: LevelNormal}

	// The king is worth 10 and pairs with nothing
	hand := []card.Card{
		cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart),
		cd(card.RankK, card.Club), cd(card.Rank3, card.Diamond),
	}
	assert.Equal(t, cd(card.RankK, card.Club), brain.ChooseDiscard(hand))
}

func TestChooseDiscardProtectsJoker(t *testing.T) {
	t.Parallel()

	brain := &Brain{Level: LevelNormal}
	hand := []card.Card{jk(1), cd(card.Rank2, card.Spade)}

	assert.Equal(t, cd(card.Rank2, card.Spade), brain.ChooseDiscard(hand))
}

func ptr(c card.Card) *card.Card { return &c }
