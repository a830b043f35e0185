package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/carioca-online/internal/game/card"
)

func trioOf7() *Combination {
	return &Combination{Kind: KindTrio, Cards: []card.Card{
		c(card.Rank7, card.Spade), c(card.Rank7, card.Heart), c(card.Rank7, card.Club),
	}}
}

func runOf5to8Diamonds() *Combination {
	return &Combination{Kind: KindRun, Cards: []card.Card{
		c(card.Rank5, card.Diamond), c(card.Rank6, card.Diamond),
		c(card.Rank7, card.Diamond), c(card.Rank8, card.Diamond),
	}}
}

func TestCanExtendTrio(t *testing.T) {
	t.Parallel()

	trio := trioOf7()
	assert.True(t, CanExtendTrio(trio, c2(card.Rank7, card.Diamond)))
	assert.True(t, CanExtendTrio(trio, joker(1)))
	assert.False(t, CanExtendTrio(trio, c(card.Rank8, card.Spade)))
	assert.False(t, CanExtendTrio(runOf5to8Diamonds(), c(card.Rank7, card.Diamond)))
}

func TestCanExtendRun(t *testing.T) {
	t.Parallel()

	run := runOf5to8Diamonds()
	assert.True(t, CanExtendRun(run, c(card.Rank4, card.Diamond)), "one below the minimum")
	assert.True(t, CanExtendRun(run, c(card.Rank9, card.Diamond)), "one above the maximum")
	assert.True(t, CanExtendRun(run, joker(1)))
	assert.False(t, CanExtendRun(run, c(card.Rank3, card.Diamond)), "not adjacent")
	assert.False(t, CanExtendRun(run, c(card.Rank9, card.Heart)), "wrong suit")
	assert.False(t, CanExtendRun(run, c(card.Rank6, card.Diamond)), "inside the run")
}

// 顺子内部的鬼牌不参与边界计算
func TestCanExtendRunIgnoresInnerJokers(t *testing.T) {
	t.Parallel()

	run := &Combination{Kind: KindRun, Cards: []card.Card{
		c(card.Rank5, card.Diamond), joker(1),
		c(card.Rank7, card.Diamond), c(card.Rank8, card.Diamond),
	}}

	assert.True(t, CanExtendRun(run, c(card.Rank4, card.Diamond)))
	assert.True(t, CanExtendRun(run, c(card.Rank9, card.Diamond)))
	assert.False(t, CanExtendRun(run, c(card.Rank6, card.Diamond)))
}

func TestTryExtendAllOrNothing(t *testing.T) {
	t.Parallel()

	trio := trioOf7()
	existing := []*Combination{trio}

	// 第二张牌无处可放，整批必须回滚
	extended, ok := TryExtend(existing, []card.Card{
		c2(card.Rank7, card.Spade), c(card.Rank9, card.Diamond),
	})
	assert.False(t, ok)
	assert.Zero(t, extended)
	assert.Len(t, trio.Cards, 3, "trio must be untouched after a rejected batch")
}

func TestTryExtendSuccess(t *testing.T) {
	t.Parallel()

	trio := trioOf7()
	run := runOf5to8Diamonds()
	existing := []*Combination{trio, run}

	extended, ok := TryExtend(existing, []card.Card{
		c2(card.Rank7, card.Heart), c(card.Rank9, card.Diamond),
	})
	require.True(t, ok)
	assert.Equal(t, 2, extended)
	assert.Len(t, trio.Cards, 4)
	assert.Len(t, run.Cards, 5)
}

// 顺子优先于三条：7♦ 既能进七的三条也能接 5-8♦ 顺子的说法不成立，
// 但 9♦ 只能接顺子，4♦ 也只能接顺子，放置顺序不能让三条抢走它们
func TestTryExtendPrefersRuns(t *testing.T) {
	t.Parallel()

	run := runOf5to8Diamonds()
	trio := &Combination{Kind: KindTrio, Cards: []card.Card{
		c(card.Rank9, card.Spade), c(card.Rank9, card.Heart), c(card.Rank9, card.Club),
	}}
	existing := []*Combination{trio, run}

	extended, ok := TryExtend(existing, []card.Card{c2(card.Rank9, card.Diamond)})
	require.True(t, ok)
	assert.Equal(t, 1, extended)
	assert.Len(t, run.Cards, 5, "the diamond nine belongs to the run first")
	assert.Len(t, trio.Cards, 3)
}

func TestTryExtendEmptyInputs(t *testing.T) {
	t.Parallel()

	_, ok := TryExtend(nil, []card.Card{c(card.Rank7, card.Spade)})
	assert.False(t, ok)

	_, ok = TryExtend([]*Combination{trioOf7()}, nil)
	assert.False(t, ok)
}

func TestFindSingleTarget(t *testing.T) {
	t.Parallel()

	trio := trioOf7()
	run := runOf5to8Diamonds()

	tests := []struct {
		name     string
		existing []*Combination
		batch    []card.Card
		verdict  TargetVerdict
		target   int
	}{
		{
			name:     "Unique trio target",
			existing: []*Combination{trio, run},
			batch:    []card.Card{c2(card.Rank7, card.Spade)},
			verdict:  TargetFound,
			target:   0,
		},
		{
			name:     "Unique run target",
			existing: []*Combination{trio, run},
			batch:    []card.Card{c(card.Rank9, card.Diamond)},
			verdict:  TargetFound,
			target:   1,
		},
		{
			name:     "Joker alone is ambiguous",
			existing: []*Combination{trio, run},
			batch:    []card.Card{joker(1)},
			verdict:  TargetAmbiguous,
		},
		{
			name:     "No target",
			existing: []*Combination{trio, run},
			batch:    []card.Card{c(card.RankK, card.Club)},
			verdict:  TargetNone,
		},
		{
			name:     "Empty batch",
			existing: []*Combination{trio},
			batch:    nil,
			verdict:  TargetNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			idx, verdict := FindSingleTarget(tt.existing, tt.batch)
			assert.Equal(t, tt.verdict, verdict)
			if tt.verdict == TargetFound {
				assert.Equal(t, tt.target, idx)
			}
		})
	}
}
