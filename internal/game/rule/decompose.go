package rule

import (
	"slices"

	"github.com/palemoky/carioca-online/internal/game/card"
)

// Decomposition 一次选牌分解的结果
type Decomposition struct {
	Valid        bool
	Combinations []Combination
	Counts       Counts
	Reason       string // Valid 为 false 时的原因说明
}

// Decompose 把玩家选中的一组牌贪心地拆分为若干三条/顺子。
// 每轮先尝试抽出一个三条，失败后再尝试抽出一个最长的顺子，
// 直到牌池为空（成功）或无法继续（失败）。贪心策略并非穷举，
// 个别选牌可能存在可行拆分却被判失败，由玩家调整选牌重试。
func Decompose(selected []card.Card) Decomposition {
	remaining := slices.Clone(selected)
	var combos []Combination

	for len(remaining) > 0 {
		if combo, ok := extractTrio(remaining); ok {
			remaining = card.RemoveCards(remaining, combo.Cards)
			combos = append(combos, combo)
			continue
		}
		if combo, ok := extractRun(remaining); ok {
			remaining = card.RemoveCards(remaining, combo.Cards)
			combos = append(combos, combo)
			continue
		}
		break
	}

	if len(remaining) > 0 {
		return Decomposition{Valid: false, Reason: "所选的牌无法全部构成有效组合"}
	}

	counts := Counts{}
	for _, c := range combos {
		switch c.Kind {
		case KindTrio:
			counts.Trios++
		case KindRun:
			counts.Runs++
		}
	}
	return Decomposition{Valid: true, Combinations: combos, Counts: counts}
}

// extractTrio 从牌池中抽出第一个可成型的三条：按点数首次出现的顺序
// 扫描分组，整组取出并用鬼牌补足到 3 张。
func extractTrio(pool []card.Card) (Combination, bool) {
	if len(pool) < MinTrioSize {
		return Combination{}, false
	}

	normals, jokers := card.SplitJokers(pool)
	groups := make(map[card.Rank][]card.Card)
	var order []card.Rank
	for _, c := range normals {
		if _, seen := groups[c.Rank]; !seen {
			order = append(order, c.Rank)
		}
		groups[c.Rank] = append(groups[c.Rank], c)
	}

	for _, rank := range order {
		group := groups[rank]
		if len(group)+len(jokers) < MinTrioSize {
			continue
		}
		used := slices.Clone(group)
		for len(used) < MinTrioSize {
			used = append(used, jokers[0])
			jokers = jokers[1:]
		}
		return Combination{Kind: KindTrio, Cards: used}, true
	}
	return Combination{}, false
}

// extractRun 从牌池中抽出最长的顺子：按花色分组排序后从每个起点
// 向后延伸，遇到单步以上的空隙就消耗鬼牌填补，保留最长的一条。
func extractRun(pool []card.Card) (Combination, bool) {
	if len(pool) < MinRunSize {
		return Combination{}, false
	}

	normals, jokers := card.SplitJokers(pool)
	groups := make(map[card.Suit][]card.Card)
	var order []card.Suit
	for _, c := range normals {
		if _, seen := groups[c.Suit]; !seen {
			order = append(order, c.Suit)
		}
		groups[c.Suit] = append(groups[c.Suit], c)
	}

	var best []card.Card
	for _, suit := range order {
		group := slices.Clone(groups[suit])
		card.SortByRank(group)
		for start := range group {
			seq := buildSequence(group[start:], jokers)
			if len(seq) > len(best) {
				best = seq
			}
		}
	}

	if len(best) < MinRunSize {
		return Combination{}, false
	}
	return Combination{Kind: KindRun, Cards: best}, true
}

// buildSequence 以 sorted[0] 为起点延伸顺子，空隙用 jokers 填补
func buildSequence(sorted, jokers []card.Card) []card.Card {
	seq := []card.Card{sorted[0]}
	cur := sorted[0].Rank
	jokerIdx := 0

	for _, c := range sorted[1:] {
		gap := int(c.Rank) - int(cur) - 1
		if gap < 0 {
			// 重复点数，顺子到此为止
			break
		}
		if gap > len(jokers)-jokerIdx {
			break
		}
		for i := 0; i < gap; i++ {
			seq = append(seq, jokers[jokerIdx])
			jokerIdx++
		}
		seq = append(seq, c)
		cur = c.Rank
	}
	return seq
}
