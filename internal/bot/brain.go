package bot

import (
	"github.com/palemoky/carioca-online/internal/game/card"
	"github.com/palemoky/carioca-online/internal/game/contract"
	"github.com/palemoky/carioca-online/internal/game/rule"
	"github.com/palemoky/carioca-online/internal/game/session"
)

// Brain 机器人决策逻辑。所有方法都是纯函数，
// 只读取传入的牌面信息，不持有对局状态
type Brain struct {
	Level Level
}

// ChooseDrawSource 决定从牌堆摸还是捡弃牌堆顶：
// 鬼牌必捡，能凑成三条或顺子缺口的牌也捡，其余从牌堆摸
func (b *Brain) ChooseDrawSource(hand []card.Card, discardTop *card.Card) session.DrawSource {
	if discardTop == nil {
		return session.DrawFromDeck
	}
	top := *discardTop

	if top.IsJoker() {
		return session.DrawFromDiscard
	}

	// 手里已有两张同点，捡走第三张
	sameRank := 0
	for _, c := range hand {
		if !c.IsJoker() && c.Rank == top.Rank {
			sameRank++
		}
	}
	if sameRank >= 2 {
		return session.DrawFromDiscard
	}

	// 简单难度到此为止，不看顺子潜力
	if b.Level == LevelEasy {
		return session.DrawFromDeck
	}

	// 同花色且点数紧邻两张手牌，有接成顺子的潜力
	neighbors := 0
	for _, c := range hand {
		if c.IsJoker() || c.Suit != top.Suit {
			continue
		}
		diff := int(c.Rank) - int(top.Rank)
		if diff >= -2 && diff <= 2 && diff != 0 {
			neighbors++
		}
	}
	if neighbors >= 2 {
		return session.DrawFromDiscard
	}

	return session.DrawFromDeck
}

// PlanLayDown 尝试从手牌里凑出满足合约的选牌。
// 先凑纯三条，再用鬼牌补缺口的顺子，最后用剩余鬼牌补齐三条；
// 凑不满合约时返回 nil
func (b *Brain) PlanLayDown(hand []card.Card, req contract.Requirement) []card.Card {
	if req.IsSpecial() {
		return nil
	}

	normals, jokers := card.SplitJokers(hand)

	var selected []card.Card
	used := make(map[card.Card]bool)
	jokersLeft := len(jokers)
	jokerIdx := 0

	takeJoker := func() card.Card {
		j := jokers[jokerIdx]
		jokerIdx++
		jokersLeft--
		return j
	}

	// 纯三条：同点数凑满三张的优先
	trios := 0
	byRank := make(map[card.Rank][]card.Card)
	var rankOrder []card.Rank
	for _, c := range normals {
		if len(byRank[c.Rank]) == 0 {
			rankOrder = append(rankOrder, c.Rank)
		}
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	for _, r := range rankOrder {
		if trios >= req.Trios {
			break
		}
		group := byRank[r]
		if len(group) >= rule.MinTrioSize {
			selected = append(selected, group[:rule.MinTrioSize]...)
			for _, c := range group[:rule.MinTrioSize] {
				used[c] = true
			}
			trios++
		}
	}

	// 顺子：按花色找长度足够的走牌，鬼牌填缺口
	runs := 0
	bySuit := make(map[card.Suit][]card.Card)
	for _, c := range normals {
		if !used[c] {
			bySuit[c.Suit] = append(bySuit[c.Suit], c)
		}
	}
	for s := card.Spade; s <= card.Diamond && runs < req.Runs; s++ {
		cards := dedupeByRank(bySuit[s])
		card.SortByRank(cards)

		for start := 0; start < len(cards) && runs < req.Runs; start++ {
			run, usedJokers := growRun(cards[start:], jokersLeft)
			if len(run)+usedJokers < rule.MinRunSize {
				continue
			}
			selected = append(selected, run...)
			for _, c := range run {
				used[c] = true
			}
			for range usedJokers {
				selected = append(selected, takeJoker())
			}
			runs++
			break // 每个花色最多取一条，避免拆牌过度
		}
	}

	// 剩余鬼牌补齐缺的三条：两张同点配一张鬼牌
	for _, r := range rankOrder {
		if trios >= req.Trios || jokersLeft == 0 {
			break
		}
		group := available(byRank[r], used)
		if len(group) == 2 {
			selected = append(selected, group...)
			for _, c := range group {
				used[c] = true
			}
			selected = append(selected, takeJoker())
			trios++
		}
	}

	if trios < req.Trios || runs < req.Runs {
		return nil
	}

	// 最终校验，保证选牌确实能按合约分解
	d := rule.Decompose(selected)
	if !d.Valid || !rule.SatisfiesContract(req, d.Counts) {
		return nil
	}
	return selected
}

// PlanExtensions 找出手里能接到桌面组合上的普通牌。
// 鬼牌留着下轮合约用，不拿去接牌
func (b *Brain) PlanExtensions(hand []card.Card, table []session.TableCombo) []card.Card {
	var cards []card.Card
	for _, c := range hand {
		if c.IsJoker() {
			continue
		}
		for _, tc := range table {
			if rule.CanExtend(tc.Combo, c) {
				cards = append(cards, c)
				break
			}
		}
	}
	return cards
}

// ChooseDiscard 选一张弃牌：罚分高又凑不出组合的先走，
// 鬼牌和成对的牌尽量留
func (b *Brain) ChooseDiscard(hand []card.Card) card.Card {
	best := hand[0]
	bestScore := -1 << 30

	for _, c := range hand {
		score := discardScore(c, hand)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

// discardScore 越高越该弃
func discardScore(c card.Card, hand []card.Card) int {
	if c.IsJoker() {
		return -100 // 鬼牌绝不主动弃
	}

	score := card.Points(c)

	// 有同点搭子的牌离三条不远，压低弃牌倾向
	for _, other := range hand {
		if other == c || other.IsJoker() {
			continue
		}
		if other.Rank == c.Rank {
			score -= 20
		} else if other.Suit == c.Suit {
			diff := int(other.Rank) - int(c.Rank)
			if diff >= -2 && diff <= 2 {
				score -= 5 // 顺子潜力
			}
		}
	}
	return score
}

// growRun 从 sorted 第一张开始尽量延伸顺子，鬼牌填缺口。
// 返回用到的普通牌与消耗的鬼牌数
func growRun(sorted []card.Card, jokersLeft int) ([]card.Card, int) {
	if len(sorted) == 0 {
		return nil, 0
	}
	run := []card.Card{sorted[0]}
	usedJokers := 0
	for i := 1; i < len(sorted); i++ {
		gap := int(sorted[i].Rank) - int(sorted[i-1].Rank) - 1
		if gap < 0 {
			continue
		}
		if gap > jokersLeft-usedJokers {
			break
		}
		usedJokers += gap
		run = append(run, sorted[i])
	}
	return run, usedJokers
}

// dedupeByRank 去掉同点数的重复牌
func dedupeByRank(cards []card.Card) []card.Card {
	var result []card.Card
	seen := make(map[card.Rank]bool)
	for _, c := range cards {
		if !seen[c.Rank] {
			seen[c.Rank] = true
			result = append(result, c)
		}
	}
	return result
}

// available 返回组里尚未被选走的牌
func available(group []card.Card, used map[card.Card]bool) []card.Card {
	var result []card.Card
	for _, c := range group {
		if !used[c] {
			result = append(result, c)
		}
	}
	return result
}
