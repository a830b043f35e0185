package rule

import (
	"github.com/palemoky/carioca-online/internal/game/card"
)

// Kind 定义组合类型
type Kind int

const (
	KindTrio Kind = iota // 三条
	KindRun              // 顺子
)

// kindNames 组合类型名称映射表
var kindNames = map[Kind]string{
	KindTrio: "三条",
	KindRun:  "顺子",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "无效"
}

// Combination 一组已成型的牌。放上桌面后由后续的扩展操作追加牌，
// 追加只通过 TryExtend / ExtendSingle 进行。
type Combination struct {
	Kind  Kind
	Cards []card.Card
}

// RepresentedRank 返回三条所代表的点数（忽略鬼牌）。
// 全鬼牌的三条没有代表点数，ok 为 false。
func (c *Combination) RepresentedRank() (card.Rank, bool) {
	for _, cc := range c.Cards {
		if !cc.IsJoker() {
			return cc.Rank, true
		}
	}
	return card.RankJoker, false
}

// runBounds 顺子的边界：花色与普通牌的最小、最大点数。
// 鬼牌可能填在顺子内部，计算边界时只看普通牌。
type runBounds struct {
	suit card.Suit
	min  card.Rank
	max  card.Rank
}

func (c *Combination) bounds() (runBounds, bool) {
	b := runBounds{}
	found := false
	for _, cc := range c.Cards {
		if cc.IsJoker() {
			continue
		}
		if !found {
			b = runBounds{suit: cc.Suit, min: cc.Rank, max: cc.Rank}
			found = true
			continue
		}
		if cc.Rank < b.min {
			b.min = cc.Rank
		}
		if cc.Rank > b.max {
			b.max = cc.Rank
		}
	}
	return b, found
}

// Counts 分解结果中各类组合的数量
type Counts struct {
	Trios int
	Runs  int
}
