package rule

import (
	"github.com/palemoky/carioca-online/internal/game/card"
)

// CanExtendTrio 判断一张牌能否追加到三条：鬼牌总是可以，
// 普通牌的点数需等于三条的代表点数。
func CanExtendTrio(combo *Combination, c card.Card) bool {
	if combo.Kind != KindTrio {
		return false
	}
	if c.IsJoker() {
		return true
	}
	rank, ok := combo.RepresentedRank()
	if !ok {
		return false
	}
	return c.Rank == rank
}

// CanExtendRun 判断一张牌能否追加到顺子：鬼牌总是可以，
// 普通牌需同花色且点数恰好紧邻顺子的最小或最大点数。
// 边界只由普通牌决定，填在顺子里的鬼牌不参与计算。
func CanExtendRun(combo *Combination, c card.Card) bool {
	if combo.Kind != KindRun {
		return false
	}
	if c.IsJoker() {
		return true
	}
	b, ok := combo.bounds()
	if !ok {
		return false
	}
	if c.Suit != b.suit {
		return false
	}
	return c.Rank == b.min-1 || c.Rank == b.max+1
}

// CanExtend 判断一张牌能否追加到组合
func CanExtend(combo *Combination, c card.Card) bool {
	switch combo.Kind {
	case KindTrio:
		return CanExtendTrio(combo, c)
	case KindRun:
		return CanExtendRun(combo, c)
	}
	return false
}

// TryExtend 原子地把整批牌分配到已放置的组合上。逐张按桌面顺序
// 寻找落点，顺子优先于三条（顺子的条件更苛刻）；任何一张放不下
// 就回滚全部已放置的牌。成功时返回被扩展到的组合数量。
func TryExtend(existing []*Combination, batch []card.Card) (extended int, ok bool) {
	if len(existing) == 0 || len(batch) == 0 {
		return 0, false
	}

	type placement struct {
		combo *Combination
		c     card.Card
	}
	var placements []placement
	touched := make(map[*Combination]bool)

	rollback := func() {
		for i := len(placements) - 1; i >= 0; i-- {
			p := placements[i]
			p.combo.Cards = p.combo.Cards[:len(p.combo.Cards)-1]
		}
	}

	for _, c := range batch {
		placed := false
		for _, combo := range existing {
			if combo.Kind == KindRun && CanExtendRun(combo, c) {
				combo.Cards = append(combo.Cards, c)
				placements = append(placements, placement{combo, c})
				touched[combo] = true
				placed = true
				break
			}
		}
		if !placed {
			for _, combo := range existing {
				if combo.Kind == KindTrio && CanExtendTrio(combo, c) {
					combo.Cards = append(combo.Cards, c)
					placements = append(placements, placement{combo, c})
					touched[combo] = true
					placed = true
					break
				}
			}
		}
		if !placed {
			rollback()
			return 0, false
		}
	}

	return len(touched), true
}

// TargetVerdict 单组合扩展的判定结果
type TargetVerdict int

const (
	TargetFound     TargetVerdict = iota // 唯一匹配
	TargetNone                           // 无匹配
	TargetAmbiguous                      // 多于一个匹配，需要玩家缩小选牌
)

// FindSingleTarget 检查整批牌是否恰好只能落到一个已放置的组合上。
// 逐组合判定：批内每张普通牌都要能追加到该组合。出现多个候选
// 视为歧义，调用方应拒绝本次操作。
func FindSingleTarget(existing []*Combination, batch []card.Card) (int, TargetVerdict) {
	if len(batch) == 0 {
		return -1, TargetNone
	}

	target := -1
	for i, combo := range existing {
		fits := true
		for _, c := range batch {
			if !CanExtend(combo, c) {
				fits = false
				break
			}
		}
		if !fits {
			continue
		}
		if target != -1 {
			return -1, TargetAmbiguous
		}
		target = i
	}

	if target == -1 {
		return -1, TargetNone
	}
	return target, TargetFound
}
