package rule

import (
	"slices"

	"github.com/palemoky/carioca-online/internal/game/card"
)

// 组合的最小张数。两条原始规则路径对顺子最小长度并不一致（3 或 4），
// 这里统一采用 4，与人人对战路径的校验器保持一致。
const (
	MinTrioSize = 3
	MinRunSize  = 4
)

// IsValidTrio 判断一组牌能否构成三条：所有普通牌点数相同，
// 且普通牌数加鬼牌数不少于 3。全鬼牌时需要至少 3 张。
func IsValidTrio(cards []card.Card) bool {
	if len(cards) < MinTrioSize {
		return false
	}

	normals, jokers := card.SplitJokers(cards)
	if len(normals) == 0 {
		return len(jokers) >= MinTrioSize
	}

	rank := normals[0].Rank
	for _, c := range normals[1:] {
		if c.Rank != rank {
			return false
		}
	}
	return len(normals)+len(jokers) >= MinTrioSize
}

// IsValidRun 判断一组牌能否构成顺子：普通牌同花色、点数不重复，
// 排序后相邻点数之间的空隙总数不超过鬼牌数。
func IsValidRun(cards []card.Card) bool {
	if len(cards) < MinRunSize {
		return false
	}

	normals, jokers := card.SplitJokers(cards)
	if len(normals) == 0 {
		return false
	}

	suit := normals[0].Suit
	for _, c := range normals[1:] {
		if c.Suit != suit {
			return false
		}
	}

	ranks := make([]card.Rank, len(normals))
	for i, c := range normals {
		ranks[i] = c.Rank
	}
	slices.Sort(ranks)

	gaps, ok := gapSum(ranks)
	return ok && gaps <= len(jokers)
}

// gapSum 统计升序点数序列的空隙总数，出现重复点数时返回 ok=false
func gapSum(ranks []card.Rank) (gaps int, ok bool) {
	for i := 1; i < len(ranks); i++ {
		gap := int(ranks[i]) - int(ranks[i-1]) - 1
		if gap < 0 {
			return 0, false
		}
		gaps += gap
	}
	return gaps, true
}
