package card

import "slices"

// SortHand 按花色再按点数整理手牌，鬼牌排在最后
func SortHand(hand []Card) {
	slices.SortStableFunc(hand, func(a, b Card) int {
		if a.Suit != b.Suit {
			return int(a.Suit) - int(b.Suit)
		}
		return int(a.Rank) - int(b.Rank)
	})
}

// SortByRank 按点数升序整理，鬼牌排在最后
func SortByRank(hand []Card) {
	slices.SortStableFunc(hand, func(a, b Card) int {
		switch {
		case a.IsJoker() && b.IsJoker():
			return 0
		case a.IsJoker():
			return 1
		case b.IsJoker():
			return -1
		}
		return int(a.Rank) - int(b.Rank)
	})
}

// RemoveCards 从手牌中移除指定的牌，返回新切片
func RemoveCards(hand, toRemove []Card) []Card {
	var result []Card
	for _, c := range hand {
		if !slices.Contains(toRemove, c) {
			result = append(result, c)
		}
	}
	return result
}

// ContainsAll 检查手牌是否按张数包含给定的每一张牌。
// 每张实体牌只能被匹配一次，重复引用同一张牌视为不包含
func ContainsAll(hand, cards []Card) bool {
	remaining := make(map[Card]int, len(hand))
	for _, c := range hand {
		remaining[c]++
	}
	for _, c := range cards {
		if remaining[c] == 0 {
			return false
		}
		remaining[c]--
	}
	return true
}

// SplitJokers 把一组牌拆分为普通牌与鬼牌
func SplitJokers(cards []Card) (normals, jokers []Card) {
	for _, c := range cards {
		if c.IsJoker() {
			jokers = append(jokers, c)
		} else {
			normals = append(normals, c)
		}
	}
	return normals, jokers
}
