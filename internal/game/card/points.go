package card

// 留在手里的牌按以下规则计罚分
const (
	jokerPoints = 25
	acePoints   = 15
	facePoints  = 10
)

// Points 返回一张牌的罚分：鬼牌 25，A 15，J/Q/K 10，数字牌按面值
func Points(c Card) int {
	switch {
	case c.IsJoker():
		return jokerPoints
	case c.Rank == RankA:
		return acePoints
	case c.Rank >= RankJ:
		return facePoints
	default:
		return int(c.Rank)
	}
}

// HandPoints 返回整手牌的罚分合计
func HandPoints(hand []Card) int {
	total := 0
	for _, c := range hand {
		total += Points(c)
	}
	return total
}
