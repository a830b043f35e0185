package card

import (
	"fmt"
	"math/rand/v2"
)

// Suit 定义花色
type Suit int

const (
	Spade   Suit = iota // 黑桃
	Heart               // 红心
	Club                // 梅花
	Diamond             // 方块
	Joker               // 鬼牌
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Club:    "♣",
	Diamond: "♦",
	Joker:   "🃏",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// Rank 定义点数，A 固定为最小（卡里奥卡的顺子不允许 A 接在 K 之后）
type Rank int

// RankJoker 鬼牌无点数
const RankJoker Rank = 0

const (
	RankA Rank = iota + 1
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	RankA:  "A",
	Rank2:  "2",
	Rank3:  "3",
	Rank4:  "4",
	Rank5:  "5",
	Rank6:  "6",
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	Rank10: "10",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "?"
}

// Card 定义一张牌。Deck 标识来自哪一副牌，Seq 区分同一副牌中的多张鬼牌，
// 因此物理上不同的两张牌永远是两个不同的值。
type Card struct {
	Suit Suit
	Rank Rank
	Deck int // 牌副编号，从 1 开始
	Seq  int // 同副牌内鬼牌的序号，普通牌为 0
}

// IsJoker 是否为鬼牌
func (c Card) IsJoker() bool {
	return c.Suit == Joker
}

func (c Card) String() string {
	if c.IsJoker() {
		return "🃏"
	}
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// ID 返回唯一标识，用于日志与持久化
func (c Card) ID() string {
	if c.IsJoker() {
		return fmt.Sprintf("joker_%d_%d", c.Deck, c.Seq)
	}
	return fmt.Sprintf("%s_%s_%d", c.Rank, c.Suit, c.Deck)
}

// Deck 定义一叠牌，切片末尾为牌堆顶
type Deck []Card

// NewShoe 构造发牌用牌堆：decks 副标准牌，每副附带 jokersPerDeck 张鬼牌
func NewShoe(decks, jokersPerDeck int) Deck {
	shoe := make(Deck, 0, decks*(52+jokersPerDeck))
	for d := 1; d <= decks; d++ {
		for s := Spade; s <= Diamond; s++ {
			for r := RankA; r <= RankK; r++ {
				shoe = append(shoe, Card{Suit: s, Rank: r, Deck: d})
			}
		}
		for j := 1; j <= jokersPerDeck; j++ {
			shoe = append(shoe, Card{Suit: Joker, Rank: RankJoker, Deck: d, Seq: j})
		}
	}
	return shoe
}

func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}
