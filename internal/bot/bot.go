package bot

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/palemoky/carioca-online/internal/game/card"
	"github.com/palemoky/carioca-online/internal/game/session"
)

// Level 机器人难度
type Level int

const (
	LevelEasy Level = iota
	LevelNormal
	LevelHard
)

var levelNames = map[Level]string{
	LevelEasy:   "简单",
	LevelNormal: "普通",
	LevelHard:   "困难",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "普通"
}

// Names 机器人顶替空位时使用的名字
var Names = []string{"Roberto", "Viejo Amanerao", "Papá"}

// Bot 驱动一个机器人玩家：在轮到它时按 摸牌 → 放牌 → 接牌 → 弃牌
// 的顺序走完回合，每步之间插入思考延迟
type Bot struct {
	PlayerID string
	Name     string
	Brain    Brain

	thinkMin time.Duration
	thinkMax time.Duration
}

// New 创建机器人，难度决定思考延迟区间
func New(playerID, name string, level Level) *Bot {
	b := &Bot{
		PlayerID: playerID,
		Name:     name,
		Brain:    Brain{Level: level},
	}
	switch level {
	case LevelEasy:
		b.thinkMin, b.thinkMax = 1200*time.Millisecond, 2500*time.Millisecond
	case LevelHard:
		b.thinkMin, b.thinkMax = 400*time.Millisecond, 900*time.Millisecond
	default:
		b.thinkMin, b.thinkMax = 700*time.Millisecond, 1500*time.Millisecond
	}
	return b
}

// TakeTurn 走完一个回合。应在独立协程中调用，方法内部会阻塞思考延迟
func (b *Bot) TakeTurn(s *session.Session) {
	if s.CurrentPlayerID() != b.PlayerID {
		return
	}

	b.think()

	// 摸牌
	hand := s.PlayerHand(b.PlayerID)
	var discardTop *card.Card
	if top, ok := s.DiscardTop(); ok {
		discardTop = &top
	}
	source := b.Brain.ChooseDrawSource(hand, discardTop)
	if err := s.Draw(b.PlayerID, source); err != nil {
		if err2 := s.Draw(b.PlayerID, session.DrawFromDeck); err2 != nil {
			log.Printf("🤖 机器人 %s 摸牌失败: %v", b.Name, err2)
			return
		}
	}
	if s.Phase() != session.PhasePlaying {
		return // 流局结算
	}

	b.think()

	// 放牌：未完成合约先尝试凑合约，完成后尝试追加
	if !s.HasLaidDown(b.PlayerID) {
		req := s.CurrentContract().Requirement
		if selected := b.Brain.PlanLayDown(s.PlayerHand(b.PlayerID), req); selected != nil {
			if err := s.LayDown(b.PlayerID, selected); err != nil {
				log.Printf("🤖 机器人 %s 放牌失败: %v", b.Name, err)
			}
		}
	}

	// 接牌：把能接的牌逐张接到桌面上
	if s.HasLaidDown(b.PlayerID) && s.Phase() == session.PhasePlaying {
		for _, c := range b.Brain.PlanExtensions(s.PlayerHand(b.PlayerID), s.Table()) {
			if err := s.LayDown(b.PlayerID, []card.Card{c}); err != nil {
				break
			}
			if s.Phase() != session.PhasePlaying {
				return // 脱手，本轮结束
			}
		}
	}

	if s.Phase() != session.PhasePlaying {
		return
	}

	b.think()

	// 弃牌收尾
	hand = s.PlayerHand(b.PlayerID)
	if len(hand) == 0 {
		return
	}
	if err := s.Discard(b.PlayerID, b.Brain.ChooseDiscard(hand)); err != nil {
		log.Printf("🤖 机器人 %s 弃牌失败: %v", b.Name, err)
	}
}

func (b *Bot) think() {
	span := b.thinkMax - b.thinkMin
	time.Sleep(b.thinkMin + rand.N(span))
}
