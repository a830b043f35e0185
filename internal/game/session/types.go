package session

import (
	"time"

	"github.com/palemoky/carioca-online/internal/game/card"
	"github.com/palemoky/carioca-online/internal/game/contract"
	"github.com/palemoky/carioca-online/internal/game/rule"
)

// Phase 对局阶段
type Phase int

const (
	PhaseDealing    Phase = iota // 等待发牌
	PhasePlaying                 // 本轮进行中
	PhaseRoundEnded              // 本轮已结算，等待下一轮发牌
	PhaseFinished                // 全部合约打完
)

var phaseNames = map[Phase]string{
	PhaseDealing:    "dealing",
	PhasePlaying:    "playing",
	PhaseRoundEnded: "round_ended",
	PhaseFinished:   "finished",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// DrawSource 摸牌来源
type DrawSource int

const (
	DrawFromDeck    DrawSource = iota // 从牌堆摸
	DrawFromDiscard                   // 捡弃牌堆顶
)

// Player 对局中的玩家
type Player struct {
	ID        string
	Name      string
	Seat      int
	IsBot     bool
	Hand      []card.Card
	LaidDown  bool // 本轮是否已完成合约
	Score     int  // 累计罚分，越低越好
	IsOffline bool
}

// TableCombo 桌面上的一个组合及其归属
type TableCombo struct {
	OwnerID string
	Combo   *rule.Combination
}

// PlayerScore 一名玩家的结算信息
type PlayerScore struct {
	PlayerID    string
	PlayerName  string
	RoundPoints int // 本轮留牌罚分
	TotalScore  int // 累计罚分
	Hand        []card.Card
}

// RoundResult 一轮合约的结算结果。WinnerID 为空表示流局
type RoundResult struct {
	Contract contract.Contract
	WinnerID string
	Scores   []PlayerScore
}

// Events 对局事件回调。回调在会话锁内触发，
// 实现方不得回调会话方法，耗时操作应另起协程。
type Events interface {
	OnRoundStart(c contract.Contract)
	OnTurn(playerID string, timeout time.Duration)
	OnDraw(playerID string, source DrawSource, drawn card.Card)
	OnLayDown(playerID string, combos []*rule.Combination)
	OnExtend(playerID string, cards []card.Card, target int)
	OnDiscard(playerID string, discarded card.Card)
	OnRoundEnd(result RoundResult)
	OnGameEnd(standings []PlayerScore)
}

// NopEvents 空实现，供测试与离线对局使用
type NopEvents struct{}

func (NopEvents) OnRoundStart(contract.Contract)             {}
func (NopEvents) OnTurn(string, time.Duration)               {}
func (NopEvents) OnDraw(string, DrawSource, card.Card)       {}
func (NopEvents) OnLayDown(string, []*rule.Combination)      {}
func (NopEvents) OnExtend(string, []card.Card, int)          {}
func (NopEvents) OnDiscard(string, card.Card)                {}
func (NopEvents) OnRoundEnd(RoundResult)                     {}
func (NopEvents) OnGameEnd([]PlayerScore)                    {}
