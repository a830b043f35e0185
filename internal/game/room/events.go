package room

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/palemoky/carioca-online/internal/game/card"
	"github.com/palemoky/carioca-online/internal/game/contract"
	"github.com/palemoky/carioca-online/internal/game/rule"
	"github.com/palemoky/carioca-online/internal/game/session"
	"github.com/palemoky/carioca-online/internal/protocol"
	"github.com/palemoky/carioca-online/internal/protocol/codec"
	"github.com/palemoky/carioca-online/internal/protocol/convert"
)

// 两轮之间的发牌间隔，给客户端留出展示结算的时间
const nextRoundDelay = 5 * time.Second

// roomEvents 把对局回调转成房间广播。回调在会话锁内触发，
// 这里只把闭包塞进队列，由单独的协程按顺序消费，
// 消费协程再去读会话状态就不会在同一把锁上打转。
type roomEvents struct {
	room  *Room
	queue chan func()

	mu     sync.Mutex
	closed bool
}

func newRoomEvents(r *Room) *roomEvents {
	e := &roomEvents{
		room:  r,
		queue: make(chan func(), 64),
	}
	go e.run()
	return e
}

func (e *roomEvents) run() {
	for fn := range e.queue {
		fn()
	}
}

// enqueue 入队一个广播任务，队列满时丢弃而不是阻塞会话。
// 对局结束后迟到的事件（比如还没停掉的计时器）直接忽略
func (e *roomEvents) enqueue(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	select {
	case e.queue <- fn:
	default:
		log.Printf("⚠️ 房间 %s 事件队列已满，丢弃一条广播", e.room.Code)
	}
}

// stop 停止消费协程，之后的 enqueue 不再入队
func (e *roomEvents) stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	close(e.queue)
}

func (e *roomEvents) OnRoundStart(c contract.Contract) {
	e.enqueue(func() {
		r := e.room
		r.mu.RLock()
		defer r.mu.RUnlock()

		game := r.game
		if game == nil {
			return
		}

		var discardTop *protocol.CardInfo
		if top, ok := game.DiscardTop(); ok {
			info := convert.CardToInfo(top)
			discardTop = &info
		}

		// 每人只能看到自己的手牌
		for _, player := range r.Players {
			if player.Client == nil {
				continue
			}
			player.Client.SendMessage(codec.MustNewMessage(protocol.MsgDealCards, protocol.DealCardsPayload{
				Contract:   convert.ContractToInfo(c),
				Cards:      convert.CardsToInfos(game.PlayerHand(player.ID)),
				DiscardTop: discardTop,
				DeckLeft:   game.DeckLeft(),
			}))
		}

		log.Printf("🎴 房间 %s 第 %d 轮合约「%s」发牌完毕", r.Code, c.ID, c.Name)
	})
}

func (e *roomEvents) OnTurn(playerID string, timeout time.Duration) {
	e.enqueue(func() {
		r := e.room
		r.mu.RLock()
		r.Broadcast(codec.MustNewMessage(protocol.MsgTurn, protocol.TurnPayload{
			PlayerID: playerID,
			Timeout:  int(timeout.Seconds()),
		}))
		b := r.bots[playerID]
		game := r.game
		r.mu.RUnlock()

		// 轮到机器人时另起协程走完整个回合
		if b != nil && game != nil {
			go b.TakeTurn(game)
		}
	})
}

func (e *roomEvents) OnDraw(playerID string, source session.DrawSource, drawn card.Card) {
	e.enqueue(func() {
		r := e.room
		r.mu.RLock()
		defer r.mu.RUnlock()

		game := r.game
		if game == nil {
			return
		}

		wireSource := protocol.DrawSourceDeck
		if source == session.DrawFromDiscard {
			wireSource = protocol.DrawSourceDiscard
		}

		payload := protocol.CardDrawnPayload{
			PlayerID:   playerID,
			Source:     wireSource,
			CardsCount: len(game.PlayerHand(playerID)),
			DeckLeft:   game.DeckLeft(),
		}
		if top, ok := game.DiscardTop(); ok {
			info := convert.CardToInfo(top)
			payload.DiscardTop = &info
		}

		// 从牌堆摸的牌只有本人能看到，捡弃牌堆顶则是公开信息
		cardInfo := convert.CardToInfo(drawn)
		for _, player := range r.Players {
			if player.Client == nil {
				continue
			}
			msg := payload
			if player.ID == playerID || source == session.DrawFromDiscard {
				msg.Card = &cardInfo
			}
			player.Client.SendMessage(codec.MustNewMessage(protocol.MsgCardDrawn, msg))
		}
	})
}

func (e *roomEvents) OnLayDown(playerID string, combos []*rule.Combination) {
	// 回调仍持有会话锁，此时先转好传输结构再入队，
	// 消费协程就不会读到被后续扩展改动的组合
	newCombos := make([]protocol.ComboInfo, 0, len(combos))
	for _, combo := range combos {
		newCombos = append(newCombos, convert.ComboToInfo(playerID, combo))
	}

	e.enqueue(func() {
		r := e.room
		r.mu.RLock()
		defer r.mu.RUnlock()

		game := r.game
		if game == nil {
			return
		}

		r.Broadcast(codec.MustNewMessage(protocol.MsgPlayerDown, protocol.PlayerDownPayload{
			PlayerID:   playerID,
			PlayerName: r.playerName(playerID),
			Combos:     newCombos,
			Table:      r.tableInfos(),
			CardsCount: len(game.PlayerHand(playerID)),
		}))
	})
}

func (e *roomEvents) OnExtend(playerID string, cards []card.Card, target int) {
	e.enqueue(func() {
		r := e.room
		r.mu.RLock()
		defer r.mu.RUnlock()

		game := r.game
		if game == nil {
			return
		}

		r.Broadcast(codec.MustNewMessage(protocol.MsgTableExtended, protocol.TableExtendedPayload{
			PlayerID:   playerID,
			PlayerName: r.playerName(playerID),
			Cards:      convert.CardsToInfos(cards),
			Table:      r.tableInfos(),
			CardsCount: len(game.PlayerHand(playerID)),
		}))
	})
}

func (e *roomEvents) OnDiscard(playerID string, discarded card.Card) {
	e.enqueue(func() {
		r := e.room
		r.mu.RLock()
		defer r.mu.RUnlock()

		game := r.game
		if game == nil {
			return
		}

		r.Broadcast(codec.MustNewMessage(protocol.MsgCardDiscarded, protocol.CardDiscardedPayload{
			PlayerID:   playerID,
			PlayerName: r.playerName(playerID),
			Card:       convert.CardToInfo(discarded),
			CardsCount: len(game.PlayerHand(playerID)),
		}))
	})
}

func (e *roomEvents) OnRoundEnd(result session.RoundResult) {
	e.enqueue(func() {
		r := e.room
		r.mu.RLock()
		game := r.game
		payload := protocol.RoundResultPayload{
			Contract:   convert.ContractToInfo(result.Contract),
			WinnerID:   result.WinnerID,
			WinnerName: r.playerName(result.WinnerID),
			Scores:     scoreInfos(result.Scores),
		}
		if game != nil && game.Phase() == session.PhaseRoundEnded {
			next := convert.ContractToInfo(game.CurrentContract())
			payload.NextContract = &next
		}
		r.Broadcast(codec.MustNewMessage(protocol.MsgRoundResult, payload))
		r.mu.RUnlock()

		log.Printf("🏁 房间 %s 合约「%s」结算，胜者: %s", r.Code, result.Contract.Name, result.WinnerID)

		// 还有下一轮合约时，稍后自动发牌
		if game != nil && game.Phase() == session.PhaseRoundEnded {
			time.AfterFunc(nextRoundDelay, game.StartRound)
		}
	})
}

func (e *roomEvents) OnGameEnd(standings []session.PlayerScore) {
	e.enqueue(func() {
		r := e.room

		winnerID, winnerName := "", ""
		if len(standings) > 0 {
			winnerID = standings[0].PlayerID
			winnerName = standings[0].PlayerName
		}

		r.mu.Lock()
		r.State = RoomStateEnded
		r.Broadcast(codec.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
			WinnerID:   winnerID,
			WinnerName: winnerName,
			Standings:  scoreInfos(standings),
		}))
		manager := r.manager
		players := make([]*RoomPlayer, 0, len(r.Players))
		for _, p := range r.Players {
			players = append(players, p)
		}
		r.mu.Unlock()

		log.Printf("🏆 房间 %s 对局结束，总冠军: %s", r.Code, winnerName)

		// 只给真人记战绩
		if manager != nil && manager.leaderboard != nil {
			ctx := context.Background()
			for _, ps := range standings {
				for _, p := range players {
					if p.ID == ps.PlayerID && !p.IsBot {
						won := ps.PlayerID == winnerID
						if err := manager.leaderboard.RecordGameResult(ctx, ps.PlayerID, ps.PlayerName, ps.TotalScore, won); err != nil {
							log.Printf("记录战绩失败: %v", err)
						}
					}
				}
			}
		}

		e.stop()
	})
}

// playerName 查玩家昵称，调用方须持有 r.mu
func (r *Room) playerName(playerID string) string {
	if p, ok := r.Players[playerID]; ok {
		return p.Name
	}
	return ""
}

// tableInfos 当前桌面的传输结构，调用方须持有 r.mu
func (r *Room) tableInfos() []protocol.ComboInfo {
	if r.game == nil {
		return nil
	}
	table := r.game.Table()
	infos := make([]protocol.ComboInfo, 0, len(table))
	for _, tc := range table {
		infos = append(infos, convert.ComboToInfo(tc.OwnerID, tc.Combo))
	}
	return infos
}

func scoreInfos(scores []session.PlayerScore) []protocol.PlayerScore {
	infos := make([]protocol.PlayerScore, 0, len(scores))
	for _, ps := range scores {
		infos = append(infos, protocol.PlayerScore{
			PlayerID:    ps.PlayerID,
			PlayerName:  ps.PlayerName,
			RoundPoints: ps.RoundPoints,
			TotalScore:  ps.TotalScore,
			Hand:        convert.CardsToInfos(ps.Hand),
		})
	}
	return infos
}
