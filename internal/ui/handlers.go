package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/carioca-online/internal/protocol"
	"github.com/palemoky/carioca-online/internal/protocol/convert"
)

// handleServerMessage 按消息类型分发到具体的处理函数
func (m *OnlineModel) handleServerMessage(msg *protocol.Message) tea.Cmd {
	switch msg.Type {
	// 连接相关
	case protocol.MsgConnected:
		return m.handleMsgConnected(msg)
	case protocol.MsgReconnected:
		return m.handleMsgReconnected(msg)
	case protocol.MsgPong:
		return m.handleMsgPong(msg)
	case protocol.MsgError:
		return m.handleMsgError(msg)
	case protocol.MsgOnlineCount:
		return m.handleMsgOnlineCount(msg)

	// 房间相关
	case protocol.MsgRoomCreated:
		return m.handleMsgRoomCreated(msg)
	case protocol.MsgRoomJoined:
		return m.handleMsgRoomJoined(msg)
	case protocol.MsgPlayerJoined:
		return m.handleMsgPlayerJoined(msg)
	case protocol.MsgPlayerLeft:
		return m.handleMsgPlayerLeft(msg)
	case protocol.MsgPlayerReady:
		return m.handleMsgPlayerReady(msg)
	case protocol.MsgPlayerOffline:
		return m.handleMsgPlayerOffline(msg)
	case protocol.MsgPlayerOnline:
		return m.handleMsgPlayerOnline(msg)
	case protocol.MsgRoomListResult:
		return m.handleMsgRoomListResult(msg)
	case protocol.MsgMatchFound:
		return m.handleMsgMatchFound(msg)

	// 对局相关
	case protocol.MsgGameStart:
		return m.handleMsgGameStart(msg)
	case protocol.MsgDealCards:
		return m.handleMsgDealCards(msg)
	case protocol.MsgTurn:
		return m.handleMsgTurn(msg)
	case protocol.MsgCardDrawn:
		return m.handleMsgCardDrawn(msg)
	case protocol.MsgPlayerDown:
		return m.handleMsgPlayerDown(msg)
	case protocol.MsgTableExtended:
		return m.handleMsgTableExtended(msg)
	case protocol.MsgCardDiscarded:
		return m.handleMsgCardDiscarded(msg)
	case protocol.MsgRoundResult:
		return m.handleMsgRoundResult(msg)
	case protocol.MsgGameOver:
		return m.handleMsgGameOver(msg)

	// 统计相关
	case protocol.MsgStatsResult:
		return m.handleMsgStatsResult(msg)
	case protocol.MsgLeaderboardResult:
		return m.handleMsgLeaderboardResult(msg)
	}

	return nil
}

// --- 连接相关消息处理 ---

func (m *OnlineModel) handleMsgConnected(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.ConnectedPayload](msg)
	if err != nil {
		return nil
	}

	m.playerID = payload.PlayerID
	m.playerName = payload.PlayerName

	_ = m.client.GetOnlineCount()

	m.input.Placeholder = lobbyPlaceholder
	m.input.Focus()
	m.soundManager.Play("login")
	return nil
}

func (m *OnlineModel) handleMsgReconnected(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.ReconnectedPayload](msg)
	if err != nil {
		return nil
	}

	m.playerID = payload.PlayerID
	if payload.PlayerName != "" {
		m.playerName = payload.PlayerName
	}

	if payload.RoomCode != "" {
		m.state.RoomCode = payload.RoomCode
		if payload.GameState != nil {
			m.restoreGameState(payload.GameState)
		} else {
			m.phase = PhaseWaiting
		}
	} else {
		m.phase = PhaseLobby
		m.input.Placeholder = lobbyPlaceholder
		m.input.Focus()
	}
	return nil
}

// restoreGameState 用服务端快照恢复对局画面
func (m *OnlineModel) restoreGameState(dto *protocol.GameStateDTO) {
	m.state.Contract = dto.Contract
	m.state.Players = dto.Players
	m.state.Hand = convert.InfosToCards(dto.Hand)
	m.state.SortHand()
	m.state.Table = dto.Table
	m.state.DiscardTop = dto.DiscardTop
	m.state.DeckLeft = dto.DeckLeft
	m.state.CurrentTurn = dto.CurrentTurn
	m.state.Drew = dto.Drew
	for _, p := range dto.Players {
		if p.ID == m.playerID {
			m.state.LaidDown = p.LaidDown
			break
		}
	}

	if dto.Phase == "finished" {
		m.phase = PhaseGameOver
	} else {
		m.phase = PhasePlaying
	}
	m.updateTurnPrompt()
}

func (m *OnlineModel) handleMsgPong(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PongPayload](msg)
	if err != nil {
		return nil
	}
	m.latency = time.Now().UnixMilli() - payload.ClientTimestamp
	return nil
}

func (m *OnlineModel) handleMsgError(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	if err != nil {
		return nil
	}

	m.error = fmt.Sprintf("⚠️ %s", payload.Message)
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func (m *OnlineModel) handleMsgOnlineCount(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.OnlineCountPayload](msg)
	if err != nil {
		return nil
	}
	m.onlineCount = payload.Count
	return nil
}

// --- 房间相关消息处理 ---

func (m *OnlineModel) handleMsgRoomCreated(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.RoomCreatedPayload](msg)
	if err != nil {
		return nil
	}
	m.state.RoomCode = payload.RoomCode
	m.state.Players = []protocol.PlayerInfo{payload.Player}
	m.phase = PhaseWaiting
	m.input.Placeholder = "输入 R 准备"
	return nil
}

func (m *OnlineModel) handleMsgRoomJoined(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.RoomJoinedPayload](msg)
	if err != nil {
		return nil
	}
	m.state.RoomCode = payload.RoomCode
	m.state.Players = payload.Players
	m.phase = PhaseWaiting
	m.input.Placeholder = "输入 R 准备"
	m.soundManager.Play("join")
	return nil
}

func (m *OnlineModel) handleMsgPlayerJoined(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PlayerJoinedPayload](msg)
	if err != nil {
		return nil
	}
	m.state.Players = append(m.state.Players, payload.Player)
	return nil
}

func (m *OnlineModel) handleMsgPlayerLeft(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PlayerLeftPayload](msg)
	if err != nil {
		return nil
	}
	for i, p := range m.state.Players {
		if p.ID == payload.PlayerID {
			m.state.Players = append(m.state.Players[:i], m.state.Players[i+1:]...)
			break
		}
	}
	return nil
}

func (m *OnlineModel) handleMsgPlayerReady(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PlayerReadyPayload](msg)
	if err != nil {
		return nil
	}
	for i, p := range m.state.Players {
		if p.ID == payload.PlayerID {
			m.state.Players[i].Ready = payload.Ready
			if payload.PlayerID == m.playerID {
				if payload.Ready {
					m.input.Placeholder = "等待其他玩家准备..."
					m.input.Blur()
				} else {
					m.input.Placeholder = "输入 R 准备"
					m.input.Focus()
				}
			}
			break
		}
	}
	return nil
}

func (m *OnlineModel) handleMsgPlayerOffline(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PlayerOfflinePayload](msg)
	if err != nil {
		return nil
	}
	for i, p := range m.state.Players {
		if p.ID == payload.PlayerID {
			m.state.Players[i].Online = false
			break
		}
	}
	return nil
}

func (m *OnlineModel) handleMsgPlayerOnline(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PlayerOnlinePayload](msg)
	if err != nil {
		return nil
	}
	for i, p := range m.state.Players {
		if p.ID == payload.PlayerID {
			m.state.Players[i].Online = true
			break
		}
	}
	return nil
}

func (m *OnlineModel) handleMsgRoomListResult(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.RoomListResultPayload](msg)
	if err != nil {
		return nil
	}
	m.availableRooms = payload.Rooms
	m.selectedRoomIdx = 0
	return nil
}

func (m *OnlineModel) handleMsgMatchFound(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.MatchFoundPayload](msg)
	if err != nil {
		return nil
	}
	m.state.RoomCode = payload.RoomCode
	m.state.Players = payload.Players
	m.phase = PhaseWaiting
	m.input.Placeholder = "匹配成功，即将开局..."
	m.soundManager.Play("join")
	return nil
}

// --- 对局相关消息处理 ---

func (m *OnlineModel) handleMsgGameStart(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.GameStartPayload](msg)
	if err != nil {
		return nil
	}
	m.state.Players = payload.Players
	m.state.Contracts = payload.Contracts
	return nil
}

func (m *OnlineModel) handleMsgDealCards(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.DealCardsPayload](msg)
	if err != nil {
		return nil
	}
	m.state.ApplyDeal(payload)
	m.phase = PhasePlaying
	for i := range m.state.Players {
		m.state.Players[i].CardsCount = payload.Contract.HandSize
		m.state.Players[i].LaidDown = false
	}
	m.soundManager.Play("deal")
	return nil
}

func (m *OnlineModel) handleMsgTurn(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.TurnPayload](msg)
	if err != nil {
		return nil
	}
	m.state.CurrentTurn = payload.PlayerID
	m.updateTurnPrompt()
	if payload.PlayerID == m.playerID {
		m.soundManager.Play("turn")
	}
	m.timer = timer.NewWithInterval(time.Duration(payload.Timeout)*time.Second, time.Second)
	return m.timer.Start()
}

// updateTurnPrompt 根据回合归属更新输入提示
func (m *OnlineModel) updateTurnPrompt() {
	if m.state.CurrentTurn == m.playerID {
		if m.state.Drew {
			m.input.Placeholder = "m 放牌 | a 接牌 | x 弃牌"
		} else {
			m.input.Placeholder = "d 摸牌 | p 捡弃牌"
		}
		m.input.Focus()
		return
	}
	for _, p := range m.state.Players {
		if p.ID == m.state.CurrentTurn {
			m.input.Placeholder = fmt.Sprintf("等待 %s 行动...", p.Name)
			break
		}
	}
	m.input.Blur()
}

func (m *OnlineModel) handleMsgCardDrawn(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.CardDrawnPayload](msg)
	if err != nil {
		return nil
	}
	m.state.ApplyDraw(m.playerID, payload)
	if payload.PlayerID == m.playerID {
		m.updateTurnPrompt()
	}
	m.soundManager.Play("draw")
	return nil
}

func (m *OnlineModel) handleMsgPlayerDown(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PlayerDownPayload](msg)
	if err != nil {
		return nil
	}
	m.state.ApplyLayDown(m.playerID, payload)
	for i, p := range m.state.Players {
		if p.ID == payload.PlayerID {
			m.state.Players[i].LaidDown = true
			break
		}
	}
	m.soundManager.Play("meld")
	return nil
}

func (m *OnlineModel) handleMsgTableExtended(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.TableExtendedPayload](msg)
	if err != nil {
		return nil
	}
	m.state.ApplyExtend(m.playerID, payload)
	m.soundManager.Play("meld")
	return nil
}

func (m *OnlineModel) handleMsgCardDiscarded(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.CardDiscardedPayload](msg)
	if err != nil {
		return nil
	}
	m.state.ApplyDiscard(m.playerID, payload)
	m.soundManager.Play("discard")
	return nil
}

func (m *OnlineModel) handleMsgRoundResult(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.RoundResultPayload](msg)
	if err != nil {
		return nil
	}
	m.state.LastResult = payload
	for _, s := range payload.Scores {
		for i, p := range m.state.Players {
			if p.ID == s.PlayerID {
				m.state.Players[i].Score = s.TotalScore
				break
			}
		}
	}
	m.phase = PhaseRoundEnd
	m.input.Placeholder = "等待下一轮发牌..."
	m.input.Blur()
	if payload.WinnerID == m.playerID {
		m.soundManager.Play("win")
	}
	return nil
}

func (m *OnlineModel) handleMsgGameOver(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.GameOverPayload](msg)
	if err != nil {
		return nil
	}
	m.phase = PhaseGameOver
	m.state.Winner = payload.WinnerID
	m.state.WinnerName = payload.WinnerName
	m.state.Standings = payload.Standings
	m.input.Placeholder = "按回车返回大厅"
	m.input.Focus()

	if payload.WinnerID == m.playerID {
		m.soundManager.Play("win")
	} else {
		m.soundManager.Play("lose")
	}
	return nil
}

// --- 统计相关消息处理 ---

func (m *OnlineModel) handleMsgStatsResult(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.StatsResultPayload](msg)
	if err != nil {
		return nil
	}
	m.myStats = payload
	return nil
}

func (m *OnlineModel) handleMsgLeaderboardResult(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.LeaderboardResultPayload](msg)
	if err != nil {
		return nil
	}
	m.leaderboard = payload.Entries
	return nil
}
