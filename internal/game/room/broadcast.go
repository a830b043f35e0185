package room

import (
	"log"

	"github.com/google/uuid"

	"github.com/palemoky/carioca-online/internal/apperrors"
	"github.com/palemoky/carioca-online/internal/bot"
	"github.com/palemoky/carioca-online/internal/game/session"
	"github.com/palemoky/carioca-online/internal/protocol"
	"github.com/palemoky/carioca-online/internal/protocol/codec"
	"github.com/palemoky/carioca-online/internal/protocol/convert"
)

// 以下方法假定调用方已持有 r.mu，与管理器的加锁约定一致。

// Broadcast 广播消息给房间内所有真人玩家
func (r *Room) Broadcast(msg *protocol.Message) {
	for _, player := range r.Players {
		if player.Client != nil {
			player.Client.SendMessage(msg)
		}
	}
}

// BroadcastExcept 广播消息给除指定玩家外的所有真人玩家
func (r *Room) BroadcastExcept(excludeID string, msg *protocol.Message) {
	for id, player := range r.Players {
		if id != excludeID && player.Client != nil {
			player.Client.SendMessage(msg)
		}
	}
}

// checkAllReady 检查是否可以开局：至少 minPlayers 名真人且全部准备
func (r *Room) checkAllReady() bool {
	if len(r.Players) < minPlayers {
		return false
	}
	for _, player := range r.Players {
		if !player.Ready {
			return false
		}
	}
	return true
}

// GetPlayerInfo 获取玩家信息
func (r *Room) GetPlayerInfo(playerID string) protocol.PlayerInfo {
	player, ok := r.Players[playerID]
	if !ok {
		return protocol.PlayerInfo{}
	}

	info := protocol.PlayerInfo{
		ID:     player.ID,
		Name:   player.Name,
		Seat:   player.Seat,
		Ready:  player.Ready,
		IsBot:  player.IsBot,
		Online: player.IsBot || player.Client != nil,
	}

	if r.game != nil {
		info.CardsCount = len(r.game.PlayerHand(playerID))
		info.LaidDown = r.game.HasLaidDown(playerID)
		for _, ps := range r.game.Standings() {
			if ps.PlayerID == playerID {
				info.Score = ps.TotalScore
				break
			}
		}
	}

	return info
}

// GetAllPlayersInfo 获取所有玩家信息（按座位顺序）
func (r *Room) GetAllPlayersInfo() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(r.Players))
	for _, id := range r.PlayerOrder {
		infos = append(infos, r.GetPlayerInfo(id))
	}
	return infos
}

// PlayerInfo 获取单个玩家信息（自行加锁，供包外调用）
func (r *Room) PlayerInfo(playerID string) protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.GetPlayerInfo(playerID)
}

// PlayersInfo 获取所有玩家信息（自行加锁，供包外调用）
func (r *Room) PlayersInfo() []protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.GetAllPlayersInfo()
}

// StartGame 开始对局：空位补机器人，创建会话并发牌
func (r *Room) StartGame() error {
	r.mu.Lock()

	if r.State != RoomStateWaiting {
		r.mu.Unlock()
		return apperrors.ErrGameStarted
	}
	if len(r.Players) < minPlayers {
		r.mu.Unlock()
		return apperrors.ErrGameNotStart
	}

	// 空位补机器人
	r.bots = make(map[string]*bot.Bot)
	level := bot.LevelNormal
	cfg := session.DefaultConfig()
	if r.manager != nil {
		level = r.manager.botLevel
		cfg = r.manager.sessionCfg
	}
	for i := 0; len(r.Players) < maxPlayers && i < len(bot.Names); i++ {
		id := uuid.New().String()
		name := bot.Names[i]
		seat := len(r.Players)
		r.Players[id] = &RoomPlayer{ID: id, Name: name, Seat: seat, Ready: true, IsBot: true}
		r.PlayerOrder = append(r.PlayerOrder, id)
		r.bots[id] = bot.New(id, name, level)
	}

	players := make([]*session.Player, 0, len(r.PlayerOrder))
	for _, id := range r.PlayerOrder {
		p := r.Players[id]
		players = append(players, &session.Player{
			ID:    p.ID,
			Name:  p.Name,
			Seat:  p.Seat,
			IsBot: p.IsBot,
		})
	}

	events := newRoomEvents(r)
	r.game = session.New(players, events, cfg)
	r.State = RoomStatePlaying

	r.Broadcast(codec.MustNewMessage(protocol.MsgGameStart, protocol.GameStartPayload{
		Players:   r.GetAllPlayersInfo(),
		Contracts: convert.ContractsToInfos(r.game.Contracts()),
	}))

	game := r.game
	r.mu.Unlock()

	log.Printf("🎮 房间 %s 开局，%d 名玩家（%d 个机器人）", r.Code, len(players), len(r.bots))

	game.StartRound()
	return nil
}

// BuildGameStateDTO 构建某个玩家视角的对局状态（用于断线重连恢复）
func (r *Room) BuildGameStateDTO(playerID string) *protocol.GameStateDTO {
	r.mu.RLock()
	game := r.game
	r.mu.RUnlock()
	if game == nil {
		return nil
	}

	dto := &protocol.GameStateDTO{
		Phase:       game.Phase().String(),
		Contract:    convert.ContractToInfo(game.CurrentContract()),
		Hand:        convert.CardsToInfos(game.PlayerHand(playerID)),
		DeckLeft:    game.DeckLeft(),
		CurrentTurn: game.CurrentPlayerID(),
		Drew:        game.HasDrawn(),
	}

	if top, ok := game.DiscardTop(); ok {
		info := convert.CardToInfo(top)
		dto.DiscardTop = &info
	}
	for _, tc := range game.Table() {
		dto.Table = append(dto.Table, convert.ComboToInfo(tc.OwnerID, tc.Combo))
	}

	r.mu.RLock()
	dto.Players = r.GetAllPlayersInfo()
	r.mu.RUnlock()

	return dto
}
