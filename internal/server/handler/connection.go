package handler

import (
	"log"
	"time"

	"github.com/palemoky/carioca-online/internal/protocol"
	"github.com/palemoky/carioca-online/internal/protocol/codec"
	"github.com/palemoky/carioca-online/internal/server/session"
	"github.com/palemoky/carioca-online/internal/types"
)

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	// 立即回复 pong
	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleReconnect 处理断线重连
func (h *Handler) handleReconnect(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.ReconnectPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 验证重连令牌
	if !h.sessionManager.CanReconnect(payload.Token, payload.PlayerID) {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "重连令牌无效或已过期"))
		return
	}

	// 获取旧会话
	playerSession := h.sessionManager.GetSession(payload.PlayerID)
	if playerSession == nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "会话不存在"))
		return
	}

	// 从临时 ID 注销，恢复会话中的身份后重新注册
	h.server.UnregisterClient(client.GetID())
	if c, ok := client.(interface{ SetIdentity(id, name string) }); ok {
		c.SetIdentity(playerSession.PlayerID, playerSession.PlayerName)
	}
	h.server.RegisterClient(playerSession.PlayerID, client)

	// 标记会话上线
	h.sessionManager.SetOnline(playerSession.PlayerID)

	// 构建重连响应
	reconnectPayload := protocol.ReconnectedPayload{
		PlayerID:   playerSession.PlayerID,
		PlayerName: playerSession.PlayerName,
	}

	// 如果在房间中，尝试恢复房间信息
	if playerSession.RoomCode != "" {
		h.tryRestoreRoomState(client, playerSession, &reconnectPayload)
	}

	// 发送重连成功消息
	client.SendMessage(codec.MustNewMessage(protocol.MsgReconnected, reconnectPayload))

	log.Printf("🔄 玩家 %s (%s) 重连成功", playerSession.PlayerName, playerSession.PlayerID)
}

// tryRestoreRoomState 尝试恢复房间状态
func (h *Handler) tryRestoreRoomState(client types.ClientInterface, playerSession *session.PlayerSession, payload *protocol.ReconnectedPayload) {
	room := h.roomManager.GetRoom(playerSession.RoomCode)
	if room == nil {
		return
	}

	// 重连到房间
	if err := h.roomManager.ReconnectPlayer(playerSession.RoomCode, client); err != nil {
		log.Printf("重连到房间失败: %v", err)
		return
	}

	client.SetRoom(playerSession.RoomCode)
	payload.RoomCode = playerSession.RoomCode

	// 如果对局正在进行，恢复玩家视角的局面
	payload.GameState = room.BuildGameStateDTO(playerSession.PlayerID)
}
