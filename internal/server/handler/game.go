package handler

import (
	"errors"

	"github.com/palemoky/carioca-online/internal/apperrors"
	"github.com/palemoky/carioca-online/internal/game/session"
	"github.com/palemoky/carioca-online/internal/protocol"
	"github.com/palemoky/carioca-online/internal/protocol/codec"
	"github.com/palemoky/carioca-online/internal/protocol/convert"
	"github.com/palemoky/carioca-online/internal/types"
)

// gameFor 取出客户端所在房间的对局，失败时已向客户端发送错误
func (h *Handler) gameFor(client types.ClientInterface) *session.Session {
	if h.roomManager == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeGameNotStart))
		return nil
	}

	room := h.roomManager.GetRoom(client.GetRoom())
	if room == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeNotInRoom))
		return nil
	}

	game := room.Game()
	if game == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeGameNotStart))
		return nil
	}
	return game
}

// sendGameError 把对局错误转成协议错误下发
func sendGameError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(codec.NewErrorMessage(gameErr.Code))
	} else {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
	}
}

// handleDraw 处理摸牌
func (h *Handler) handleDraw(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.DrawPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	game := h.gameFor(client)
	if game == nil {
		return
	}

	source := session.DrawFromDeck
	if payload.Source == protocol.DrawSourceDiscard {
		source = session.DrawFromDiscard
	}

	if err := game.Draw(client.GetID(), source); err != nil {
		sendGameError(client, err)
	}
}

// handleLayDown 处理放牌
func (h *Handler) handleLayDown(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.LayDownPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	game := h.gameFor(client)
	if game == nil {
		return
	}

	if err := game.LayDown(client.GetID(), convert.InfosToCards(payload.Cards)); err != nil {
		sendGameError(client, err)
	}
}

// handleExtend 处理接牌
func (h *Handler) handleExtend(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.ExtendPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	game := h.gameFor(client)
	if game == nil {
		return
	}

	if err := game.Extend(client.GetID(), convert.InfosToCards(payload.Cards), payload.Target); err != nil {
		sendGameError(client, err)
	}
}

// handleDiscard 处理弃牌
func (h *Handler) handleDiscard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.DiscardPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	game := h.gameFor(client)
	if game == nil {
		return
	}

	if err := game.Discard(client.GetID(), convert.InfoToCard(payload.Card)); err != nil {
		sendGameError(client, err)
	}
}
