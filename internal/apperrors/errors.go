package apperrors

import (
	"github.com/palemoky/carioca-online/internal/protocol"
)

// GameError 游戏错误（房间和会话共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoomNotFound    = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "房间不存在"}
	ErrRoomFull        = &GameError{Code: protocol.ErrCodeRoomFull, Message: "房间已满"}
	ErrNotInRoom       = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "您不在房间中"}
	ErrGameStarted     = &GameError{Code: protocol.ErrCodeGameStarted, Message: "游戏已开始"}
	ErrGameNotStart    = &GameError{Code: protocol.ErrCodeGameNotStart, Message: "游戏尚未开始"}
	ErrNotYourTurn     = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrCardsNotInHand  = &GameError{Code: protocol.ErrCodeCardsNotInHand, Message: "所选的牌不在您手上"}
	ErrInvalidCombo    = &GameError{Code: protocol.ErrCodeInvalidCombo, Message: "所选的牌无法构成有效组合"}
	ErrContractNotMet  = &GameError{Code: protocol.ErrCodeContractNotMet, Message: "组合不满足本轮合约"}
	ErrMustDrawFirst   = &GameError{Code: protocol.ErrCodeMustDrawFirst, Message: "请先摸一张牌"}
	ErrAlreadyDrew     = &GameError{Code: protocol.ErrCodeAlreadyDrew, Message: "本回合已经摸过牌了"}
	ErrMustDiscard     = &GameError{Code: protocol.ErrCodeMustDiscard, Message: "请弃一张牌结束回合"}
	ErrNotLaidDown     = &GameError{Code: protocol.ErrCodeNotLaidDown, Message: "完成合约后才能接牌"}
	ErrNoExtension     = &GameError{Code: protocol.ErrCodeNoExtension, Message: "没有组合能接这些牌"}
	ErrAmbiguousTarget = &GameError{Code: protocol.ErrCodeAmbiguousTarget, Message: "多个组合都能接这些牌，请指定目标"}
	ErrSpecialContract = &GameError{Code: protocol.ErrCodeSpecialContract, Message: "特殊合约无法通过放牌完成"}
	ErrEmptyDeck       = &GameError{Code: protocol.ErrCodeUnknown, Message: "牌堆已空"}
)
