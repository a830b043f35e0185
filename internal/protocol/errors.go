package protocol

// 错误码
const (
	ErrCodeUnknown         = 1000
	ErrCodeInvalidMsg      = 1001
	ErrCodeRateLimit       = 1002 // 速率限制
	ErrCodeRoomNotFound    = 2001
	ErrCodeRoomFull        = 2002
	ErrCodeNotInRoom       = 2003
	ErrCodeGameStarted     = 2004 // 游戏已开始
	ErrCodeGameNotStart    = 3001
	ErrCodeNotYourTurn     = 3002
	ErrCodeCardsNotInHand  = 3003 // 所选的牌不在手上
	ErrCodeInvalidCombo    = 3004 // 选牌无法构成有效组合
	ErrCodeContractNotMet  = 3005 // 组合不满足本轮合约
	ErrCodeMustDrawFirst   = 3006 // 回合内必须先摸牌
	ErrCodeAlreadyDrew     = 3007 // 本回合已摸过牌
	ErrCodeMustDiscard     = 3008 // 必须弃一张牌结束回合
	ErrCodeNotLaidDown     = 3009 // 尚未完成合约，不能接牌
	ErrCodeNoExtension     = 3010 // 没有组合能接这些牌
	ErrCodeAmbiguousTarget = 3011 // 多个组合都能接，需指定目标
	ErrCodeSpecialContract = 3012 // 特殊合约不能通过放牌完成
	ErrCodeMaintenance     = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:         "未知错误",
	ErrCodeInvalidMsg:      "无效的消息格式",
	ErrCodeRateLimit:       "请求过于频繁",
	ErrCodeRoomNotFound:    "房间不存在",
	ErrCodeRoomFull:        "房间已满",
	ErrCodeNotInRoom:       "您不在房间中",
	ErrCodeGameStarted:     "游戏已开始",
	ErrCodeGameNotStart:    "游戏尚未开始",
	ErrCodeNotYourTurn:     "还没轮到您",
	ErrCodeCardsNotInHand:  "所选的牌不在您手上",
	ErrCodeInvalidCombo:    "所选的牌无法构成有效组合",
	ErrCodeContractNotMet:  "组合不满足本轮合约",
	ErrCodeMustDrawFirst:   "请先摸一张牌",
	ErrCodeAlreadyDrew:     "本回合已经摸过牌了",
	ErrCodeMustDiscard:     "请弃一张牌结束回合",
	ErrCodeNotLaidDown:     "完成合约后才能接牌",
	ErrCodeNoExtension:     "没有组合能接这些牌",
	ErrCodeAmbiguousTarget: "多个组合都能接这些牌，请指定目标",
	ErrCodeSpecialContract: "特殊合约无法通过放牌完成",
	ErrCodeMaintenance:     "服务器维护中",
}
