package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgReconnect MessageType = "reconnect" // 断线重连
	MsgPing      MessageType = "ping"      // 心跳 ping

	// 房间操作
	MsgCreateRoom  MessageType = "create_room"  // 创建房间
	MsgJoinRoom    MessageType = "join_room"    // 加入房间
	MsgLeaveRoom   MessageType = "leave_room"   // 离开房间
	MsgQuickMatch  MessageType = "quick_match"  // 快速匹配
	MsgReady       MessageType = "ready"        // 准备就绪
	MsgCancelReady MessageType = "cancel_ready" // 取消准备

	// 游戏操作
	MsgDraw    MessageType = "draw"     // 摸牌（牌堆或弃牌堆）
	MsgLayDown MessageType = "lay_down" // 放牌（完成合约或追加新组合）
	MsgExtend  MessageType = "extend"   // 把牌接到桌面某个组合上
	MsgDiscard MessageType = "discard"  // 弃牌结束回合

	// 排行榜
	MsgGetStats       MessageType = "get_stats"        // 获取个人统计
	MsgGetLeaderboard MessageType = "get_leaderboard"  // 获取排行榜
	MsgGetRoomList    MessageType = "get_room_list"    // 获取房间列表
	MsgGetOnlineCount MessageType = "get_online_count" // 获取在线人数
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected     MessageType = "connected"      // 连接成功
	MsgReconnected   MessageType = "reconnected"    // 重连成功
	MsgPong          MessageType = "pong"           // 心跳 pong
	MsgPlayerOffline MessageType = "player_offline" // 玩家掉线通知
	MsgPlayerOnline  MessageType = "player_online"  // 玩家上线通知
	MsgOnlineCount   MessageType = "online_count"   // 在线人数更新

	// 房间相关
	MsgRoomCreated  MessageType = "room_created"  // 房间创建成功
	MsgRoomJoined   MessageType = "room_joined"   // 加入房间成功
	MsgPlayerJoined MessageType = "player_joined" // 其他玩家加入
	MsgPlayerLeft   MessageType = "player_left"   // 玩家离开
	MsgPlayerReady  MessageType = "player_ready"  // 玩家准备
	MsgMatchFound   MessageType = "match_found"   // 匹配成功

	// 游戏流程
	MsgGameStart     MessageType = "game_start"      // 游戏开始
	MsgDealCards     MessageType = "deal_cards"      // 发牌
	MsgTurn          MessageType = "turn"            // 轮到某玩家
	MsgCardDrawn     MessageType = "card_drawn"      // 有人摸牌
	MsgPlayerDown    MessageType = "player_down"     // 有人放牌
	MsgTableExtended MessageType = "table_extended"  // 桌面组合被扩展
	MsgCardDiscarded MessageType = "card_discarded"  // 有人弃牌
	MsgRoundResult   MessageType = "round_result"    // 本轮合约结算
	MsgGameOver      MessageType = "game_over"       // 全部合约打完

	// 排行榜
	MsgStatsResult       MessageType = "stats_result"       // 个人统计结果
	MsgLeaderboardResult MessageType = "leaderboard_result" // 排行榜结果
	MsgRoomListResult    MessageType = "room_list_result"   // 房间列表结果

	// 错误
	MsgError MessageType = "error" // 错误消息
)
