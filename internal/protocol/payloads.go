package protocol

// --- 客户端请求 Payloads ---

// ReconnectPayload 断线重连请求
type ReconnectPayload struct {
	Token    string `json:"token"`     // 重连令牌
	PlayerID string `json:"player_id"` // 玩家 ID
}

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
}

// 摸牌来源
const (
	DrawSourceDeck    = "deck"    // 从牌堆摸
	DrawSourceDiscard = "discard" // 捡弃牌堆顶
)

// DrawPayload 摸牌请求
type DrawPayload struct {
	Source string `json:"source"` // deck/discard
}

// LayDownPayload 放牌请求：首次放牌须满足本轮合约，
// 已完成合约的玩家可继续放新组合或整批接到桌面上
type LayDownPayload struct {
	Cards []CardInfo `json:"cards"`
}

// ExtendPayload 接牌请求：整批牌必须恰好落到一个组合上，
// Target 为 -1 时由服务端自动判定唯一目标
type ExtendPayload struct {
	Cards  []CardInfo `json:"cards"`
	Target int        `json:"target"` // 桌面组合索引
}

// DiscardPayload 弃牌请求
type DiscardPayload struct {
	Card CardInfo `json:"card"`
}

// GetLeaderboardPayload 获取排行榜请求
type GetLeaderboardPayload struct {
	Type   string `json:"type"`   // total/daily/weekly
	Offset int    `json:"offset"` // 偏移量
	Limit  int    `json:"limit"`  // 数量
}

// --- 服务端响应 Payloads ---

// CardInfo 一张牌的传输结构，Deck/Seq 用于区分多副牌中的同名牌
type CardInfo struct {
	Suit int `json:"suit"`
	Rank int `json:"rank"`
	Deck int `json:"deck"`
	Seq  int `json:"seq,omitempty"`
}

// ComboInfo 桌面上的一个组合
type ComboInfo struct {
	Kind    string     `json:"kind"` // trio/run
	OwnerID string     `json:"owner_id"`
	Cards   []CardInfo `json:"cards"`
}

// ContractInfo 合约信息
type ContractInfo struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Trios    int    `json:"trios"`
	Runs     int    `json:"runs"`
	Special  string `json:"special,omitempty"`
	HandSize int    `json:"hand_size"`
}

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Seat       int    `json:"seat"`
	Ready      bool   `json:"ready"`
	IsBot      bool   `json:"is_bot"`
	CardsCount int    `json:"cards_count"`
	LaidDown   bool   `json:"laid_down"` // 是否已完成本轮合约
	Score      int    `json:"score"`     // 累计罚分，越低越好
	Online     bool   `json:"online"`
}

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID       string `json:"player_id"`
	PlayerName     string `json:"player_name"`
	ReconnectToken string `json:"reconnect_token"` // 重连令牌
}

// ReconnectedPayload 重连成功响应
type ReconnectedPayload struct {
	PlayerID   string        `json:"player_id"`
	PlayerName string        `json:"player_name"`
	RoomCode   string        `json:"room_code,omitempty"`  // 如果在房间中
	GameState  *GameStateDTO `json:"game_state,omitempty"` // 如果在游戏中
}

// GameStateDTO 游戏状态数据传输对象（用于重连恢复）
type GameStateDTO struct {
	Phase       string       `json:"phase"` // dealing/playing/finished
	Contract    ContractInfo `json:"contract"`
	Players     []PlayerInfo `json:"players"`
	Hand        []CardInfo   `json:"hand"`         // 自己的手牌
	Table       []ComboInfo  `json:"table"`        // 桌面所有组合
	DiscardTop  *CardInfo    `json:"discard_top"`  // 弃牌堆顶
	DeckLeft    int          `json:"deck_left"`    // 牌堆剩余
	CurrentTurn string       `json:"current_turn"` // 当前回合玩家 ID
	Drew        bool         `json:"drew"`         // 当前玩家本回合是否已摸牌
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// PlayerOfflinePayload 玩家掉线通知
type PlayerOfflinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Timeout    int    `json:"timeout"` // 等待重连超时（秒）
}

// PlayerOnlinePayload 玩家上线通知
type PlayerOnlinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// OnlineCountPayload 在线人数更新
type OnlineCountPayload struct {
	Count int `json:"count"` // 当前在线人数
}

// RoomCreatedPayload 房间创建成功响应
type RoomCreatedPayload struct {
	RoomCode string     `json:"room_code"`
	Player   PlayerInfo `json:"player"`
}

// RoomJoinedPayload 加入房间成功响应
type RoomJoinedPayload struct {
	RoomCode string       `json:"room_code"`
	Player   PlayerInfo   `json:"player"`
	Players  []PlayerInfo `json:"players"` // 房间内所有玩家
}

// PlayerJoinedPayload 其他玩家加入通知
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// PlayerLeftPayload 玩家离开通知
type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerReadyPayload 玩家准备通知
type PlayerReadyPayload struct {
	PlayerID string `json:"player_id"`
	Ready    bool   `json:"ready"`
}

// GameStartPayload 游戏开始通知
type GameStartPayload struct {
	Players   []PlayerInfo   `json:"players"`   // 按座位顺序排列
	Contracts []ContractInfo `json:"contracts"` // 全部合约，按进行顺序
}

// DealCardsPayload 发牌通知
type DealCardsPayload struct {
	Contract   ContractInfo `json:"contract"`    // 本轮合约
	Cards      []CardInfo   `json:"cards"`       // 玩家自己的手牌
	DiscardTop *CardInfo    `json:"discard_top"` // 翻开的首张弃牌
	DeckLeft   int          `json:"deck_left"`
}

// TurnPayload 轮到某玩家
type TurnPayload struct {
	PlayerID string `json:"player_id"`
	Timeout  int    `json:"timeout"` // 超时时间（秒）
}

// CardDrawnPayload 有人摸牌。Card 只对摸牌者本人下发，
// 其他玩家只能看到来源（捡弃牌堆时牌是公开的）
type CardDrawnPayload struct {
	PlayerID   string     `json:"player_id"`
	Source     string     `json:"source"` // deck/discard
	Card       *CardInfo  `json:"card,omitempty"`
	CardsCount int        `json:"cards_count"` // 摸牌者手牌数
	DeckLeft   int        `json:"deck_left"`
	DiscardTop *CardInfo  `json:"discard_top"`
}

// PlayerDownPayload 有人放牌
type PlayerDownPayload struct {
	PlayerID   string      `json:"player_id"`
	PlayerName string      `json:"player_name"`
	Combos     []ComboInfo `json:"combos"`      // 本次新放下的组合
	Table      []ComboInfo `json:"table"`       // 放牌后的整个桌面
	CardsCount int         `json:"cards_count"` // 放牌者剩余手牌数
}

// TableExtendedPayload 桌面组合被扩展
type TableExtendedPayload struct {
	PlayerID   string      `json:"player_id"`
	PlayerName string      `json:"player_name"`
	Cards      []CardInfo  `json:"cards"` // 被接上去的牌
	Table      []ComboInfo `json:"table"` // 扩展后的整个桌面
	CardsCount int         `json:"cards_count"`
}

// CardDiscardedPayload 有人弃牌
type CardDiscardedPayload struct {
	PlayerID   string   `json:"player_id"`
	PlayerName string   `json:"player_name"`
	Card       CardInfo `json:"card"`
	CardsCount int      `json:"cards_count"`
}

// PlayerScore 一名玩家的结算信息
type PlayerScore struct {
	PlayerID    string     `json:"player_id"`
	PlayerName  string     `json:"player_name"`
	RoundPoints int        `json:"round_points"` // 本轮留牌罚分
	TotalScore  int        `json:"total_score"`  // 累计罚分
	Hand        []CardInfo `json:"hand"`         // 结算时亮出的手牌
}

// RoundResultPayload 本轮合约结算
type RoundResultPayload struct {
	Contract     ContractInfo  `json:"contract"`
	WinnerID     string        `json:"winner_id"` // 脱手获胜者，流局时为空
	WinnerName   string        `json:"winner_name,omitempty"`
	Scores       []PlayerScore `json:"scores"`
	NextContract *ContractInfo `json:"next_contract,omitempty"` // 为空表示全部打完
}

// GameOverPayload 全部合约打完
type GameOverPayload struct {
	WinnerID   string        `json:"winner_id"` // 总罚分最低者
	WinnerName string        `json:"winner_name"`
	Standings  []PlayerScore `json:"standings"` // 按总罚分升序
}

// ErrorPayload 错误消息
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`     // 累计罚分，升序排名
	GamesWon   int     `json:"games_won"` // 获胜场次
	Games      int     `json:"games"`     // 总场次
	WinRate    float64 `json:"win_rate"`
}

// LeaderboardResultPayload 排行榜结果
type LeaderboardResultPayload struct {
	Type    string             `json:"type"`
	Entries []LeaderboardEntry `json:"entries"`
	Total   int                `json:"total"`
}

// StatsResultPayload 个人统计结果
type StatsResultPayload struct {
	PlayerID string  `json:"player_id"`
	Games    int     `json:"games"`
	GamesWon int     `json:"games_won"`
	Score    int     `json:"score"`
	WinRate  float64 `json:"win_rate"`
}

// RoomListItem 房间列表条目
type RoomListItem struct {
	RoomCode    string `json:"room_code"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
}

// RoomListResultPayload 房间列表结果
type RoomListResultPayload struct {
	Rooms []RoomListItem `json:"rooms"`
}

// MatchFoundPayload 匹配成功通知
type MatchFoundPayload struct {
	RoomCode string       `json:"room_code"`
	Players  []PlayerInfo `json:"players"`
}
