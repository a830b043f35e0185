package room

import (
	"sync"
	"time"

	"github.com/palemoky/carioca-online/internal/bot"
	"github.com/palemoky/carioca-online/internal/game/session"
	"github.com/palemoky/carioca-online/internal/server/storage"
	"github.com/palemoky/carioca-online/internal/types"
)

const (
	roomCodeLength = 6            // 房间号长度
	roomCodeChars  = "0123456789" // 房间号字符集

	maxPlayers = 4 // 每桌最多 4 人
	minPlayers = 2 // 至少 2 名真人才能开局，空位由机器人补足
)

// RoomPlayer 房间中的玩家。机器人没有 Client，ID/Name 单独保存
type RoomPlayer struct {
	ID     string
	Name   string
	Client types.ClientInterface
	Seat   int  // 座位号 0-3
	Ready  bool // 是否准备
	IsBot  bool
}

// Room 游戏房间
type Room struct {
	Code        string                 // 房间号
	State       RoomState              // 房间状态
	Players     map[string]*RoomPlayer // 玩家列表（含机器人）
	PlayerOrder []string               // 玩家顺序（按座位）
	CreatedAt   time.Time              // 创建时间

	game *session.Session    // 进行中的对局
	bots map[string]*bot.Bot // 补位机器人

	manager *RoomManager
	mu      sync.RWMutex
}

// RoomManager 房间管理器
type RoomManager struct {
	redisStore  *storage.RedisStore
	leaderboard *storage.LeaderboardManager
	roomTimeout time.Duration
	sessionCfg  session.Config
	botLevel    bot.Level
	rooms       map[string]*Room
	mu          sync.RWMutex
}

// NewRoomManager 创建房间管理器
func NewRoomManager(rs *storage.RedisStore, roomTimeout time.Duration) *RoomManager {
	rm := &RoomManager{
		redisStore:  rs,
		roomTimeout: roomTimeout,
		sessionCfg:  session.DefaultConfig(),
		botLevel:    bot.LevelNormal,
		rooms:       make(map[string]*Room),
	}

	// 启动房间清理协程
	go rm.cleanupLoop()

	return rm
}

// SetLeaderboard 设置排行榜管理器，对局结束时记录战绩
func (rm *RoomManager) SetLeaderboard(lm *storage.LeaderboardManager) {
	rm.leaderboard = lm
}

// SetBotLevel 设置补位机器人难度
func (rm *RoomManager) SetBotLevel(level bot.Level) {
	rm.botLevel = level
}

// SetSessionConfig 设置对局参数（牌副数、回合超时等）
func (rm *RoomManager) SetSessionConfig(cfg session.Config) {
	rm.sessionCfg = cfg
}

// Game 返回房间的对局会话，未开局时为 nil
func (r *Room) Game() *session.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.game
}
