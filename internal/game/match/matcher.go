package match

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/palemoky/carioca-online/internal/game/room"
	"github.com/palemoky/carioca-online/internal/protocol"
	"github.com/palemoky/carioca-online/internal/protocol/codec"
	"github.com/palemoky/carioca-online/internal/server/storage"
	"github.com/palemoky/carioca-online/internal/types"
)

// 凑够两名真人就开桌，剩下的座位由机器人补足
const matchSize = 2

// Matcher 匹配系统
type Matcher struct {
	roomManager *room.RoomManager
	redisStore  *storage.RedisStore
	queue       []types.ClientInterface
	mu          sync.Mutex
}

// NewMatcher 创建匹配器
func NewMatcher(rm *room.RoomManager, rs *storage.RedisStore) *Matcher {
	return &Matcher{
		roomManager: rm,
		redisStore:  rs,
		queue:       make([]types.ClientInterface, 0),
	}
}

// AddToQueue 加入匹配队列
func (m *Matcher) AddToQueue(client types.ClientInterface) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 检查是否已在队列中
	for _, c := range m.queue {
		if c.GetID() == client.GetID() {
			return
		}
	}

	m.queue = append(m.queue, client)
	go func() { _ = m.redisStore.AddToMatchQueue(context.Background(), client.GetID()) }()
	log.Printf("🔍 玩家 %s 加入匹配队列，当前队列长度: %d", client.GetName(), len(m.queue))

	// 检查是否可以匹配
	m.tryMatch()
}

// RemoveFromQueue 从匹配队列移除
func (m *Matcher) RemoveFromQueue(client types.ClientInterface) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.queue {
		if c.GetID() == client.GetID() {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			go func() { _ = m.redisStore.RemoveFromMatchQueue(context.Background(), client.GetID()) }()
			log.Printf("🔍 玩家 %s 离开匹配队列", client.GetName())
			return
		}
	}
}

// tryMatch 尝试匹配，调用方须持有 m.mu
func (m *Matcher) tryMatch() {
	if len(m.queue) < matchSize {
		return
	}

	// 取出队首玩家
	players := make([]types.ClientInterface, matchSize)
	copy(players, m.queue[:matchSize])
	m.queue = m.queue[matchSize:]

	// 创建房间
	go m.createMatchRoom(players)
}

// createMatchRoom 创建匹配房间并开局
func (m *Matcher) createMatchRoom(players []types.ClientInterface) {
	for _, client := range players {
		go func(id string) { _ = m.redisStore.RemoveFromMatchQueue(context.Background(), id) }(client.GetID())
	}

	// 创建房间（使用第一个玩家）
	matchRoom, err := m.roomManager.CreateRoom(players[0])
	if err != nil || matchRoom == nil {
		log.Printf("匹配创建房间失败: %v", err)
		// 将玩家放回队列
		m.mu.Lock()
		m.queue = append(players, m.queue...)
		m.mu.Unlock()
		return
	}

	// 其他玩家加入房间
	for _, client := range players[1:] {
		if _, err := m.roomManager.JoinRoom(client, matchRoom.Code); err != nil {
			log.Printf("匹配加入房间失败: %v", err)
		}
	}

	log.Printf("🎮 匹配成功！房间 %s，玩家: %s, %s",
		matchRoom.Code, players[0].GetName(), players[1].GetName())

	// 短暂延迟确保房间状态同步
	time.Sleep(100 * time.Millisecond)

	// 给所有玩家发送匹配成功消息和房间信息
	for _, client := range players {
		client.SendMessage(codec.MustNewMessage(protocol.MsgMatchFound, protocol.MatchFoundPayload{
			RoomCode: matchRoom.Code,
			Players:  matchRoom.PlayersInfo(),
		}))
	}

	// 自动准备并开局
	matchRoom.SetAllPlayersReady()
	if err := matchRoom.StartGame(); err != nil {
		log.Printf("匹配开局失败: %v", err)
	}
}

// GetQueueLength 获取队列长度
func (m *Matcher) GetQueueLength() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
