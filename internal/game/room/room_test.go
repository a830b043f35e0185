package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/carioca-online/internal/protocol"
	"github.com/palemoky/carioca-online/internal/server/storage"
	"github.com/palemoky/carioca-online/internal/testutil"
)

func TestRoomManager_GetRoomList(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(storage.NewRedisStore(nil), 10*time.Minute)

	// Manually add a suitable room
	room := &Room{
		Code:        "123456",
		State:       RoomStateWaiting,
		Players:     make(map[string]*RoomPlayer),
		PlayerOrder: []string{},
		CreatedAt:   time.Now(),
	}
	// Add a dummy player
	room.Players["p1"] = &RoomPlayer{
		ID:     "p1",
		Name:   "Player1",
		Client: testutil.NewSimpleClient("p1", "Player1"),
		Seat:   0,
	}

	rm.rooms["123456"] = room

	// Execute
	rooms := rm.GetRoomList()

	// Verify
	assert.Len(t, rooms, 1)
	roomItem := rooms[0]
	assert.Equal(t, "123456", roomItem.RoomCode)
	assert.Equal(t, 1, roomItem.PlayerCount)
	assert.Equal(t, 4, roomItem.MaxPlayers)
}

func TestRoom_CheckAllReady(t *testing.T) {
	t.Parallel()

	room := &Room{
		Players: make(map[string]*RoomPlayer),
	}

	// Case 1: Not enough players
	room.Players["p1"] = &RoomPlayer{Ready: true}
	assert.False(t, room.checkAllReady())

	// Case 2: Enough players, but not all ready
	room.Players["p2"] = &RoomPlayer{Ready: false}
	assert.False(t, room.checkAllReady())

	// Case 3: All ready
	room.Players["p2"].Ready = true
	assert.True(t, room.checkAllReady())
}

func TestRoom_GetPlayerInfo(t *testing.T) {
	t.Parallel()

	room := &Room{
		Players: make(map[string]*RoomPlayer),
	}
	client := testutil.NewSimpleClient("p1", "TestPlayer")
	room.Players["p1"] = &RoomPlayer{
		ID:     "p1",
		Name:   "TestPlayer",
		Client: client,
		Seat:   1,
		Ready:  true,
	}

	info := room.GetPlayerInfo("p1")

	assert.Equal(t, "p1", info.ID)
	assert.Equal(t, "TestPlayer", info.Name)
	assert.Equal(t, 1, info.Seat)
	assert.True(t, info.Ready)
	assert.False(t, info.IsBot)
	assert.True(t, info.Online)
}

func TestRoom_JoinRoomFull(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(storage.NewRedisStore(nil), 10*time.Minute)

	room, err := rm.CreateRoom(testutil.NewSimpleClient("p1", "Player1"))
	require.NoError(t, err)
	for i := 2; i <= 4; i++ {
		_, err = rm.JoinRoom(testutil.NewSimpleClient(
			"p"+string(rune('0'+i)), "Player"), room.Code)
		require.NoError(t, err)
	}

	_, err = rm.JoinRoom(testutil.NewSimpleClient("p5", "Player5"), room.Code)
	assert.Error(t, err)
}

func TestRoom_StartGameFillsSeatsWithBots(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(storage.NewRedisStore(nil), 10*time.Minute)
	client1 := testutil.NewSimpleClient("p1", "Player1")
	client2 := testutil.NewSimpleClient("p2", "Player2")

	room, err := rm.CreateRoom(client1)
	require.NoError(t, err)
	_, err = rm.JoinRoom(client2, room.Code)
	require.NoError(t, err)

	require.NoError(t, rm.SetPlayerReady(client1, true))
	require.NoError(t, rm.SetPlayerReady(client2, true))

	// 两名真人准备完毕即开局，空位由机器人补足
	room.mu.RLock()
	state := room.State
	playerCount := len(room.Players)
	botCount := len(room.bots)
	room.mu.RUnlock()

	assert.Equal(t, RoomStatePlaying, state)
	assert.Equal(t, 4, playerCount)
	assert.Equal(t, 2, botCount)
	require.NotNil(t, room.Game())

	// 广播按序到达：先 GameStart，再各自的手牌
	assert.Eventually(t, func() bool {
		return len(client1.MessagesByType(protocol.MsgGameStart)) == 1 &&
			len(client1.MessagesByType(protocol.MsgDealCards)) == 1 &&
			len(client2.MessagesByType(protocol.MsgDealCards)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// 再次开局应失败
	assert.Error(t, room.StartGame())
}

func TestRoom_ToRoomData(t *testing.T) {
	t.Parallel()

	room := NewMockRoom("654321", testutil.NewSimpleClient("p1", "Player1"))
	data := room.ToRoomData()

	require.NotNil(t, data)
	assert.Equal(t, "654321", data.Code)
	require.Len(t, data.Players, 1)
	assert.Equal(t, "p1", data.Players[0].ID)
	assert.Nil(t, data.GameData)
}

func TestRoomEvents_EnqueueAfterStop(t *testing.T) {
	t.Parallel()

	room := NewMockRoom("777777", testutil.NewSimpleClient("p1", "Player1"))
	e := newRoomEvents(room)

	e.stop()

	// 对局结束后迟到的事件只被忽略，不应崩溃
	assert.NotPanics(t, func() {
		e.enqueue(func() {})
	})
	assert.NotPanics(t, e.stop)
}
