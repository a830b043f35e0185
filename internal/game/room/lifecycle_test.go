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

func newRoomWithPlayers(t *testing.T, rm *RoomManager, n int) (*Room, []*testutil.SimpleClient) {
	t.Helper()

	clients := make([]*testutil.SimpleClient, 0, n)
	ids := []string{"p1", "p2", "p3", "p4"}
	names := []string{"Player1", "Player2", "Player3", "Player4"}

	first := testutil.NewSimpleClient(ids[0], names[0])
	clients = append(clients, first)
	room, err := rm.CreateRoom(first)
	require.NoError(t, err)

	for i := 1; i < n; i++ {
		c := testutil.NewSimpleClient(ids[i], names[i])
		clients = append(clients, c)
		_, err = rm.JoinRoom(c, room.Code)
		require.NoError(t, err)
	}
	return room, clients
}

func TestNotifyPlayerOffline_AllPlayersOffline(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(storage.NewRedisStore(nil), 10*time.Minute)
	room, clients := newRoomWithPlayers(t, rm, 3)

	// All players go offline
	for _, c := range clients {
		rm.NotifyPlayerOffline(c)
	}

	// Room should be deleted
	assert.Nil(t, rm.GetRoom(room.Code))
}

func TestNotifyPlayerOffline_PartialOffline(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(storage.NewRedisStore(nil), 10*time.Minute)
	room, clients := newRoomWithPlayers(t, rm, 3)

	// Only one player goes offline
	rm.NotifyPlayerOffline(clients[0])

	// Room should still exist
	assert.NotNil(t, rm.GetRoom(room.Code))

	// Other players got notified
	offline := clients[1].MessagesByType(protocol.MsgPlayerOffline)
	require.Len(t, offline, 1)
	assert.NotEmpty(t, clients[2].MessagesByType(protocol.MsgPlayerOffline))
}

func TestReconnectPlayer(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(storage.NewRedisStore(nil), 10*time.Minute)
	room, clients := newRoomWithPlayers(t, rm, 2)

	rm.NotifyPlayerOffline(clients[0])
	require.NotNil(t, rm.GetRoom(room.Code))

	newClient := testutil.NewSimpleClient("p1", "Player1")
	err := rm.ReconnectPlayer(room.Code, newClient)
	require.NoError(t, err)

	assert.Equal(t, room.Code, newClient.GetRoom())
	assert.NotEmpty(t, clients[1].MessagesByType(protocol.MsgPlayerOnline))
}

func TestReconnectPlayer_NotInRoom(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(storage.NewRedisStore(nil), 10*time.Minute)
	newClient := testutil.NewSimpleClient("p1", "Player1")

	// Client not in any room
	err := rm.ReconnectPlayer("", newClient)
	assert.NoError(t, err) // Should return nil, not error
}

func TestGenerateRoomCode_Uniqueness(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(storage.NewRedisStore(nil), 10*time.Minute)

	codes := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := rm.generateRoomCode()
		assert.Len(t, code, roomCodeLength)
		assert.False(t, codes[code], "Generated duplicate room code: %s", code)
		codes[code] = true

		// Add to rooms to test collision avoidance
		rm.rooms[code] = &Room{Code: code}
	}
}

func TestCleanup_TimeoutRooms(t *testing.T) {
	t.Parallel()

	// Use short timeout for testing
	rm := NewRoomManager(storage.NewRedisStore(nil), 100*time.Millisecond)
	client := testutil.NewSimpleClient("p1", "Player1")

	// Create room
	room, err := rm.CreateRoom(client)
	require.NoError(t, err)

	// Wait for timeout
	time.Sleep(150 * time.Millisecond)

	// Run cleanup
	rm.cleanup()

	// Room should be deleted
	assert.Nil(t, rm.GetRoom(room.Code))

	// Client should be removed from room
	assert.Empty(t, client.GetRoom())
}

func TestCleanup_DoesNotRemoveActiveRooms(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(storage.NewRedisStore(nil), 10*time.Minute)
	client := testutil.NewSimpleClient("p1", "Player1")

	// Create room
	room, err := rm.CreateRoom(client)
	require.NoError(t, err)

	// Run cleanup immediately (room is fresh)
	rm.cleanup()

	// Room should still exist
	assert.NotNil(t, rm.GetRoom(room.Code))
}

func TestCleanup_DoesNotRemovePlayingRooms(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(storage.NewRedisStore(nil), 100*time.Millisecond)
	client := testutil.NewSimpleClient("p1", "Player1")

	// Create room
	room, err := rm.CreateRoom(client)
	require.NoError(t, err)

	// Change state to playing
	room.mu.Lock()
	room.State = RoomStatePlaying
	room.mu.Unlock()

	// Wait for timeout
	time.Sleep(150 * time.Millisecond)

	// Run cleanup
	rm.cleanup()

	// Room should NOT be deleted (playing state)
	assert.NotNil(t, rm.GetRoom(room.Code))
}

func TestSetAllPlayersReady(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(storage.NewRedisStore(nil), 10*time.Minute)
	room, _ := newRoomWithPlayers(t, rm, 3)

	// Initially not ready
	room.mu.RLock()
	for _, p := range room.Players {
		assert.False(t, p.Ready)
	}
	room.mu.RUnlock()

	// Set all ready
	room.SetAllPlayersReady()

	// Verify all ready
	room.mu.RLock()
	for _, p := range room.Players {
		assert.True(t, p.Ready)
	}
	room.mu.RUnlock()
}
