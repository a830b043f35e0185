//go:build !production

package room

import (
	"github.com/palemoky/carioca-online/internal/types"
)

// NewMockRoom 创建测试用的 Room
func NewMockRoom(code string, client types.ClientInterface) *Room {
	room := &Room{
		Code:    code,
		Players: make(map[string]*RoomPlayer),
	}
	if client != nil {
		room.Players[client.GetID()] = &RoomPlayer{
			ID:     client.GetID(),
			Name:   client.GetName(),
			Client: client,
			Seat:   0,
			Ready:  false,
		}
		room.PlayerOrder = append(room.PlayerOrder, client.GetID())
	}
	return room
}
