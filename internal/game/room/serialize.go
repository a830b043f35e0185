package room

import (
	"github.com/palemoky/carioca-online/internal/server/storage"
)

// ToRoomData 将 Room 转换为可序列化的 RoomData
func (r *Room) ToRoomData() *storage.RoomData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data := &storage.RoomData{
		Code:        r.Code,
		State:       int(r.State),
		Players:     make([]storage.PlayerData, 0, len(r.Players)),
		PlayerOrder: r.PlayerOrder,
		CreatedAt:   r.CreatedAt.Unix(),
	}

	for _, player := range r.Players {
		pd := storage.PlayerData{
			ID:    player.ID,
			Name:  player.Name,
			Seat:  player.Seat,
			Ready: player.Ready,
			IsBot: player.IsBot,
		}
		if r.game != nil {
			pd.LaidDown = r.game.HasLaidDown(player.ID)
			for _, ps := range r.game.Standings() {
				if ps.PlayerID == player.ID {
					pd.Score = ps.TotalScore
					break
				}
			}
		}
		data.Players = append(data.Players, pd)
	}

	if r.game != nil {
		data.GameData = &storage.GameRoundData{
			ContractID:  r.game.CurrentContract().ID,
			CurrentTurn: r.game.CurrentPlayerID(),
			DeckLeft:    r.game.DeckLeft(),
		}
	}

	return data
}
