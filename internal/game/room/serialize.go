package room

import (
	"context"
	"time"

	"github.com/luckypine/niuniu-scorekeeper/internal/server/storage"
)

// toRoomData 生成 Redis 快照，需在房间锁内调用
func (r *Room) toRoomData() *storage.RoomData {
	players := make([]storage.PlayerData, len(r.Players))
	for i, p := range r.Players {
		players[i] = storage.PlayerData{
			ID:    p.ID,
			Name:  p.Name,
			Owned: p.Owner != "",
		}
	}

	scores := make(map[string]float64, len(r.Scores))
	for id, v := range r.Scores {
		scores[id] = v
	}

	return &storage.RoomData{
		ID:           r.ID,
		HostClientID: r.HostClientID,
		GameMode:     string(r.GameMode),
		BankerID:     r.BankerID,
		Base:         r.Rules.Base,
		BankerMul:    r.Rules.BankerMul,
		SettleMode:   string(r.Rules.Mode),
		Players:      players,
		Scores:       scores,
		Seq:          r.Seq,
		Settled:      len(r.History),
		UpdatedAt:    r.UpdatedAt,
	}
}

// persist 把快照异步写入 Redis 镜像，尽力而为。
// 镜像只用于巡检，引擎不读回，失败静默
func (r *Room) persist() {
	if r.manager == nil || r.manager.store == nil {
		return
	}
	data := r.toRoomData()
	store := r.manager.store
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = store.SaveRoom(ctx, data.ID, data)
	}()
}
