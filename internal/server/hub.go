package server

import (
	"sync"

	"github.com/luckypine/niuniu-scorekeeper/internal/game/room"
	"github.com/luckypine/niuniu-scorekeeper/internal/protocol"
)

// Hub 通知分发器：客户端标识 → 存活连接集合。
// 同一标识允许多个连接（多开页面），推送尽力而为，失败静默
type Hub struct {
	byClient map[string]map[*Client]struct{}
	mu       sync.RWMutex
}

// NewHub 创建通知分发器
func NewHub() *Hub {
	return &Hub{
		byClient: make(map[string]map[*Client]struct{}),
	}
}

// Bind 把连接绑定到客户端标识，旧绑定先解除
func (h *Hub) Bind(clientID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.unbindLocked(c)

	set, ok := h.byClient[clientID]
	if !ok {
		set = make(map[*Client]struct{})
		h.byClient[clientID] = set
	}
	set[c] = struct{}{}
	c.boundID = clientID
}

// Unbind 解除连接的绑定，幂等
func (h *Hub) Unbind(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unbindLocked(c)
}

func (h *Hub) unbindLocked(c *Client) {
	if c.boundID == "" {
		return
	}
	if set, ok := h.byClient[c.boundID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.byClient, c.boundID)
		}
	}
	c.boundID = ""
}

// BoundCount 已绑定的连接数
func (h *Hub) BoundCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, set := range h.byClient {
		n += len(set)
	}
	return n
}

// sendToClients 向指定客户端标识的所有连接发送消息，返回送达数
func (h *Hub) sendToClients(clientIDs []string, msg *protocol.Message) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, id := range clientIDs {
		for c := range h.byClient[id] {
			if c.SendMessage(msg) {
				count++
			}
		}
	}
	return count
}

// PushRoomUpdated 推送房间变更通知给房间内所有占座客户端
func (h *Hub) PushRoomUpdated(r *room.Room) {
	h.sendToClients(r.OwnerClientIDs(), protocol.MustNewMessage(protocol.MsgRoomUpdated, protocol.RoomUpdatedPayload{
		RoomID: r.ID,
		Ts:     nowMillis(),
	}))
}

// PushRoundSettled 推送结算通知
func (h *Hub) PushRoundSettled(r *room.Room, rec *room.Record) {
	h.sendToClients(r.OwnerClientIDs(), protocol.MustNewMessage(protocol.MsgSettled, protocol.SettledPayload{
		RoomID:   r.ID,
		RoundSeq: rec.RoundSeq,
		RecordID: rec.ID,
		Ts:       rec.Ts,
	}))
}
