package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckypine/niuniu-scorekeeper/internal/game/room"
	"github.com/luckypine/niuniu-scorekeeper/internal/protocol"
)

func TestHub_BindAndUnbind(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	c1 := NewClient(hub, nil)
	c2 := NewClient(hub, nil)

	hub.Bind("alice", c1)
	hub.Bind("alice", c2)
	assert.Equal(t, 2, hub.BoundCount())

	// Rebinding moves the connection to the new identity
	hub.Bind("bob", c2)
	assert.Equal(t, 2, hub.BoundCount())

	hub.Unbind(c1)
	hub.Unbind(c1) // idempotent
	assert.Equal(t, 1, hub.BoundCount())

	hub.Unbind(c2)
	assert.Equal(t, 0, hub.BoundCount())
}

func TestHub_SendToClients(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	c1 := NewClient(hub, nil)
	c2 := NewClient(hub, nil)
	c3 := NewClient(hub, nil)

	hub.Bind("alice", c1)
	hub.Bind("alice", c2)
	hub.Bind("carol", c3)

	msg := protocol.MustNewMessage(protocol.MsgRoomUpdated, protocol.RoomUpdatedPayload{RoomID: "GAME88"})
	delivered := hub.sendToClients([]string{"alice", "nobody"}, msg)
	assert.Equal(t, 2, delivered)

	// Both of alice's connections got the message, carol got nothing
	assert.Len(t, c1.send, 1)
	assert.Len(t, c2.send, 1)
	assert.Len(t, c3.send, 0)

	data := <-c1.send
	decoded, err := protocol.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgRoomUpdated, decoded.Type)
}

func TestHub_ClosedClientNotCounted(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	c := NewClient(hub, nil)
	hub.Bind("alice", c)
	c.Close()

	msg := protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{Now: 1})
	assert.Equal(t, 0, hub.sendToClients([]string{"alice"}, msg))
}

func TestHub_PushRoomUpdated(t *testing.T) {
	t.Parallel()

	rooms := room.NewRoomManager(room.Rules{Base: 1, BankerMul: 1, Mode: room.SettleWinner}, nil)
	r, err := rooms.CreateRoom(room.CreateParams{ClientID: "host", Players: []string{"甲", "乙"}})
	require.NoError(t, err)

	hub := NewHub()
	c := NewClient(hub, nil)
	hub.Bind("host", c)

	hub.PushRoomUpdated(r)
	require.Len(t, c.send, 1)

	decoded, err := protocol.Decode(<-c.send)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgRoomUpdated, decoded.Type)

	payload, err := protocol.ParsePayload[protocol.RoomUpdatedPayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, r.ID, payload.RoomID)
}
