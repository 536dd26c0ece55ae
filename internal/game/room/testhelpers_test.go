package room

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const hostID = "host-client"

func testManager() *RoomManager {
	return NewRoomManager(Rules{Base: 1, BankerMul: 1, Mode: SettleWinner}, nil)
}

// newTestRoom creates a room with the given seat names; the host client
// automatically owns the banker seat p1.
func newTestRoom(t *testing.T, gameMode string, names ...string) *Room {
	t.Helper()

	r, err := testManager().CreateRoom(CreateParams{
		ClientID: hostID,
		GameMode: gameMode,
		Players:  names,
	})
	require.NoError(t, err)
	return r
}

// claimSeat binds a fresh client to the seat and returns the client id.
func claimSeat(t *testing.T, r *Room, seatID string) string {
	t.Helper()

	clientID := "client-" + seatID
	require.NoError(t, r.Claim(seatID, clientID))
	return clientID
}

func submitHand(t *testing.T, r *Room, clientID, typeID, rank, suit string, bet float64) *Record {
	t.Helper()

	rec, err := r.Submit(clientID, SubmitParams{TypeID: typeID, Rank: rank, Suit: suit, Bet: bet})
	require.NoError(t, err)
	return rec
}

func submitDelta(t *testing.T, r *Room, clientID string, delta float64) *Record {
	t.Helper()

	rec, err := r.Submit(clientID, SubmitParams{Delta: delta})
	require.NoError(t, err)
	return rec
}
