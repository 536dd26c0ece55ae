package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckypine/niuniu-scorekeeper/internal/apperrors"
)

func roomScores(r *Room, clientID string) map[string]float64 {
	out := make(map[string]float64)
	for _, s := range r.Project(clientID).Scores {
		out[s.PlayerID] = s.Score
	}
	return out
}

func TestUndo_ReversesCardsSettlement(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t, "cards", "庄", "闲一", "闲二")
	c2 := claimSeat(t, r, "p2")
	c3 := claimSeat(t, r, "p3")

	submitHand(t, r, hostID, "niu_7", "Q", "heart", 0)
	submitHand(t, r, c2, "niu_niu", "K", "spade", 2)
	rec := submitHand(t, r, c3, "no_niu", "A", "diamond", 3)
	require.NotNil(t, rec)

	require.NoError(t, r.Undo(hostID))

	for id, score := range roomScores(r, hostID) {
		assert.Equal(t, 0.0, score, "seat %s must return to zero", id)
	}
	assert.Empty(t, r.Project(hostID).History)
}

func TestUndo_ReversesOnlyLatestRecord(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t, "cards", "庄", "闲")
	idle := claimSeat(t, r, "p2")

	// Round 1: idle loses 4
	submitHand(t, r, hostID, "niu_niu", "K", "spade", 0)
	require.NotNil(t, submitHand(t, r, idle, "no_niu", "5", "heart", 1))

	// Round 2: idle wins 8
	submitHand(t, r, hostID, "no_niu", "5", "heart", 0)
	require.NotNil(t, submitHand(t, r, idle, "niu_niu", "K", "spade", 2))

	require.NoError(t, r.Undo(hostID))

	scores := roomScores(r, hostID)
	assert.Equal(t, 4.0, scores["p1"])
	assert.Equal(t, -4.0, scores["p2"])
	assert.Len(t, r.Project(hostID).History, 1)
}

func TestUndo_ReversesManualSettlement(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t, "manual", "庄", "闲一", "闲二")
	c2 := claimSeat(t, r, "p2")
	c3 := claimSeat(t, r, "p3")

	submitDelta(t, r, hostID, 5)
	submitDelta(t, r, c2, -2)
	require.NotNil(t, submitDelta(t, r, c3, -3))

	require.NoError(t, r.Undo(hostID))

	for id, score := range roomScores(r, hostID) {
		assert.Equal(t, 0.0, score, "seat %s must return to zero", id)
	}
	assert.Empty(t, r.Project(hostID).History)
}

func TestUndo_Validation(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t, "cards", "庄", "闲")
	assert.ErrorIs(t, r.Undo(hostID), apperrors.ErrHistoryEmpty)

	idle := claimSeat(t, r, "p2")
	var ge *apperrors.GameError
	require.ErrorAs(t, r.Undo(idle), &ge)
}

func TestReset_ClearsEverything(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t, "cards", "庄", "闲")
	idle := claimSeat(t, r, "p2")

	submitHand(t, r, hostID, "niu_niu", "K", "spade", 0)
	require.NotNil(t, submitHand(t, r, idle, "no_niu", "5", "heart", 1))

	require.NoError(t, r.Reset(hostID))

	view := r.Project(hostID)
	assert.Empty(t, view.History)
	for _, s := range view.Scores {
		assert.Equal(t, 0.0, s.Score)
	}
	assert.False(t, view.MyDraft.Submitted)
}

func TestReset_HostOnly(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t, "cards", "庄", "闲")
	idle := claimSeat(t, r, "p2")

	var ge *apperrors.GameError
	require.ErrorAs(t, r.Reset(idle), &ge)
}
