package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_OwnerStates(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t, "cards", "庄", "闲一", "闲二")
	c2 := claimSeat(t, r, "p2")

	view := r.Project(c2)
	states := make(map[string]string)
	for _, s := range view.Players {
		states[s.ID] = s.OwnerState
	}
	assert.Equal(t, "taken", states["p1"], "host seat looks taken to others")
	assert.Equal(t, "self", states["p2"])
	assert.Equal(t, "free", states["p3"])

	assert.Equal(t, "p2", view.MyPlayerID)
	assert.Equal(t, "idle", view.MyRole)
	assert.False(t, view.IsHost)
	assert.True(t, view.HostHasBound)
}

func TestProject_SpectatorSeesNoDraft(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t, "cards", "庄", "闲")

	view := r.Project("watcher")
	assert.Empty(t, view.MyPlayerID)
	assert.Empty(t, view.MyRole)
	assert.Nil(t, view.MyDraft)
}

func TestProject_OnlyEnabledTypesExposed(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t, "cards", "庄", "闲")

	view := r.Project(hostID)
	for _, ht := range view.Types {
		assert.True(t, ht.On)
		assert.NotEqual(t, "wu_hua", ht.ID)
	}
	// Template has 11 enabled out of 14
	assert.Len(t, view.Types, 11)
}

func TestProject_WaitingForNames(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t, "cards", "庄家", "闲家")
	submitHand(t, r, hostID, "niu_1", "3", "club", 0)

	view := r.Project(hostID)
	assert.Equal(t, 1, view.Round.SubmittedCount)
	assert.Equal(t, 2, view.Round.Total)
	assert.Equal(t, []string{"闲家"}, view.Round.WaitingFor)
}

func TestProject_ScoresSortedDescending(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t, "cards", "庄", "闲一", "闲二")
	c2 := claimSeat(t, r, "p2")
	c3 := claimSeat(t, r, "p3")

	submitHand(t, r, hostID, "niu_7", "Q", "heart", 0)
	submitHand(t, r, c2, "niu_niu", "K", "spade", 2)
	require.NotNil(t, submitHand(t, r, c3, "no_niu", "A", "diamond", 3))

	view := r.Project(hostID)
	require.Len(t, view.Scores, 3)
	for i := 1; i < len(view.Scores); i++ {
		assert.GreaterOrEqual(t, view.Scores[i-1].Score, view.Scores[i].Score)
	}
	assert.Equal(t, "p2", view.Scores[0].PlayerID)
}

func TestProject_DraftShapesFollowRole(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t, "cards", "庄", "闲")
	idle := claimSeat(t, r, "p2")

	hostView := r.Project(hostID)
	require.NotNil(t, hostView.MyDraft)
	assert.Nil(t, hostView.MyDraft.Bet, "the banker never bets")
	assert.Nil(t, hostView.MyDraft.Delta)

	idleView := r.Project(idle)
	require.NotNil(t, idleView.MyDraft)
	require.NotNil(t, idleView.MyDraft.Bet)
	assert.Nil(t, idleView.MyDraft.Delta)
}

func TestProject_HistoryNewestFirst(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t, "cards", "庄", "闲")
	idle := claimSeat(t, r, "p2")

	submitHand(t, r, hostID, "niu_niu", "K", "spade", 0)
	require.NotNil(t, submitHand(t, r, idle, "no_niu", "5", "heart", 1))
	submitHand(t, r, hostID, "no_niu", "5", "heart", 0)
	require.NotNil(t, submitHand(t, r, idle, "niu_niu", "K", "spade", 1))

	view := r.Project(hostID)
	require.Len(t, view.History, 2)
	assert.Equal(t, 2, view.History[0].RoundSeq)
	assert.Equal(t, 1, view.History[1].RoundSeq)
}

func TestOwnerClientIDs_Deduplicated(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t, "cards", "庄", "闲")
	claimSeat(t, r, "p2")

	ids := r.OwnerClientIDs()
	assert.ElementsMatch(t, []string{hostID, "client-p2"}, ids)
}
