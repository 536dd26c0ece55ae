package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client)
	return store, mr
}

func TestRedisStore_SaveLoadDeleteRoom(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	roomData := &RoomData{
		ID:           "ABCD23",
		HostClientID: "host-1",
		GameMode:     "cards",
		BankerID:     "p1",
		Base:         1,
		BankerMul:    1,
		SettleMode:   "winner",
		Players: []PlayerData{
			{ID: "p1", Name: "玩家1", Owned: true},
			{ID: "p2", Name: "玩家2"},
		},
		Scores:    map[string]float64{"p1": 4, "p2": -4},
		Seq:       2,
		Settled:   1,
		UpdatedAt: time.Now().UnixMilli(),
	}

	// Save
	err := store.SaveRoom(ctx, roomData.ID, roomData)
	assert.NoError(t, err)

	// Load
	loaded, err := store.LoadRoom(ctx, roomData.ID)
	assert.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Equal(t, roomData.ID, loaded.ID)
	assert.Equal(t, roomData.Scores, loaded.Scores)
	assert.Len(t, loaded.Players, 2)

	// Delete
	err = store.DeleteRoom(ctx, roomData.ID)
	assert.NoError(t, err)

	// Verify delete
	loaded, err = store.LoadRoom(ctx, roomData.ID)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_SaveNil(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()

	assert.NoError(t, store.SaveRoom(context.Background(), "X", nil))
}

func TestRedisStore_GetAllRoomIDs(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	for _, id := range []string{"AAAA", "BBBB"} {
		err := store.SaveRoom(ctx, id, &RoomData{ID: id})
		assert.NoError(t, err)
	}

	ids, err := store.GetAllRoomIDs(ctx)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"AAAA", "BBBB"}, ids)
}

func TestRedisStore_Expiration(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	err := store.SaveRoom(ctx, "TTLX", &RoomData{ID: "TTLX"})
	assert.NoError(t, err)

	err = store.SetRoomExpiration(ctx, "TTLX", time.Second)
	assert.NoError(t, err)

	mr.FastForward(2 * time.Second)

	loaded, err := store.LoadRoom(ctx, "TTLX")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}
