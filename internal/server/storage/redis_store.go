package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	roomKeyPrefix = "niuniu:room:"

	// 房间快照过期时间（镜像自清理，进程内状态才是事实来源）
	roomExpiration = 24 * time.Hour
)

// RoomData 房间快照（用于 Redis 序列化，只写不读回）
type RoomData struct {
	ID           string             `json:"id"`
	HostClientID string             `json:"host_client_id"`
	GameMode     string             `json:"game_mode"`
	BankerID     string             `json:"banker_id"`
	Base         float64            `json:"base"`
	BankerMul    float64            `json:"banker_mul"`
	SettleMode   string             `json:"settle_mode"`
	Players      []PlayerData       `json:"players"`
	Scores       map[string]float64 `json:"scores"`
	Seq          int                `json:"seq"`
	Settled      int                `json:"settled"` // 已结算回合数
	UpdatedAt    int64              `json:"updated_at"`
}

// PlayerData 座位快照
type PlayerData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owned bool   `json:"owned"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveRoom 保存房间快照到 Redis
func (rs *RedisStore) SaveRoom(ctx context.Context, roomID string, data *RoomData) error {
	if data == nil {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化房间快照失败: %w", err)
	}

	key := roomKeyPrefix + roomID
	return rs.client.Set(ctx, key, jsonData, roomExpiration).Err()
}

// LoadRoom 从 Redis 读取房间快照（仅供巡检，引擎不依赖）
func (rs *RedisStore) LoadRoom(ctx context.Context, roomID string) (*RoomData, error) {
	key := roomKeyPrefix + roomID
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // 快照不存在
		}
		return nil, err
	}

	var roomData RoomData
	if err := json.Unmarshal(data, &roomData); err != nil {
		return nil, fmt.Errorf("反序列化房间快照失败: %w", err)
	}

	return &roomData, nil
}

// DeleteRoom 从 Redis 删除房间快照
func (rs *RedisStore) DeleteRoom(ctx context.Context, roomID string) error {
	key := roomKeyPrefix + roomID
	return rs.client.Del(ctx, key).Err()
}

// GetAllRoomIDs 获取所有有快照的房间号
func (rs *RedisStore) GetAllRoomIDs(ctx context.Context) ([]string, error) {
	keys, err := rs.client.Keys(ctx, roomKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(keys))
	for i, key := range keys {
		ids[i] = key[len(roomKeyPrefix):]
	}
	return ids, nil
}

// SetRoomExpiration 设置房间快照过期时间
func (rs *RedisStore) SetRoomExpiration(ctx context.Context, roomID string, expiration time.Duration) error {
	key := roomKeyPrefix + roomID
	return rs.client.Expire(ctx, key, expiration).Err()
}
