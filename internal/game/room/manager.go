package room

import (
	"log"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/luckypine/niuniu-scorekeeper/internal/apperrors"
	"github.com/luckypine/niuniu-scorekeeper/internal/server/storage"
)

const (
	roomIDLength   = 6
	roomIDChars    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // 去掉易混淆的 I/O/0/1
	roomIDAttempts = 20
)

// RoomManager 房间注册表。进程级状态：启动为空、建房加入、不主动回收
type RoomManager struct {
	rooms    map[string]*Room
	defaults Rules
	store    *storage.RedisStore // 可为 nil（关闭镜像）
	mu       sync.RWMutex
}

// NewRoomManager 创建房间注册表。defaults 为建房缺省规则，store 可为 nil
func NewRoomManager(defaults Rules, store *storage.RedisStore) *RoomManager {
	return &RoomManager{
		rooms:    make(map[string]*Room),
		defaults: defaults,
		store:    store,
	}
}

// CreateParams 建房参数，字段缺省时按清洗规则回退
type CreateParams struct {
	RoomID   string         `json:"roomId"`
	ClientID string         `json:"clientId"`
	Players  []string       `json:"players"`
	BankerID string         `json:"bankerId"`
	GameMode string         `json:"gameMode"`
	Rules    RuleParams     `json:"rules"`
	Types    []TypeOverride `json:"types"`
}

// RuleParams 建房规则参数（零值回退到服务端默认）
type RuleParams struct {
	Base      float64 `json:"base"`
	BankerMul float64 `json:"bankerMul"`
	Mode      string  `json:"mode"`
}

// sanitizeRoomID 房间号规范化：大写字母数字，4–8 位，否则视为未提供
func sanitizeRoomID(raw string) string {
	var b strings.Builder
	for _, c := range strings.ToUpper(strings.TrimSpace(raw)) {
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	id := b.String()
	if len(id) >= 4 && len(id) <= 8 {
		return id
	}
	return ""
}

// generateRoomID 生成未占用的房间号。需在注册表锁内调用；
// 多次碰撞后回退到时间戳尾号
func (rm *RoomManager) generateRoomID() string {
	for attempt := 0; attempt < roomIDAttempts; attempt++ {
		b := make([]byte, roomIDLength)
		for i := range b {
			b[i] = roomIDChars[rand.Intn(len(roomIDChars))]
		}
		id := string(b)
		if _, exists := rm.rooms[id]; !exists {
			return id
		}
	}
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return ts[len(ts)-roomIDLength:]
}

// parsePlayers 座位名清洗：逐个 safeName，保底两个座位，封顶十个
func parsePlayers(raw []string) []string {
	out := make([]string, 0, len(raw))
	for i, name := range raw {
		out = append(out, safeName(name, i+1))
	}
	if len(out) < minPlayers {
		return []string{"玩家1", "玩家2"}
	}
	if len(out) > maxPlayers {
		out = out[:maxPlayers]
	}
	return out
}

// sanitizeRules 规则清洗，非法值回退到服务端默认
func (rm *RoomManager) sanitizeRules(raw RuleParams) Rules {
	rules := Rules{
		Base:      positive(raw.Base, rm.defaults.Base),
		BankerMul: positive(raw.BankerMul, rm.defaults.BankerMul),
	}
	switch SettleMode(raw.Mode) {
	case SettleWinner, SettleBanker, SettleIdle:
		rules.Mode = SettleMode(raw.Mode)
	default:
		rules.Mode = rm.defaults.Mode
	}
	return rules
}

// CreateRoom 建房。调用方指定的房间号已存在时返回 Conflict；
// 建房者的客户端自动认领庄家座位
func (rm *RoomManager) CreateRoom(p CreateParams) (*Room, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	roomID := sanitizeRoomID(p.RoomID)
	if roomID == "" {
		roomID = rm.generateRoomID()
	} else if _, exists := rm.rooms[roomID]; exists {
		return nil, apperrors.ErrRoomExists
	}

	names := parsePlayers(p.Players)
	players := make([]*Player, len(names))
	scores := make(map[string]float64, len(names))
	for i, name := range names {
		id := "p" + strconv.Itoa(i+1)
		players[i] = &Player{ID: id, Name: name}
		scores[id] = 0
	}

	gameMode := ModeCards
	if p.GameMode == string(ModeManual) {
		gameMode = ModeManual
	}

	bankerID := players[0].ID
	for _, pl := range players {
		if pl.ID == p.BankerID {
			bankerID = p.BankerID
			break
		}
	}

	now := nowMillis()
	r := &Room{
		ID:           roomID,
		HostClientID: strings.TrimSpace(p.ClientID),
		CreatedAt:    now,
		UpdatedAt:    now,
		GameMode:     gameMode,
		BankerID:     bankerID,
		Rules:        rm.sanitizeRules(p.Rules),
		Types:        sanitizeTypes(p.Types),
		Players:      players,
		Scores:       scores,
		nextSeatSeq:  len(players) + 1,
		manager:      rm,
	}

	// 建房者直接坐上庄位
	if r.HostClientID != "" {
		if seat := r.seatByID(r.BankerID); seat != nil {
			seat.Owner = r.HostClientID
		}
	}

	r.initRound(nil)
	rm.rooms[roomID] = r
	r.persist()

	log.Printf("🏠 房间 %s 已创建（%s 模式，%d 个座位）", roomID, gameMode, len(players))

	return r, nil
}

// Get 查找房间
func (rm *RoomManager) Get(roomID string) (*Room, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	r, ok := rm.rooms[sanitizeRoomID(roomID)]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	return r, nil
}

// Count 当前房间数
func (rm *RoomManager) Count() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}
