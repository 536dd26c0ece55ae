package room

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/luckypine/niuniu-scorekeeper/internal/apperrors"
)

// GameMode 计分模式
type GameMode string

const (
	ModeCards  GameMode = "cards"  // 比牌模式：提交牌型后自动结算
	ModeManual GameMode = "manual" // 手动模式：各自填报净变动
)

// SettleMode 倍数结算方式
type SettleMode string

const (
	SettleWinner SettleMode = "winner" // 按胜方牌型倍数
	SettleBanker SettleMode = "banker" // 按庄家牌型倍数
	SettleIdle   SettleMode = "idle"   // 按闲家牌型倍数
)

// Rules 房间规则
type Rules struct {
	Base      float64    `json:"base"`      // 底注
	BankerMul float64    `json:"bankerMul"` // 庄家倍数
	Mode      SettleMode `json:"mode"`
}

// Player 座位（Owner 为空表示空闲）
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"-"` // 占用该座位的客户端标识
}

// Room 房间。所有操作在 mu 保护下执行，单房间内串行
type Room struct {
	ID           string
	HostClientID string // 建房者，拥有永久管理权限
	CreatedAt    int64
	UpdatedAt    int64

	GameMode GameMode
	BankerID string
	Rules    Rules
	Types    []HandType
	Players  []*Player
	Scores   map[string]float64 // 座位 → 累计净分，总和恒为 0
	History  []*Record          // 最新在前
	Round    *Round
	Seq      int // 单调递增的回合号

	nextSeatSeq int
	manager     *RoomManager
	mu          sync.Mutex
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// safeName 座位名：去空白、截 18 字符，空名回退到 玩家N（i 为 0 时保持原名不回退编号）
func safeName(name string, i int) string {
	raw := strings.TrimSpace(name)
	if raw != "" {
		runes := []rune(raw)
		if len(runes) > 18 {
			runes = runes[:18]
		}
		return string(runes)
	}
	if i > 0 {
		return "玩家" + strconv.Itoa(i)
	}
	return "玩家"
}

// typeByID 在目录中查找牌型
func (r *Room) typeByID(typeID string) *HandType {
	for i := range r.Types {
		if r.Types[i].ID == typeID {
			return &r.Types[i]
		}
	}
	return nil
}

// firstEnabledTypeID 第一个启用的牌型，作为非法牌型的静默回退
func (r *Room) firstEnabledTypeID() string {
	for _, t := range r.Types {
		if t.On {
			return t.ID
		}
	}
	return r.Types[0].ID
}

// enabledTypeID 牌型启用时原样返回，否则回退
func (r *Room) enabledTypeID(typeID string) string {
	if t := r.typeByID(typeID); t != nil && t.On {
		return typeID
	}
	return r.firstEnabledTypeID()
}

// seatByID 查找座位
func (r *Room) seatByID(seatID string) *Player {
	for _, p := range r.Players {
		if p.ID == seatID {
			return p
		}
	}
	return nil
}

// ownedSeat 客户端占用的座位，未认领时为 nil
func (r *Room) ownedSeat(clientID string) *Player {
	if clientID == "" {
		return nil
	}
	for _, p := range r.Players {
		if p.Owner == clientID {
			return p
		}
	}
	return nil
}

// assertHost 非房主返回 Forbidden
func (r *Room) assertHost(clientID, action string) error {
	if r.HostClientID != clientID {
		return apperrors.NotHost(action)
	}
	return nil
}

// touch 更新时间戳
func (r *Room) touch() {
	r.UpdatedAt = nowMillis()
}

// ownerClientIDs 当前占用了座位的客户端（通知接收方）
func (r *Room) ownerClientIDs() []string {
	seen := make(map[string]struct{}, len(r.Players))
	out := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Owner == "" {
			continue
		}
		if _, dup := seen[p.Owner]; dup {
			continue
		}
		seen[p.Owner] = struct{}{}
		out = append(out, p.Owner)
	}
	return out
}
