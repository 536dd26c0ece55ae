package room

import "sort"

// SeatView 座位视图。OwnerState 相对请求方：self / taken / free
type SeatView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsBanker   bool   `json:"isBanker"`
	OwnerState string `json:"ownerState"`
	Submitted  bool   `json:"submitted"`
}

// DraftView 请求方自己的草稿（按角色与模式取字段）
type DraftView struct {
	TypeID    string   `json:"typeId,omitempty"`
	Rank      string   `json:"rank,omitempty"`
	Suit      string   `json:"suit,omitempty"`
	Bet       *float64 `json:"bet,omitempty"`
	Delta     *float64 `json:"delta,omitempty"`
	Submitted bool     `json:"submitted"`
}

// RoundView 回合摘要
type RoundView struct {
	Seq            int          `json:"seq"`
	SubmittedCount int          `json:"submittedCount"`
	Total          int          `json:"total"`
	WaitingFor     []string     `json:"waitingFor"`
	ManualCheck    *ManualCheck `json:"manualCheck"`
}

// ScoreEntry 排行榜条目
type ScoreEntry struct {
	PlayerID string  `json:"playerId"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
}

// RoomView 面向单个客户端的房间视图。
// 只暴露请求方自己的草稿，其余座位只给出提交标记
type RoomView struct {
	RoomID       string       `json:"roomId"`
	IsHost       bool         `json:"isHost"`
	HostHasBound bool         `json:"hostHasBound"`
	GameMode     GameMode     `json:"gameMode"`
	BankerID     string       `json:"bankerId"`
	Rules        Rules        `json:"rules"`
	Types        []HandType   `json:"types"`
	Players      []SeatView   `json:"players"`
	MyPlayerID   string       `json:"myPlayerId,omitempty"`
	MyRole       string       `json:"myRole,omitempty"`
	MyDraft      *DraftView   `json:"myDraft,omitempty"`
	Round        RoundView    `json:"round"`
	Scores       []ScoreEntry `json:"scores"`
	History      []*Record    `json:"history"`
}

// seatSubmitted 座位在当前回合是否已提交
func (r *Room) seatSubmitted(seatID string) bool {
	if r.GameMode == ModeManual {
		d := r.Round.Manual[seatID]
		return d != nil && d.Submitted
	}
	if seatID == r.BankerID {
		return r.Round.Banker.Submitted
	}
	d := r.Round.Idles[seatID]
	return d != nil && d.Submitted
}

// Project 构建请求方视角的只读视图
func (r *Room) Project(clientID string) *RoomView {
	r.mu.Lock()
	defer r.mu.Unlock()

	me := r.ownedSeat(clientID)

	var manualCheck *ManualCheck
	if r.GameMode == ModeManual && r.Round.Check != nil {
		c := *r.Round.Check
		manualCheck = &c
	}

	submittedCount := 0
	waitingFor := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		if r.seatSubmitted(p.ID) {
			submittedCount++
		} else {
			waitingFor = append(waitingFor, p.Name)
		}
	}

	var myDraft *DraftView
	myRole := ""
	myPlayerID := ""
	if me != nil {
		myPlayerID = me.ID
		if me.ID == r.BankerID {
			myRole = "banker"
		} else {
			myRole = "idle"
		}

		if r.GameMode == ModeManual {
			delta := 0.0
			submitted := false
			if d := r.Round.Manual[me.ID]; d != nil {
				delta = round2(finite(d.Delta, 0))
				submitted = d.Submitted
			}
			myDraft = &DraftView{Delta: &delta, Submitted: submitted}
		} else if me.ID == r.BankerID {
			d := r.Round.Banker
			myDraft = &DraftView{
				TypeID:    d.TypeID,
				Rank:      d.Rank,
				Suit:      d.Suit,
				Submitted: d.Submitted,
			}
		} else if d := r.Round.Idles[me.ID]; d != nil {
			bet := d.Bet
			myDraft = &DraftView{
				TypeID:    d.TypeID,
				Rank:      d.Rank,
				Suit:      d.Suit,
				Bet:       &bet,
				Submitted: d.Submitted,
			}
		}
	}

	seats := make([]SeatView, len(r.Players))
	for i, p := range r.Players {
		state := "free"
		if p.Owner != "" {
			state = "taken"
			if p.Owner == clientID {
				state = "self"
			}
		}
		seats[i] = SeatView{
			ID:         p.ID,
			Name:       p.Name,
			IsBanker:   p.ID == r.BankerID,
			OwnerState: state,
			Submitted:  r.seatSubmitted(p.ID),
		}
	}

	enabledTypes := make([]HandType, 0, len(r.Types))
	for _, t := range r.Types {
		if t.On {
			enabledTypes = append(enabledTypes, t)
		}
	}

	scores := make([]ScoreEntry, len(r.Players))
	for i, p := range r.Players {
		scores[i] = ScoreEntry{
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    round2(r.Scores[p.ID]),
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	history := make([]*Record, len(r.History))
	copy(history, r.History)

	return &RoomView{
		RoomID:       r.ID,
		IsHost:       r.HostClientID == clientID,
		HostHasBound: r.HostClientID != "",
		GameMode:     r.GameMode,
		BankerID:     r.BankerID,
		Rules:        r.Rules,
		Types:        enabledTypes,
		Players:      seats,
		MyPlayerID:   myPlayerID,
		MyRole:       myRole,
		MyDraft:      myDraft,
		Round: RoundView{
			Seq:            r.Round.Seq,
			SubmittedCount: submittedCount,
			Total:          len(r.Players),
			WaitingFor:     waitingFor,
			ManualCheck:    manualCheck,
		},
		Scores:  scores,
		History: history,
	}
}

// OwnerClientIDs 占用了座位的客户端列表（通知接收方，供传输层取用）
func (r *Room) OwnerClientIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ownerClientIDs()
}
