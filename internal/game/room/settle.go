package room

import (
	"github.com/google/uuid"
)

// ManualCheck 手动模式对账结果。对不平时结算被拒绝，结果挂在回合上供前端展示
type ManualCheck struct {
	OK             bool    `json:"ok"`
	BankerDelta    float64 `json:"bankerDelta"`
	IdleSum        float64 `json:"idleSum"`
	ExpectedBanker float64 `json:"expectedBanker"`
	Diff           float64 `json:"diff"`
}

// HandInfo 结算记录里的一手牌
type HandInfo struct {
	TypeID   string `json:"typeId"`
	TypeName string `json:"typeName"`
	Rank     string `json:"rank"`
	Suit     string `json:"suit"`
}

// Detail 结算记录的单座位明细
type Detail struct {
	PlayerID       string  `json:"playerId"`
	PlayerName     string  `json:"playerName"`
	IdleTypeID     string  `json:"idleTypeId,omitempty"`
	IdleTypeName   string  `json:"idleTypeName,omitempty"`
	IdleRank       string  `json:"idleRank,omitempty"`
	IdleSuit       string  `json:"idleSuit,omitempty"`
	BankerTypeID   string  `json:"bankerTypeId,omitempty"`
	BankerTypeName string  `json:"bankerTypeName,omitempty"`
	BankerRank     string  `json:"bankerRank,omitempty"`
	BankerSuit     string  `json:"bankerSuit,omitempty"`
	Bet            float64 `json:"bet,omitempty"`
	Mul            float64 `json:"tm"`
	Delta          float64 `json:"delta"`
	Compare        int     `json:"compare"`
	ManualDelta    bool    `json:"manualDelta,omitempty"`
}

// Record 一次结算的不可变记录。只允许结算追加、撤销移除
type Record struct {
	ID          string    `json:"id"`
	Ts          int64     `json:"ts"`
	Mode        GameMode  `json:"mode"`
	RoundSeq    int       `json:"roundSeq"`
	BankerID    string    `json:"bankerId"`
	BankerName  string    `json:"bankerName"`
	BankerHand  *HandInfo `json:"bankerHand,omitempty"`
	BankerDelta float64   `json:"bankerDelta"`
	Details     []Detail  `json:"details"`
}

// compareHands 比较闲家与庄家的手牌。返回 1 闲家胜、-1 庄家胜、0 平（无赔付）。
// 比较键依次为：牌型档位、点数权重（按点数表位置，K 最大 A 最小）、花色权重
func (r *Room) compareHands(idleTypeID, idleRank, idleSuit, bankerTypeID, bankerRank, bankerSuit string) int {
	idleType := r.typeByID(idleTypeID)
	bankerType := r.typeByID(bankerTypeID)
	if idleType == nil || bankerType == nil {
		return 0
	}
	if idleType.Rank != bankerType.Rank {
		if idleType.Rank > bankerType.Rank {
			return 1
		}
		return -1
	}

	if rw := rankWeight(idleRank) - rankWeight(bankerRank); rw != 0 {
		if rw > 0 {
			return 1
		}
		return -1
	}

	if sw := suitWeight(idleSuit) - suitWeight(bankerSuit); sw != 0 {
		if sw > 0 {
			return 1
		}
		return -1
	}

	return 0
}

// resolveMul 按结算方式解析赔付倍数，夹紧为非负
func (r *Room) resolveMul(mode SettleMode, idleTypeID, bankerTypeID string, idleWin bool) float64 {
	idleType := r.typeByID(idleTypeID)
	bankerType := r.typeByID(bankerTypeID)

	mulOf := func(t *HandType) float64 {
		if t == nil {
			return 1
		}
		return nonNegative(t.Mul, 1)
	}

	switch mode {
	case SettleBanker:
		return mulOf(bankerType)
	case SettleIdle:
		return mulOf(idleType)
	default:
		if idleWin {
			return mulOf(idleType)
		}
		return mulOf(bankerType)
	}
}

// checkManualConsistency 手动模式对账：庄家填报必须等于闲家合计的相反数
func (r *Room) checkManualConsistency(bankerID string) *ManualCheck {
	var bankerDelta, idleSum float64

	for _, p := range r.Players {
		var delta float64
		if d := r.Round.Manual[p.ID]; d != nil {
			delta = round2(finite(d.Delta, 0))
		}
		if p.ID == bankerID {
			bankerDelta = delta
		} else {
			idleSum = round2(idleSum + delta)
		}
	}

	expected := round2(-idleSum)
	diff := round2(bankerDelta - expected)
	return &ManualCheck{
		OK:             diff == 0,
		BankerDelta:    bankerDelta,
		IdleSum:        idleSum,
		ExpectedBanker: expected,
		Diff:           diff,
	}
}

// settleIfReady 回合交齐时结算。分数更新、历史追加、新回合开启在同一临界区内完成，
// 外部不可能观察到部分生效。手动模式对账失败时拒绝结算、回合保持开放
func (r *Room) settleIfReady() *Record {
	if !r.allSubmitted() {
		return nil
	}

	if r.GameMode == ModeManual {
		banker := r.seatByID(r.BankerID)
		if banker == nil {
			banker = r.Players[0]
		}
		check := r.checkManualConsistency(banker.ID)
		if !check.OK {
			r.Round.Check = check
			r.touch()
			return nil
		}

		r.Round.Check = nil
		details := make([]Detail, 0, len(r.Players))
		var bankerDelta float64

		for _, p := range r.Players {
			var delta float64
			if d := r.Round.Manual[p.ID]; d != nil {
				delta = round2(finite(d.Delta, 0))
			}
			r.Scores[p.ID] = round2(r.Scores[p.ID] + delta)
			if p.ID == banker.ID {
				bankerDelta = delta
			}
			details = append(details, Detail{
				PlayerID:    p.ID,
				PlayerName:  p.Name,
				Delta:       delta,
				ManualDelta: true,
			})
		}

		record := &Record{
			ID:          uuid.New().String(),
			Ts:          nowMillis(),
			Mode:        ModeManual,
			RoundSeq:    r.Round.Seq,
			BankerID:    banker.ID,
			BankerName:  banker.Name,
			BankerDelta: bankerDelta,
			Details:     details,
		}

		r.History = append([]*Record{record}, r.History...)
		r.initRound(nil)
		return record
	}

	banker := r.seatByID(r.BankerID)
	bankerDraft := r.Round.Banker
	bankerTypeName := "未知牌型"
	if t := r.typeByID(bankerDraft.TypeID); t != nil {
		bankerTypeName = t.Name
	}

	details := make([]Detail, 0, len(r.Players)-1)
	var bankerDelta float64

	for _, idle := range r.Players {
		if idle.ID == r.BankerID {
			continue
		}
		idleDraft := r.Round.Idles[idle.ID]
		idleTypeName := "未知牌型"
		if t := r.typeByID(idleDraft.TypeID); t != nil {
			idleTypeName = t.Name
		}

		detail := Detail{
			PlayerID:       idle.ID,
			PlayerName:     idle.Name,
			IdleTypeID:     idleDraft.TypeID,
			IdleTypeName:   idleTypeName,
			IdleRank:       idleDraft.Rank,
			IdleSuit:       idleDraft.Suit,
			BankerTypeID:   bankerDraft.TypeID,
			BankerTypeName: bankerTypeName,
			BankerRank:     bankerDraft.Rank,
			BankerSuit:     bankerDraft.Suit,
			Bet:            idleDraft.Bet,
		}

		cmp := r.compareHands(idleDraft.TypeID, idleDraft.Rank, idleDraft.Suit,
			bankerDraft.TypeID, bankerDraft.Rank, bankerDraft.Suit)
		if cmp != 0 {
			idleWin := cmp > 0
			mul := r.resolveMul(r.Rules.Mode, idleDraft.TypeID, bankerDraft.TypeID, idleWin)
			amount := round2(r.Rules.Base * r.Rules.BankerMul * idleDraft.Bet * mul)
			delta := amount
			if !idleWin {
				delta = -amount
			}

			r.Scores[idle.ID] = round2(r.Scores[idle.ID] + delta)
			// 庄家净分取闲家合计的相反数，零和由构造保证
			bankerDelta = round2(bankerDelta - delta)

			detail.Mul = mul
			detail.Delta = delta
			detail.Compare = cmp
		}
		details = append(details, detail)
	}

	r.Scores[banker.ID] = round2(r.Scores[banker.ID] + bankerDelta)

	record := &Record{
		ID:       uuid.New().String(),
		Ts:       nowMillis(),
		Mode:     ModeCards,
		RoundSeq: r.Round.Seq,
		BankerID: banker.ID,
		BankerName: banker.Name,
		BankerHand: &HandInfo{
			TypeID:   bankerDraft.TypeID,
			TypeName: bankerTypeName,
			Rank:     bankerDraft.Rank,
			Suit:     bankerDraft.Suit,
		},
		BankerDelta: bankerDelta,
		Details:     details,
	}

	r.History = append([]*Record{record}, r.History...)
	r.initRound(r.Round)
	return record
}
