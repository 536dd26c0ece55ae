package room

import (
	"github.com/luckypine/niuniu-scorekeeper/internal/apperrors"
)

// BankerDraft 庄家本回合的牌型录入
type BankerDraft struct {
	TypeID    string `json:"typeId"`
	Rank      string `json:"rank"`
	Suit      string `json:"suit"`
	Submitted bool   `json:"submitted"`
	UpdatedAt int64  `json:"updatedAt"`
}

// IdleDraft 闲家本回合的牌型录入（多一个押注倍数）
type IdleDraft struct {
	Bet       float64 `json:"bet"`
	TypeID    string  `json:"typeId"`
	Rank      string  `json:"rank"`
	Suit      string  `json:"suit"`
	Submitted bool    `json:"submitted"`
	UpdatedAt int64   `json:"updatedAt"`
}

// ManualDraft 手动模式下的净变动录入
type ManualDraft struct {
	Delta     float64 `json:"delta"`
	Submitted bool    `json:"submitted"`
	UpdatedAt int64   `json:"updatedAt"`
}

// Round 当前回合。按 Mode 取对应的草稿字段，判别字段只在 initRound 变更
type Round struct {
	Seq    int
	Mode   GameMode
	Banker *BankerDraft            // cards 模式
	Idles  map[string]*IdleDraft   // cards 模式，座位 → 草稿
	Manual map[string]*ManualDraft // manual 模式，座位 → 草稿
	Check  *ManualCheck            // 上次手动结算失败的对账结果
}

// SubmitParams 座位提交数据（按模式取字段）
type SubmitParams struct {
	TypeID string  `json:"typeId"`
	Rank   string  `json:"rank"`
	Suit   string  `json:"suit"`
	Bet    float64 `json:"bet"`
	Delta  float64 `json:"delta"`
}

// initRound 开启新回合。prev 不为 nil 时把上回合录入值作为默认种子带入，
// 减少重复录入；提交标记总是清零
func (r *Room) initRound(prev *Round) {
	r.Seq++

	if r.GameMode == ModeManual {
		manual := make(map[string]*ManualDraft, len(r.Players))
		for _, p := range r.Players {
			var seed *ManualDraft
			if prev != nil && prev.Manual != nil {
				seed = prev.Manual[p.ID]
			}
			draft := &ManualDraft{}
			if seed != nil {
				draft.Delta = round2(finite(seed.Delta, 0))
			}
			manual[p.ID] = draft
		}
		r.Round = &Round{
			Seq:    r.Seq,
			Mode:   ModeManual,
			Manual: manual,
		}
		r.touch()
		return
	}

	fallback := r.firstEnabledTypeID()

	var prevBanker *BankerDraft
	if prev != nil {
		prevBanker = prev.Banker
	}
	banker := &BankerDraft{
		TypeID: fallback,
		Rank:   "K",
		Suit:   "spade",
	}
	if prevBanker != nil {
		banker.TypeID = r.enabledTypeID(prevBanker.TypeID)
		banker.Rank = sanitizeRank(prevBanker.Rank)
		banker.Suit = sanitizeSuit(prevBanker.Suit)
	}

	idles := make(map[string]*IdleDraft, len(r.Players))
	for _, p := range r.Players {
		if p.ID == r.BankerID {
			continue
		}
		var seed *IdleDraft
		if prev != nil && prev.Idles != nil {
			seed = prev.Idles[p.ID]
		}
		draft := &IdleDraft{
			Bet:    1,
			TypeID: fallback,
			Rank:   "K",
			Suit:   "spade",
		}
		if seed != nil {
			draft.Bet = positive(seed.Bet, 1)
			draft.TypeID = r.enabledTypeID(seed.TypeID)
			draft.Rank = sanitizeRank(seed.Rank)
			draft.Suit = sanitizeSuit(seed.Suit)
		}
		idles[p.ID] = draft
	}

	r.Round = &Round{
		Seq:    r.Seq,
		Mode:   ModeCards,
		Banker: banker,
		Idles:  idles,
	}
	r.touch()
}

// Submit 提交当前回合的录入，覆盖旧值。全员交齐时触发结算，
// 返回结算记录（未结算或手动对账失败时为 nil）
func (r *Room) Submit(clientID string, data SubmitParams) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	me := r.ownedSeat(clientID)
	if me == nil {
		return nil, apperrors.ErrNoSeat
	}

	if r.GameMode == ModeManual {
		cur := r.Round.Manual[me.ID]
		if cur == nil {
			return nil, apperrors.ErrNoDraftSlot
		}
		cur.Delta = round2(finite(data.Delta, 0))
		cur.Submitted = true
		cur.UpdatedAt = nowMillis()
		r.Round.Check = nil
		r.touch()
		record := r.settleIfReady()
		r.persist()
		return record, nil
	}

	if me.ID == r.BankerID {
		draft := r.Round.Banker
		draft.TypeID = r.enabledTypeID(data.TypeID)
		draft.Rank = sanitizeRank(data.Rank)
		draft.Suit = sanitizeSuit(data.Suit)
		draft.Submitted = true
		draft.UpdatedAt = nowMillis()
	} else {
		cur := r.Round.Idles[me.ID]
		if cur == nil {
			return nil, apperrors.ErrNoDraftSlot
		}
		cur.Bet = positive(data.Bet, 1)
		cur.TypeID = r.enabledTypeID(data.TypeID)
		cur.Rank = sanitizeRank(data.Rank)
		cur.Suit = sanitizeSuit(data.Suit)
		cur.Submitted = true
		cur.UpdatedAt = nowMillis()
	}

	r.touch()
	record := r.settleIfReady()
	r.persist()
	return record, nil
}

// allSubmitted 回合是否已交齐
func (r *Room) allSubmitted() bool {
	if r.GameMode == ModeManual {
		for _, p := range r.Players {
			d := r.Round.Manual[p.ID]
			if d == nil || !d.Submitted {
				return false
			}
		}
		return true
	}

	if !r.Round.Banker.Submitted {
		return false
	}
	for _, p := range r.Players {
		if p.ID == r.BankerID {
			continue
		}
		d := r.Round.Idles[p.ID]
		if d == nil || !d.Submitted {
			return false
		}
	}
	return true
}

// SetBanker 切换庄家（房主专属）。cards 模式下迁移草稿：
// 旧庄的录入转为闲家草稿，新庄已有的闲家录入转为庄家草稿，避免丢输入
func (r *Room) SetBanker(clientID, bankerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.assertHost(clientID, "切换庄家"); err != nil {
		return err
	}
	if r.seatByID(bankerID) == nil {
		return apperrors.ErrInvalidBanker
	}

	if r.GameMode == ModeManual {
		// 手动模式只改对账基准，草稿不动
		r.BankerID = bankerID
		if r.Round == nil {
			r.initRound(nil)
		}
		r.Round.Check = nil
		r.touch()
		r.persist()
		return nil
	}

	if r.Round == nil {
		r.BankerID = bankerID
		r.initRound(nil)
		r.persist()
		return nil
	}

	if r.BankerID == bankerID {
		r.touch()
		return nil
	}

	oldBankerID := r.BankerID
	oldRound := r.Round
	fallback := r.firstEnabledTypeID()

	nextBanker := &BankerDraft{
		TypeID: fallback,
		Rank:   "K",
		Suit:   "spade",
	}
	if src := oldRound.Idles[bankerID]; src != nil {
		nextBanker.TypeID = r.enabledTypeID(src.TypeID)
		nextBanker.Rank = sanitizeRank(src.Rank)
		nextBanker.Suit = sanitizeSuit(src.Suit)
		nextBanker.Submitted = src.Submitted
		nextBanker.UpdatedAt = src.UpdatedAt
	} else if src := oldRound.Banker; src != nil {
		nextBanker.TypeID = r.enabledTypeID(src.TypeID)
		nextBanker.Rank = sanitizeRank(src.Rank)
		nextBanker.Suit = sanitizeSuit(src.Suit)
		nextBanker.Submitted = src.Submitted
		nextBanker.UpdatedAt = src.UpdatedAt
	}

	nextIdles := make(map[string]*IdleDraft, len(r.Players))
	for _, p := range r.Players {
		if p.ID == bankerID {
			continue
		}
		draft := &IdleDraft{
			Bet:    1,
			TypeID: fallback,
			Rank:   "K",
			Suit:   "spade",
		}
		if p.ID == oldBankerID {
			if src := oldRound.Banker; src != nil {
				draft.TypeID = r.enabledTypeID(src.TypeID)
				draft.Rank = sanitizeRank(src.Rank)
				draft.Suit = sanitizeSuit(src.Suit)
				draft.Submitted = src.Submitted
				draft.UpdatedAt = src.UpdatedAt
			}
		} else if src := oldRound.Idles[p.ID]; src != nil {
			draft.Bet = positive(src.Bet, 1)
			draft.TypeID = r.enabledTypeID(src.TypeID)
			draft.Rank = sanitizeRank(src.Rank)
			draft.Suit = sanitizeSuit(src.Suit)
			draft.Submitted = src.Submitted
			draft.UpdatedAt = src.UpdatedAt
		}
		nextIdles[p.ID] = draft
	}

	r.BankerID = bankerID
	r.Round = &Round{
		Seq:    oldRound.Seq,
		Mode:   ModeCards,
		Banker: nextBanker,
		Idles:  nextIdles,
	}
	r.touch()
	r.persist()
	return nil
}

// NewRound 房主强制开新回合，当前回合录入作为种子带入
func (r *Room) NewRound(clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.assertHost(clientID, "开新局"); err != nil {
		return err
	}
	r.initRound(r.Round)
	r.persist()
	return nil
}

// ChangeMode 切换计分模式。同模式等价于开新局；
// 真正切换时不带种子，草稿形态随判别字段一起重建
func (r *Room) ChangeMode(clientID string, rawMode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.assertHost(clientID, "切换模式"); err != nil {
		return err
	}

	next := ModeCards
	if rawMode == string(ModeManual) {
		next = ModeManual
	}

	if r.GameMode == next {
		r.initRound(r.Round)
		r.persist()
		return nil
	}
	r.GameMode = next
	r.initRound(nil)
	r.persist()
	return nil
}
