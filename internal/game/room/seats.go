package room

import (
	"strconv"

	"github.com/luckypine/niuniu-scorekeeper/internal/apperrors"
)

const (
	minPlayers = 2
	maxPlayers = 10
)

// Claim 认领座位。座位被他人占用时返回 Conflict；
// 成功时自动释放该客户端此前占用的其它座位（同一客户端最多一个座位）
func (r *Room) Claim(seatID, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat := r.seatByID(seatID)
	if seat == nil {
		return apperrors.ErrSeatNotFound
	}

	if seat.Owner != "" && seat.Owner != clientID {
		return apperrors.ErrSeatTaken
	}

	for _, p := range r.Players {
		if p.Owner == clientID && p.ID != seatID {
			p.Owner = ""
		}
	}

	seat.Owner = clientID
	r.touch()
	r.persist()
	return nil
}

// Release 释放该客户端占用的所有座位，幂等
func (r *Room) Release(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.Players {
		if p.Owner == clientID {
			p.Owner = ""
		}
	}
	r.touch()
	r.persist()
}

// Rename 改名，只允许房主或座位本人
func (r *Room) Rename(seatID, newName, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat := r.seatByID(seatID)
	if seat == nil {
		return apperrors.ErrSeatNotFound
	}

	isHost := r.HostClientID == clientID
	isSelf := seat.Owner == clientID
	if !isHost && !isSelf {
		return apperrors.ErrNotAllowed
	}

	seat.Name = safeName(newName, 0)
	r.touch()
	r.persist()
	return nil
}

// nextSeatID 生成下一个座位号 p<N>，跳过已占用的编号
func (r *Room) nextSeatID() string {
	seq := r.nextSeatSeq
	if seq < 2 {
		seq = max(2, len(r.Players)+1)
	}
	used := make(map[string]struct{}, len(r.Players))
	for _, p := range r.Players {
		used[p.ID] = struct{}{}
	}
	candidate := "p" + strconv.Itoa(seq)
	for {
		if _, taken := used[candidate]; !taken {
			break
		}
		seq++
		candidate = "p" + strconv.Itoa(seq)
	}
	r.nextSeatSeq = seq + 1
	return candidate
}

// AddSeat 房主新增座位，重开当前回合（在场草稿作为种子保留）
func (r *Room) AddSeat(clientID, rawName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.assertHost(clientID, "新增玩家"); err != nil {
		return err
	}
	if len(r.Players) >= maxPlayers {
		return apperrors.ErrRoomFull
	}

	id := r.nextSeatID()
	name := safeName(rawName, len(r.Players)+1)
	r.Players = append(r.Players, &Player{ID: id, Name: name})
	r.Scores[id] = 0

	r.initRound(r.Round)
	r.persist()
	return nil
}

// RemoveSeat 房主删除座位。至少保留两个座位；已有战绩时删人会破坏零和不变量，拒绝
func (r *Room) RemoveSeat(clientID, seatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.assertHost(clientID, "删除玩家"); err != nil {
		return err
	}
	if len(r.Players) <= minPlayers {
		return apperrors.ErrMinPlayers
	}
	if len(r.History) > 0 {
		return apperrors.ErrHistoryNotEmpty
	}

	idx := -1
	for i, p := range r.Players {
		if p.ID == seatID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.ErrSeatNotFound
	}

	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	delete(r.Scores, seatID)

	// 庄家被删时移交给首位座位
	if r.seatByID(r.BankerID) == nil {
		r.BankerID = r.Players[0].ID
	}

	r.initRound(r.Round)
	r.persist()
	return nil
}
