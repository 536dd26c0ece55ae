package room

import (
	"github.com/luckypine/niuniu-scorekeeper/internal/apperrors"
)

// Undo 撤销最近一次结算（房主专属）：弹出最新记录并按明细逐项反向入账，
// 两位小数在取反下稳定，因此是精确的代数逆。撤销前回合的草稿不保留
func (r *Room) Undo(clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.assertHost(clientID, "撤销"); err != nil {
		return err
	}
	if len(r.History) == 0 {
		return apperrors.ErrHistoryEmpty
	}

	record := r.History[0]
	r.History = r.History[1:]

	r.Scores[record.BankerID] = round2(r.Scores[record.BankerID] - record.BankerDelta)
	for _, d := range record.Details {
		// 手动模式的庄家明细与 BankerDelta 重复，跳过避免双重回滚
		if d.ManualDelta && d.PlayerID == record.BankerID {
			continue
		}
		r.Scores[d.PlayerID] = round2(r.Scores[d.PlayerID] - d.Delta)
	}

	r.initRound(nil)
	r.touch()
	r.persist()
	return nil
}

// Reset 清空战绩（房主专属）：历史清空、全员分数归零、开新回合。不可逆
func (r *Room) Reset(clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.assertHost(clientID, "清空战绩"); err != nil {
		return err
	}

	r.History = nil
	for _, p := range r.Players {
		r.Scores[p.ID] = 0
	}
	r.initRound(nil)
	r.touch()
	r.persist()
	return nil
}
