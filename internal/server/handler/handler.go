// Package handler 提供 HTTP JSON 接口：房间操作统一为
// POST /api/... + JSON 请求体，成功响应携带请求方视角的房间状态
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/luckypine/niuniu-scorekeeper/internal/apperrors"
	"github.com/luckypine/niuniu-scorekeeper/internal/game/room"
	"github.com/luckypine/niuniu-scorekeeper/internal/protocol"
)

// 请求体大小上限
const maxBodyBytes = 1 << 20

// Notifier 房间变更通知出口。结算与状态变更后由处理器触发推送
type Notifier interface {
	PushRoomUpdated(r *room.Room)
	PushRoundSettled(r *room.Room, rec *room.Record)
}

// Handler HTTP 请求处理器
type Handler struct {
	rooms    *room.RoomManager
	notifier Notifier
}

// New 创建处理器。notifier 可为 nil（不推送）
func New(rooms *room.RoomManager, notifier Notifier) *Handler {
	return &Handler{rooms: rooms, notifier: notifier}
}

// Register 注册所有接口
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", h.handleHealth)
	mux.HandleFunc("/api/room/create", h.post(h.handleCreate))
	mux.HandleFunc("/api/room/state", h.handleState)
	mux.HandleFunc("/api/room/claim", h.post(h.handleClaim))
	mux.HandleFunc("/api/room/release", h.post(h.handleRelease))
	mux.HandleFunc("/api/room/player/add", h.post(h.handleAddPlayer))
	mux.HandleFunc("/api/room/player/rename", h.post(h.handleRenamePlayer))
	mux.HandleFunc("/api/room/player/remove", h.post(h.handleRemovePlayer))
	mux.HandleFunc("/api/room/submit", h.post(h.handleSubmit))
	mux.HandleFunc("/api/room/change-banker", h.post(h.handleChangeBanker))
	mux.HandleFunc("/api/room/change-game-mode", h.post(h.handleChangeGameMode))
	mux.HandleFunc("/api/room/new-round", h.post(h.handleNewRound))
	mux.HandleFunc("/api/room/undo", h.post(h.handleUndo))
	mux.HandleFunc("/api/room/reset", h.post(h.handleReset))
}

// post 限定 POST 并限制请求体大小
func (h *Handler) post(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "只支持 POST。")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		fn(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("响应编码错误: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// httpStatus 业务错误码映射到 HTTP 状态码
func httpStatus(code int) int {
	switch code {
	case protocol.ErrCodeRoomNotFound, protocol.ErrCodeSeatNotFound:
		return http.StatusNotFound
	case protocol.ErrCodeRoomExists, protocol.ErrCodeSeatTaken:
		return http.StatusConflict
	case protocol.ErrCodeNotHost, protocol.ErrCodeNotAllowed, protocol.ErrCodeNoSeat:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// writeGameError 业务错误按约定状态码返回，其余按 500
func writeGameError(w http.ResponseWriter, err error) {
	var ge *apperrors.GameError
	if errors.As(err, &ge) {
		writeError(w, httpStatus(ge.Code), ge.Message)
		return
	}
	log.Printf("❌ 未预期的错误: %v", err)
	writeError(w, http.StatusInternalServerError, "服务器内部错误。")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "请求体不是合法的 JSON。")
		return false
	}
	return true
}

// stateResponse 成功响应：ok + 请求方视角的房间状态
func stateResponse(w http.ResponseWriter, rm *room.Room, clientID string) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"state": rm.Project(clientID),
	})
}

// roomRequest 常见请求体（房间号 + 客户端标识）
type roomRequest struct {
	RoomID   string `json:"roomId"`
	ClientID string `json:"clientId"`
}

// getRoom 读取请求体里的房间，失败时已写响应
func (h *Handler) getRoom(w http.ResponseWriter, roomID string) (*room.Room, bool) {
	rm, err := h.rooms.Get(roomID)
	if err != nil {
		writeGameError(w, err)
		return nil, false
	}
	return rm, true
}

func (h *Handler) pushUpdated(rm *room.Room) {
	if h.notifier != nil {
		h.notifier.PushRoomUpdated(rm)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"rooms": h.rooms.Count(),
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var params room.CreateParams
	if !decodeBody(w, r, &params) {
		return
	}

	rm, err := h.rooms.CreateRoom(params)
	if err != nil {
		writeGameError(w, err)
		return
	}
	stateResponse(w, rm, strings.TrimSpace(params.ClientID))
}

// handleState GET /api/room/state?roomId=X&clientId=Y
func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "只支持 GET。")
		return
	}

	rm, ok := h.getRoom(w, r.URL.Query().Get("roomId"))
	if !ok {
		return
	}
	stateResponse(w, rm, strings.TrimSpace(r.URL.Query().Get("clientId")))
}

func (h *Handler) handleClaim(w http.ResponseWriter, r *http.Request) {
	var req struct {
		roomRequest
		PlayerID string `json:"playerId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	clientID := strings.TrimSpace(req.ClientID)
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "缺少客户端标识。")
		return
	}

	rm, ok := h.getRoom(w, req.RoomID)
	if !ok {
		return
	}
	if err := rm.Claim(req.PlayerID, clientID); err != nil {
		writeGameError(w, err)
		return
	}
	h.pushUpdated(rm)
	stateResponse(w, rm, clientID)
}

func (h *Handler) handleRelease(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rm, ok := h.getRoom(w, req.RoomID)
	if !ok {
		return
	}
	rm.Release(strings.TrimSpace(req.ClientID))
	h.pushUpdated(rm)
	stateResponse(w, rm, strings.TrimSpace(req.ClientID))
}

func (h *Handler) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		roomRequest
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	rm, ok := h.getRoom(w, req.RoomID)
	if !ok {
		return
	}
	if err := rm.AddSeat(req.ClientID, req.Name); err != nil {
		writeGameError(w, err)
		return
	}
	h.pushUpdated(rm)
	stateResponse(w, rm, req.ClientID)
}

func (h *Handler) handleRenamePlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		roomRequest
		PlayerID string `json:"playerId"`
		Name     string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	rm, ok := h.getRoom(w, req.RoomID)
	if !ok {
		return
	}
	if err := rm.Rename(req.PlayerID, req.Name, req.ClientID); err != nil {
		writeGameError(w, err)
		return
	}
	h.pushUpdated(rm)
	stateResponse(w, rm, req.ClientID)
}

func (h *Handler) handleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		roomRequest
		PlayerID string `json:"playerId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	rm, ok := h.getRoom(w, req.RoomID)
	if !ok {
		return
	}
	if err := rm.RemoveSeat(req.ClientID, req.PlayerID); err != nil {
		writeGameError(w, err)
		return
	}
	h.pushUpdated(rm)
	stateResponse(w, rm, req.ClientID)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		roomRequest
		Data room.SubmitParams `json:"data"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	rm, ok := h.getRoom(w, req.RoomID)
	if !ok {
		return
	}
	record, err := rm.Submit(req.ClientID, req.Data)
	if err != nil {
		writeGameError(w, err)
		return
	}

	if record != nil {
		log.Printf("💰 房间 %s 第 %d 回合已结算", rm.ID, record.RoundSeq)
		if h.notifier != nil {
			h.notifier.PushRoundSettled(rm, record)
		}
	}
	h.pushUpdated(rm)

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"settled": record != nil,
		"state":   rm.Project(req.ClientID),
	})
}

func (h *Handler) handleChangeBanker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		roomRequest
		BankerID string `json:"bankerId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	rm, ok := h.getRoom(w, req.RoomID)
	if !ok {
		return
	}
	if err := rm.SetBanker(req.ClientID, req.BankerID); err != nil {
		writeGameError(w, err)
		return
	}
	h.pushUpdated(rm)
	stateResponse(w, rm, req.ClientID)
}

func (h *Handler) handleChangeGameMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		roomRequest
		GameMode string `json:"gameMode"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	rm, ok := h.getRoom(w, req.RoomID)
	if !ok {
		return
	}
	if err := rm.ChangeMode(req.ClientID, req.GameMode); err != nil {
		writeGameError(w, err)
		return
	}
	h.pushUpdated(rm)
	stateResponse(w, rm, req.ClientID)
}

func (h *Handler) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rm, ok := h.getRoom(w, req.RoomID)
	if !ok {
		return
	}
	if err := rm.NewRound(req.ClientID); err != nil {
		writeGameError(w, err)
		return
	}
	h.pushUpdated(rm)
	stateResponse(w, rm, req.ClientID)
}

func (h *Handler) handleUndo(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rm, ok := h.getRoom(w, req.RoomID)
	if !ok {
		return
	}
	if err := rm.Undo(req.ClientID); err != nil {
		writeGameError(w, err)
		return
	}
	log.Printf("↩️ 房间 %s 撤销了最近一次结算", rm.ID)
	h.pushUpdated(rm)
	stateResponse(w, rm, req.ClientID)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rm, ok := h.getRoom(w, req.RoomID)
	if !ok {
		return
	}
	if err := rm.Reset(req.ClientID); err != nil {
		writeGameError(w, err)
		return
	}
	log.Printf("🧹 房间 %s 清空了战绩", rm.ID)
	h.pushUpdated(rm)
	stateResponse(w, rm, req.ClientID)
}
