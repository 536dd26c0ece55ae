package apperrors

import (
	"github.com/luckypine/niuniu-scorekeeper/internal/protocol"
)

// GameError 引擎错误（携带协议错误码）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// New 创建带自定义文本的引擎错误
func New(code int, message string) *GameError {
	return &GameError{Code: code, Message: message}
}

// 预定义错误
var (
	ErrRoomNotFound    = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: protocol.ErrorMessages[protocol.ErrCodeRoomNotFound]}
	ErrRoomExists      = &GameError{Code: protocol.ErrCodeRoomExists, Message: protocol.ErrorMessages[protocol.ErrCodeRoomExists]}
	ErrSeatNotFound    = &GameError{Code: protocol.ErrCodeSeatNotFound, Message: protocol.ErrorMessages[protocol.ErrCodeSeatNotFound]}
	ErrSeatTaken       = &GameError{Code: protocol.ErrCodeSeatTaken, Message: protocol.ErrorMessages[protocol.ErrCodeSeatTaken]}
	ErrNotAllowed      = &GameError{Code: protocol.ErrCodeNotAllowed, Message: protocol.ErrorMessages[protocol.ErrCodeNotAllowed]}
	ErrNoSeat          = &GameError{Code: protocol.ErrCodeNoSeat, Message: protocol.ErrorMessages[protocol.ErrCodeNoSeat]}
	ErrRoomFull        = &GameError{Code: protocol.ErrCodeRoomFull, Message: protocol.ErrorMessages[protocol.ErrCodeRoomFull]}
	ErrMinPlayers      = &GameError{Code: protocol.ErrCodeMinPlayers, Message: protocol.ErrorMessages[protocol.ErrCodeMinPlayers]}
	ErrHistoryNotEmpty = &GameError{Code: protocol.ErrCodeHistoryNotEmpty, Message: protocol.ErrorMessages[protocol.ErrCodeHistoryNotEmpty]}
	ErrHistoryEmpty    = &GameError{Code: protocol.ErrCodeHistoryEmpty, Message: protocol.ErrorMessages[protocol.ErrCodeHistoryEmpty]}
	ErrNoDraftSlot     = &GameError{Code: protocol.ErrCodeNoDraftSlot, Message: protocol.ErrorMessages[protocol.ErrCodeNoDraftSlot]}
	ErrInvalidBanker   = &GameError{Code: protocol.ErrCodeInvalidBanker, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidBanker]}
)

// NotHost 只有房主可以执行某操作
func NotHost(action string) *GameError {
	return &GameError{Code: protocol.ErrCodeNotHost, Message: "只有房主可以" + action + "。"}
}
