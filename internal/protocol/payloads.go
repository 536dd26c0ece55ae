package protocol

// BindPayload 客户端绑定请求
type BindPayload struct {
	ClientID string `json:"clientId"`
}

// BoundPayload 绑定成功响应
type BoundPayload struct {
	ClientID string `json:"clientId"`
	Now      int64  `json:"now"`
}

// PongPayload 心跳响应
type PongPayload struct {
	Now int64 `json:"now"`
}

// RoomUpdatedPayload 房间状态变更通知
type RoomUpdatedPayload struct {
	RoomID string `json:"roomId"`
	Ts     int64  `json:"ts"`
}

// SettledPayload 回合结算通知
type SettledPayload struct {
	RoomID   string `json:"roomId"`
	RoundSeq int    `json:"roundSeq"`
	RecordID string `json:"recordId"`
	Ts       int64  `json:"ts"`
}

// ErrorPayload 错误消息
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
