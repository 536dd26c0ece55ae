package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgBind MessageType = "bind" // 绑定客户端标识
	MsgPing MessageType = "ping" // 心跳 ping
)

// 服务端 → 客户端 消息类型
const (
	MsgBound       MessageType = "bound"        // 绑定成功
	MsgPong        MessageType = "pong"         // 心跳 pong
	MsgRoomUpdated MessageType = "room_updated" // 房间状态变更
	MsgSettled     MessageType = "settled"      // 回合已结算
	MsgError       MessageType = "error"        // 错误消息
)
