package server

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/luckypine/niuniu-scorekeeper/internal/protocol"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 读取超时（pong 等待时间）
	pongWait = 60 * time.Second

	// ping 发送间隔（必须小于 pongWait）
	pingPeriod = (pongWait * 9) / 10

	// 消息最大大小
	maxMessageSize = 4096
)

// Client 一条 WebSocket 连接。绑定客户端标识后才会收到房间通知
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	boundID string // 由 Hub 在其锁内维护

	mu     sync.RWMutex
	closed bool
}

// NewClient 创建连接
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// ReadPump 从 WebSocket 读取消息
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unbind(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("读取错误: %v", err)
			}
			break
		}

		msg, err := protocol.Decode(message)
		if err != nil {
			log.Printf("消息解析错误: %v", err)
			c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			continue
		}

		c.handle(msg)
	}
}

// handle 处理连接级消息（绑定与心跳）
func (c *Client) handle(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgBind:
		payload, err := protocol.ParsePayload[protocol.BindPayload](msg)
		if err != nil {
			c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			return
		}
		clientID := strings.TrimSpace(payload.ClientID)
		if clientID == "" {
			c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeMissingClient))
			return
		}
		c.hub.Bind(clientID, c)
		c.SendMessage(protocol.MustNewMessage(protocol.MsgBound, protocol.BoundPayload{
			ClientID: clientID,
			Now:      nowMillis(),
		}))

	case protocol.MsgPing:
		c.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{Now: nowMillis()}))
	}
}

// WritePump 向 WebSocket 写入消息
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage 发送消息，缓冲区满时放弃该连接
func (c *Client) SendMessage(msg *protocol.Message) bool {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return false
	}
	c.mu.RUnlock()

	data, err := msg.Encode()
	if err != nil {
		log.Printf("消息编码错误: %v", err)
		return false
	}

	select {
	case c.send <- data:
		return true
	default:
		// 发送缓冲区已满，关闭连接
		log.Printf("连接发送缓冲区已满，断开")
		c.Close()
		return false
	}
}

// Close 关闭连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
