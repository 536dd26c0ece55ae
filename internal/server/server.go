package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/luckypine/niuniu-scorekeeper/internal/config"
	"github.com/luckypine/niuniu-scorekeeper/internal/game/room"
	"github.com/luckypine/niuniu-scorekeeper/internal/server/handler"
	"github.com/luckypine/niuniu-scorekeeper/internal/server/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源（计分器跑在内网或自托管环境）
	},
}

// Server 计分服务：HTTP 接口 + WebSocket 通知
type Server struct {
	config *config.Config
	rdb    *redis.Client
	rooms  *room.RoomManager
	hub    *Hub
	httpd  *http.Server
}

// NewServer 创建服务。Redis 地址为空时关闭镜像，只保留内存态
func NewServer(cfg *config.Config) (*Server, error) {
	s := &Server{
		config: cfg,
		hub:    NewHub(),
	}

	var store *storage.RedisStore
	if cfg.Redis.Addr != "" {
		s.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis 连接失败: %w", err)
		}
		store = storage.NewRedisStore(s.rdb)
		log.Printf("✅ Redis 已连接: %s", cfg.Redis.Addr)
	} else {
		log.Println("⚠️ 未配置 Redis，房间快照镜像已关闭")
	}

	defaults := room.Rules{
		Base:      cfg.Game.BaseStake,
		BankerMul: cfg.Game.BankerMul,
		Mode:      room.SettleMode(cfg.Game.SettleMode),
	}
	s.rooms = room.NewRoomManager(defaults, store)

	return s, nil
}

// Start 启动 HTTP 服务并阻塞
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	handler.New(s.rooms, s.hub).Register(mux)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.httpd = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("🚀 服务已启动: http://%s", addr)
	return s.httpd.ListenAndServe()
}

// Shutdown 优雅关停
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpd != nil {
		if err := s.httpd.Shutdown(ctx); err != nil {
			return err
		}
	}
	if s.rdb != nil {
		return s.rdb.Close()
	}
	return nil
}

// handleWebSocket 升级连接并启动读写泵
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s.hub, conn)
	go client.WritePump()
	go client.ReadPump()
}

// handleHealth 健康检查
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	fmt.Fprintf(w, `{"status":"ok","rooms":%d,"connections":%d}`, s.rooms.Count(), s.hub.BoundCount())
}
