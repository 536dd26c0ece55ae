package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luckypine/niuniu-scorekeeper/internal/config"
	"github.com/luckypine/niuniu-scorekeeper/internal/logger"
	"github.com/luckypine/niuniu-scorekeeper/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}

	if cfg.Server.LogToFile {
		if err := logger.Init(); err != nil {
			log.Printf("日志文件初始化失败: %v", err)
		} else {
			log.Printf("📝 日志写入: %s", logger.GetLogPath())
		}
	}

	// 创建服务器
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("创建服务器失败: %v", err)
	}

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("正在关闭服务器...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("关闭服务器出错: %v", err)
		}
		os.Exit(0)
	}()

	// 启动服务器
	log.Println("🐮 牛牛计分服务器启动中...")
	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
