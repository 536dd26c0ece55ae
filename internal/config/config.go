package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig HTTP/WebSocket 服务器配置
type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	LogToFile bool   `yaml:"log_to_file"` // 日志写入文件而非标准输出
}

// RedisConfig Redis 配置（addr 为空时关闭镜像）
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 建房默认规则
type GameConfig struct {
	BaseStake  float64 `yaml:"base_stake"`  // 底注
	BankerMul  float64 `yaml:"banker_mul"`  // 庄家倍数
	SettleMode string  `yaml:"settle_mode"` // winner / banker / idle
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 设置默认值
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5273
	}
	if cfg.Game.BaseStake <= 0 {
		cfg.Game.BaseStake = 1
	}
	if cfg.Game.BankerMul <= 0 {
		cfg.Game.BankerMul = 1
	}
	switch cfg.Game.SettleMode {
	case "winner", "banker", "idle":
	default:
		cfg.Game.SettleMode = "winner"
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5273,
		},
		Game: GameConfig{
			BaseStake:  1,
			BankerMul:  1,
			SettleMode: "winner",
		},
	}
}
