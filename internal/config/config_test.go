package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: 127.0.0.1
  port: 8080
redis:
  addr: localhost:6379
  db: 2
game:
  base_stake: 2
  banker_mul: 1.5
  settle_mode: banker
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 2.0, cfg.Game.BaseStake)
	assert.Equal(t, 1.5, cfg.Game.BankerMul)
	assert.Equal(t, "banker", cfg.Game.SettleMode)
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: {}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5273, cfg.Server.Port)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 1.0, cfg.Game.BaseStake)
	assert.Equal(t, 1.0, cfg.Game.BankerMul)
	assert.Equal(t, "winner", cfg.Game.SettleMode)
}

func TestLoad_InvalidSettleMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  settle_mode: bogus\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "winner", cfg.Game.SettleMode)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, 5273, cfg.Server.Port)
	assert.Equal(t, "winner", cfg.Game.SettleMode)
}
