package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	content := `
server:
  host: 127.0.0.1
  port: 9000
redis:
  addr: redis:6379
  db: 2
game:
  decks: 3
  turn_timeout: 45
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 3, cfg.Game.Decks)
	assert.Equal(t, 45*time.Second, cfg.Game.TurnTimeoutDuration())

	// Missing keys fall back to defaults
	assert.Equal(t, 4, cfg.Game.JokersPerDeck)
	assert.Equal(t, 10*time.Minute, cfg.Game.RoomTimeoutDuration())
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, 1780, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Game.Decks)
	assert.Equal(t, 30*time.Second, cfg.Game.TurnTimeoutDuration())
}
