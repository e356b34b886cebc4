package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	cfg = nil
	v = nil
}

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
game:
  default_template: maps/duel.yaml
  move_time_limit: 10
  seed: 42
ai:
  minimax:
    max_depth: 4
  mcts:
    rollout_limit: 200
server:
  max_games: 8
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	reset()
	err = Init(configFile)
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, "maps/duel.yaml", c.Game.DefaultTemplate)
	assert.Equal(t, 10, c.Game.MoveTimeLimit)
	assert.Equal(t, int64(42), c.Game.Seed)
	assert.Equal(t, 4, c.AI.Minimax.MaxDepth)
	assert.Equal(t, 200, c.AI.MCTS.RolloutLimit)
	assert.Equal(t, 8, c.Server.MaxGames)
	// untouched keys keep their defaults
	assert.Equal(t, 1000, c.AI.MCTS.TimeLimitMs)
	assert.Equal(t, configFile, ConfigFilePath())
}

func TestInitWithDefaults(t *testing.T) {
	reset()

	err := Init("/non/existent/path/config.yaml")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, "default", c.Game.DefaultTemplate)
	assert.Equal(t, 0, c.Game.TotalTimeLimit)
	assert.Equal(t, 3, c.AI.Minimax.MaxDepth)
	assert.Equal(t, time.Second, c.AI.Minimax.TimeLimit())
	assert.Equal(t, time.Second, c.AI.MCTS.TimeLimit())
	assert.Equal(t, 500, c.AI.MCTS.RolloutLimit)
	assert.Equal(t, "info", c.Server.LogLevel)
	assert.Equal(t, "console", c.Server.LogFormat)
	assert.Equal(t, 100, c.Server.MaxGames)
	assert.Equal(t, time.Minute, c.Server.CleanupEvery())
}

func TestInit_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("ai:\n  minimax:\n    max_depth: 0\n"), 0644))

	reset()
	err := Init(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ai.minimax.max_depth")
}

func TestEnvironmentVariables(t *testing.T) {
	reset()

	t.Setenv("CTF_AI_MCTS_ROLLOUT_LIMIT", "30")
	t.Setenv("CTF_SERVER_LOG_LEVEL", "debug")

	err := Init("")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 30, c.AI.MCTS.RolloutLimit)
	assert.Equal(t, "debug", c.Server.LogLevel)
}

func TestSet(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	Set("ai.minimax.max_depth", 6)
	Set("game.total_time_limit", 300)

	c := Get()
	assert.Equal(t, 6, c.AI.Minimax.MaxDepth)
	assert.Equal(t, 300, c.Game.TotalTimeLimit)
}

func TestGetViper_PanicsBeforeInit(t *testing.T) {
	reset()
	testutil.AssertPanic(t, func() { GetViper() }, "GetViper before Init")
}

func TestGetHelpers(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	Set("test.string", "hello")
	Set("test.int", 42)
	Set("test.bool", true)
	Set("test.duration", "1500ms")

	assert.Equal(t, "hello", GetString("test.string"))
	assert.Equal(t, 42, GetInt("test.int"))
	assert.Equal(t, true, GetBool("test.bool"))
	assert.Equal(t, 1500*time.Millisecond, GetDuration("test.duration"))
	assert.Same(t, v, GetViper())
}

func TestLoadEnvironmentConfig(t *testing.T) {
	tmpDir := t.TempDir()

	baseConfig := filepath.Join(tmpDir, "config.yaml")
	baseContent := `
ai:
  minimax:
    max_depth: 2
server:
  max_games: 10
`
	require.NoError(t, os.WriteFile(baseConfig, []byte(baseContent), 0644))

	envConfig := filepath.Join(tmpDir, "config.prod.yaml")
	envContent := `
ai:
  minimax:
    max_depth: 5
server:
  log_level: "error"
  log_format: json
`
	require.NoError(t, os.WriteFile(envConfig, []byte(envContent), 0644))

	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	reset()
	require.NoError(t, Init(baseConfig))
	require.NoError(t, LoadEnvironmentConfig("prod"))

	c := Get()
	assert.Equal(t, 5, c.AI.Minimax.MaxDepth)   // Overridden
	assert.Equal(t, 10, c.Server.MaxGames)      // Kept
	assert.Equal(t, "error", c.Server.LogLevel) // New value
	assert.Equal(t, "json", c.Server.LogFormat) // New value
	assert.NoError(t, LoadEnvironmentConfig(""))
}

func validConfig() *Config {
	return &Config{
		Game: GameConfig{DefaultTemplate: "default"},
		AI: AIConfig{
			Minimax: MinimaxConfig{MaxDepth: 3, TimeLimitMs: 100},
			MCTS:    MCTSConfig{TimeLimitMs: 100, RolloutLimit: 50},
		},
		Server: ServerConfig{LogLevel: "info", LogFormat: "console", MaxGames: 1, CleanupInterval: 1},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(validConfig()))

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"empty template", func(c *Config) { c.Game.DefaultTemplate = "" }, "game.default_template"},
		{"total limit", func(c *Config) { c.Game.TotalTimeLimit = -2 }, "game.total_time_limit"},
		{"move limit", func(c *Config) { c.Game.MoveTimeLimit = -5 }, "game.move_time_limit"},
		{"depth", func(c *Config) { c.AI.Minimax.MaxDepth = 0 }, "ai.minimax.max_depth"},
		{"minimax time", func(c *Config) { c.AI.Minimax.TimeLimitMs = 0 }, "ai.minimax.time_limit_ms"},
		{"mcts time", func(c *Config) { c.AI.MCTS.TimeLimitMs = -1 }, "ai.mcts.time_limit_ms"},
		{"rollout", func(c *Config) { c.AI.MCTS.RolloutLimit = 0 }, "ai.mcts.rollout_limit"},
		{"log level", func(c *Config) { c.Server.LogLevel = "loud" }, "server.log_level"},
		{"empty log level", func(c *Config) { c.Server.LogLevel = "" }, "server.log_level"},
		{"log format", func(c *Config) { c.Server.LogFormat = "xml" }, "server.log_format"},
		{"max games", func(c *Config) { c.Server.MaxGames = 0 }, "server.max_games"},
		{"cleanup", func(c *Config) { c.Server.CleanupInterval = 0 }, "server.cleanup_interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := Validate(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGameConfig_ApplyTo(t *testing.T) {
	tmpl := core.MapTemplate{TotalTimeLimitSeconds: 600, MoveTimeLimitSeconds: core.Unlimited}

	GameConfig{}.ApplyTo(&tmpl)
	assert.Equal(t, 600, tmpl.TotalTimeLimitSeconds)
	assert.Equal(t, core.Unlimited, tmpl.MoveTimeLimitSeconds)

	GameConfig{TotalTimeLimit: core.Unlimited, MoveTimeLimit: 15}.ApplyTo(&tmpl)
	assert.Equal(t, core.Unlimited, tmpl.TotalTimeLimitSeconds)
	assert.Equal(t, 15, tmpl.MoveTimeLimitSeconds)
}

func TestWatchConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("server:\n  max_games: 5\n"), 0644))

	reset()
	require.NoError(t, Init(configFile))

	changes := make(chan int, 8)
	WatchConfig(func(c *Config, err error) {
		if err != nil {
			return
		}
		select {
		case changes <- c.Server.MaxGames:
		default:
		}
	})

	require.NoError(t, os.WriteFile(configFile, []byte("server:\n  max_games: 7\n"), 0644))

	// a truncating write can surface as more than one event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case n := <-changes:
			if n == 7 {
				return
			}
		case <-timeout:
			t.Fatal("config change was not observed")
		}
	}
}
