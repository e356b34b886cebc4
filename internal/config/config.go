package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game   GameConfig   `mapstructure:"game"`
	AI     AIConfig     `mapstructure:"ai"`
	Server ServerConfig `mapstructure:"server"`
}

// GameConfig holds settings for newly created games
type GameConfig struct {
	// DefaultTemplate is a template file path or "default" for the built-in one
	DefaultTemplate string `mapstructure:"default_template"`
	// Time limits in seconds. 0 keeps the template's value, -1 means unlimited.
	TotalTimeLimit int `mapstructure:"total_time_limit"`
	MoveTimeLimit  int `mapstructure:"move_time_limit"`
	// Seed of 0 seeds from the clock
	Seed int64 `mapstructure:"seed"`
}

// AIConfig holds search settings for both AI players
type AIConfig struct {
	Minimax MinimaxConfig `mapstructure:"minimax"`
	MCTS    MCTSConfig    `mapstructure:"mcts"`
}

// MinimaxConfig holds alpha-beta search settings
type MinimaxConfig struct {
	MaxDepth    int `mapstructure:"max_depth"`
	TimeLimitMs int `mapstructure:"time_limit_ms"`
}

// MCTSConfig holds Monte Carlo search settings
type MCTSConfig struct {
	TimeLimitMs  int `mapstructure:"time_limit_ms"`
	RolloutLimit int `mapstructure:"rollout_limit"`
}

// ServerConfig holds process and session manager settings
type ServerConfig struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	MaxGames  int    `mapstructure:"max_games"`
	// CleanupInterval is in seconds
	CleanupInterval int `mapstructure:"cleanup_interval"`
}

// TimeLimit returns the per-move minimax budget
func (c MinimaxConfig) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitMs) * time.Millisecond
}

// TimeLimit returns the per-move MCTS budget
func (c MCTSConfig) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitMs) * time.Millisecond
}

// CleanupEvery returns the session cleanup period
func (c ServerConfig) CleanupEvery() time.Duration {
	return time.Duration(c.CleanupInterval) * time.Second
}

// ApplyTo overrides the template's time limits with any configured ones
func (c GameConfig) ApplyTo(tmpl *core.MapTemplate) {
	if c.TotalTimeLimit != 0 {
		tmpl.TotalTimeLimitSeconds = c.TotalTimeLimit
	}
	if c.MoveTimeLimit != 0 {
		tmpl.MoveTimeLimitSeconds = c.MoveTimeLimit
	}
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.default_template", "default")
	v.SetDefault("game.total_time_limit", 0)
	v.SetDefault("game.move_time_limit", 0)
	v.SetDefault("game.seed", 0)

	// AI defaults
	v.SetDefault("ai.minimax.max_depth", 3)
	v.SetDefault("ai.minimax.time_limit_ms", 1000)
	v.SetDefault("ai.mcts.time_limit_ms", 1000)
	v.SetDefault("ai.mcts.rollout_limit", 500)

	// Server defaults
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "console")
	v.SetDefault("server.max_games", 100)
	v.SetDefault("server.cleanup_interval", 60)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/capture-the-flag")
	}

	v.SetEnvPrefix("CTF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing explicit file falls back to defaults like a missing discovered one
		if configPath == "" && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml, next to the loaded config file, over
// the loaded configuration. A missing overlay is not an error.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	base := v.ConfigFileUsed()
	envFile := filepath.Join(filepath.Dir(base), fmt.Sprintf("config.%s.yaml", env))
	if base == "" {
		envFile = fmt.Sprintf("config.%s.yaml", env)
	}
	if _, err := os.Stat(envFile); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	v.SetConfigFile(envFile)
	err := v.MergeInConfig()
	// keep watching and reporting the base file
	v.SetConfigFile(base)
	if err != nil {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	_ = v.Unmarshal(cfg)
}

func GetString(key string) string {
	return v.GetString(key)
}

func GetInt(key string) int {
	return v.GetInt(key)
}

func GetBool(key string) bool {
	return v.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return v.GetDuration(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. Invalid edits are passed to
// onChange and the previous values are kept.
func WatchConfig(onChange func(*Config, error)) {
	watched, current := v, cfg
	watched.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		err := watched.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil {
			*current = *next
		}
		if onChange != nil {
			onChange(current, err)
		}
	})
	watched.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.DefaultTemplate == "" {
		return fmt.Errorf("game.default_template must not be empty")
	}
	if c.Game.TotalTimeLimit < core.Unlimited {
		return fmt.Errorf("game.total_time_limit must be -1, 0 or positive")
	}
	if c.Game.MoveTimeLimit < core.Unlimited {
		return fmt.Errorf("game.move_time_limit must be -1, 0 or positive")
	}

	if c.AI.Minimax.MaxDepth <= 0 {
		return fmt.Errorf("ai.minimax.max_depth must be positive")
	}
	if c.AI.Minimax.TimeLimitMs <= 0 {
		return fmt.Errorf("ai.minimax.time_limit_ms must be positive")
	}
	if c.AI.MCTS.TimeLimitMs <= 0 {
		return fmt.Errorf("ai.mcts.time_limit_ms must be positive")
	}
	if c.AI.MCTS.RolloutLimit <= 0 {
		return fmt.Errorf("ai.mcts.rollout_limit must be positive")
	}

	if _, err := zerolog.ParseLevel(c.Server.LogLevel); err != nil || c.Server.LogLevel == "" {
		return fmt.Errorf("server.log_level %q is not a known level", c.Server.LogLevel)
	}
	if c.Server.LogFormat != "console" && c.Server.LogFormat != "json" {
		return fmt.Errorf("server.log_format must be console or json")
	}
	if c.Server.MaxGames <= 0 {
		return fmt.Errorf("server.max_games must be positive")
	}
	if c.Server.CleanupInterval <= 0 {
		return fmt.Errorf("server.cleanup_interval must be positive")
	}

	return nil
}
