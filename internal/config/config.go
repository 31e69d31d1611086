package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	SSH     SSHConfig     `toml:"ssh" yaml:"ssh"`
	Game    GameConfig    `toml:"game" yaml:"game"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

type SSHConfig struct {
	Host        string `toml:"host" yaml:"host"`
	Port        string `toml:"port" yaml:"port"`
	HostKeyPath string `toml:"host_key_path" yaml:"host_key_path"`
}

type GameConfig struct {
	TargetFPS int `toml:"target_fps" yaml:"target_fps"`
	// ScaleEnemyByDelta makes enemy speed frame-rate independent.
	ScaleEnemyByDelta bool   `toml:"scale_enemy_by_delta" yaml:"scale_enemy_by_delta"`
	Seed              uint64 `toml:"seed" yaml:"seed"` // 0 = random
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
	Output string `toml:"output" yaml:"output"` // "stderr", "stdout" or a file path
}

// Load reads path over the defaults. The format follows the extension:
// .yaml/.yml is YAML, anything else TOML. An empty path returns the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return toml.Unmarshal(data, cfg)
	}
}

// ApplyEnv overrides settings from SSH_HOST, SSH_PORT, SSH_HOST_KEY,
// GAME_FPS, GAME_SCALE_ENEMY, LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT.
func (c *Config) ApplyEnv() {
	c.SSH.Host = GetEnv("SSH_HOST", c.SSH.Host)
	c.SSH.Port = GetEnv("SSH_PORT", c.SSH.Port)
	c.SSH.HostKeyPath = GetEnv("SSH_HOST_KEY", c.SSH.HostKeyPath)
	c.Game.TargetFPS = GetEnvInt("GAME_FPS", c.Game.TargetFPS)
	c.Game.ScaleEnemyByDelta = GetEnvBool("GAME_SCALE_ENEMY", c.Game.ScaleEnemyByDelta)
	c.Logging.Level = GetEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = GetEnv("LOG_FORMAT", c.Logging.Format)
	c.Logging.Output = GetEnv("LOG_OUTPUT", c.Logging.Output)
}

func Defaults() *Config {
	return &Config{
		SSH: SSHConfig{
			Host:        "::",
			Port:        "2222",
			HostKeyPath: "/app/keys/host_key",
		},
		Game: GameConfig{
			TargetFPS: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}
