package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Render RenderConfig `mapstructure:"render"`
	Log    LogConfig    `mapstructure:"log"`
	Demo   DemoConfig   `mapstructure:"demo"`
}

// ServerConfig controls the event ingestion socket.
type ServerConfig struct {
	SocketPath string `mapstructure:"socket_path"`
}

// RenderConfig controls the terminal renderer.
type RenderConfig struct {
	FPS       int    `mapstructure:"fps"`        // simulation ticks per second
	MainLabel string `mapstructure:"main_label"` // label under the session turtle
}

// LogConfig controls the process log file.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

// DemoConfig controls the synthetic event generator.
type DemoConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	ErrorRate    float64 `mapstructure:"error_rate"`
	ScenarioPath string  `mapstructure:"scenario_path"`
}

// Load reads layered configuration. Precedence, low to high: built-in
// defaults, global ~/.reef/config.yaml, project-local ./config.yaml,
// REEF_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Layer 1: global config
	globalDir := filepath.Join(os.Getenv("HOME"), ".reef")
	v.AddConfigPath(globalDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read global config: %w", err)
		}
	}

	// Layer 2: project-local overrides, merged on top
	localPath := "./config.yaml"
	if _, err := os.Stat(localPath); err == nil {
		v2 := viper.New()
		v2.SetConfigFile(localPath)
		if err := v2.ReadInConfig(); err == nil {
			_ = v.MergeConfigMap(v2.AllSettings())
		}
	}

	// Layer 3: environment variables
	v.SetEnvPrefix("REEF")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// DefaultSocketPath resolves the socket path, letting REEF_SOCK win over
// everything so the hook sender and the viewer agree without extra flags.
func DefaultSocketPath() string {
	if p := os.Getenv("REEF_SOCK"); p != "" {
		return p
	}
	return "/tmp/reef.sock"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.socket_path", DefaultSocketPath())

	v.SetDefault("render.fps", 20)
	v.SetDefault("render.main_label", "session")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.path", filepath.Join(os.TempDir(), "reef.log"))

	v.SetDefault("demo.enabled", false)
	v.SetDefault("demo.error_rate", 0.1)
	v.SetDefault("demo.scenario_path", "")
}
