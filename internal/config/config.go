package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode       string `mapstructure:"mode"`
	Port       int    `mapstructure:"port"`
	StaticPath string `mapstructure:"static_path"`
	Secret     string `mapstructure:"secret"`

	ReadLimit  int64 `mapstructure:"read_limit"`
	SendBuffer int   `mapstructure:"send_buffer"`

	RoundSeconds int           `mapstructure:"round_seconds"`
	TickInterval time.Duration `mapstructure:"tick_interval"`

	CmdRateLimit  int           `mapstructure:"cmd_rate_limit"`
	CmdRateWindow time.Duration `mapstructure:"cmd_rate_window"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 3002)
	v.SetDefault("static_path", "")
	v.SetDefault("secret", "stickervote-dev")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("send_buffer", 32)
	v.SetDefault("round_seconds", 10)
	v.SetDefault("tick_interval", "1s")
	v.SetDefault("cmd_rate_limit", 30)
	v.SetDefault("cmd_rate_window", "1s")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Int("round_seconds", cfg.RoundSeconds).Msg("effective config")
	return &cfg, nil
}
