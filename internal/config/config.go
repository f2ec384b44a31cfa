package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/socialcarehq/social-care-backend/internal/logger"
	"github.com/socialcarehq/social-care-backend/internal/utils"
)

// Config carries the knobs that are worth tuning per deployment.
// Values resolve in order: built-in default, config file, environment.
type Config struct {
	ServerPort         string        `yaml:"server_port"`
	OutboxPollInterval time.Duration `yaml:"outbox_poll_interval"`
	OutboxBatchSize    int           `yaml:"outbox_batch_size"`
	RedisAddr          string        `yaml:"redis_addr"`
	RedisChannel       string        `yaml:"redis_channel"`
}

type fileConfig struct {
	ServerPort         string `yaml:"server_port"`
	OutboxPollInterval string `yaml:"outbox_poll_interval"`
	OutboxBatchSize    int    `yaml:"outbox_batch_size"`
	RedisAddr          string `yaml:"redis_addr"`
	RedisChannel       string `yaml:"redis_channel"`
}

func Load(log *logger.Logger) Config {
	cfg := Config{
		ServerPort:         "8080",
		OutboxPollInterval: 1 * time.Second,
		OutboxBatchSize:    100,
		RedisChannel:       "patient-events",
	}

	path := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	if path == "" {
		path = "config.yaml"
	}
	if raw, err := os.ReadFile(path); err == nil {
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			log.Warn("Failed to parse config file, ignoring it", "path", path, "error", err)
		} else {
			if fc.ServerPort != "" {
				cfg.ServerPort = fc.ServerPort
			}
			if fc.OutboxPollInterval != "" {
				if d, err := time.ParseDuration(fc.OutboxPollInterval); err == nil {
					cfg.OutboxPollInterval = d
				} else {
					log.Warn("Bad outbox_poll_interval in config file", "value", fc.OutboxPollInterval, "error", err)
				}
			}
			if fc.OutboxBatchSize > 0 {
				cfg.OutboxBatchSize = fc.OutboxBatchSize
			}
			if fc.RedisAddr != "" {
				cfg.RedisAddr = fc.RedisAddr
			}
			if fc.RedisChannel != "" {
				cfg.RedisChannel = fc.RedisChannel
			}
		}
	}

	cfg.ServerPort = utils.GetEnv("SERVER_PORT", cfg.ServerPort, log)
	cfg.OutboxPollInterval = utils.GetEnvAsDuration("OUTBOX_POLL_INTERVAL", cfg.OutboxPollInterval, log)
	cfg.OutboxBatchSize = utils.GetEnvAsInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize, log)
	cfg.RedisAddr = utils.GetEnv("REDIS_ADDR", cfg.RedisAddr, log)
	cfg.RedisChannel = utils.GetEnv("REDIS_CHANNEL", cfg.RedisChannel, log)
	return cfg
}
