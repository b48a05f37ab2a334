package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type BaseEnv struct {
	Env      string `envconfig:"ENV" default:"local"`
	HTTPHost string `envconfig:"HTTP_HOST" default:""`
	HTTPPort string `envconfig:"HTTP_PORT" default:"8000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type StoreEnv struct {
	Type string `envconfig:"STORE_TYPE" default:"memory"`
	// TTL after which a persisted task record reads as absent.
	TaskTTL time.Duration `envconfig:"TASK_TTL" default:"3600s"`
	// Sweep interval for the memory backend; zero disables the sweep.
	SweepInterval time.Duration `envconfig:"STORE_SWEEP_INTERVAL" default:"1m"`
	// Redis settings (used when Type == "redis")
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

type DispatchEnv struct {
	DefaultAgentType string        `envconfig:"DEFAULT_AGENT_TYPE" default:"general"`
	AgentsPath       string        `envconfig:"AGENTS_PATH"`
	ExecuteTimeout   time.Duration `envconfig:"EXECUTE_TIMEOUT" default:"30s"`
	SimulateDelay    time.Duration `envconfig:"SIMULATE_DELAY" default:"1s"`
}

type Env struct {
	BaseEnv
	StoreEnv
	DispatchEnv
}

const namespace = "CREWD"

func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}

func (e *BaseEnv) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelInfo
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
