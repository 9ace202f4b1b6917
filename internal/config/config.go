package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel    string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile     string  `yaml:"log-file" env:"LOG_FILE" env-default:"tictactoe.log"`
	InspectPort string  `yaml:"inspect-port" env:"INSPECT_PORT" env-default:""`
	Service     Service `yaml:"service"`
	History     History `yaml:"history"`
	Redis       Redis   `yaml:"redis"`
}

// Service - where the game service lives.
type Service struct {
	BaseURL string        `yaml:"base-url" env:"SERVICE_BASE_URL" env-default:"http://localhost:8000"`
	Timeout time.Duration `yaml:"timeout" env:"SERVICE_TIMEOUT" env-default:"10s"`
	FeedURL string        `yaml:"feed-url" env:"SERVICE_FEED_URL" env-default:""`
}

type History struct {
	Enabled bool  `yaml:"enabled" env:"HISTORY_ENABLED" env-default:"false"`
	Length  int64 `yaml:"length" env:"HISTORY_LENGTH" env-default:"100"`
}

// Redis - where snapshot history is kept when enabled.
type Redis struct {
	Host        string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB          int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	DialTimeout time.Duration `yaml:"dial-timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the config file and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
