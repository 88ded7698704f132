package main

import (
	"fmt"
	"strings"

	"gamelog_daily/internal/cache"
	"gamelog_daily/internal/repository"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `mapstructure:"database"`
	Server   ServerConfig      `mapstructure:"server"`
	Redis    cache.Config      `mapstructure:"redis"`

	TelegramAuth TelegramAuthConfig `mapstructure:"telegramAuth"`
	Challenges   ChallengesConfig   `mapstructure:"challenges"`

	LogLevel string `mapstructure:"logLevel"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type TelegramAuthConfig struct {
	TelegramBotToken string `mapstructure:"telegramBotToken"`
	DebugMode        bool   `mapstructure:"debugMode"`
}

type ChallengesConfig struct {
	// ContentDir overrides the embedded content tables when set.
	ContentDir         string `mapstructure:"contentDir"`
	StreakLookbackDays int    `mapstructure:"streakLookbackDays"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.AddConfigPath(configPath)
	v.SetConfigType(configFormat)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("logLevel", "info")
	v.SetDefault("redis.ttl", "1m")
	v.SetDefault("challenges.streakLookbackDays", 30)

	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
