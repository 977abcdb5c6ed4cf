package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis  `yaml:"redis"`
	Game     Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Game holds the defaults for sessions created without explicit settings.
type Game struct {
	BoardSize       int  `yaml:"board-size" env:"GAME_BOARD_SIZE" env-default:"13"`
	ShowStoneColors bool `yaml:"show-stone-colors" env:"GAME_SHOW_STONE_COLORS" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

func (that *Config) Validate() error {
	if err := entity.ValidateBoardSize(that.Game.BoardSize); err != nil {
		return fmt.Errorf("game.board-size: %w", err)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
