package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository/storage"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
	"github.com/rocketscienceinc/gomoku-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	settingsRepo := repository.NewSettingsRepository(redisStorage)
	gameManager := usecase.NewGameManager(logger, settingsRepo)

	router := rest.NewRouter(logger, gameManager, rest.Defaults{
		BoardSize:       conf.Game.BoardSize,
		ShowStoneColors: conf.Game.ShowStoneColors,
	})

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
