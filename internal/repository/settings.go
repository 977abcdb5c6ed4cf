package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

var ErrSettingsNotFound = errors.New("settings not found")

type SettingsRepository interface {
	CreateOrUpdate(ctx context.Context, settings *entity.Settings) error
	GetByID(ctx context.Context, id string) (*entity.Settings, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbSettings struct {
	client *redis.Client
}

func NewSettingsRepository(client *redis.Client) SettingsRepository {
	return &dbSettings{
		client: client,
	}
}

func (that *dbSettings) CreateOrUpdate(ctx context.Context, settings *entity.Settings) error {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("could not marshal settings: %w", err)
	}

	err = that.client.Set(ctx, settingsKey(settings.ID), settingsJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set settings: %w", err)
	}

	return nil
}

func (that *dbSettings) GetByID(ctx context.Context, id string) (*entity.Settings, error) {
	response, err := that.client.Get(ctx, settingsKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSettingsNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get settings by id: %w", err)
	}

	var existing entity.Settings
	if err = json.Unmarshal([]byte(response), &existing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return &existing, nil
}

func (that *dbSettings) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, settingsKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete settings by id: %w", err)
	}

	if deleted == 0 {
		return ErrSettingsNotFound
	}

	return nil
}

func settingsKey(id string) string {
	return "settings:" + id
}
