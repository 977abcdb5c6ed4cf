package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository"
)

type settingsRepo interface {
	CreateOrUpdate(ctx context.Context, settings *entity.Settings) error
	GetByID(ctx context.Context, id string) (*entity.Settings, error)
	DeleteByID(ctx context.Context, id string) error
}

// managedSession pairs a session with the lock that serializes its mutations.
// deleted is set under mu once the session has been removed.
type managedSession struct {
	mu      sync.Mutex
	session *gomoku.Session
	deleted bool
}

// GameManager keeps the live sessions in memory and their settings in storage.
// A session missing from memory is rebuilt from its stored settings on a fresh board.
type GameManager struct {
	logger       *slog.Logger
	settingsRepo settingsRepo

	mu       sync.Mutex
	sessions map[string]*managedSession
}

func NewGameManager(logger *slog.Logger, settingsRepo settingsRepo) *GameManager {
	return &GameManager{
		logger:       logger.With("component", "game_manager"),
		settingsRepo: settingsRepo,
		sessions:     make(map[string]*managedSession),
	}
}

func (that *GameManager) CreateSession(ctx context.Context, boardSize int, showStoneColors bool) (string, entity.GameState, error) {
	if err := entity.ValidateBoardSize(boardSize); err != nil {
		return "", entity.GameState{}, err
	}

	session, err := gomoku.NewSession(that.logger, boardSize, showStoneColors)
	if err != nil {
		return "", entity.GameState{}, fmt.Errorf("failed to create session: %w", err)
	}

	settings := &entity.Settings{
		ID:              uuid.NewString(),
		BoardSize:       boardSize,
		ShowStoneColors: showStoneColors,
	}

	if err = that.settingsRepo.CreateOrUpdate(ctx, settings); err != nil {
		return "", entity.GameState{}, fmt.Errorf("failed to save settings: %w", err)
	}

	that.mu.Lock()
	that.sessions[settings.ID] = &managedSession{session: session}
	that.mu.Unlock()

	that.logger.Info("session created", "id", settings.ID, "board_size", boardSize)

	return settings.ID, session.State(), nil
}

func (that *GameManager) GetState(ctx context.Context, id string) (entity.GameState, error) {
	var state entity.GameState

	err := that.withSession(ctx, id, func(session *gomoku.Session) error {
		state = session.State()
		return nil
	})

	return state, err
}

// Place reports whether a stone was placed; false means the request was ignored.
func (that *GameManager) Place(ctx context.Context, id string, row, col int) (bool, entity.GameState, error) {
	var (
		placed bool
		state  entity.GameState
	)

	err := that.withSession(ctx, id, func(session *gomoku.Session) error {
		var err error

		placed, err = session.Place(row, col)
		state = session.State()

		return err
	})
	if err != nil {
		return false, state, fmt.Errorf("failed to place stone: %w", err)
	}

	if placed && state.IsFinished() {
		that.logger.Info("game finished", "id", id, "status", state.Status, "winner", state.Winner)
	}

	return placed, state, nil
}

func (that *GameManager) Undo(ctx context.Context, id string) (bool, entity.GameState, error) {
	var (
		undone bool
		state  entity.GameState
	)

	err := that.withSession(ctx, id, func(session *gomoku.Session) error {
		undone = session.Undo()
		state = session.State()
		return nil
	})
	if err != nil {
		return false, state, fmt.Errorf("failed to undo: %w", err)
	}

	return undone, state, nil
}

func (that *GameManager) Reset(ctx context.Context, id string) (entity.GameState, error) {
	var state entity.GameState

	err := that.withSession(ctx, id, func(session *gomoku.Session) error {
		session.Reset()
		state = session.State()
		return nil
	})
	if err != nil {
		return state, fmt.Errorf("failed to reset: %w", err)
	}

	return state, nil
}

// ToggleShowStoneColors flips the display preference and stores it, so a restored
// session comes back with the latest value.
func (that *GameManager) ToggleShowStoneColors(ctx context.Context, id string) (entity.GameState, error) {
	var state entity.GameState

	err := that.withSession(ctx, id, func(session *gomoku.Session) error {
		session.ToggleShowStoneColors()

		settings := &entity.Settings{
			ID:              id,
			BoardSize:       session.BoardSize(),
			ShowStoneColors: session.ShowStoneColors(),
		}

		if err := that.settingsRepo.CreateOrUpdate(ctx, settings); err != nil {
			session.ToggleShowStoneColors()
			return fmt.Errorf("failed to save settings: %w", err)
		}

		state = session.State()

		return nil
	})
	if err != nil {
		return state, fmt.Errorf("failed to toggle stone colors: %w", err)
	}

	return state, nil
}

// DeleteSession removes the stored settings first, then the in-memory session.
func (that *GameManager) DeleteSession(ctx context.Context, id string) error {
	log := that.logger.With("method", "DeleteSession", "id", id)

	that.mu.Lock()
	managed, inMemory := that.sessions[id]
	that.mu.Unlock()

	if inMemory {
		managed.mu.Lock()
		defer managed.mu.Unlock()
	}

	err := that.settingsRepo.DeleteByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrSettingsNotFound) && !inMemory:
		return apperror.ErrSessionNotFound
	case errors.Is(err, repository.ErrSettingsNotFound):
		log.Warn("session had no stored settings")
	case err != nil:
		return fmt.Errorf("failed to delete settings: %w", err)
	}

	that.mu.Lock()
	delete(that.sessions, id)
	that.mu.Unlock()

	if inMemory {
		managed.deleted = true
	}

	log.Info("session deleted")

	return nil
}

func (that *GameManager) withSession(ctx context.Context, id string, fn func(session *gomoku.Session) error) error {
	managed, err := that.getSession(ctx, id)
	if err != nil {
		return err
	}

	managed.mu.Lock()
	defer managed.mu.Unlock()

	if managed.deleted {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return fn(managed.session)
}

// getSession restores from storage outside the registry lock.
func (that *GameManager) getSession(ctx context.Context, id string) (*managedSession, error) {
	that.mu.Lock()
	managed, ok := that.sessions[id]
	that.mu.Unlock()

	if ok {
		return managed, nil
	}

	restored, err := that.restoreSession(ctx, id)
	if err != nil {
		return nil, err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	// another request may have restored it meanwhile
	if existing, ok := that.sessions[id]; ok {
		return existing, nil
	}

	that.sessions[id] = restored

	return restored, nil
}

// restoreSession rebuilds a session from stored settings. Board and history are not stored.
func (that *GameManager) restoreSession(ctx context.Context, id string) (*managedSession, error) {
	settings, err := that.settingsRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrSettingsNotFound) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if err = entity.ValidateBoardSize(settings.BoardSize); err != nil {
		return nil, fmt.Errorf("stored settings for %s: %w", id, err)
	}

	session, err := gomoku.NewSession(that.logger, settings.BoardSize, settings.ShowStoneColors)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	that.logger.Info("session restored from settings", "id", id, "board_size", settings.BoardSize)

	return &managedSession{session: session}, nil
}
