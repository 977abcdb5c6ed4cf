package entity

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

// Board sizes accepted for new sessions. Five in a row needs at least five cells per line.
const (
	MinBoardSize     = 5
	MaxBoardSize     = 19
	DefaultBoardSize = 13
)

// Settings is what survives a restart of a session: its size and display preference.
type Settings struct {
	ID              string `json:"id"`
	BoardSize       int    `json:"board_size"`
	ShowStoneColors bool   `json:"show_stone_colors"`
}

func ValidateBoardSize(size int) error {
	if size < MinBoardSize || size > MaxBoardSize {
		return fmt.Errorf("%w: %d, must be between %d and %d", apperror.ErrInvalidBoardSize, size, MinBoardSize, MaxBoardSize)
	}

	return nil
}
