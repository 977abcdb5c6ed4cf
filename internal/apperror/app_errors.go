package apperror

import "errors"

var (
	ErrOutOfRange       = errors.New("coordinate is out of range")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidBoard     = errors.New("board must be a non-empty square grid")
	ErrSessionNotFound  = errors.New("session not found")
)
