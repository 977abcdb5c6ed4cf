package gomoku

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// Session is the state machine of one game: turn order, win/draw latching and a
// linear undo history. It does no locking; callers serialize mutations.
type Session struct {
	logger *slog.Logger

	board           entity.Board
	turn            entity.Player
	winner          entity.Player
	isDraw          bool
	history         []entity.Board
	showStoneColors bool

	// foulAlert is reserved for forbidden-move messages and is never set.
	foulAlert string
}

// NewSession starts a game on an empty size x size board with Player1 to move.
func NewSession(logger *slog.Logger, size int, showStoneColors bool) (*Session, error) {
	board, err := entity.NewBoard(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &Session{
		logger:          logger.With("component", "session"),
		board:           board,
		turn:            entity.Player1,
		showStoneColors: showStoneColors,
	}, nil
}

// Place puts the current player's stone at (row, col). It reports false when the
// request was ignored because the game is over or the cell is taken. Out of range
// coordinates return an error and leave the session untouched.
func (that *Session) Place(row, col int) (bool, error) {
	log := that.logger.With("method", "Place", "row", row, "col", col)

	if _, err := that.board.OccupantAt(row, col); err != nil {
		return false, fmt.Errorf("invalid placement: %w", err)
	}

	if that.IsFinished() {
		log.Debug("game is over, placement ignored")
		return false, nil
	}

	mover := that.turn

	next, err := Place(that.board, row, col, mover)
	if err != nil {
		return false, err
	}

	if next.Equal(that.board) {
		log.Debug("cell is occupied, placement ignored")
		return false, nil
	}

	isWin := CheckWinner(next, row, col, mover)
	isDraw := !isWin && CheckDraw(next)

	that.history = append(that.history, that.board)
	that.board = next

	switch {
	case isWin:
		that.winner = mover
		log.Debug("winner decided", "player", mover)
	case isDraw:
		that.isDraw = true
		log.Debug("board is full, game drawn")
	default:
		that.turn = mover.Opposite()
	}

	log.Debug("stone placed", "player", mover)

	return true, nil
}

// Undo restores the previous board and clears any result. The turn flips from
// whatever it was before the undo; it is not restored from history.
func (that *Session) Undo() bool {
	log := that.logger.With("method", "Undo")

	if len(that.history) == 0 {
		log.Debug("nothing to undo")
		return false
	}

	last := len(that.history) - 1
	that.board = that.history[last]
	that.history[last] = entity.Board{}
	that.history = that.history[:last]

	that.winner = entity.NoPlayer
	that.isDraw = false
	that.turn = that.turn.Opposite()

	log.Debug("move undone", "history_length", len(that.history))

	return true
}

// Reset starts over on an empty board of the same size, keeping the display preference.
func (that *Session) Reset() {
	that.logger.Debug("resetting game", "method", "Reset")

	// size was validated by NewSession, so this cannot fail
	board, _ := entity.NewBoard(that.board.Size())

	that.board = board
	that.turn = entity.Player1
	that.winner = entity.NoPlayer
	that.isDraw = false
	that.history = nil
	that.foulAlert = ""
}

func (that *Session) ToggleShowStoneColors() {
	that.logger.Debug("toggling stone colors", "method", "ToggleShowStoneColors", "current", that.showStoneColors)

	that.showStoneColors = !that.showStoneColors
}

func (that *Session) Board() entity.Board {
	return that.board
}

func (that *Session) BoardSize() int {
	return that.board.Size()
}

func (that *Session) Turn() entity.Player {
	return that.turn
}

// Winner returns the winning player and true once the game is won.
func (that *Session) Winner() (entity.Player, bool) {
	return that.winner, that.winner != entity.NoPlayer
}

func (that *Session) IsDraw() bool {
	return that.isDraw
}

func (that *Session) HistoryLen() int {
	return len(that.history)
}

func (that *Session) CanUndo() bool {
	return len(that.history) > 0
}

func (that *Session) ShowStoneColors() bool {
	return that.showStoneColors
}

func (that *Session) FoulAlert() string {
	return that.foulAlert
}

func (that *Session) IsFinished() bool {
	return that.winner != entity.NoPlayer || that.isDraw
}

func (that *Session) Status() string {
	switch {
	case that.winner != entity.NoPlayer:
		return entity.StatusWon
	case that.isDraw:
		return entity.StatusDrawn
	default:
		return entity.StatusLive
	}
}

// State returns a snapshot for rendering. Boards are immutable, so it shares them.
func (that *Session) State() entity.GameState {
	return entity.GameState{
		Board:           that.board,
		CurrentPlayer:   that.turn,
		Winner:          that.winner,
		IsDraw:          that.isDraw,
		Status:          that.Status(),
		HistoryLength:   len(that.history),
		ShowStoneColors: that.showStoneColors,
		FoulAlert:       that.foulAlert,
	}
}
