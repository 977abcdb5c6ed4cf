package gomoku

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const WinLength = 5

// directions are the four undirected lines through a stone:
// vertical, horizontal, down-right diagonal, down-left diagonal.
var directions = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// Place returns a copy of board with player's stone at (row, col).
// An occupied target is not an error: the input board comes back unchanged
// and callers detect the no-op with Board.Equal.
func Place(board entity.Board, row, col int, player entity.Player) (entity.Board, error) {
	owner, err := board.OccupantAt(row, col)
	if err != nil {
		return board, fmt.Errorf("invalid placement: %w", err)
	}

	if owner != entity.NoPlayer {
		return board, nil
	}

	rows := board.Rows()
	rows[row][col] = player

	next, err := entity.NewBoardFromRows(rows)
	if err != nil {
		return board, fmt.Errorf("failed to build board: %w", err)
	}

	return next, nil
}

// CheckWinner reports whether the stone at (lastRow, lastCol) completes a line of
// at least WinLength stones of player. Only lines through that stone are scanned.
func CheckWinner(board entity.Board, lastRow, lastCol int, player entity.Player) bool {
	owner, err := board.OccupantAt(lastRow, lastCol)
	if err != nil || owner != player || player == entity.NoPlayer {
		return false
	}

	for _, dir := range directions {
		count := 1 +
			countInDirection(board, lastRow, lastCol, dir[0], dir[1], player) +
			countInDirection(board, lastRow, lastCol, -dir[0], -dir[1], player)

		if count >= WinLength {
			return true
		}
	}

	return false
}

// CheckDraw reports whether every cell is occupied.
func CheckDraw(board entity.Board) bool {
	return board.IsFull()
}

// countInDirection counts consecutive stones of player starting next to (row, col).
func countInDirection(board entity.Board, row, col, deltaRow, deltaCol int, player entity.Player) int {
	count := 0
	r, c := row+deltaRow, col+deltaCol

	for board.InBounds(r, c) {
		owner, _ := board.OccupantAt(r, c)
		if owner != player {
			break
		}

		count++
		r += deltaRow
		c += deltaCol
	}

	return count
}
