package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

// Cell is one addressable board position and its owner.
type Cell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Owner Player `json:"owner"`
}

func (that Cell) IsEmpty() bool {
	return that.Owner == NoPlayer
}

// Board is an immutable square grid. Every constructor allocates fresh storage,
// so two boards never share cells and a board can be read from any goroutine.
type Board struct {
	size  int
	cells []Player // row-major, len == size*size
}

// NewBoard returns a size x size board with every cell unoccupied.
func NewBoard(size int) (Board, error) {
	if size < 1 {
		return Board{}, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, size)
	}

	return Board{
		size:  size,
		cells: make([]Player, size*size),
	}, nil
}

// NewBoardFromRows builds a board from a square matrix of owners.
func NewBoardFromRows(rows [][]Player) (Board, error) {
	size := len(rows)
	if size == 0 {
		return Board{}, apperror.ErrInvalidBoard
	}

	cells := make([]Player, 0, size*size)
	for i, row := range rows {
		if len(row) != size {
			return Board{}, fmt.Errorf("%w: row %d has %d cells, want %d", apperror.ErrInvalidBoard, i, len(row), size)
		}

		for _, owner := range row {
			if owner != NoPlayer && !owner.IsPlaying() {
				return Board{}, fmt.Errorf("%w: %d", ErrUnknownPlayer, owner)
			}
		}

		cells = append(cells, row...)
	}

	return Board{size: size, cells: cells}, nil
}

func (that Board) Size() int {
	return that.size
}

func (that Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

// OccupantAt returns the owner of (row, col), NoPlayer when the cell is empty.
func (that Board) OccupantAt(row, col int) (Player, error) {
	if !that.InBounds(row, col) {
		return NoPlayer, fmt.Errorf("%w: (%d, %d) on %dx%d board", apperror.ErrOutOfRange, row, col, that.size, that.size)
	}

	return that.at(row, col), nil
}

// Cell is OccupantAt for renderers that want the position alongside the owner.
func (that Board) Cell(row, col int) (Cell, error) {
	owner, err := that.OccupantAt(row, col)
	if err != nil {
		return Cell{}, err
	}

	return Cell{Row: row, Col: col, Owner: owner}, nil
}

// Cells returns the grid as rows of cells.
func (that Board) Cells() [][]Cell {
	out := make([][]Cell, that.size)
	for r := range out {
		out[r] = make([]Cell, that.size)
		for c := range out[r] {
			out[r][c] = Cell{Row: r, Col: c, Owner: that.at(r, c)}
		}
	}

	return out
}

// Rows returns a deep copy of the owners, one slice per row.
func (that Board) Rows() [][]Player {
	out := make([][]Player, that.size)
	for r := range out {
		out[r] = make([]Player, that.size)
		copy(out[r], that.cells[r*that.size:(r+1)*that.size])
	}

	return out
}

func (that Board) IsFull() bool {
	for _, owner := range that.cells {
		if owner == NoPlayer {
			return false
		}
	}

	return len(that.cells) > 0
}

func (that Board) CountStones() int {
	count := 0
	for _, owner := range that.cells {
		if owner != NoPlayer {
			count++
		}
	}

	return count
}

// Equal reports cell-for-cell equality.
func (that Board) Equal(other Board) bool {
	if that.size != other.size {
		return false
	}

	for i := range that.cells {
		if that.cells[i] != other.cells[i] {
			return false
		}
	}

	return true
}

// String renders the board as text, one row per line: '.' empty, 'X' Player1, 'O' Player2.
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(that.size * (that.size + 1))

	for r := 0; r < that.size; r++ {
		for c := 0; c < that.size; c++ {
			switch that.at(r, c) {
			case Player1:
				sb.WriteByte('X')
			case Player2:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

type boardJSON struct {
	Size int        `json:"size"`
	Rows [][]Player `json:"rows"`
}

func (that Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{Size: that.size, Rows: that.Rows()})
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	board, err := NewBoardFromRows(raw.Rows)
	if err != nil {
		return fmt.Errorf("failed to build board: %w", err)
	}

	if board.size != raw.Size {
		return fmt.Errorf("%w: size %d does not match %d rows", apperror.ErrInvalidBoard, raw.Size, board.size)
	}

	*that = board

	return nil
}

func (that Board) at(row, col int) Player {
	return that.cells[row*that.size+col]
}
