package gomoku

import (
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyBoard(t *testing.T, size int) entity.Board {
	t.Helper()

	board, err := entity.NewBoard(size)
	require.NoError(t, err)

	return board
}

// boardWith places stones directly, without going through the rules.
func boardWith(t *testing.T, size int, player entity.Player, cells ...[2]int) entity.Board {
	t.Helper()

	board := emptyBoard(t, size)
	rows := board.Rows()
	for _, rc := range cells {
		rows[rc[0]][rc[1]] = player
	}

	board, err := entity.NewBoardFromRows(rows)
	require.NoError(t, err)

	return board
}

// drawPattern fills a size x size board with no line of five anywhere.
// Player1 owns one more cell than Player2 when size is odd.
func drawPattern(row, col int) entity.Player {
	if (col/2+row)%2 == 0 {
		return entity.Player1
	}
	return entity.Player2
}

func TestPlace(t *testing.T) {
	t.Run("Places a stone on every empty cell and changes nothing else", func(t *testing.T) {
		// Given: an empty 5x5 board
		board := emptyBoard(t, 5)

		for r := 0; r < 5; r++ {
			for c := 0; c < 5; c++ {
				// When: placing Player2 at (r, c)
				next, err := Place(board, r, c, entity.Player2)
				require.NoError(t, err)

				// Then: exactly that cell differs
				for rr := 0; rr < 5; rr++ {
					for cc := 0; cc < 5; cc++ {
						owner, err := next.OccupantAt(rr, cc)
						require.NoError(t, err)
						if rr == r && cc == c {
							assert.Equal(t, entity.Player2, owner)
						} else {
							assert.Equal(t, entity.NoPlayer, owner)
						}
					}
				}
			}
		}
	})

	t.Run("Does not mutate the input board", func(t *testing.T) {
		// Given: an empty board
		board := emptyBoard(t, 9)

		// When: a stone is placed
		next, err := Place(board, 4, 4, entity.Player1)
		require.NoError(t, err)

		// Then: the input board is still empty
		assert.Equal(t, 0, board.CountStones())
		assert.Equal(t, 1, next.CountStones())
		assert.False(t, board.Equal(next))
	})

	t.Run("Occupied cell returns an equal board", func(t *testing.T) {
		// Given: a board where (2, 3) belongs to Player1
		board := boardWith(t, 9, entity.Player1, [2]int{2, 3})

		// When: Player2 tries the same cell
		next, err := Place(board, 2, 3, entity.Player2)

		// Then: no error and the board is unchanged
		require.NoError(t, err)
		assert.True(t, board.Equal(next))
		owner, err := next.OccupantAt(2, 3)
		require.NoError(t, err)
		assert.Equal(t, entity.Player1, owner)
	})

	t.Run("Out of range coordinates fail", func(t *testing.T) {
		board := emptyBoard(t, 9)

		for _, rc := range [][2]int{{-1, 0}, {0, -1}, {9, 0}, {0, 9}} {
			_, err := Place(board, rc[0], rc[1], entity.Player1)
			require.ErrorIs(t, err, apperror.ErrOutOfRange, "coordinate %v", rc)
		}
	})
}

func TestCheckWinner(t *testing.T) {
	t.Run("Horizontal five from direct setup", func(t *testing.T) {
		// Given: Player1 holds (0,0)-(0,3) on a 9x9 board
		board := boardWith(t, 9, entity.Player1, [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3})
		require.False(t, CheckWinner(board, 0, 3, entity.Player1))

		// When: Player1 places at (0,4)
		next, err := Place(board, 0, 4, entity.Player1)
		require.NoError(t, err)

		// Then: Player1 wins
		assert.True(t, CheckWinner(next, 0, 4, entity.Player1))
	})

	tests := []struct {
		name  string
		cells [][2]int
		last  [2]int
	}{
		{"Vertical", [][2]int{{2, 6}, {3, 6}, {4, 6}, {5, 6}, {6, 6}}, [2]int{6, 6}},
		{"Diagonal down-right", [][2]int{{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}}, [2]int{3, 3}},
		{"Diagonal down-left", [][2]int{{0, 8}, {1, 7}, {2, 6}, {3, 5}, {4, 4}}, [2]int{0, 8}},
		{"Horizontal with the last stone in the middle", [][2]int{{8, 2}, {8, 3}, {8, 4}, {8, 5}, {8, 6}}, [2]int{8, 4}},
		{"Overline of six", [][2]int{{4, 0}, {4, 1}, {4, 2}, {4, 3}, {4, 4}, {4, 5}}, [2]int{4, 2}},
		{"Along the board edge", [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}, [2]int{4, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name+" wins", func(t *testing.T) {
			board := boardWith(t, 9, entity.Player2, tt.cells...)

			assert.True(t, CheckWinner(board, tt.last[0], tt.last[1], entity.Player2))
			assert.False(t, CheckWinner(board, tt.last[0], tt.last[1], entity.Player1))
		})
	}

	t.Run("Four in a row does not win", func(t *testing.T) {
		board := boardWith(t, 9, entity.Player1, [2]int{3, 1}, [2]int{3, 2}, [2]int{3, 3}, [2]int{3, 4})

		assert.False(t, CheckWinner(board, 3, 4, entity.Player1))
	})

	t.Run("A gap breaks the line", func(t *testing.T) {
		board := boardWith(t, 9, entity.Player1, [2]int{3, 0}, [2]int{3, 1}, [2]int{3, 3}, [2]int{3, 4}, [2]int{3, 5})

		assert.False(t, CheckWinner(board, 3, 4, entity.Player1))
	})

	t.Run("An opponent stone breaks the line", func(t *testing.T) {
		// Given: X X O X X X on row 5
		board := boardWith(t, 9, entity.Player1, [2]int{5, 0}, [2]int{5, 1}, [2]int{5, 3}, [2]int{5, 4}, [2]int{5, 5})
		board, err := Place(board, 5, 2, entity.Player2)
		require.NoError(t, err)

		assert.False(t, CheckWinner(board, 5, 3, entity.Player1))
	})

	t.Run("Only lines through the anchor are considered", func(t *testing.T) {
		// Given: a five on row 0 and an unrelated stone at (8, 8)
		board := boardWith(t, 9, entity.Player1,
			[2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{0, 4}, [2]int{8, 8})

		// Then: anchoring at (8, 8) finds nothing
		assert.False(t, CheckWinner(board, 8, 8, entity.Player1))
	})

	t.Run("Anchor not owned by the player is never a win", func(t *testing.T) {
		board := boardWith(t, 9, entity.Player1, [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{0, 4})

		assert.False(t, CheckWinner(board, 0, 5, entity.Player1))
		assert.False(t, CheckWinner(board, 0, 4, entity.Player2))
	})

	t.Run("Out of range anchor is never a win", func(t *testing.T) {
		board := emptyBoard(t, 9)

		assert.False(t, CheckWinner(board, 9, 9, entity.Player1))
		assert.False(t, CheckWinner(board, -1, 0, entity.Player1))
	})
}

func TestCheckDraw(t *testing.T) {
	t.Run("Empty board is not a draw", func(t *testing.T) {
		assert.False(t, CheckDraw(emptyBoard(t, 9)))
	})

	t.Run("One empty cell is not a draw", func(t *testing.T) {
		// Given: a full board except (4, 4)
		rows := emptyBoard(t, 9).Rows()
		for r := range rows {
			for c := range rows[r] {
				rows[r][c] = drawPattern(r, c)
			}
		}
		rows[4][4] = entity.NoPlayer
		board, err := entity.NewBoardFromRows(rows)
		require.NoError(t, err)

		assert.False(t, CheckDraw(board))
	})

	t.Run("Full board is a draw even with a winning line on it", func(t *testing.T) {
		rows := emptyBoard(t, 5).Rows()
		for r := range rows {
			for c := range rows[r] {
				rows[r][c] = entity.Player1
			}
		}
		board, err := entity.NewBoardFromRows(rows)
		require.NoError(t, err)

		assert.True(t, CheckDraw(board))
	})

	t.Run("Draw pattern has no five anywhere", func(t *testing.T) {
		for _, size := range []int{5, 9, 13} {
			rows := emptyBoard(t, size).Rows()
			for r := range rows {
				for c := range rows[r] {
					rows[r][c] = drawPattern(r, c)
				}
			}
			board, err := entity.NewBoardFromRows(rows)
			require.NoError(t, err)

			assert.True(t, CheckDraw(board))
			for r := 0; r < size; r++ {
				for c := 0; c < size; c++ {
					assert.False(t, CheckWinner(board, r, c, drawPattern(r, c)), "size %d at (%d, %d)", size, r, c)
				}
			}
		}
	})
}
