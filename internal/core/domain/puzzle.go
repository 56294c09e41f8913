package domain

import (
	"errors"
	"time"
)

const (
	// GridSize is the number of cells on the board.
	GridSize  = 9
	gridWidth = 3

	// NoSelection marks a board with no currently selected cell.
	NoSelection = -1
)

var (
	ErrIndexOutOfRange = errors.New("cell index out of range")
	ErrSessionNotFound = errors.New("game session not found")
)

// initialGrid is the fixed layout every game starts from.
var initialGrid = [GridSize]int{3, 6, 4, 2, 5, 8, 1, 7, 9}

// targetGrid is the winning layout.
var targetGrid = [GridSize]int{1, 2, 3, 4, 5, 6, 7, 8, 9}

// InitialLayout returns a fresh copy of the fixed starting configuration.
func InitialLayout() []int {
	layout := make([]int, GridSize)
	copy(layout, initialGrid[:])
	return layout
}

// Puzzle is the 3x3 sliding-tile state machine. The grid is always a
// permutation of 1-9 addressed by linear index (row = index/3, col = index%3).
type Puzzle struct {
	Grid          [GridSize]int `json:"grid"`
	SelectedIndex int           `json:"selected_index"`
	MoveCount     int           `json:"move_count"`
	Solved        bool          `json:"solved"`
}

// NewPuzzle returns a puzzle in the fixed starting configuration with
// nothing selected.
func NewPuzzle() *Puzzle {
	return &Puzzle{Grid: initialGrid, SelectedIndex: NoSelection}
}

// ClickResult describes the outcome of a single click. Solved is true only
// on the click whose swap completes the grid, so the final move count is
// surfaced exactly once.
type ClickResult struct {
	Swapped   bool
	Solved    bool
	MoveCount int
}

// Click applies the select-or-swap rule to the given cell:
//   - nothing selected: select the cell
//   - same cell clicked again: deselect, no move charged
//   - adjacent cell: swap values, charge one move, clear selection
//   - any other cell: selection jumps there, no swap
//
// Once the puzzle is solved, clicks are no-ops until Reset.
func (p *Puzzle) Click(index int) (ClickResult, error) {
	if index < 0 || index >= GridSize {
		return ClickResult{}, ErrIndexOutOfRange
	}
	if p.Solved {
		return ClickResult{MoveCount: p.MoveCount}, nil
	}

	switch {
	case p.SelectedIndex == NoSelection:
		p.SelectedIndex = index
	case p.SelectedIndex == index:
		p.SelectedIndex = NoSelection
	case adjacent(p.SelectedIndex, index):
		p.Grid[p.SelectedIndex], p.Grid[index] = p.Grid[index], p.Grid[p.SelectedIndex]
		p.SelectedIndex = NoSelection
		p.MoveCount++
		if p.Grid == targetGrid {
			p.Solved = true
		}
		return ClickResult{Swapped: true, Solved: p.Solved, MoveCount: p.MoveCount}, nil
	default:
		p.SelectedIndex = index
	}

	return ClickResult{MoveCount: p.MoveCount}, nil
}

// Reset restores the starting grid, zeroes the move count, and clears the
// selection and solved flag.
func (p *Puzzle) Reset() {
	p.Grid = initialGrid
	p.SelectedIndex = NoSelection
	p.MoveCount = 0
	p.Solved = false
}

// adjacent reports whether two cells are Manhattan neighbours: same row and
// adjacent columns, or same column and adjacent rows. Never diagonal.
func adjacent(a, b int) bool {
	rowDiff := abs(a/gridWidth - b/gridWidth)
	colDiff := abs(a%gridWidth - b%gridWidth)
	return rowDiff+colDiff == 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// GameSession is one ephemeral play session wrapping a puzzle. Sessions are
// never persisted beyond their store TTL.
type GameSession struct {
	ID        string    `json:"id"`
	Puzzle    Puzzle    `json:"puzzle"`
	CreatedAt time.Time `json:"created_at"`
}
