package domain

import "testing"

// solveSwaps is one full sequence of adjacent swaps taking the fixed initial
// layout to the target configuration. The puzzle is solved exactly at the
// final pair.
var solveSwaps = [][2]int{
	{6, 3}, {3, 0},
	{6, 7}, {7, 4}, {4, 1},
	{3, 4}, {4, 5}, {5, 2},
	{5, 4}, {4, 3},
	{7, 4},
	{7, 8}, {8, 5}, {7, 8},
}

func clickPair(t *testing.T, p *Puzzle, a, b int) ClickResult {
	t.Helper()
	if _, err := p.Click(a); err != nil {
		t.Fatalf("click %d: %v", a, err)
	}
	res, err := p.Click(b)
	if err != nil {
		t.Fatalf("click %d: %v", b, err)
	}
	return res
}

func TestPuzzle_InitialState(t *testing.T) {
	p := NewPuzzle()

	want := [GridSize]int{3, 6, 4, 2, 5, 8, 1, 7, 9}
	if p.Grid != want {
		t.Fatalf("unexpected initial grid: %v", p.Grid)
	}
	if p.SelectedIndex != NoSelection || p.MoveCount != 0 || p.Solved {
		t.Fatalf("unexpected initial state: %+v", p)
	}
}

func TestPuzzle_AdjacentPairsSwap(t *testing.T) {
	for i := 0; i < GridSize; i++ {
		for j := 0; j < GridSize; j++ {
			if i == j || !adjacent(i, j) {
				continue
			}

			p := NewPuzzle()
			before := p.Grid
			res := clickPair(t, p, i, j)

			if !res.Swapped {
				t.Fatalf("pair (%d,%d): expected a swap", i, j)
			}
			if p.Grid[i] != before[j] || p.Grid[j] != before[i] {
				t.Fatalf("pair (%d,%d): values not exchanged: %v", i, j, p.Grid)
			}
			if p.MoveCount != 1 {
				t.Fatalf("pair (%d,%d): expected 1 move, got %d", i, j, p.MoveCount)
			}
			if p.SelectedIndex != NoSelection {
				t.Fatalf("pair (%d,%d): selection not cleared", i, j)
			}
		}
	}
}

func TestPuzzle_SameCellDeselects(t *testing.T) {
	p := NewPuzzle()
	before := p.Grid

	res := clickPair(t, p, 4, 4)

	if res.Swapped || p.MoveCount != 0 {
		t.Fatalf("deselect must not charge a move: %+v", res)
	}
	if p.Grid != before {
		t.Fatalf("deselect must not touch the grid: %v", p.Grid)
	}
	if p.SelectedIndex != NoSelection {
		t.Fatalf("expected selection cleared, got %d", p.SelectedIndex)
	}
}

func TestPuzzle_NonAdjacentMovesSelection(t *testing.T) {
	p := NewPuzzle()
	before := p.Grid

	res := clickPair(t, p, 0, 8)

	if res.Swapped || p.MoveCount != 0 {
		t.Fatalf("non-adjacent click must not swap: %+v", res)
	}
	if p.Grid != before {
		t.Fatalf("grid changed: %v", p.Grid)
	}
	if p.SelectedIndex != 8 {
		t.Fatalf("expected selection to move to 8, got %d", p.SelectedIndex)
	}
}

func TestPuzzle_DiagonalIsNotAdjacent(t *testing.T) {
	diagonals := [][2]int{{0, 4}, {4, 0}, {2, 4}, {4, 6}, {4, 8}, {1, 5}}
	for _, d := range diagonals {
		p := NewPuzzle()
		res := clickPair(t, p, d[0], d[1])
		if res.Swapped {
			t.Fatalf("diagonal pair (%d,%d) must not swap", d[0], d[1])
		}
	}
}

func TestPuzzle_SolveSequence(t *testing.T) {
	p := NewPuzzle()

	for n, pair := range solveSwaps {
		res := clickPair(t, p, pair[0], pair[1])
		if !res.Swapped {
			t.Fatalf("swap %d (%d,%d) did not apply", n, pair[0], pair[1])
		}

		last := n == len(solveSwaps)-1
		if res.Solved != last {
			t.Fatalf("swap %d: solved=%v, want %v", n, res.Solved, last)
		}
		if p.Solved != last {
			t.Fatalf("swap %d: puzzle solved flag=%v, want %v", n, p.Solved, last)
		}
	}

	if p.MoveCount != len(solveSwaps) {
		t.Fatalf("expected %d moves, got %d", len(solveSwaps), p.MoveCount)
	}
	if p.Grid != targetGrid {
		t.Fatalf("grid not in target configuration: %v", p.Grid)
	}
}

func TestPuzzle_SolvedIsTerminal(t *testing.T) {
	p := NewPuzzle()
	for _, pair := range solveSwaps {
		clickPair(t, p, pair[0], pair[1])
	}

	moves := p.MoveCount
	grid := p.Grid

	res := clickPair(t, p, 0, 1)
	if res.Swapped || res.Solved {
		t.Fatalf("clicks after solving must be no-ops: %+v", res)
	}
	if p.Grid != grid || p.MoveCount != moves {
		t.Fatalf("solved puzzle mutated: %v moves=%d", p.Grid, p.MoveCount)
	}
}

func TestPuzzle_Reset(t *testing.T) {
	p := NewPuzzle()
	clickPair(t, p, 0, 1)
	if _, err := p.Click(5); err != nil {
		t.Fatalf("click: %v", err)
	}

	p.Reset()

	if p.Grid != initialGrid {
		t.Fatalf("reset must restore the initial grid: %v", p.Grid)
	}
	if p.MoveCount != 0 || p.SelectedIndex != NoSelection || p.Solved {
		t.Fatalf("reset left state behind: %+v", p)
	}
}

func TestPuzzle_ResetAfterSolveAllowsPlay(t *testing.T) {
	p := NewPuzzle()
	for _, pair := range solveSwaps {
		clickPair(t, p, pair[0], pair[1])
	}

	p.Reset()

	res := clickPair(t, p, 0, 1)
	if !res.Swapped || p.MoveCount != 1 {
		t.Fatalf("puzzle not playable after reset: %+v", res)
	}
}

func TestPuzzle_IndexOutOfRange(t *testing.T) {
	p := NewPuzzle()
	for _, idx := range []int{-1, 9, 100} {
		if _, err := p.Click(idx); err != ErrIndexOutOfRange {
			t.Fatalf("index %d: expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
}

func TestInitialLayout_ReturnsCopy(t *testing.T) {
	layout := InitialLayout()
	layout[0] = 99

	if InitialLayout()[0] != 3 {
		t.Fatalf("InitialLayout must return a fresh copy")
	}
}
