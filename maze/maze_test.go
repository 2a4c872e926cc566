package maze

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func mustParse(t *testing.T, sketch string) Grid {
	t.Helper()
	grid, err := ParseGrid(sketch)
	if err != nil {
		t.Fatalf("parsing grid: %v", err)
	}
	return grid
}

func newTestMaze(t *testing.T, sketch string) *Maze {
	t.Helper()
	m, err := New(&Config{
		Grid: mustParse(t, sketch),
		Rand: rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("creating maze: %v", err)
	}
	return m
}

func TestParseGrid(t *testing.T) {
	grid := mustParse(t, `
		..#
		#..
	`)
	if grid.Rows() != 2 || grid.Cols() != 3 {
		t.Errorf("got %dx%d grid, want 2x3", grid.Rows(), grid.Cols())
	}
	if !grid.Occupied(Position{Col: 2, Row: 0}) {
		t.Errorf("cell (2, 0) should be occupied")
	}
	if grid.Occupied(Position{Col: 1, Row: 1}) {
		t.Errorf("cell (1, 1) should be empty")
	}
	if _, err := ParseGrid("..x"); err == nil {
		t.Errorf("expected an error for an unknown character")
	}
}

func TestResetValidation(t *testing.T) {
	m := newTestMaze(t, `
		..
		..
	`)

	cases := []struct {
		name  string
		start Position
	}{
		{"out of bounds", Position{Col: 5, Row: 0}},
		{"negative", Position{Col: -1, Row: 0}},
		{"equal to exit", Position{Col: 1, Row: 1}},
	}
	for _, c := range cases {
		err := m.Reset(c.start)
		if err == nil {
			t.Errorf("%s: expected an error for start %s", c.name, c.start)
			continue
		}
		var invalid *InvalidCellError
		if !errors.As(err, &invalid) {
			t.Errorf("%s: got %T, want InvalidCellError", c.name, err)
		}
	}

	walled := newTestMaze(t, `
		.#
		..
	`)
	if err := walled.Reset(Position{Col: 1, Row: 0}); err == nil {
		t.Errorf("expected an error for an occupied start cell")
	}

	if err := m.Reset(Position{Col: 0, Row: 1}); err != nil {
		t.Errorf("valid start cell rejected: %v", err)
	}
	if m.Status() != StatusPlaying {
		t.Errorf("got status %s after reset, want playing", m.Status())
	}
}

func TestDefaultExitCell(t *testing.T) {
	m := newTestMaze(t, `
		...
		..#
	`)
	// bottom-right corner is a wall, the exit falls back to the last
	// empty cell in row-major order
	want := Position{Col: 1, Row: 1}
	if m.ExitCell() != want {
		t.Errorf("got exit %s, want %s", m.ExitCell(), want)
	}
}

func TestExplicitExitValidation(t *testing.T) {
	grid := mustParse(t, `
		.#
		..
	`)
	wall := Position{Col: 1, Row: 0}
	if _, err := New(&Config{Grid: grid, ExitCell: &wall}); err == nil {
		t.Errorf("expected an error for an occupied exit cell")
	}
	outside := Position{Col: 7, Row: 7}
	if _, err := New(&Config{Grid: grid, ExitCell: &outside}); err == nil {
		t.Errorf("expected an error for an exit cell outside the maze")
	}
}

func TestPossibleActions(t *testing.T) {
	m := newTestMaze(t, `
		..
		..
	`)

	got := m.PossibleActionsAt(Position{Col: 0, Row: 0})
	want := []Action{MoveRight, MoveDown}
	if len(got) != len(want) {
		t.Fatalf("got actions %v at (0, 0), want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got actions %v at (0, 0), want %v", got, want)
		}
	}

	// walls restrict moves the same way boundaries do
	walled := newTestMaze(t, `
		...
		.#.
		...
	`)
	for _, a := range walled.PossibleActionsAt(Position{Col: 1, Row: 0}) {
		if a == MoveDown {
			t.Errorf("down from (1, 0) leads into a wall")
		}
		if a == MoveUp {
			t.Errorf("up from (1, 0) leads off the grid")
		}
	}
}

func TestMoveRewards(t *testing.T) {
	m := newTestMaze(t, `
		..
		..
	`)
	if err := m.Reset(Position{Col: 0, Row: 0}); err != nil {
		t.Fatalf("reset: %v", err)
	}

	_, reward, status := m.Move(MoveRight)
	if reward != -0.04 || status != StatusPlaying {
		t.Errorf("plain move: got reward %v status %s, want -0.04 playing", reward, status)
	}

	// moving off the grid leaves the position unchanged
	_, reward, _ = m.Move(MoveUp)
	if reward != -0.75 {
		t.Errorf("illegal move: got reward %v, want -0.75", reward)
	}
	if m.CurrentCell() != (Position{Col: 1, Row: 0}) {
		t.Errorf("illegal move changed position to %s", m.CurrentCell())
	}

	// the start cell was never entered by a move, so it does not count
	// as visited yet
	_, reward, _ = m.Move(MoveLeft)
	if reward != -0.04 {
		t.Errorf("move to start cell: got reward %v, want -0.04", reward)
	}

	// (1, 0) was visited before
	_, reward, _ = m.Move(MoveRight)
	if reward != -0.25 {
		t.Errorf("revisit: got reward %v, want -0.25", reward)
	}

	_, reward, status = m.Move(MoveDown)
	if reward != 1.0 || status != StatusWin {
		t.Errorf("reaching the exit: got reward %v status %s, want 1.0 win", reward, status)
	}
}

func TestSpecExampleTwoByTwo(t *testing.T) {
	m := newTestMaze(t, `
		..
		..
	`)
	if err := m.Reset(Position{Col: 0, Row: 0}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if m.ExitCell() != (Position{Col: 1, Row: 1}) {
		t.Fatalf("got exit %s, want (1, 1)", m.ExitCell())
	}
	m.Move(MoveRight)
	_, reward, status := m.Move(MoveDown)
	if reward != 1.0 || status != StatusWin {
		t.Errorf("got reward %v status %s, want 1.0 win", reward, status)
	}
}

func TestLoseOnRewardBudget(t *testing.T) {
	m := newTestMaze(t, `
		..
		..
	`)
	if err := m.Reset(Position{Col: 0, Row: 0}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if m.MinimumReward() != -1.0 {
		t.Fatalf("got minimum reward %v, want -1.0", m.MinimumReward())
	}

	// two wall bumps exceed the budget of a four cell maze
	m.Move(MoveUp)
	_, _, status := m.Move(MoveUp)
	if status != StatusLose {
		t.Errorf("got status %s after exceeding the budget, want lose", status)
	}
}

func TestBlockedCellForcesLoss(t *testing.T) {
	// every empty cell is isolated
	m := newTestMaze(t, `
		.#.
		#.#
		.#.
	`)
	if err := m.Reset(Position{Col: 1, Row: 1}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if actions := m.PossibleActions(); len(actions) != 0 {
		t.Fatalf("got actions %v for a boxed in cell, want none", actions)
	}

	_, reward, status := m.Move(MoveLeft)
	if want := m.MinimumReward() - 1; reward != want {
		t.Errorf("got reward %v, want the terminal penalty %v", reward, want)
	}
	if status != StatusLose {
		t.Errorf("got status %s, want lose", status)
	}
	if m.CurrentCell() != (Position{Col: 1, Row: 1}) {
		t.Errorf("boxed in move changed position to %s", m.CurrentCell())
	}
}

func TestObserve(t *testing.T) {
	m := newTestMaze(t, `
		.#
		..
	`)
	if err := m.Reset(Position{Col: 0, Row: 0}); err != nil {
		t.Fatalf("reset: %v", err)
	}

	state := m.Observe()
	want := []float64{2, 1, 0, 0}
	if len(state) != len(want) {
		t.Fatalf("got observation of length %d, want %d", len(state), len(want))
	}
	for i := range want {
		if math.Abs(state[i]-want[i]) > 0 {
			t.Errorf("observation[%d] = %v, want %v", i, state[i], want[i])
		}
	}

	// observations are pure, a second call returns the same vector and
	// the maze state is untouched
	again := m.Observe()
	for i := range state {
		if state[i] != again[i] {
			t.Errorf("repeated observation differs at %d", i)
		}
	}
	other := m.ObserveAt(Position{Col: 1, Row: 1})
	if other[3] != 2 {
		t.Errorf("ObserveAt did not mark the requested cell")
	}
	if m.CurrentCell() != (Position{Col: 0, Row: 0}) {
		t.Errorf("ObserveAt moved the agent to %s", m.CurrentCell())
	}
}

func TestEmptyCellsExcludeExit(t *testing.T) {
	m := newTestMaze(t, `
		..
		.#
	`)
	for _, c := range m.EmptyCells() {
		if c == m.ExitCell() {
			t.Errorf("empty cells contain the exit %s", c)
		}
		if m.Grid().Occupied(c) {
			t.Errorf("empty cells contain the wall %s", c)
		}
	}
	if len(m.EmptyCells()) != 2 {
		t.Errorf("got %d empty cells, want 2", len(m.EmptyCells()))
	}
}
