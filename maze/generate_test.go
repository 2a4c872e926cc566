package maze

import (
	"testing"

	"golang.org/x/exp/rand"
)

func TestGenerateConnectsAllRooms(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	grid := Generate(4, 5, rng)

	if grid.Rows() != 7 || grid.Cols() != 9 {
		t.Fatalf("got %dx%d grid, want 7x9", grid.Rows(), grid.Cols())
	}

	// all rooms are empty
	for r := 0; r < grid.Rows(); r += 2 {
		for c := 0; c < grid.Cols(); c += 2 {
			if grid.Occupied(Position{Col: c, Row: r}) {
				t.Errorf("room at (%d, %d) is occupied", c, r)
			}
		}
	}

	// every empty cell reaches every other one
	var start Position
	reached := map[Position]bool{start: true}
	queue := []Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, a := range AllActions {
			dCol, dRow := a.delta()
			next := Position{Col: cur.Col + dCol, Row: cur.Row + dRow}
			if grid.Contains(next) && !grid.Occupied(next) && !reached[next] {
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}
	for r := 0; r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			p := Position{Col: c, Row: r}
			if !grid.Occupied(p) && !reached[p] {
				t.Errorf("empty cell %s is unreachable", p)
			}
		}
	}
}
