package maze

// Random maze generation using loop-erased random walks (Wilson's
// algorithm). Rooms live on a rows x cols lattice; the generated grid is
// (2*rows-1) x (2*cols-1) with wall cells between rooms that get carved
// open as the walks are committed. Every room is reachable from every other
// room in the result.

import (
	"golang.org/x/exp/rand"
)

type room struct {
	Col int
	Row int
}

// Generate carves a random maze with the given number of rooms per side.
func Generate(rows, cols int, rng *rand.Rand) Grid {
	gridRows := 2*rows - 1
	gridCols := 2*cols - 1
	cells := make([][]Kind, gridRows)
	for r := range cells {
		cells[r] = make([]Kind, gridCols)
		for c := range cells[r] {
			cells[r][c] = CellOccupied
		}
	}

	open := func(r room) {
		cells[2*r.Row][2*r.Col] = CellEmpty
	}
	openBetween := func(a, b room) {
		cells[a.Row+b.Row][a.Col+b.Col] = CellEmpty
	}

	inMaze := make(map[room]bool)
	first := room{Col: rng.Intn(cols), Row: rng.Intn(rows)}
	inMaze[first] = true
	open(first)

	unvisited := make([]room, 0, rows*cols-1)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			candidate := room{Col: c, Row: r}
			if candidate != first {
				unvisited = append(unvisited, candidate)
			}
		}
	}
	rng.Shuffle(len(unvisited), func(i, j int) {
		unvisited[i], unvisited[j] = unvisited[j], unvisited[i]
	})

	for _, start := range unvisited {
		if inMaze[start] {
			continue
		}

		// random walk until the maze is hit, keeping only the latest
		// exit direction per room, which erases any loops
		next := make(map[room]room)
		cur := start
		for !inMaze[cur] {
			n := neighborRooms(cur, rows, cols)
			step := n[rng.Intn(len(n))]
			next[cur] = step
			cur = step
		}

		// commit the walk
		cur = start
		for !inMaze[cur] {
			step := next[cur]
			inMaze[cur] = true
			open(cur)
			openBetween(cur, step)
			cur = step
		}
	}

	grid, err := NewGrid(cells)
	if err != nil {
		// rows and cols are positive, the grid is always well formed
		panic(err)
	}
	return grid
}

func neighborRooms(r room, rows, cols int) []room {
	neighbors := make([]room, 0, 4)
	if r.Col > 0 {
		neighbors = append(neighbors, room{Col: r.Col - 1, Row: r.Row})
	}
	if r.Col < cols-1 {
		neighbors = append(neighbors, room{Col: r.Col + 1, Row: r.Row})
	}
	if r.Row > 0 {
		neighbors = append(neighbors, room{Col: r.Col, Row: r.Row - 1})
	}
	if r.Row < rows-1 {
		neighbors = append(neighbors, room{Col: r.Col, Row: r.Row + 1})
	}
	return neighbors
}
