package commands

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/rand"

	"github.com/qmaze/qmaze/maze"
	"github.com/qmaze/qmaze/nn"
	"github.com/qmaze/qmaze/rl"
)

// defaultSketch is the built-in maze used when no maze file is given. Every
// empty cell has a path to the exit in the bottom-right corner.
const defaultSketch = `
........
##.#..#.
...#.#..
.##...#.
..#.#...
#.#.##.#
........
.####...
`

func newRand() *rand.Rand {
	s := seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(s))
}

func loadGrid() (maze.Grid, error) {
	if mazeFile == "" {
		return maze.ParseGrid(defaultSketch)
	}
	bs, err := os.ReadFile(mazeFile)
	if err != nil {
		return maze.Grid{}, err
	}
	return maze.ParseGrid(string(bs))
}

func newGame(renderer maze.Renderer, rng *rand.Rand) (*maze.Maze, error) {
	grid, err := loadGrid()
	if err != nil {
		return nil, err
	}
	return maze.New(&maze.Config{
		Grid:     grid,
		Renderer: renderer,
		Rand:     rng,
	})
}

// newModel creates a Q-network shaped after the maze: two hidden layers as
// wide as the cell count and one output per action.
func newModel(game *maze.Maze, rng *rand.Rand) *nn.Network {
	return nn.New(&nn.Config{
		Inputs:  game.Size(),
		Hidden:  []int{game.Size(), game.Size()},
		Outputs: maze.NumActions,
		Rand:    rng,
	})
}

func buildStrategy(name string, game *maze.Maze, model rl.Model, rng *rand.Rand) (rl.Strategy, error) {
	switch name {
	case "deepq":
		return rl.NewDeepQ(game, model), nil
	case "qnetwork":
		return rl.NewQNetwork(game, model), nil
	case "qtable":
		return rl.NewQTable(game), nil
	case "random":
		return rl.NewRandom(game, rng), nil
	}
	return nil, fmt.Errorf("unknown strategy %q (want deepq, qnetwork, qtable or random)", name)
}
