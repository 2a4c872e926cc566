package rl_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/qmaze/qmaze/maze"
	"github.com/qmaze/qmaze/nn"
	"github.com/qmaze/qmaze/rl"
)

// All strategies share the same contract: they train against the maze and
// play single games from a given start cell. The conformance suite runs each
// of them end to end on a tiny maze with a real network.
func TestStrategyConformance(t *testing.T) {
	sketch := `
		..
		..
	`

	newGame := func(t *testing.T) *maze.Maze {
		grid, err := maze.ParseGrid(sketch)
		require.NoError(t, err)
		game, err := maze.New(&maze.Config{
			Grid: grid,
			Rand: rand.New(rand.NewSource(21)),
		})
		require.NoError(t, err)
		return game
	}
	newModel := func(game *maze.Maze) *nn.Network {
		return nn.New(&nn.Config{
			Inputs:  game.Size(),
			Hidden:  []int{game.Size(), game.Size()},
			Outputs: maze.NumActions,
			Rand:    rand.New(rand.NewSource(21)),
		})
	}

	strategies := map[string]func(game *maze.Maze) rl.Strategy{
		"deepq": func(game *maze.Maze) rl.Strategy {
			return rl.NewDeepQ(game, newModel(game))
		},
		"qnetwork": func(game *maze.Maze) rl.Strategy {
			return rl.NewQNetwork(game, newModel(game))
		},
		"qtable": func(game *maze.Maze) rl.Strategy {
			return rl.NewQTable(game)
		},
	}

	for name, build := range strategies {
		t.Run(name, func(t *testing.T) {
			game := newGame(t)
			strategy := build(game)

			report, err := strategy.Train(rl.TrainConfig{
				Epochs:     8,
				MaxMemory:  50,
				SampleSize: 8,
				Rand:       rand.New(rand.NewSource(13)),
			})
			require.NoError(t, err)
			require.NotEmpty(t, report.Epochs)

			status, err := strategy.Play(maze.Position{Col: 0, Row: 0})
			require.NoError(t, err)
			require.Contains(t, []maze.Status{maze.StatusWin, maze.StatusLose}, status)

			_, err = strategy.Play(game.ExitCell())
			require.Error(t, err, "starting on the exit cell is invalid")
		})
	}
}
