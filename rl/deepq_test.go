package rl

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/qmaze/qmaze/maze"
)

func TestDeepQTrainReports(t *testing.T) {
	game := newTestGame(t, `
		..
		..
	`)
	strategy := NewDeepQ(game, &stubModel{values: []float64{0, 0, 0, 0}})

	report, err := strategy.Train(TrainConfig{
		Epochs:     10,
		MaxMemory:  20,
		SampleSize: 4,
		Rand:       rand.New(rand.NewSource(11)),
	})
	require.NoError(t, err)
	require.NotEmpty(t, report.Epochs)
	require.LessOrEqual(t, len(report.Epochs), 10)

	for _, s := range report.Epochs {
		require.Equal(t, 10, s.Epochs)
		require.NotEqual(t, maze.StatusPlaying.String(), s.Status, "every epoch ends in a terminal status")
		require.GreaterOrEqual(t, s.WinRate, 0.0)
		require.LessOrEqual(t, s.WinRate, 1.0)
	}
}

func TestDeepQPlayTerminates(t *testing.T) {
	game := newTestGame(t, `
		..
		..
	`)
	strategy := NewDeepQ(game, &stubModel{values: []float64{0, 0, 0, 1}})

	status, err := strategy.Play(maze.Position{Col: 0, Row: 0})
	require.NoError(t, err)
	// the stub always moves down, from (0, 0) that never reaches the
	// exit before the budget runs out
	require.Contains(t, []maze.Status{maze.StatusWin, maze.StatusLose}, status)

	_, err = strategy.Play(maze.Position{Col: 5, Row: 5})
	require.Error(t, err, "playing from an invalid start cell fails")
}

func TestCompletionCheckFailsOnIsolatedCell(t *testing.T) {
	game := newTestGame(t, `
		.#.
		#.#
		...
	`)
	strategy := NewRandom(game, rand.New(rand.NewSource(5)))
	// the cell at (0, 0) has no legal move at all
	require.False(t, CompletionCheck(strategy, game))
}

func TestCompletionCheckFailsOnLoss(t *testing.T) {
	game := newTestGame(t, `
		....
		....
	`)
	// a strategy that always moves up loses from every start cell
	strategy := NewDeepQ(game, &stubModel{values: []float64{0, 0, 1, 0}})
	require.False(t, CompletionCheck(strategy, game))
}
