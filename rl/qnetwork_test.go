package rl

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/qmaze/qmaze/maze"
)

func TestQNetworkTrainsEveryEpisode(t *testing.T) {
	game := newTestGame(t, `
		..
		..
	`)
	strategy := NewQNetwork(game, &stubModel{values: []float64{0, 0, 0, 0}})

	report, err := strategy.Train(TrainConfig{
		Epochs:   15,
		Epsilon:  0.3,
		Discount: 0.9,
		Rand:     rand.New(rand.NewSource(2)),
	})
	require.NoError(t, err)
	require.Len(t, report.Epochs, 15, "the online strategy has no early stopping")

	for _, s := range report.Epochs {
		require.NotEqual(t, maze.StatusPlaying.String(), s.Status)
		require.Greater(t, s.Steps, 0)
	}
	require.Equal(t, report.Wins, report.Epochs[len(report.Epochs)-1].Wins)
}
