package rl

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/qmaze/qmaze/maze"
)

// stubModel predicts a fixed action-value vector for every state.
type stubModel struct {
	values []float64
}

var _ Model = &stubModel{}

func (s *stubModel) Predict([]float64) []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

func (s *stubModel) Fit(_, _ *mat.Dense, _ FitConfig) float64 { return 0 }
func (s *stubModel) Evaluate(_, _ *mat.Dense) float64         { return 0 }

func transitionWithID(id float64) Transition {
	return Transition{
		State:     []float64{id, 0},
		Action:    maze.MoveRight,
		Reward:    -0.04,
		NextState: []float64{id, 1},
		Status:    maze.StatusPlaying,
	}
}

func TestRememberEvictsOldest(t *testing.T) {
	model := &stubModel{values: []float64{0, 0, 0, 0}}
	e := NewExperience(model, 3, 0.9, rand.New(rand.NewSource(1)))

	for i := 0; i < 4; i++ {
		e.Remember(transitionWithID(float64(i)))
	}

	require.Equal(t, 3, e.Len())
	for _, tr := range e.memory {
		require.NotEqual(t, 0.0, tr.State[0], "the first transition should have been evicted")
	}
}

func TestSamplesClampedToBufferSize(t *testing.T) {
	model := &stubModel{values: []float64{0, 0, 0, 0}}
	e := NewExperience(model, 10, 0.9, rand.New(rand.NewSource(1)))
	e.Remember(transitionWithID(1))
	e.Remember(transitionWithID(2))

	inputs, targets := e.Samples(50)
	rows, cols := inputs.Dims()
	require.Equal(t, 2, rows)
	require.Equal(t, 2, cols)
	rows, cols = targets.Dims()
	require.Equal(t, 2, rows)
	require.Equal(t, maze.NumActions, cols)
}

func TestSampleTargetsBootstrapped(t *testing.T) {
	model := &stubModel{values: []float64{0.1, 0.2, 0.3, 0.4}}
	e := NewExperience(model, 10, 0.9, rand.New(rand.NewSource(1)))
	e.Remember(Transition{
		State:     []float64{1, 0},
		Action:    maze.MoveDown,
		Reward:    -0.04,
		NextState: []float64{0, 1},
		Status:    maze.StatusPlaying,
	})

	_, targets := e.Samples(1)
	row := mat.Row(nil, 0, targets)
	// untouched actions keep the model's current predictions
	require.InDelta(t, 0.1, row[maze.MoveLeft], 1e-12)
	require.InDelta(t, 0.2, row[maze.MoveRight], 1e-12)
	require.InDelta(t, 0.3, row[maze.MoveUp], 1e-12)
	// the taken action gets reward + discount * max Q(next)
	require.InDelta(t, -0.04+0.9*0.4, row[maze.MoveDown], 1e-12)
}

func TestSampleTargetsTerminalWin(t *testing.T) {
	model := &stubModel{values: []float64{0.1, 0.2, 0.3, 0.4}}
	e := NewExperience(model, 10, 0.9, rand.New(rand.NewSource(1)))
	e.Remember(Transition{
		State:     []float64{1, 0},
		Action:    maze.MoveRight,
		Reward:    1.0,
		NextState: []float64{0, 1},
		Status:    maze.StatusWin,
	})

	_, targets := e.Samples(1)
	row := mat.Row(nil, 0, targets)
	require.InDelta(t, 1.0, row[maze.MoveRight], 1e-12, "a won game's target is the raw reward")
}
