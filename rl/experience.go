package rl

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/qmaze/qmaze/maze"
)

// Transition is one remembered step of a game.
type Transition struct {
	State     []float64
	Action    maze.Action
	Reward    float64
	NextState []float64
	Status    maze.Status
}

// Experience is a bounded buffer of transitions. When full, the oldest
// transition is evicted first.
type Experience struct {
	model    Model
	discount float64
	capacity int
	memory   []Transition
	rng      *rand.Rand
}

func NewExperience(model Model, capacity int, discount float64, rng *rand.Rand) *Experience {
	return &Experience{
		model:    model,
		discount: discount,
		capacity: capacity,
		memory:   make([]Transition, 0, capacity),
		rng:      rng,
	}
}

// Remember appends a transition, evicting the oldest one if the buffer is at
// capacity.
func (e *Experience) Remember(t Transition) {
	e.memory = append(e.memory, t)
	if len(e.memory) > e.capacity {
		e.memory = e.memory[1:]
	}
}

func (e *Experience) Len() int {
	return len(e.memory)
}

// Samples draws up to sampleSize transitions without replacement and builds
// a training batch from them. The target for a transition is the model's
// current prediction for its state, with the taken action's value replaced
// by the one-step bootstrapped Bellman estimate: the raw reward if the game
// was won, reward + discount * max Q(next state) otherwise.
func (e *Experience) Samples(sampleSize int) (inputs, targets *mat.Dense) {
	n := sampleSize
	if n > len(e.memory) {
		n = len(e.memory)
	}
	stateSize := len(e.memory[0].State)

	inputs = mat.NewDense(n, stateSize, nil)
	targets = mat.NewDense(n, maze.NumActions, nil)

	idxs := make([]int, n)
	sampleuv.WithoutReplacement(idxs, len(e.memory), e.rng)

	for i, j := range idxs {
		t := e.memory[j]
		inputs.SetRow(i, t.State)

		target := e.model.Predict(t.State)
		if t.Status == maze.StatusWin {
			target[t.Action] = t.Reward
		} else {
			target[t.Action] = t.Reward + e.discount*floats.Max(e.model.Predict(t.NextState))
		}
		targets.SetRow(i, target)
	}
	return inputs, targets
}
