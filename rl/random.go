package rl

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/qmaze/qmaze/maze"
)

// Random plays games by choosing uniformly among the legal moves. It learns
// nothing and serves as a baseline.
type Random struct {
	game *maze.Maze
	rng  *rand.Rand
}

var _ Strategy = &Random{}

func NewRandom(game *maze.Maze, rng *rand.Rand) *Random {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &Random{
		game: game,
		rng:  rng,
	}
}

// Train is a no-op, random play has nothing to learn.
func (r *Random) Train(config TrainConfig) (*TrainingReport, error) {
	return &TrainingReport{}, nil
}

// Play a single game with random moves.
func (r *Random) Play(start maze.Position) (maze.Status, error) {
	if err := r.game.Reset(start); err != nil {
		return maze.StatusLose, err
	}

	for {
		actions := r.game.PossibleActions()
		if len(actions) == 0 {
			return maze.StatusLose, nil
		}
		action := actions[r.rng.Intn(len(actions))]
		_, _, status := r.game.Move(action)
		if r.game.Displaying() {
			r.game.Draw()
		}
		if status == maze.StatusWin || status == maze.StatusLose {
			return status, nil
		}
	}
}
