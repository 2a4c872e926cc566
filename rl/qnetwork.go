package rl

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/qmaze/qmaze/maze"
)

// QNetwork learns a neural action-value function online: after every move
// the model is fitted on that single transition's bootstrapped target.
// Exploration and discount stay fixed for the whole run.
type QNetwork struct {
	game  *maze.Maze
	model Model
}

var _ Strategy = &QNetwork{}

func NewQNetwork(game *maze.Maze, model Model) *QNetwork {
	return &QNetwork{
		game:  game,
		model: model,
	}
}

// Train tunes the network by playing games from random start cells, updating
// the model after every single move.
func (q *QNetwork) Train(config TrainConfig) (*TrainingReport, error) {
	config = config.withDefaults()
	rng := config.Rand

	report := &TrainingReport{}
	wins := 0
	begin := time.Now()

	for episode := 1; episode <= config.Epochs; episode++ {
		start := q.game.RandomEmptyCell()
		if err := q.game.Reset(start); err != nil {
			return nil, err
		}

		state := q.game.Observe()
		var status maze.Status
		steps := 0
		loss := 0.0

		for {
			actions := q.game.PossibleActions()
			if len(actions) == 0 {
				status = maze.StatusBlocked
				break
			}

			var action maze.Action
			if rng.Float64() < config.Epsilon {
				action = actions[rng.Intn(len(actions))]
			} else {
				action = maze.Action(floats.MaxIdx(q.model.Predict(state)))
			}

			next, reward, moveStatus := q.game.Move(action)
			status = moveStatus
			steps++

			// one-step bootstrapped target, no discounting needed when a
			// terminal state was reached
			target := reward
			if !status.Terminal() {
				target = reward + config.Discount*floats.Max(q.model.Predict(next))
			}
			targetVector := q.model.Predict(state)
			targetVector[action] = target

			inputs := mat.NewDense(1, len(state), nil)
			inputs.SetRow(0, state)
			targets := mat.NewDense(1, maze.NumActions, nil)
			targets.SetRow(0, targetVector)
			loss = q.model.Fit(inputs, targets, FitConfig{Epochs: 1, BatchSize: 1})

			if status == maze.StatusWin || status == maze.StatusLose {
				if status == maze.StatusWin {
					wins++
				}
				break
			}
			state = next
		}

		stats := EpochStats{
			Epoch:   episode,
			Epochs:  config.Epochs,
			Loss:    loss,
			Steps:   steps,
			Wins:    wins,
			WinRate: float64(wins) / float64(episode),
			Status:  status.String(),
		}
		report.append(stats)
		config.Logger.Epoch(stats)
	}

	report.Duration = time.Since(begin)
	return report, nil
}

// Play a single game, choosing the move with the highest predicted value.
func (q *QNetwork) Play(start maze.Position) (maze.Status, error) {
	if err := q.game.Reset(start); err != nil {
		return maze.StatusLose, err
	}

	state := q.game.Observe()
	for {
		action := maze.Action(floats.MaxIdx(q.model.Predict(state)))
		var status maze.Status
		state, _, status = q.game.Move(action)
		if q.game.Displaying() {
			q.game.Draw()
		}
		if status == maze.StatusWin || status == maze.StatusLose {
			return status, nil
		}
	}
}
