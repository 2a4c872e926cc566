package rl

import (
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/qmaze/qmaze/maze"
)

// DeepQ learns a neural action-value function from replayed experience. Each
// step of a training game is remembered and the model is fitted on a fresh
// sample from the buffer, so earlier games keep contributing to the updates.
type DeepQ struct {
	game  *maze.Maze
	model Model
}

var _ Strategy = &DeepQ{}

func NewDeepQ(game *maze.Maze, model Model) *DeepQ {
	return &DeepQ{
		game:  game,
		model: model,
	}
}

// Train plays training games from random start cells until the model wins
// from every start cell or the epoch budget runs out. Exploration is
// epsilon-greedy; once the rolling win rate passes 0.9 the exploration rate
// is lowered to favour exploitation.
func (d *DeepQ) Train(config TrainConfig) (*TrainingReport, error) {
	config = config.withDefaults()
	epsilon := config.Epsilon
	rng := config.Rand

	experience := NewExperience(d.model, config.MaxMemory, config.Discount, rng)
	report := &TrainingReport{}

	winHistory := make([]int, 0)
	historySize := d.game.Size() / 2
	winRate := 0.0
	begin := time.Now()

	for epoch := 1; epoch <= config.Epochs; epoch++ {
		start := d.game.RandomEmptyCell()
		if err := d.game.Reset(start); err != nil {
			return nil, err
		}

		state := d.game.Observe()
		var status maze.Status
		steps := 0
		loss := 0.0

		for {
			actions := d.game.PossibleActions()
			if len(actions) == 0 {
				status = maze.StatusBlocked
				winHistory = append(winHistory, 0)
				break
			}

			previous := state
			var action maze.Action
			if rng.Float64() < epsilon {
				action = actions[rng.Intn(len(actions))]
			} else {
				action = maze.Action(floats.MaxIdx(d.model.Predict(previous)))
			}

			var reward float64
			state, reward, status = d.game.Move(action)

			if status == maze.StatusWin || status == maze.StatusLose {
				if status == maze.StatusWin {
					winHistory = append(winHistory, 1)
				} else {
					winHistory = append(winHistory, 0)
				}
				break
			}

			experience.Remember(Transition{
				State:     previous,
				Action:    action,
				Reward:    reward,
				NextState: state,
				Status:    status,
			})
			steps++

			inputs, targets := experience.Samples(config.SampleSize)
			d.model.Fit(inputs, targets, FitConfig{Epochs: 8, BatchSize: 16})
			loss = d.model.Evaluate(inputs, targets)
		}

		if len(winHistory) > historySize {
			winRate = winSum(winHistory[len(winHistory)-historySize:]) / float64(historySize)
			if winRate > 0.9 {
				epsilon = 0.05
			}
		}

		stats := EpochStats{
			Epoch:   epoch,
			Epochs:  config.Epochs,
			Loss:    loss,
			Steps:   steps,
			Wins:    winSumInt(winHistory),
			WinRate: winRate,
			Status:  status.String(),
		}
		report.append(stats)
		config.Logger.Epoch(stats)

		// stop early once every start cell is a guaranteed win
		if winRate == 1 && CompletionCheck(d, d.game) {
			break
		}
	}

	report.Duration = time.Since(begin)
	return report, nil
}

// Play a single game, choosing the move with the highest predicted value.
func (d *DeepQ) Play(start maze.Position) (maze.Status, error) {
	if err := d.game.Reset(start); err != nil {
		return maze.StatusLose, err
	}

	state := d.game.Observe()
	for {
		action := maze.Action(floats.MaxIdx(d.model.Predict(state)))
		var status maze.Status
		state, _, status = d.game.Move(action)
		if d.game.Displaying() {
			d.game.Draw()
		}
		if status == maze.StatusWin || status == maze.StatusLose {
			return status, nil
		}
	}
}

func winSum(history []int) float64 {
	sum := 0.0
	for _, w := range history {
		sum += float64(w)
	}
	return sum
}

func winSumInt(history []int) int {
	sum := 0
	for _, w := range history {
		sum += w
	}
	return sum
}
