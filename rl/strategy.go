package rl

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/qmaze/qmaze/maze"
)

// Model is the action-value function the neural strategies train. It maps an
// observation vector to one value per action.
type Model interface {
	Predict(state []float64) []float64
	// Fit trains the model on a batch of observations (one per row) and
	// target action-value vectors, returning the loss after training.
	Fit(inputs, targets *mat.Dense, config FitConfig) float64
	Evaluate(inputs, targets *mat.Dense) float64
}

// FitConfig controls a single call to Model.Fit.
type FitConfig struct {
	// Epochs is the number of gradient passes over the batch.
	Epochs int
	// BatchSize is the mini batch size within one pass.
	BatchSize int
}

// Strategy is a way of learning to solve a maze. Train tunes the strategy's
// value source by playing games, Play runs a single game from the given
// start cell and returns StatusWin or StatusLose.
type Strategy interface {
	Train(config TrainConfig) (*TrainingReport, error)
	Play(start maze.Position) (maze.Status, error)
}

// TrainConfig bundles the hyperparameters shared by the strategies. Fields
// that a strategy does not use are ignored by it.
type TrainConfig struct {
	// Epochs is the number of training games to play.
	Epochs int
	// Epsilon is the exploration rate (0 = only exploit, 1 = only explore).
	Epsilon float64
	// Discount is the importance of future rewards.
	Discount float64
	// LearningRate is the speed of learning, used by the tabular strategy.
	LearningRate float64
	// MaxMemory is the experience buffer capacity, used by the replay
	// strategy.
	MaxMemory int
	// SampleSize is the batch size drawn from the experience buffer.
	SampleSize int
	// Logger receives progress after every epoch. Defaults to NopLogger.
	Logger TrainLogger
	// Rand drives exploration and start cell selection. Defaults to a
	// time-seeded source.
	Rand *rand.Rand
}

func (c TrainConfig) withDefaults() TrainConfig {
	if c.Epochs == 0 {
		c.Epochs = 500
	}
	if c.Epsilon == 0 {
		c.Epsilon = 0.1
	}
	if c.Discount == 0 {
		c.Discount = 0.9
	}
	if c.LearningRate == 0 {
		c.LearningRate = 0.3
	}
	if c.MaxMemory == 0 {
		c.MaxMemory = 1000
	}
	if c.SampleSize == 0 {
		c.SampleSize = 50
	}
	if c.Logger == nil {
		c.Logger = NopLogger{}
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return c
}

// EpochStats describes one training game.
type EpochStats struct {
	Epoch   int     `json:"epoch"`
	Epochs  int     `json:"epochs"`
	Loss    float64 `json:"loss"`
	Steps   int     `json:"steps"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
	Status  string  `json:"status"`
}

// TrainingReport collects the per-epoch statistics of a training run.
type TrainingReport struct {
	Epochs   []EpochStats
	Wins     int
	Duration time.Duration
}

func (r *TrainingReport) append(s EpochStats) {
	r.Epochs = append(r.Epochs, s)
	if s.Status == maze.StatusWin.String() {
		r.Wins++
	}
}

// FinalWinRate is the rolling win rate at the end of training.
func (r *TrainingReport) FinalWinRate() float64 {
	if len(r.Epochs) == 0 {
		return 0
	}
	return r.Epochs[len(r.Epochs)-1].WinRate
}

// TrainLogger receives progress messages during training. It is purely
// informational, strategies never act on it.
type TrainLogger interface {
	Epoch(EpochStats)
}

// NopLogger discards all progress messages.
type NopLogger struct{}

func (NopLogger) Epoch(EpochStats) {}

// ConsoleLogger prints one progress line per epoch.
type ConsoleLogger struct{}

func (ConsoleLogger) Epoch(s EpochStats) {
	fmt.Printf("epoch: %5d/%5d | loss: %.4f | episodes: %03d | win count: %03d | win rate: %.3f\n",
		s.Epoch, s.Epochs, s.Loss, s.Steps, s.Wins, s.WinRate)
}
