package commands

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/qmaze/qmaze/rl"
	"github.com/qmaze/qmaze/util"
)

func Train(strategyName, modelName string, trainConfig rl.TrainConfig) error {
	rng := newRand()
	game, err := newGame(nil, rng)
	if err != nil {
		return err
	}

	model := newModel(game, rng)
	strategy, err := buildStrategy(strategyName, game, model, rng)
	if err != nil {
		return err
	}

	trainConfig.Epochs = epochs
	trainConfig.Logger = rl.ConsoleLogger{}
	trainConfig.Rand = rng

	report, err := strategy.Train(trainConfig)
	if err != nil {
		return err
	}
	fmt.Printf("trained %s for %d epochs in %s | wins: %d | final win rate: %.3f\n",
		strategyName, len(report.Epochs), report.Duration, report.Wins, report.FinalWinRate())

	if err := recordReport(strategyName, report); err != nil {
		return err
	}

	// the tabular strategy has no model artifact to keep
	if strategyName == "deepq" || strategyName == "qnetwork" {
		return model.Save(path.Join(saveDir, modelName))
	}
	return nil
}

func recordReport(name string, report *rl.TrainingReport) error {
	reportFile := path.Join(saveDir, "reports", name+".jsonl")
	for _, s := range report.Epochs {
		bs, err := json.Marshal(s)
		if err != nil {
			return err
		}
		if err := util.AppendToFile(reportFile, string(bs)); err != nil {
			return err
		}
	}
	return nil
}

func TrainCommand() *cobra.Command {
	var strategyName string
	var modelName string
	var epsilon float64
	var discount float64
	var learningRate float64
	var maxMemory int
	var sampleSize int

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a strategy on the maze and record its progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Train(strategyName, modelName, rl.TrainConfig{
				Epsilon:      epsilon,
				Discount:     discount,
				LearningRate: learningRate,
				MaxMemory:    maxMemory,
				SampleSize:   sampleSize,
			})
		},
	}
	cmd.PersistentFlags().StringVar(&strategyName, "strategy", "deepq", "Strategy to train (deepq, qnetwork or qtable)")
	cmd.PersistentFlags().StringVar(&modelName, "model", "model", "Name of the saved model artifacts")
	cmd.PersistentFlags().Float64Var(&epsilon, "epsilon", 0.1, "Exploration rate")
	cmd.PersistentFlags().Float64Var(&discount, "discount", 0.9, "Importance of future rewards")
	cmd.PersistentFlags().Float64Var(&learningRate, "lr", 0.3, "Learning rate of the tabular strategy")
	cmd.PersistentFlags().IntVar(&maxMemory, "max-memory", 1000, "Experience buffer capacity")
	cmd.PersistentFlags().IntVar(&sampleSize, "sample-size", 50, "Replay batch size")
	return cmd
}
