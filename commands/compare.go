package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qmaze/qmaze/rl"
)

// Compare trains every learning strategy on the same maze and plots their
// win rate and loss curves side by side.
func Compare(trainConfig rl.TrainConfig) error {
	names := []string{"qtable", "qnetwork", "deepq"}
	reports := make([]*rl.TrainingReport, len(names))

	for i, name := range names {
		rng := newRand()
		game, err := newGame(nil, rng)
		if err != nil {
			return err
		}
		strategy, err := buildStrategy(name, game, newModel(game, rng), rng)
		if err != nil {
			return err
		}

		config := trainConfig
		config.Epochs = epochs
		config.Rand = rng

		fmt.Printf("training %s\n", name)
		report, err := strategy.Train(config)
		if err != nil {
			return err
		}
		reports[i] = report

		solved := rl.CompletionCheck(strategy, game)
		fmt.Printf("%-10s | epochs: %5d | wins: %5d | final win rate: %.3f | wins from every cell: %t\n",
			name, len(report.Epochs), report.Wins, report.FinalWinRate(), solved)

		if err := recordReport(name, report); err != nil {
			return err
		}
	}

	if err := rl.PlotWinRates(saveDir, names, reports); err != nil {
		return err
	}
	return rl.PlotLosses(saveDir, names, reports)
}

func CompareCommand() *cobra.Command {
	var epsilon float64
	var discount float64
	var learningRate float64

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Train all strategies on the same maze and compare them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Compare(rl.TrainConfig{
				Epsilon:      epsilon,
				Discount:     discount,
				LearningRate: learningRate,
			})
		},
	}
	cmd.PersistentFlags().Float64Var(&epsilon, "epsilon", 0.1, "Exploration rate")
	cmd.PersistentFlags().Float64Var(&discount, "discount", 0.9, "Importance of future rewards")
	cmd.PersistentFlags().Float64Var(&learningRate, "lr", 0.3, "Learning rate of the tabular strategy")
	return cmd
}
