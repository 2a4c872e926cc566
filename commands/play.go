package commands

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/qmaze/qmaze/maze"
	"github.com/qmaze/qmaze/nn"
	"github.com/qmaze/qmaze/rl"
	"github.com/qmaze/qmaze/util"
)

func Play(strategyName, modelName string, start maze.Position, image string) error {
	rng := newRand()
	renderer := maze.NewPlotRenderer()
	game, err := newGame(renderer, rng)
	if err != nil {
		return err
	}
	game.Show()

	var strategy rl.Strategy
	if strategyName == "random" {
		strategy = rl.NewRandom(game, rng)
	} else {
		model, err := nn.Load(path.Join(saveDir, modelName))
		if err != nil {
			return err
		}
		strategy, err = buildStrategy(strategyName, game, model, rng)
		if err != nil {
			return err
		}
	}

	status, err := strategy.Play(start)
	if err != nil {
		return err
	}
	fmt.Printf("played from %s: %s | total reward: %.2f\n", start, status, game.TotalReward())

	imagePath := path.Join(saveDir, image)
	if err := util.EnsureDir(imagePath); err != nil {
		return err
	}
	return renderer.Save(imagePath)
}

func PlayCommand() *cobra.Command {
	var strategyName string
	var modelName string
	var col int
	var row int
	var image string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game with a trained model and render it to an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Play(strategyName, modelName, maze.Position{Col: col, Row: row}, image)
		},
	}
	cmd.PersistentFlags().StringVar(&strategyName, "strategy", "deepq", "Strategy to play with (deepq, qnetwork or random)")
	cmd.PersistentFlags().StringVar(&modelName, "model", "model", "Name of the saved model artifacts")
	cmd.PersistentFlags().IntVar(&col, "col", 0, "Start cell column")
	cmd.PersistentFlags().IntVar(&row, "row", 0, "Start cell row")
	cmd.PersistentFlags().StringVar(&image, "image", "game.png", "File name of the rendered game")
	return cmd
}
