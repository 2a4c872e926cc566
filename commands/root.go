package commands

import "github.com/spf13/cobra"

var (
	epochs   int
	saveDir  string
	seed     uint64
	mazeFile string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "qmaze",
		Short: "Train an agent to find the exit of a maze with reinforcement learning",
	}
	rootCommand.PersistentFlags().IntVarP(&epochs, "epochs", "e", 0, "Number of training games to play (0 = strategy default)")
	rootCommand.PersistentFlags().StringVarP(&saveDir, "save", "s", "results", "Save result data in the specified folder")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 0, "Random seed (0 = time-based)")
	rootCommand.PersistentFlags().StringVarP(&mazeFile, "maze", "m", "", "Load the maze sketch from a file instead of the built-in maze")
	// adding the subcommands here
	rootCommand.AddCommand(TrainCommand())
	rootCommand.AddCommand(PlayCommand())
	rootCommand.AddCommand(CompareCommand())
	rootCommand.AddCommand(GenerateCommand())
	return rootCommand
}
