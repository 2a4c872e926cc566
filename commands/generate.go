package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qmaze/qmaze/maze"
	"github.com/qmaze/qmaze/util"
)

func Generate(rows, cols int, out string) error {
	grid := maze.Generate(rows, cols, newRand())
	if out == "" {
		fmt.Print(grid.Sketch())
		return nil
	}
	return util.WriteToFile(out, grid.Sketch())
}

func GenerateCommand() *cobra.Command {
	var rows int
	var cols int
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Carve a random maze and print or save its sketch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Generate(rows, cols, out)
		},
	}
	cmd.PersistentFlags().IntVar(&rows, "rows", 4, "Number of rooms per column")
	cmd.PersistentFlags().IntVar(&cols, "cols", 4, "Number of rooms per row")
	cmd.PersistentFlags().StringVarP(&out, "out", "o", "", "Write the sketch to a file instead of stdout")
	return cmd
}
