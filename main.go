package main

import (
	"fmt"

	"github.com/qmaze/qmaze/commands"
)

// main entry point to training, playing and comparing maze strategies
func main() {
	rootCommand := commands.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}
