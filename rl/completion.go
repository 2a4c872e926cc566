package rl

import "github.com/qmaze/qmaze/maze"

// CompletionCheck plays one game from every empty cell of the maze and
// reports whether the strategy won all of them. A cell with no legal move at
// all fails the check immediately.
func CompletionCheck(s Strategy, game *maze.Maze) bool {
	for _, cell := range game.EmptyCells() {
		if len(game.PossibleActionsAt(cell)) == 0 {
			return false
		}
		status, err := s.Play(cell)
		if err != nil || status != maze.StatusWin {
			return false
		}
	}
	return true
}
