package rl

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/qmaze/qmaze/maze"
)

// qValue is one action's reward estimate. Entries that were never updated
// stay unestimated, so a learned negative value is always preferred over an
// untrained zero during greedy selection.
type qValue struct {
	value     float64
	estimated bool
}

// QTable learns action values per observation in a lookup table. Every
// attainable observation gets one entry per action; updates follow the
// Bellman temporal-difference rule. Scales badly with the maze size, since
// every cell of the maze contributes a full-grid observation key.
type QTable struct {
	game  *maze.Maze
	table map[string][]qValue
}

var _ Strategy = &QTable{}

// NewQTable creates a table with an entry for every cell of the maze, all
// actions initially unestimated.
func NewQTable(game *maze.Maze) *QTable {
	table := make(map[string][]qValue)
	grid := game.Grid()
	for c := 0; c < grid.Cols(); c++ {
		for r := 0; r < grid.Rows(); r++ {
			key := stateKey(game.ObserveAt(maze.Position{Col: c, Row: r}))
			table[key] = make([]qValue, maze.NumActions)
		}
	}
	return &QTable{
		game:  game,
		table: table,
	}
}

// stateKey renders an observation vector as an exact-value lookup key.
func stateKey(state []float64) string {
	key := make([]byte, len(state))
	for i, v := range state {
		key[i] = '0' + byte(v)
	}
	return string(key)
}

// Train tunes the table by playing games from random start cells, updating
// the visited entry after every move.
func (q *QTable) Train(config TrainConfig) (*TrainingReport, error) {
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

		state := stateKey(q.game.Observe())
		var status maze.Status
		steps := 0

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
				action = q.greedyAction(state, actions, rng)
			}

			next, reward, moveStatus := q.game.Move(action)
			nextState := stateKey(next)
			status = moveStatus
			steps++

			entry := q.table[state]
			current := entry[action].value
			entry[action] = qValue{
				value:     current + config.LearningRate*(reward+config.Discount*q.maxRaw(nextState)-current),
				estimated: true,
			}

			if status == maze.StatusWin || status == maze.StatusLose {
				if status == maze.StatusWin {
					wins++
				}
				break
			}
			state = nextState
		}

		stats := EpochStats{
			Epoch:   episode,
			Epochs:  config.Epochs,
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

// maxRaw is the highest stored value for a state, unestimated entries
// counting as zero. Used for the bootstrapped update target.
func (q *QTable) maxRaw(state string) float64 {
	entry, ok := q.table[state]
	if !ok {
		return 0
	}
	max := entry[0].value
	for _, v := range entry[1:] {
		if v.value > max {
			max = v.value
		}
	}
	return max
}

// greedyAction picks the estimated entry with the highest value. If no entry
// for the state has been estimated yet, a random legal move is chosen when a
// source is available, the first legal move otherwise.
func (q *QTable) greedyAction(state string, possible []maze.Action, rng *rand.Rand) maze.Action {
	fallback := func() maze.Action {
		if rng != nil {
			return possible[rng.Intn(len(possible))]
		}
		return possible[0]
	}
	entry, ok := q.table[state]
	if !ok {
		return fallback()
	}
	best := -1
	for i, v := range entry {
		if !v.estimated {
			continue
		}
		if best == -1 || v.value > entry[best].value {
			best = i
		}
	}
	if best == -1 {
		return fallback()
	}
	return maze.Action(best)
}

// Estimated reports whether the entry for the given observation and action
// has ever been updated.
func (q *QTable) Estimated(state []float64, action maze.Action) bool {
	entry, ok := q.table[stateKey(state)]
	if !ok {
		return false
	}
	return entry[action].estimated
}

// Play a single game, choosing the move with the highest estimated value.
func (q *QTable) Play(start maze.Position) (maze.Status, error) {
	if err := q.game.Reset(start); err != nil {
		return maze.StatusLose, err
	}

	state := stateKey(q.game.Observe())
	for {
		actions := q.game.PossibleActions()
		if len(actions) == 0 {
			return maze.StatusLose, nil
		}
		action := q.greedyAction(state, actions, nil)
		next, _, status := q.game.Move(action)
		state = stateKey(next)
		if q.game.Displaying() {
			q.game.Draw()
		}
		if status == maze.StatusWin || status == maze.StatusLose {
			return status, nil
		}
	}
}
