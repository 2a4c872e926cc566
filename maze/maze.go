package maze

import (
	"time"

	"golang.org/x/exp/rand"
)

// Rewards and penalties collected while moving through the maze. Every move
// costs a little, returning to a visited cell costs more, bumping into a wall
// costs most, and only reaching the exit pays out.
const (
	rewardExit     = 1.0
	penaltyMove    = -0.04
	penaltyRevisit = -0.25
	penaltyWall    = -0.75
)

// Config for a new maze game.
type Config struct {
	Grid Grid
	// StartCell is where the agent is initially placed. Defaults to the
	// upper left corner.
	StartCell *Position
	// ExitCell is the cell the agent has to reach. Defaults to the
	// bottom-right empty cell.
	ExitCell *Position
	// Renderer draws the maze and the agent's moves. Defaults to a no-op.
	Renderer Renderer
	// Rand is the source used to pick random start cells. Defaults to a
	// time-seeded source.
	Rand *rand.Rand
}

// Maze is a grid with walls. An agent is placed at a start cell and has to
// move through the maze to reach the exit cell. Every move yields a
// reward or penalty which accumulates during the game; the game is lost once
// the total drops below a minimum that scales with the maze size.
type Maze struct {
	grid Grid
	exit Position

	current  Position
	previous Position
	visited  map[Position]struct{}

	totalReward   float64
	minimumReward float64

	display  bool
	renderer Renderer
	rng      *rand.Rand

	empty []Position // empty cells excluding the exit
}

// New creates a maze game and places the agent at the configured start cell.
func New(config *Config) (*Maze, error) {
	grid := config.Grid
	m := &Maze{
		grid:          grid,
		minimumReward: penaltyRevisit * float64(grid.Size()),
		renderer:      config.Renderer,
		rng:           config.Rand,
	}
	if m.renderer == nil {
		m.renderer = NopRenderer{}
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	if config.ExitCell != nil {
		exit := *config.ExitCell
		if !grid.Contains(exit) {
			return nil, &InvalidCellError{Cell: exit, Reason: "exit cell is not inside maze"}
		}
		if grid.Occupied(exit) {
			return nil, &InvalidCellError{Cell: exit, Reason: "exit cell is not free"}
		}
		m.exit = exit
	} else {
		exit, ok := bottomRightEmpty(grid)
		if !ok {
			return nil, &InvalidCellError{Reason: "maze has no empty cell to exit from"}
		}
		m.exit = exit
	}

	// enumerate the empty cells the agent can start from
	for c := 0; c < grid.Cols(); c++ {
		for r := 0; r < grid.Rows(); r++ {
			p := Position{Col: c, Row: r}
			if !grid.Occupied(p) && p != m.exit {
				m.empty = append(m.empty, p)
			}
		}
	}

	start := Position{}
	if config.StartCell != nil {
		start = *config.StartCell
	}
	if err := m.Reset(start); err != nil {
		return nil, err
	}
	return m, nil
}

func bottomRightEmpty(grid Grid) (Position, bool) {
	for r := grid.Rows() - 1; r >= 0; r-- {
		for c := grid.Cols() - 1; c >= 0; c-- {
			p := Position{Col: c, Row: r}
			if !grid.Occupied(p) {
				return p, true
			}
		}
	}
	return Position{}, false
}

// Reset restores the maze to its initial state and places the agent at start.
func (m *Maze) Reset(start Position) error {
	if !m.grid.Contains(start) {
		return &InvalidCellError{Cell: start, Reason: "start cell is not inside maze"}
	}
	if m.grid.Occupied(start) {
		return &InvalidCellError{Cell: start, Reason: "start cell is not free"}
	}
	if start == m.exit {
		return &InvalidCellError{Cell: start, Reason: "start and exit cell cannot be the same"}
	}

	m.previous = start
	m.current = start
	m.totalReward = 0
	m.visited = make(map[Position]struct{})

	if m.display {
		m.renderer.Reset(m.grid, start, m.exit)
	}
	return nil
}

// Move executes an action and returns the new observation, the collected
// reward and the resulting game status.
func (m *Maze) Move(action Action) ([]float64, float64, Status) {
	reward := m.updateState(action)
	m.totalReward += reward
	status := m.Status()
	state := m.Observe()
	return state, reward, status
}

// updateState applies the action and returns the reward it collects. Legal
// moves update the agent position, illegal moves (into a wall or off the
// grid) leave it unchanged.
func (m *Maze) updateState(action Action) float64 {
	possible := m.PossibleActions()

	if len(possible) == 0 {
		// boxed in, force the end of the game
		return m.minimumReward - 1
	}

	if !containsAction(possible, action) {
		return penaltyWall
	}

	col, row := m.current.Col, m.current.Row
	dCol, dRow := action.delta()
	next := Position{Col: col + dCol, Row: row + dRow}

	m.previous = m.current
	m.current = next

	var reward float64
	switch {
	case next == m.exit:
		reward = rewardExit
	case m.wasVisited(next):
		reward = penaltyRevisit
	default:
		reward = penaltyMove
	}
	m.visited[next] = struct{}{}
	return reward
}

func (m *Maze) wasVisited(p Position) bool {
	_, ok := m.visited[p]
	return ok
}

func containsAction(actions []Action, a Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}

// PossibleActions lists the legal moves from the agent's current cell.
func (m *Maze) PossibleActions() []Action {
	return m.PossibleActionsAt(m.current)
}

// PossibleActionsAt lists the legal moves from the given cell, excluding any
// move that would leave the grid or enter a wall.
func (m *Maze) PossibleActionsAt(cell Position) []Action {
	actions := make([]Action, 0, NumActions)
	for _, a := range AllActions {
		dCol, dRow := a.delta()
		next := Position{Col: cell.Col + dCol, Row: cell.Row + dRow}
		if m.grid.Contains(next) && !m.grid.Occupied(next) {
			actions = append(actions, a)
		}
	}
	return actions
}

// Status determines the current game status. The game is won when the agent
// sits on the exit cell and lost when the accumulated penalties exceed the
// minimum reward budget.
func (m *Maze) Status() Status {
	if m.current == m.exit {
		return StatusWin
	}
	if m.totalReward < m.minimumReward {
		return StatusLose
	}
	return StatusPlaying
}

// Observe returns the flattened grid with the agent's current location
// marked.
func (m *Maze) Observe() []float64 {
	return m.ObserveAt(m.current)
}

// ObserveAt returns the observation vector for an agent located at the given
// cell. The result depends only on the grid and the cell.
func (m *Maze) ObserveAt(cell Position) []float64 {
	state := make([]float64, m.grid.Size())
	for i, k := range m.grid.cells {
		state[i] = float64(k)
	}
	state[m.grid.index(cell)] = cellAgent
	return state
}

// Show enables drawing of the maze and all moves.
func (m *Maze) Show() {
	m.display = true
}

// Hide disables drawing.
func (m *Maze) Hide() {
	m.display = false
}

// Displaying reports whether the maze is being drawn.
func (m *Maze) Displaying() bool {
	return m.display
}

// Draw renders the agent's last move.
func (m *Maze) Draw() {
	m.renderer.Draw(m.previous, m.current)
}

// Grid returns the maze layout.
func (m *Maze) Grid() Grid { return m.grid }

// Size is the total cell count of the maze.
func (m *Maze) Size() int { return m.grid.Size() }

// ExitCell returns the cell the agent has to reach.
func (m *Maze) ExitCell() Position { return m.exit }

// CurrentCell returns the agent's location.
func (m *Maze) CurrentCell() Position { return m.current }

// TotalReward returns the reward accumulated since the last reset.
func (m *Maze) TotalReward() float64 { return m.totalReward }

// MinimumReward is the budget below which the game is lost.
func (m *Maze) MinimumReward() float64 { return m.minimumReward }

// EmptyCells returns the empty cells of the maze excluding the exit, the
// cells a game may start from.
func (m *Maze) EmptyCells() []Position {
	cells := make([]Position, len(m.empty))
	copy(cells, m.empty)
	return cells
}

// RandomEmptyCell picks a random start cell.
func (m *Maze) RandomEmptyCell() Position {
	return m.empty[m.rng.Intn(len(m.empty))]
}
