package maze

// Action is one of the four moves the agent can make.
type Action int

const (
	MoveLeft Action = iota
	MoveRight
	MoveUp
	MoveDown
)

// NumActions is the size of the action space.
const NumActions = 4

var AllActions = []Action{MoveLeft, MoveRight, MoveUp, MoveDown}

func (a Action) String() string {
	switch a {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	}
	return "unknown"
}

// delta returns the column and row offsets of the move.
func (a Action) delta() (dCol, dRow int) {
	switch a {
	case MoveLeft:
		return -1, 0
	case MoveRight:
		return 1, 0
	case MoveUp:
		return 0, -1
	case MoveDown:
		return 0, 1
	}
	return 0, 0
}

// Status of a game.
type Status int

const (
	StatusPlaying Status = iota
	StatusWin
	StatusLose
	// StatusBlocked is reported by play-out loops when the agent has no
	// legal move at all. It counts as a loss.
	StatusBlocked
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWin:
		return "win"
	case StatusLose:
		return "lose"
	case StatusBlocked:
		return "blocked"
	}
	return "unknown"
}

// Terminal reports whether the status ends a game.
func (s Status) Terminal() bool {
	return s != StatusPlaying
}
