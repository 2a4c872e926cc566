package maze

import "fmt"

// InvalidCellError reports a start or exit cell that cannot be used.
type InvalidCellError struct {
	Cell   Position
	Reason string
}

func (e *InvalidCellError) Error() string {
	return fmt.Sprintf("invalid cell %s: %s", e.Cell, e.Reason)
}
