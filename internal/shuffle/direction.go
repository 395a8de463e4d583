package shuffle

import "fmt"

// Direction selects whether a swap sequence is replayed to scramble or to
// restore an image.
type Direction int

const (
	// Forward applies the swaps in generation order and scrambles.
	Forward Direction = iota
	// Backward applies the swaps in reverse order and descrambles.
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}
