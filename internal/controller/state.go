package controller

import "fmt"

// State is the operational state of a SpeedController
type State int

const (
	StateOperational State = iota
	StateFaulted
)

func (s State) String() string {
	switch s {
	case StateOperational:
		return "Operational"
	case StateFaulted:
		return "Faulted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
