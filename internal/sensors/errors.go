package sensors

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is matched by every OutOfRangeError
var ErrOutOfRange = errors.New("measurement out of range")

// OutOfRangeError is returned when a sensor is asked to store a value
// outside of its valid physical range. The previous reading is kept.
type OutOfRangeError struct {
	Sensor string
	Value  float64
	Min    float64
	Max    float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("sensor %s: value %v is outside of the valid range [%v, %v]", e.Sensor, e.Value, e.Min, e.Max)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
