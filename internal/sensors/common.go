package sensors

import (
	"fmt"
	"time"
)

// Status is the health state of a single sensor
type Status int

const (
	StatusOperational Status = iota
	StatusFaulted
)

func (s Status) String() string {
	switch s {
	case StatusOperational:
		return "Operational"
	case StatusFaulted:
		return "Faulted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Quantity is the physical domain a sensor measures in
type Quantity interface {
	~float64
}

// Range is an inclusive range of physically valid values
type Range[T Quantity] struct {
	Min T
	Max T
}

// Contains reports whether min <= value <= max
func (r Range[T]) Contains(value T) bool {
	return r.Min <= value && value <= r.Max
}

func (r Range[T]) String() string {
	return fmt.Sprintf("[%v, %v]", float64(r.Min), float64(r.Max))
}

// Sensor is the quantity independent view on a range validated sensor
type Sensor interface {
	GetId() string

	// GetValue returns the last accepted reading of this sensor
	GetValue() float64
	GetStatus() Status
	GetLastUpdateTime() time.Time

	// CheckHealth recomputes and returns the status of this sensor
	CheckHealth() Status

	// IsValid reports whether the current reading is within the valid range
	IsValid() bool
}
