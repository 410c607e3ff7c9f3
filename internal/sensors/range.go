package sensors

import (
	"time"

	"github.com/markusressel/turbine2go/internal/ui"
)

// RangeSensor holds the last valid measurement of a quantity T.
// While the sensor is operational its reading is always within its range.
type RangeSensor[T Quantity] struct {
	id          string
	reading     T
	status      Status
	lastUpdate  time.Time
	valueRange  Range[T]
	healthCheck HealthCheck
	clock       func() time.Time

	// set when a measurement was rejected and no valid one has been accepted since
	rejected bool
}

type Option[T Quantity] func(sensor *RangeSensor[T])

// WithHealthCheck replaces the default health check policy
func WithHealthCheck[T Quantity](healthCheck HealthCheck) Option[T] {
	return func(sensor *RangeSensor[T]) {
		sensor.healthCheck = healthCheck
	}
}

// WithClock replaces the time source used for the last update timestamp
func WithClock[T Quantity](clock func() time.Time) Option[T] {
	return func(sensor *RangeSensor[T]) {
		sensor.clock = clock
	}
}

// NewRangeSensor creates an operational sensor holding the given initial reading
func NewRangeSensor[T Quantity](id string, valueRange Range[T], initial T, options ...Option[T]) *RangeSensor[T] {
	sensor := &RangeSensor[T]{
		id:          id,
		reading:     initial,
		status:      StatusOperational,
		valueRange:  valueRange,
		healthCheck: AlwaysOperational,
		clock:       time.Now,
	}
	for _, option := range options {
		option(sensor)
	}
	sensor.lastUpdate = sensor.clock()
	return sensor
}

func (s *RangeSensor[T]) GetId() string {
	return s.id
}

func (s *RangeSensor[T]) GetValue() float64 {
	return float64(s.reading)
}

// Reading returns the last accepted measurement
func (s *RangeSensor[T]) Reading() T {
	return s.reading
}

func (s *RangeSensor[T]) GetStatus() Status {
	return s.status
}

func (s *RangeSensor[T]) GetLastUpdateTime() time.Time {
	return s.lastUpdate
}

func (s *RangeSensor[T]) GetRange() Range[T] {
	return s.valueRange
}

// Measure stores the given value if it is within the valid range.
// Otherwise the previous reading is kept, the sensor becomes faulted
// and an *OutOfRangeError is returned.
func (s *RangeSensor[T]) Measure(value T) error {
	if !s.valueRange.Contains(value) {
		s.rejected = true
		s.status = StatusFaulted
		ui.Warning("Sensor %s rejected out of range value %v", s.id, float64(value))
		return &OutOfRangeError{
			Sensor: s.id,
			Value:  float64(value),
			Min:    float64(s.valueRange.Min),
			Max:    float64(s.valueRange.Max),
		}
	}

	s.reading = value
	s.lastUpdate = s.clock()
	s.rejected = false
	return nil
}

func (s *RangeSensor[T]) CheckHealth() Status {
	if s.rejected {
		s.status = StatusFaulted
	} else {
		s.status = s.healthCheck.Check(s)
	}
	return s.status
}

func (s *RangeSensor[T]) IsValid() bool {
	return s.valueRange.Contains(s.reading)
}
