package sensors

// ValvePosition is the opening of a valve as a fraction, 0 is closed and 1 is fully open
type ValvePosition float64

// Percent returns the position for display, in the range [0, 100]
func (p ValvePosition) Percent() float64 {
	return float64(p) * 100
}

type ValvePositionSensor struct {
	*RangeSensor[ValvePosition]
}

func NewValvePositionSensor(id string, valueRange Range[ValvePosition], initial ValvePosition, options ...Option[ValvePosition]) *ValvePositionSensor {
	return &ValvePositionSensor{
		RangeSensor: NewRangeSensor[ValvePosition](id, valueRange, initial, options...),
	}
}

func (s *ValvePositionSensor) MeasureValvePosition(value ValvePosition) error {
	return s.Measure(value)
}
