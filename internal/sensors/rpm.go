package sensors

// Rpm is a rotational speed in revolutions per minute
type Rpm float64

type RpmSensor struct {
	*RangeSensor[Rpm]
}

func NewRpmSensor(id string, valueRange Range[Rpm], options ...Option[Rpm]) *RpmSensor {
	return &RpmSensor{
		RangeSensor: NewRangeSensor[Rpm](id, valueRange, valueRange.Min, options...),
	}
}

func (s *RpmSensor) MeasureRpm(value Rpm) error {
	return s.Measure(value)
}
