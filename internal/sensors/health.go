package sensors

// HealthCheck decides whether a sensor is currently healthy.
// Implementations must not modify the sensor.
type HealthCheck interface {
	Check(sensor Sensor) Status
}

// HealthCheckFunc adapts a plain function to the HealthCheck interface
type HealthCheckFunc func(sensor Sensor) Status

func (f HealthCheckFunc) Check(sensor Sensor) Status {
	return f(sensor)
}

// AlwaysOperational reports every sensor as healthy.
// There is no real fault model for simulated sensors.
var AlwaysOperational HealthCheck = HealthCheckFunc(func(Sensor) Status {
	return StatusOperational
})

// ValidReading reports a sensor as faulted when its reading left the valid range
var ValidReading HealthCheck = HealthCheckFunc(func(sensor Sensor) Status {
	if sensor.IsValid() {
		return StatusOperational
	}
	return StatusFaulted
})
