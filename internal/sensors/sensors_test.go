package sensors

import (
	"errors"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

var (
	rpmRange   = Range[Rpm]{Min: 0, Max: 3000}
	valveRange = Range[ValvePosition]{Min: 0, Max: 1}
)

func init() {
	pterm.DisableOutput()
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func TestRange_ContainsIsInclusive(t *testing.T) {
	// GIVEN
	expectedInputOutput := map[Rpm]bool{
		-0.001: false,
		0:      true,
		1500:   true,
		3000:   true,
		3000.1: false,
	}

	for input, output := range expectedInputOutput {
		// WHEN
		result := rpmRange.Contains(input)

		// THEN
		assert.Equal(t, output, result, "input %v", input)
	}
}

func TestRange_String(t *testing.T) {
	// GIVEN
	valveRange := Range[ValvePosition]{Min: 0, Max: 1}

	// WHEN
	result := valveRange.String()

	// THEN
	assert.Equal(t, "[0, 1]", result)
}

func TestNewRpmSensor(t *testing.T) {
	// WHEN
	sensor := NewRpmSensor("turbine-rpm", rpmRange)

	// THEN
	assert.Equal(t, "turbine-rpm", sensor.GetId())
	assert.Equal(t, Rpm(0), sensor.Reading())
	assert.Equal(t, StatusOperational, sensor.GetStatus())
	assert.True(t, sensor.IsValid())
	assert.Equal(t, rpmRange, sensor.GetRange())
}

func TestNewValvePositionSensor(t *testing.T) {
	// WHEN
	sensor := NewValvePositionSensor("turbine-valve", valveRange, 0.15)

	// THEN
	assert.Equal(t, ValvePosition(0.15), sensor.Reading())
	assert.InDelta(t, 15.0, sensor.Reading().Percent(), 1e-9)
	assert.Equal(t, StatusOperational, sensor.GetStatus())
}

func TestMeasureRpm_StoresValidValue(t *testing.T) {
	// GIVEN
	clock := &fixedClock{now: time.Unix(100, 0)}
	sensor := NewRpmSensor("rpm", rpmRange, WithClock[Rpm](clock.Now))
	clock.now = time.Unix(200, 0)

	// WHEN
	err := sensor.MeasureRpm(1234.5)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, Rpm(1234.5), sensor.Reading())
	assert.Equal(t, 1234.5, sensor.GetValue())
	assert.Equal(t, time.Unix(200, 0), sensor.GetLastUpdateTime())
}

func TestMeasureRpm_AcceptsBoundaries(t *testing.T) {
	// GIVEN
	sensor := NewRpmSensor("rpm", rpmRange)

	for _, value := range []Rpm{0, 3000} {
		// WHEN
		err := sensor.MeasureRpm(value)

		// THEN
		assert.NoError(t, err)
		assert.Equal(t, value, sensor.Reading())
	}
}

func TestMeasureRpm_RejectsOutOfRange(t *testing.T) {
	// GIVEN
	clock := &fixedClock{now: time.Unix(100, 0)}
	sensor := NewRpmSensor("rpm", rpmRange, WithClock[Rpm](clock.Now))
	assert.NoError(t, sensor.MeasureRpm(2000))
	clock.now = time.Unix(200, 0)

	// WHEN
	err := sensor.MeasureRpm(3500)

	// THEN
	assert.ErrorIs(t, err, ErrOutOfRange)
	var outOfRangeError *OutOfRangeError
	assert.True(t, errors.As(err, &outOfRangeError))
	assert.Equal(t, 3500.0, outOfRangeError.Value)
	assert.Equal(t, 0.0, outOfRangeError.Min)
	assert.Equal(t, 3000.0, outOfRangeError.Max)
	assert.EqualError(t, err, "sensor rpm: value 3500 is outside of the valid range [0, 3000]")

	assert.Equal(t, Rpm(2000), sensor.Reading())
	assert.Equal(t, time.Unix(100, 0), sensor.GetLastUpdateTime())
	assert.Equal(t, StatusFaulted, sensor.GetStatus())
	assert.True(t, sensor.IsValid())
}

func TestMeasureRpm_RejectsNegative(t *testing.T) {
	// GIVEN
	sensor := NewRpmSensor("rpm", rpmRange)

	// WHEN
	err := sensor.MeasureRpm(-1)

	// THEN
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, Rpm(0), sensor.Reading())
}

func TestMeasureValvePosition_RejectsOutOfRange(t *testing.T) {
	// GIVEN
	sensor := NewValvePositionSensor("valve", valveRange, 0.15)

	// WHEN
	err := sensor.MeasureValvePosition(1.01)

	// THEN
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, ValvePosition(0.15), sensor.Reading())
	assert.Equal(t, StatusFaulted, sensor.GetStatus())
}

func TestMeasure_SuccessfulValuesStayInRange(t *testing.T) {
	// GIVEN
	sensor := NewValvePositionSensor("valve", valveRange, 0.15)
	inputs := []ValvePosition{-1, 0, 0.5, 1, 1.5, 100, 0.99}

	for _, input := range inputs {
		// WHEN
		err := sensor.MeasureValvePosition(input)

		// THEN
		if err == nil {
			assert.GreaterOrEqual(t, float64(sensor.Reading()), 0.0)
			assert.LessOrEqual(t, float64(sensor.Reading()), 1.0)
		}
		assert.True(t, sensor.IsValid())
	}
}

func TestCheckHealth_DefaultIsOperational(t *testing.T) {
	// GIVEN
	sensor := NewRpmSensor("rpm", rpmRange)

	// WHEN
	status := sensor.CheckHealth()

	// THEN
	assert.Equal(t, StatusOperational, status)
	assert.Equal(t, StatusOperational, sensor.GetStatus())
}

func TestCheckHealth_RejectedMeasurementStaysFaulted(t *testing.T) {
	// GIVEN
	sensor := NewRpmSensor("rpm", rpmRange)
	_ = sensor.MeasureRpm(3500)

	// WHEN
	status := sensor.CheckHealth()

	// THEN
	assert.Equal(t, StatusFaulted, status)

	// WHEN
	assert.NoError(t, sensor.MeasureRpm(100))
	status = sensor.CheckHealth()

	// THEN
	assert.Equal(t, StatusOperational, status)
}

func TestCheckHealth_UsesInjectedPolicy(t *testing.T) {
	// GIVEN
	healthy := true
	policy := HealthCheckFunc(func(sensor Sensor) Status {
		if healthy {
			return StatusOperational
		}
		return StatusFaulted
	})
	sensor := NewRpmSensor("rpm", rpmRange, WithHealthCheck[Rpm](policy))

	// WHEN
	healthy = false
	status := sensor.CheckHealth()

	// THEN
	assert.Equal(t, StatusFaulted, status)
	assert.Equal(t, StatusFaulted, sensor.GetStatus())

	// WHEN
	healthy = true
	status = sensor.CheckHealth()

	// THEN
	assert.Equal(t, StatusOperational, status)
}

func TestValidReadingHealthCheck(t *testing.T) {
	// GIVEN
	valid := NewRpmSensor("valid", rpmRange)
	invalid := NewRangeSensor[Rpm]("invalid", rpmRange, 4000)

	// WHEN
	validStatus := ValidReading.Check(valid)
	invalidStatus := ValidReading.Check(invalid)

	// THEN
	assert.Equal(t, StatusOperational, validStatus)
	assert.Equal(t, StatusFaulted, invalidStatus)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Operational", StatusOperational.String())
	assert.Equal(t, "Faulted", StatusFaulted.String())
	assert.Equal(t, "Status(7)", Status(7).String())
}
