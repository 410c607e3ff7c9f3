package controller

import (
	"math"

	"github.com/markusressel/turbine2go/internal/configuration"
	"github.com/markusressel/turbine2go/internal/control_loop"
	"github.com/markusressel/turbine2go/internal/sensors"
	"github.com/markusressel/turbine2go/internal/ui"
	"github.com/markusressel/turbine2go/internal/util"
	"github.com/qdm12/reprint"
)

// DefaultStepInterval is the simulated time between two steps, in seconds
const DefaultStepInterval = 1.0

type Statistics struct {
	// number of Regulate calls that changed the valve position
	AdjustmentCount int
	// moving average of the absolute valve change of all adjustments
	AvgAdjustment float64
	// number of speed measurements rejected by the rpm sensor
	RejectedMeasurementCount int
	// number of transitions into the faulted state
	FaultCount int
	// number of operations rejected with a PreconditionError
	PreconditionViolationCount int
}

// SpeedController regulates the speed of a single turbine by adjusting its valve.
// It exclusively owns its sensors and is not safe for concurrent use.
type SpeedController struct {
	config configuration.TurbineConfig

	rpmSensor   *sensors.RpmSensor
	valveSensor *sensors.ValvePositionSensor
	controlLoop control_loop.ControlLoop

	currentRpm    float64
	valvePosition float64

	rpmSensorStatus           bool
	valvePositionSensorStatus bool
	state                     State

	statistics Statistics
}

type options struct {
	rpmHealthCheck   sensors.HealthCheck
	valveHealthCheck sensors.HealthCheck
	controlLoop      control_loop.ControlLoop
	stepInterval     float64
}

type Option func(o *options)

// WithRpmHealthCheck sets the health check policy of the rpm sensor
func WithRpmHealthCheck(healthCheck sensors.HealthCheck) Option {
	return func(o *options) {
		o.rpmHealthCheck = healthCheck
	}
}

// WithValveHealthCheck sets the health check policy of the valve position sensor
func WithValveHealthCheck(healthCheck sensors.HealthCheck) Option {
	return func(o *options) {
		o.valveHealthCheck = healthCheck
	}
}

// WithControlLoop replaces the control loop derived from the turbine configuration
func WithControlLoop(controlLoop control_loop.ControlLoop) Option {
	return func(o *options) {
		o.controlLoop = controlLoop
	}
}

// WithStepInterval sets the time between two steps in seconds, used by time based control loops
func WithStepInterval(seconds float64) Option {
	return func(o *options) {
		o.stepInterval = seconds
	}
}

func NewSpeedController(config configuration.TurbineConfig, opts ...Option) *SpeedController {
	o := options{
		rpmHealthCheck:   healthCheckFor(config.RpmSensor.HealthCheck),
		valveHealthCheck: healthCheckFor(config.ValveSensor.HealthCheck),
		stepInterval:     DefaultStepInterval,
	}
	for _, opt := range opts {
		opt(&o)
	}

	// every controller works on its own copy of the configuration
	config = reprint.This(config).(configuration.TurbineConfig)

	if o.controlLoop == nil {
		o.controlLoop = newControlLoop(config, o.stepInterval)
	}

	rpmSensor := sensors.NewRpmSensor(
		config.ID+"-rpm",
		sensors.Range[sensors.Rpm]{
			Min: sensors.Rpm(config.RpmSensor.Min),
			Max: sensors.Rpm(config.RpmSensor.Max),
		},
		sensors.WithHealthCheck[sensors.Rpm](o.rpmHealthCheck),
	)
	valveSensor := sensors.NewValvePositionSensor(
		config.ID+"-valve",
		sensors.Range[sensors.ValvePosition]{
			Min: sensors.ValvePosition(config.ValveSensor.Min),
			Max: sensors.ValvePosition(config.ValveSensor.Max),
		},
		sensors.ValvePosition(config.Valve.Initial),
		sensors.WithHealthCheck[sensors.ValvePosition](o.valveHealthCheck),
	)

	c := &SpeedController{
		config:        config,
		rpmSensor:     rpmSensor,
		valveSensor:   valveSensor,
		controlLoop:   o.controlLoop,
		currentRpm:    0,
		valvePosition: config.Valve.Initial,
	}
	c.rpmSensorStatus = rpmSensor.GetStatus() == sensors.StatusOperational
	c.valvePositionSensorStatus = valveSensor.GetStatus() == sensors.StatusOperational
	c.state = c.computeState()

	return c
}

func healthCheckFor(name string) sensors.HealthCheck {
	if name == configuration.HealthCheckValidReading {
		return sensors.ValidReading
	}
	return sensors.AlwaysOperational
}

func newControlLoop(config configuration.TurbineConfig, stepInterval float64) control_loop.ControlLoop {
	switch config.ControlAlgorithm {
	case configuration.ControlAlgorithmPid:
		pid := config.Pid
		if pid != nil {
			return control_loop.NewPidControlLoop(pid.P, pid.I, pid.D, config.Gain, stepInterval)
		}
		ui.Warning("Turbine %s: missing pid configuration, falling back to proportional control", config.ID)
	}
	return control_loop.NewProportionalControlLoop(config.Gain)
}

func (c *SpeedController) GetId() string {
	return c.config.ID
}

func (c *SpeedController) GetConfig() configuration.TurbineConfig {
	return c.config
}

func (c *SpeedController) GetStatistics() Statistics {
	return c.statistics
}

func (c *SpeedController) RpmSensor() *sensors.RpmSensor {
	return c.rpmSensor
}

func (c *SpeedController) ValveSensor() *sensors.ValvePositionSensor {
	return c.valveSensor
}

// CurrentRpm returns the speed used by the last call to Regulate
func (c *SpeedController) CurrentRpm() float64 {
	return c.currentRpm
}

// ValvePosition returns the current valve opening as a fraction in [0, 1]
func (c *SpeedController) ValvePosition() float64 {
	return c.valvePosition
}

func (c *SpeedController) ValvePositionPercent() float64 {
	return sensors.ValvePosition(c.valvePosition).Percent()
}

func (c *SpeedController) RpmSensorStatus() bool {
	return c.rpmSensorStatus
}

func (c *SpeedController) ValvePositionSensorStatus() bool {
	return c.valvePositionSensorStatus
}

func (c *SpeedController) State() State {
	return c.state
}

// IngestSpeed forwards a raw speed measurement to the rpm sensor.
// A rejected value leaves the sensor faulted, which the next
// RefreshHealth turns into a faulted controller.
func (c *SpeedController) IngestSpeed(rawRpm float64) error {
	err := c.rpmSensor.MeasureRpm(sensors.Rpm(rawRpm))
	if err != nil {
		c.statistics.RejectedMeasurementCount++
		return err
	}
	return nil
}

// RefreshHealth checks both sensors and updates the cached sensor status flags.
// This is the only operation that changes the operational state.
func (c *SpeedController) RefreshHealth() State {
	c.rpmSensorStatus = c.rpmSensor.CheckHealth() == sensors.StatusOperational
	c.valvePositionSensorStatus = c.valveSensor.CheckHealth() == sensors.StatusOperational

	newState := c.computeState()
	if newState != c.state {
		if newState == StateFaulted {
			c.statistics.FaultCount++
			ui.Warning("Turbine %s is faulted (rpm sensor: %s, valve sensor: %s)",
				c.GetId(), c.rpmSensor.GetStatus(), c.valveSensor.GetStatus())
		} else {
			ui.Info("Turbine %s is operational again", c.GetId())
		}
	}
	c.state = newState

	return c.state
}

func (c *SpeedController) computeState() State {
	if c.rpmSensorStatus && c.valvePositionSensorStatus {
		return StateOperational
	}
	return StateFaulted
}

// IsOperational reports whether both sensors were healthy at the last RefreshHealth
func (c *SpeedController) IsOperational() bool {
	return c.rpmSensorStatus && c.valvePositionSensorStatus
}

// Regulate moves the valve towards the position needed to reach the target speed.
// It must only be called while the controller is operational.
func (c *SpeedController) Regulate() error {
	if !c.IsOperational() {
		return c.preconditionViolated("regulate", "controller is not operational")
	}

	c.currentRpm = float64(c.rpmSensor.Reading())
	target := c.config.TargetRpm

	if math.Abs(target-c.currentRpm) <= c.config.Tolerance {
		ui.Debug("Turbine %s: speed %.2f is within tolerance of target %.2f", c.GetId(), c.currentRpm, target)
		return nil
	}

	delta := c.controlLoop.Loop(target, c.currentRpm)
	if delta == 0 {
		return nil
	}

	return c.AdjustValve(c.valvePosition + delta)
}

// AdjustValve drives the valve to the requested position, limited to the configured valve range
func (c *SpeedController) AdjustValve(requestedPosition float64) error {
	if c.valvePosition == 0 {
		return c.preconditionViolated("adjust valve", "valve position is not initialized")
	}

	valve := c.config.Valve
	position := util.Coerce(requestedPosition, valve.Min, valve.Max)
	if position != requestedPosition {
		ui.Debug("Turbine %s: requested valve position %.4f limited to %.4f", c.GetId(), requestedPosition, position)
	}

	err := c.valveSensor.MeasureValvePosition(sensors.ValvePosition(position))
	if err != nil {
		return err
	}

	if position != c.valvePosition {
		c.statistics.AdjustmentCount++
		c.statistics.AvgAdjustment = util.UpdateSimpleMovingAvg(
			c.statistics.AvgAdjustment,
			c.statistics.AdjustmentCount,
			math.Abs(position-c.valvePosition),
		)
	}
	c.valvePosition = position

	ui.Debug("Turbine %s: rpm: %.2f, valve position: %.2f%%", c.GetId(), c.currentRpm, c.ValvePositionPercent())
	return nil
}

// Invariant reports whether the current speed is within [tolerance, target]
// and the valve position is within its limits
func (c *SpeedController) Invariant() bool {
	rpmInRange := c.config.Tolerance <= c.currentRpm && c.currentRpm <= c.config.TargetRpm
	valveInRange := c.config.Valve.Min <= c.valvePosition && c.valvePosition <= c.config.Valve.Max
	return rpmInRange && valveInRange
}

func (c *SpeedController) preconditionViolated(operation string, reason string) error {
	c.statistics.PreconditionViolationCount++
	return &PreconditionError{
		Turbine:   c.GetId(),
		Operation: operation,
		Reason:    reason,
	}
}
