package simulation

import (
	"context"
	"math"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/turbine2go/internal/configuration"
	"github.com/markusressel/turbine2go/internal/controller"
	"github.com/markusressel/turbine2go/internal/ui"
	"github.com/markusressel/turbine2go/internal/util"
)

type StepResult struct {
	Step              int     `json:"step"`
	RawRpm            float64 `json:"rawRpm"`
	CurrentRpm        float64 `json:"currentRpm"`
	ValvePosition     float64 `json:"valvePosition"`
	Operational       bool    `json:"operational"`
	RpmSensorStatus   bool    `json:"rpmSensorStatus"`
	ValveSensorStatus bool    `json:"valveSensorStatus"`
	Error             string  `json:"error,omitempty"`
}

// Simulator drives a single SpeedController with a synthetic speed ramp,
// one call to Step per simulated second.
type Simulator struct {
	controller *controller.SpeedController
	config     configuration.SimulationConfig

	step        int
	errorWindow *rolling.PointPolicy
	settledAt   int
}

func NewSimulator(c *controller.SpeedController, config configuration.SimulationConfig) *Simulator {
	window := util.CreateRollingWindow(config.SettleWindowSize)
	util.FillWindow(window, config.SettleWindowSize, math.Inf(1))

	return &Simulator{
		controller:  c,
		config:      config,
		errorWindow: window,
		settledAt:   -1,
	}
}

func (s *Simulator) Controller() *controller.SpeedController {
	return s.controller
}

// NextRpm computes the next synthetic speed from the current rpm sensor reading.
// The speed rises by rampFactor of the remaining distance to the target,
// but never by more than maxRpmIncrease.
func (s *Simulator) NextRpm() float64 {
	reading := float64(s.controller.RpmSensor().Reading())
	target := s.controller.GetConfig().TargetRpm
	increase := math.Min(s.config.MaxRpmIncrease, (target-reading)*s.config.RampFactor)
	return reading + increase
}

// Step feeds the next synthetic speed to the controller
func (s *Simulator) Step() StepResult {
	return s.StepWith(s.NextRpm())
}

// StepWith runs a single control step with the given raw speed:
// ingest, refresh health and, if operational, regulate.
func (s *Simulator) StepWith(rawRpm float64) StepResult {
	c := s.controller
	result := StepResult{
		Step:   s.step,
		RawRpm: rawRpm,
	}
	s.step++

	var stepErr error
	if err := c.IngestSpeed(rawRpm); err != nil {
		stepErr = err
	}

	c.RefreshHealth()
	if c.IsOperational() {
		if err := c.Regulate(); err != nil {
			stepErr = err
		}
	}

	result.CurrentRpm = c.CurrentRpm()
	result.ValvePosition = c.ValvePosition()
	result.Operational = c.IsOperational()
	result.RpmSensorStatus = c.RpmSensorStatus()
	result.ValveSensorStatus = c.ValvePositionSensorStatus()
	if stepErr != nil {
		result.Error = stepErr.Error()
	}

	s.updateSettled(result)

	return result
}

func (s *Simulator) updateSettled(result StepResult) {
	if !result.Operational {
		util.FillWindow(s.errorWindow, s.config.SettleWindowSize, math.Inf(1))
		s.settledAt = -1
		return
	}

	target := s.controller.GetConfig().TargetRpm
	s.errorWindow.Append(math.Abs(target - result.CurrentRpm))

	if s.settledAt < 0 && util.GetWindowMax(s.errorWindow) < s.config.SettleThreshold {
		s.settledAt = result.Step
		ui.Debug("Turbine %s has settled at step %d", s.controller.GetId(), result.Step)
	}
}

// SettledAt returns the step at which the speed error stayed below the
// settle threshold for a whole window, or -1
func (s *Simulator) SettledAt() int {
	return s.settledAt
}

// Run executes the configured number of steps, waiting tickRate between steps.
// The run ends early when the controller is not operational after a step,
// or when the context is cancelled.
func (s *Simulator) Run(ctx context.Context) *Trace {
	c := s.controller
	trace := NewTrace(c.GetId())

	var tick <-chan time.Time
	if s.config.TickRate > 0 {
		ticker := time.NewTicker(s.config.TickRate)
		defer ticker.Stop()
		tick = ticker.C
	}

	for i := 0; i < s.config.Steps; i++ {
		if tick != nil && i > 0 {
			select {
			case <-ctx.Done():
				trace.finish(s)
				return trace
			case <-tick:
			}
		} else if ctx.Err() != nil {
			trace.finish(s)
			return trace
		}

		result := s.Step()
		trace.Steps = append(trace.Steps, result)

		if !result.Operational {
			ui.Error("Sensor failure detected on turbine %s. System is not operational.", c.GetId())
			trace.Failed = true
			break
		}

		ui.Debug("Turbine %s is operational. Time: %ds, Current RPM: %.2f, Valve Position: %.2f%%",
			c.GetId(), result.Step, result.CurrentRpm, c.ValvePositionPercent())
	}

	trace.finish(s)
	return trace
}
