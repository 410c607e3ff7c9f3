package configuration

import "time"

const (
	DefaultSimulationSteps  = 180
	DefaultMaxRpmIncrease   = 50.0
	DefaultRampFactor       = 0.05
	DefaultSettleWindowSize = 10
	DefaultSettleThreshold  = 5.0
)

type SimulationConfig struct {
	// Steps is the number of simulated time steps of a single run
	Steps int `json:"steps"`
	// MaxRpmIncrease caps the synthetic speed increase per step
	MaxRpmIncrease float64 `json:"maxRpmIncrease"`
	// RampFactor is the fraction of the remaining distance to the target covered per step
	RampFactor float64 `json:"rampFactor"`
	// TickRate is the wall clock time between two steps, zero runs as fast as possible
	TickRate time.Duration `json:"tickRate"`

	// SettleWindowSize is the number of recent steps considered for settle detection
	SettleWindowSize int `json:"settleWindowSize"`
	// SettleThreshold is the max speed error (rpm) within the window for a settled turbine
	SettleThreshold float64 `json:"settleThreshold"`
}

func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Steps:            DefaultSimulationSteps,
		MaxRpmIncrease:   DefaultMaxRpmIncrease,
		RampFactor:       DefaultRampFactor,
		SettleWindowSize: DefaultSettleWindowSize,
		SettleThreshold:  DefaultSettleThreshold,
	}
}
