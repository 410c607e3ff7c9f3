package configuration

const (
	DefaultTurbineId = "turbine"

	DefaultTargetRpm = 3000.0
	DefaultTolerance = 0.0
	DefaultGain      = 0.01

	DefaultMinRpm = 0.0
	DefaultMaxRpm = 3000.0

	DefaultMinValveSensor = 0.0
	DefaultMaxValveSensor = 1.0

	DefaultMinValvePosition     = 0.1
	DefaultMaxValvePosition     = 1.0
	DefaultInitialValvePosition = 0.15
)

const (
	ControlAlgorithmProportional = "proportional"
	ControlAlgorithmPid          = "pid"
)

const (
	// HealthCheckAlwaysOperational only faults a sensor on a rejected measurement
	HealthCheckAlwaysOperational = "alwaysOperational"
	// HealthCheckValidReading additionally faults a sensor whose reading is outside of its range
	HealthCheckValidReading = "validReading"
)

type TurbineConfig struct {
	ID string `json:"id"`
	// TargetRpm is the speed the controller converges to
	TargetRpm float64 `json:"targetRpm"`
	// Tolerance is the dead-band around TargetRpm in which the valve is left untouched
	Tolerance float64 `json:"tolerance"`
	// Gain scales the relative speed error into a valve position change per step
	Gain float64 `json:"gain"`

	RpmSensor   RangeConfig `json:"rpmSensor"`
	ValveSensor RangeConfig `json:"valveSensor"`
	Valve       ValveConfig `json:"valve"`

	ControlAlgorithm string     `json:"controlAlgorithm"`
	Pid              *PidConfig `json:"pid,omitempty"`
}

// RangeConfig is an inclusive range of physically valid sensor values
type RangeConfig struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	// HealthCheck is the name of the health policy of the sensor
	HealthCheck string `json:"healthCheck"`
}

type ValveConfig struct {
	// Min is the lowest position the valve may be driven to, it never closes completely
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Initial float64 `json:"initial"`
}

type PidConfig struct {
	P float64 `json:"p"`
	I float64 `json:"i"`
	D float64 `json:"d"`
}

func DefaultTurbineConfig(id string) TurbineConfig {
	return TurbineConfig{
		ID:        id,
		TargetRpm: DefaultTargetRpm,
		Tolerance: DefaultTolerance,
		Gain:      DefaultGain,
		RpmSensor: RangeConfig{
			Min:         DefaultMinRpm,
			Max:         DefaultMaxRpm,
			HealthCheck: HealthCheckAlwaysOperational,
		},
		ValveSensor: RangeConfig{
			Min:         DefaultMinValveSensor,
			Max:         DefaultMaxValveSensor,
			HealthCheck: HealthCheckAlwaysOperational,
		},
		Valve: ValveConfig{
			Min:     DefaultMinValvePosition,
			Max:     DefaultMaxValvePosition,
			Initial: DefaultInitialValvePosition,
		},
		ControlAlgorithm: ControlAlgorithmProportional,
	}
}

// FindTurbineConfig returns the configuration of the turbine with the given id
func (c Configuration) FindTurbineConfig(id string) (TurbineConfig, bool) {
	for _, turbine := range c.Turbines {
		if turbine.ID == id {
			return turbine, true
		}
	}
	return TurbineConfig{}, false
}
