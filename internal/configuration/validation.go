package configuration

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

var (
	supportedControlAlgorithms = []string{ControlAlgorithmProportional, ControlAlgorithmPid}
	supportedHealthChecks      = []string{HealthCheckAlwaysOperational, HealthCheckValidReading}
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateTurbines(config)
	if err != nil {
		return err
	}
	return validateSimulation(&config.Simulation)
}

func validateTurbines(config *Configuration) error {
	if len(config.Turbines) <= 0 {
		return errors.New("no turbine configured")
	}

	var turbineIds []string
	for _, turbineConfig := range config.Turbines {
		if len(turbineConfig.ID) <= 0 {
			return errors.New("turbine id must not be empty")
		}
		if slices.Contains(turbineIds, turbineConfig.ID) {
			return fmt.Errorf("duplicate turbine id detected: %s", turbineConfig.ID)
		}
		turbineIds = append(turbineIds, turbineConfig.ID)

		err := validateTurbine(turbineConfig)
		if err != nil {
			return err
		}
	}

	return nil
}

func validateTurbine(config TurbineConfig) error {
	if err := validateRange(config.RpmSensor); err != nil {
		return fmt.Errorf("Turbine %s: rpmSensor: %w", config.ID, err)
	}
	if err := validateRange(config.ValveSensor); err != nil {
		return fmt.Errorf("Turbine %s: valveSensor: %w", config.ID, err)
	}

	if !inRange(config.TargetRpm, config.RpmSensor) {
		return fmt.Errorf("Turbine %s: targetRpm %v is outside of the rpm sensor range [%v, %v]",
			config.ID, config.TargetRpm, config.RpmSensor.Min, config.RpmSensor.Max)
	}
	if config.TargetRpm == 0 {
		return fmt.Errorf("Turbine %s: targetRpm must not be zero", config.ID)
	}
	if config.Tolerance < 0 {
		return fmt.Errorf("Turbine %s: tolerance must be >= 0", config.ID)
	}
	if config.Gain <= 0 {
		return fmt.Errorf("Turbine %s: gain must be > 0", config.ID)
	}

	valve := config.Valve
	if valve.Min > valve.Max {
		return fmt.Errorf("Turbine %s: valve min %v must not be greater than valve max %v", config.ID, valve.Min, valve.Max)
	}
	if !inRange(valve.Min, config.ValveSensor) || !inRange(valve.Max, config.ValveSensor) {
		return fmt.Errorf("Turbine %s: valve limits [%v, %v] must be within the valve sensor range [%v, %v]",
			config.ID, valve.Min, valve.Max, config.ValveSensor.Min, config.ValveSensor.Max)
	}
	if valve.Initial < valve.Min || valve.Initial > valve.Max {
		return fmt.Errorf("Turbine %s: initial valve position %v is outside of the valve limits [%v, %v]",
			config.ID, valve.Initial, valve.Min, valve.Max)
	}

	if !slices.Contains(supportedControlAlgorithms, config.ControlAlgorithm) {
		return fmt.Errorf("Turbine %s: unsupported control algorithm '%s', use one of: %s",
			config.ID, config.ControlAlgorithm, strings.Join(supportedControlAlgorithms, " | "))
	}
	if config.ControlAlgorithm == ControlAlgorithmPid {
		pid := config.Pid
		if pid == nil {
			return fmt.Errorf("Turbine %s: missing pid configuration", config.ID)
		}
		if pid.P == 0 && pid.I == 0 && pid.D == 0 {
			return fmt.Errorf("Turbine %s: all PID constants are zero", config.ID)
		}
	}

	return nil
}

func validateRange(r RangeConfig) error {
	if r.Min >= r.Max {
		return fmt.Errorf("min %v must be lower than max %v", r.Min, r.Max)
	}
	if !slices.Contains(supportedHealthChecks, r.HealthCheck) {
		return fmt.Errorf("unsupported health check '%s', use one of: %s",
			r.HealthCheck, strings.Join(supportedHealthChecks, " | "))
	}
	return nil
}

func inRange(value float64, r RangeConfig) bool {
	return r.Min <= value && value <= r.Max
}

func validateSimulation(config *SimulationConfig) error {
	if config.Steps <= 0 {
		return errors.New("Simulation: steps must be > 0")
	}
	if config.MaxRpmIncrease <= 0 {
		return errors.New("Simulation: maxRpmIncrease must be > 0")
	}
	if config.RampFactor <= 0 || config.RampFactor > 1 {
		return errors.New("Simulation: rampFactor must be within (0, 1]")
	}
	if config.TickRate < 0 {
		return errors.New("Simulation: tickRate must not be negative")
	}
	if config.SettleWindowSize <= 0 {
		return errors.New("Simulation: settleWindowSize must be > 0")
	}
	if config.SettleThreshold < 0 {
		return errors.New("Simulation: settleThreshold must be >= 0")
	}
	return nil
}
