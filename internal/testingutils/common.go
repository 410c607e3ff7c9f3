package testingutils

import (
	"github.com/markusressel/turbine2go/internal/configuration"
	"github.com/markusressel/turbine2go/internal/controller"
	"github.com/markusressel/turbine2go/internal/sensors"
)

var (
	// FaultedSensor reports every sensor as faulted
	FaultedSensor = sensors.HealthCheckFunc(func(sensors.Sensor) sensors.Status {
		return sensors.StatusFaulted
	})
)

// CreateConfiguration returns a configuration with one default turbine per given id
// and the default simulation settings
func CreateConfiguration(ids ...string) configuration.Configuration {
	config := configuration.Configuration{
		Simulation: configuration.DefaultSimulationConfig(),
	}
	for _, id := range ids {
		config.Turbines = append(config.Turbines, configuration.DefaultTurbineConfig(id))
	}
	return config
}

// CreateController creates a controller for a default turbine and adds it to the TurbineMap
func CreateController(id string, opts ...controller.Option) *controller.SpeedController {
	c := controller.NewSpeedController(configuration.DefaultTurbineConfig(id), opts...)
	controller.RegisterController(c)
	return c
}

// CreateRegulatedController creates a controller which has regulated a single step at the given speed.
// An out of range speed leaves the controller faulted without regulating.
func CreateRegulatedController(id string, rpm float64) *controller.SpeedController {
	c := CreateController(id)
	err := c.IngestSpeed(rpm)
	c.RefreshHealth()
	if err == nil {
		_ = c.Regulate()
	}
	return c
}
