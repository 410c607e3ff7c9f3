package configuration

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readYaml(t *testing.T, content string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	err := v.ReadConfig(bytes.NewBufferString(content))
	require.NoError(t, err)
	return v
}

func TestDecodeConfig_AppliesTurbineDefaults(t *testing.T) {
	// GIVEN
	v := readYaml(t, `
turbines:
  - id: main
    tolerance: 5
  - id: auxiliary
    targetRpm: 1500
    gain: 0.02
    valve:
      min: 0.2
      max: 0.9
      initial: 0.3
`)

	// WHEN
	config, err := decodeConfig(v)

	// THEN
	require.NoError(t, err)
	require.Len(t, config.Turbines, 2)

	main := config.Turbines[0]
	assert.Equal(t, "main", main.ID)
	assert.Equal(t, DefaultTargetRpm, main.TargetRpm)
	assert.Equal(t, 5.0, main.Tolerance)
	assert.Equal(t, DefaultGain, main.Gain)
	assert.Equal(t, RangeConfig{Min: 0, Max: 3000, HealthCheck: HealthCheckAlwaysOperational}, main.RpmSensor)
	assert.Equal(t, RangeConfig{Min: 0, Max: 1, HealthCheck: HealthCheckAlwaysOperational}, main.ValveSensor)
	assert.Equal(t, ValveConfig{Min: 0.1, Max: 1.0, Initial: 0.15}, main.Valve)
	assert.Equal(t, ControlAlgorithmProportional, main.ControlAlgorithm)

	auxiliary := config.Turbines[1]
	assert.Equal(t, 1500.0, auxiliary.TargetRpm)
	assert.Equal(t, 0.02, auxiliary.Gain)
	assert.Equal(t, ValveConfig{Min: 0.2, Max: 0.9, Initial: 0.3}, auxiliary.Valve)
}

func TestDecodeConfig_PartialBlocksKeepFieldDefaults(t *testing.T) {
	// GIVEN
	v := readYaml(t, `
turbines:
  - id: main
    rpmSensor:
      min: 100
      healthCheck: validReading
    valve:
      initial: 0.3
`)

	// WHEN
	config, err := decodeConfig(v)

	// THEN
	require.NoError(t, err)
	require.Len(t, config.Turbines, 1)

	main := config.Turbines[0]
	assert.Equal(t, RangeConfig{Min: 100, Max: DefaultMaxRpm, HealthCheck: HealthCheckValidReading}, main.RpmSensor)
	assert.Equal(t, ValveConfig{Min: DefaultMinValvePosition, Max: DefaultMaxValvePosition, Initial: 0.3}, main.Valve)
	assert.NoError(t, validateConfig(&config))
}

func TestDecodeConfig_ExplicitZeroIsNotReplaced(t *testing.T) {
	// GIVEN
	v := readYaml(t, `
turbines:
  - id: main
    targetRpm: 0
`)

	// WHEN
	config, err := decodeConfig(v)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 0.0, config.Turbines[0].TargetRpm)
	assert.EqualError(t, validateConfig(&config), "Turbine main: targetRpm must not be zero")
}

func TestDecodeConfig_DefaultTurbines(t *testing.T) {
	// GIVEN
	v := viper.New()
	v.SetDefault("turbines", []TurbineConfig{DefaultTurbineConfig(DefaultTurbineId)})

	// WHEN
	config, err := decodeConfig(v)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []TurbineConfig{DefaultTurbineConfig(DefaultTurbineId)}, config.Turbines)
}

func TestDecodeConfig_ParsesSimulationTickRate(t *testing.T) {
	// GIVEN
	v := readYaml(t, `
simulation:
  steps: 10
  tickRate: 250ms
`)

	// WHEN
	config, err := decodeConfig(v)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 10, config.Simulation.Steps)
	assert.Equal(t, 250*time.Millisecond, config.Simulation.TickRate)
}

func TestFindTurbineConfig(t *testing.T) {
	// GIVEN
	config := Configuration{
		Turbines: []TurbineConfig{
			DefaultTurbineConfig("a"),
			DefaultTurbineConfig("b"),
		},
	}

	// WHEN
	found, exists := config.FindTurbineConfig("b")
	_, missing := config.FindTurbineConfig("c")

	// THEN
	assert.True(t, exists)
	assert.Equal(t, "b", found.ID)
	assert.False(t, missing)
}
