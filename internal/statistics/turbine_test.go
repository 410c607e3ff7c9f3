package statistics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/markusressel/turbine2go/internal/controller"
	"github.com/markusressel/turbine2go/internal/testingutils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	pterm.DisableOutput()
}

func createControllers(t *testing.T) []*controller.SpeedController {
	a := testingutils.CreateRegulatedController("a", 1500)
	require.True(t, a.IsOperational())

	b := testingutils.CreateRegulatedController("b", 4000)
	require.False(t, b.IsOperational())

	return []*controller.SpeedController{a, b}
}

func TestTurbineCollector_Metrics(t *testing.T) {
	// GIVEN
	collector := NewTurbineCollector(createControllers(t))

	// WHEN
	expected := `
# HELP turbine2go_turbine_operational 1 if both sensors of the turbine are healthy, 0 otherwise
# TYPE turbine2go_turbine_operational gauge
turbine2go_turbine_operational{id="a"} 1
turbine2go_turbine_operational{id="b"} 0
# HELP turbine2go_turbine_rpm Speed of the turbine used by the last regulation step
# TYPE turbine2go_turbine_rpm gauge
turbine2go_turbine_rpm{id="a"} 1500
turbine2go_turbine_rpm{id="b"} 0
# HELP turbine2go_turbine_rejected_measurement_count Number of speed measurements rejected because they were out of range
# TYPE turbine2go_turbine_rejected_measurement_count counter
turbine2go_turbine_rejected_measurement_count{id="a"} 0
turbine2go_turbine_rejected_measurement_count{id="b"} 1
`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"turbine2go_turbine_operational",
		"turbine2go_turbine_rpm",
		"turbine2go_turbine_rejected_measurement_count",
	)

	// THEN
	assert.NoError(t, err)
}

func TestTurbineCollector_MetricCount(t *testing.T) {
	// GIVEN
	collector := NewTurbineCollector(createControllers(t))

	// WHEN
	count := testutil.CollectAndCount(collector)

	// THEN
	assert.Equal(t, 22, count)
}

func TestWriteText(t *testing.T) {
	// GIVEN
	registry := prometheus.NewRegistry()
	Register(registry, NewTurbineCollector(createControllers(t)))
	var buf bytes.Buffer

	// WHEN
	err := WriteText(&buf, registry)

	// THEN
	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, `turbine2go_turbine_target_rpm{id="a"} 3000`)
	assert.Contains(t, output, `turbine2go_turbine_sensor_operational{id="b",sensor="rpm"} 0`)
	assert.Contains(t, output, `turbine2go_turbine_fault_count{id="b"} 1`)
}
