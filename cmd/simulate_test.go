package cmd

import (
	"testing"

	"github.com/markusressel/turbine2go/internal/simulation"
	"github.com/stretchr/testify/assert"
)

func TestStepLines_SkipsFailedSteps(t *testing.T) {
	// GIVEN
	trace := simulation.NewTrace("turbine")
	trace.Steps = []simulation.StepResult{
		{Step: 0, CurrentRpm: 50, ValvePosition: 0.25, Operational: true},
		{Step: 1, CurrentRpm: 50, ValvePosition: 0.25, Operational: false},
	}
	trace.Failed = true

	// WHEN
	lines := stepLines(trace)

	// THEN
	assert.Equal(t, []string{
		"System is operational. Time: 0s, Current RPM: 50.00, Valve Position: 25.00%",
	}, lines)
}
