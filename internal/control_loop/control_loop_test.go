package control_loop

import (
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestProportional_RelativeError(t *testing.T) {
	// GIVEN
	loop := NewProportionalControlLoop(0.01)

	// WHEN
	result := loop.Loop(3000, 1500)

	// THEN
	assert.InDelta(t, 0.005, result, 1e-12)
}

func TestProportional_MaxStepFromStandstill(t *testing.T) {
	// GIVEN
	loop := NewProportionalControlLoop(0.01)

	// WHEN
	result := loop.Loop(3000, 0)

	// THEN
	assert.Equal(t, 0.01, result)
}

func TestProportional_AtTargetIsZero(t *testing.T) {
	// GIVEN
	loop := NewProportionalControlLoop(0.01)

	// WHEN
	result := loop.Loop(3000, 3000)

	// THEN
	assert.Equal(t, 0.0, result)
}

func TestProportional_AboveTargetIsNegative(t *testing.T) {
	// GIVEN
	loop := NewProportionalControlLoop(0.01)

	// WHEN
	result := loop.Loop(2000, 2500)

	// THEN
	assert.InDelta(t, -0.0025, result, 1e-12)
}

func TestProportional_ZeroTarget(t *testing.T) {
	// GIVEN
	loop := NewProportionalControlLoop(0.01)

	// WHEN
	result := loop.Loop(0, 100)

	// THEN
	assert.Equal(t, 0.0, result)
}

func TestPid_OutputIsLimited(t *testing.T) {
	// GIVEN
	pterm.DisableOutput()
	loop := NewPidControlLoop(1.0, 0.5, 0.0, 0.01, 1.0)

	for i := 0; i < 5; i++ {
		// WHEN
		result := loop.Loop(3000, 0)

		// THEN
		assert.Equal(t, 0.01, result)
	}
}

func TestPid_ProportionalOnNormalizedSpeed(t *testing.T) {
	// GIVEN
	pterm.DisableOutput()
	loop := NewPidControlLoop(0.01, 0, 0, 1.0, 1.0)

	// WHEN
	result := loop.Loop(3000, 1500)

	// THEN
	assert.InDelta(t, 0.005, result, 1e-12)
}
