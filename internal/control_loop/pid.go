package control_loop

import (
	"github.com/markusressel/turbine2go/internal/ui"
	"github.com/markusressel/turbine2go/internal/util"
)

// PidControlLoop is a PidLoop based control loop implementation.
// It works on the speed normalized to the target, so the constants
// do not depend on the magnitude of the target speed.
type PidControlLoop struct {
	pidLoop *util.PidLoop
	// seconds between two calls of Loop
	dt float64
}

// NewPidControlLoop creates a PidControlLoop, which uses a PID loop to approach the target.
// The valve change of a single cycle is limited to maxChangePerCycle in both directions.
func NewPidControlLoop(
	p float64,
	i float64,
	d float64,
	maxChangePerCycle float64,
	dt float64,
) *PidControlLoop {
	return &PidControlLoop{
		pidLoop: util.NewPidLoop(p, i, d, -maxChangePerCycle, maxChangePerCycle),
		dt:      dt,
	}
}

func (l *PidControlLoop) Loop(target float64, measured float64) float64 {
	if target == 0 {
		return 0
	}
	normalized := util.Ratio(measured, 0, target)
	result := l.pidLoop.Loop(1.0, normalized, l.dt)

	ui.Debug("PidControlLoop: target: %.4f, measured: %.4f, result: %.6f", target, measured, result)

	return result
}
