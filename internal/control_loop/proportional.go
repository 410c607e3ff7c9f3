package control_loop

// ProportionalControlLoop applies a fixed gain to the relative speed error.
// With a gain of 0.01 a single step never moves the valve by more than
// 1% of its full travel, as long as the measured speed is within [0, 2*target].
type ProportionalControlLoop struct {
	gain float64
}

func NewProportionalControlLoop(gain float64) *ProportionalControlLoop {
	return &ProportionalControlLoop{
		gain: gain,
	}
}

func (l *ProportionalControlLoop) Loop(target float64, measured float64) float64 {
	if target == 0 {
		return 0
	}
	relativeError := (target - measured) / target
	return relativeError * l.gain
}
