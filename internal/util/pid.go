package util

type PidLoop struct {
	// Proportional Constant
	p float64
	// Integral Constant
	i float64
	// Derivative Constant
	d float64
	// Minimum output value
	outMin float64
	// Maximum output value
	outMax float64

	// last measured value
	lastMeasured float64
	// integral from previous loop + error, i.e. integral error
	integral float64
	// whether the loop has been advanced at least once
	initialized bool
	// last output value
	lastOutput float64
}

func NewPidLoop(p, i, d, min, max float64) *PidLoop {
	return &PidLoop{
		p:      p,
		i:      i,
		d:      d,
		outMin: min,
		outMax: max,
	}
}

// Loop advances the pid loop by dt seconds
func (p *PidLoop) Loop(target float64, measured float64, dt float64) float64 {
	if !p.initialized {
		p.initialized = true
		p.lastMeasured = measured
		p.integral = 0.0

		// first output is the P-term only, clamped
		output := Coerce(p.p*(target-measured), p.outMin, p.outMax)
		p.lastOutput = output
		return output
	}

	if dt <= 0 {
		return p.lastOutput
	}

	err := target - measured

	// --- P Term ---
	proportionalTerm := p.p * err

	// --- I Term (with basic anti-windup) ---
	integrate := true
	// Don't integrate if output is already saturated AND the error is trying to push it further
	if p.lastOutput >= p.outMax && err > 0 {
		integrate = false
	}
	if p.lastOutput <= p.outMin && err < 0 {
		integrate = false
	}

	if integrate {
		p.integral = p.integral + err*dt
	}
	integralTerm := p.i * p.integral

	// --- D Term (on measurement) ---
	// avoid derivative kick
	derivativeRaw := (measured - p.lastMeasured) / dt
	derivativeTerm := -p.d * derivativeRaw

	output := Coerce(proportionalTerm+integralTerm+derivativeTerm, p.outMin, p.outMax)

	p.lastMeasured = measured
	p.lastOutput = output

	return output
}
