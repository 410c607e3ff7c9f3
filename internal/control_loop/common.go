package control_loop

type ControlLoop interface {
	// Loop advances the control loop and returns the valve position change
	// needed to move the measured speed towards the target
	Loop(target float64, measured float64) float64
}
