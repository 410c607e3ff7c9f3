package simulation

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/markusressel/turbine2go/internal/util"
	"github.com/natefinch/atomic"
)

// Trace is the record of a single simulation run
type Trace struct {
	RunId      string       `json:"runId"`
	Turbine    string       `json:"turbine"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Steps      []StepResult `json:"steps"`
	// SettledAtStep is -1 if the turbine did not settle
	SettledAtStep int  `json:"settledAtStep"`
	Failed        bool `json:"failed"`
}

func NewTrace(turbine string) *Trace {
	return &Trace{
		RunId:         uuid.NewString(),
		Turbine:       turbine,
		StartedAt:     time.Now(),
		SettledAtStep: -1,
	}
}

func (t *Trace) finish(s *Simulator) {
	t.FinishedAt = time.Now()
	t.SettledAtStep = s.SettledAt()
}

// Last returns the result of the last executed step
func (t *Trace) Last() (StepResult, bool) {
	if len(t.Steps) <= 0 {
		return StepResult{}, false
	}
	return t.Steps[len(t.Steps)-1], true
}

// RpmValues returns the speed of every step, in order
func (t *Trace) RpmValues() []float64 {
	result := make([]float64, 0, len(t.Steps))
	for _, step := range t.Steps {
		result = append(result, step.CurrentRpm)
	}
	return result
}

// ValvePercentValues returns the valve position of every step in percent, in order
func (t *Trace) ValvePercentValues() []float64 {
	result := make([]float64, 0, len(t.Steps))
	for _, step := range t.Steps {
		result = append(result, step.ValvePosition*100)
	}
	return result
}

// TraceSummary holds aggregated values of all steps of a trace
type TraceSummary struct {
	MinRpm          float64
	MaxRpm          float64
	AvgValvePercent float64
}

func (t *Trace) Summary() TraceSummary {
	if len(t.Steps) <= 0 {
		return TraceSummary{}
	}
	rpmValues := t.RpmValues()
	return TraceSummary{
		MinRpm:          util.Min(rpmValues),
		MaxRpm:          util.Max(rpmValues),
		AvgValvePercent: util.Avg(t.ValvePercentValues()),
	}
}

// WriteFile stores the trace as JSON. The file is replaced atomically.
func (t *Trace) WriteFile(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
