package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/markusressel/turbine2go/cmd/global"
	"github.com/markusressel/turbine2go/internal/configuration"
	"github.com/markusressel/turbine2go/internal/controller"
	"github.com/markusressel/turbine2go/internal/simulation"
	"github.com/markusressel/turbine2go/internal/statistics"
	"github.com/markusressel/turbine2go/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	simulateTurbineId string
	simulateSteps     int
	simulateValve     float64
	simulateOutput    string
	simulateMetrics   bool
	simulateNoPlot    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate the operation of a single turbine",
	Long: `Feeds a synthetic speed ramp to the controller of a turbine,
regulating its valve once per simulated second.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		setupUi()
		global.LoadAndValidateConfig()

		config := configuration.CurrentConfig
		turbineConfig, err := findTurbineConfig(config, simulateTurbineId)
		if err != nil {
			return err
		}

		simulationConfig := config.Simulation
		if cmd.Flags().Changed("steps") {
			if simulateSteps <= 0 {
				return fmt.Errorf("steps must be > 0")
			}
			simulationConfig.Steps = simulateSteps
		}

		c := controller.NewSpeedController(turbineConfig)
		controller.RegisterController(c)

		if cmd.Flags().Changed("valve") {
			if simulateValve < 0.0 || simulateValve > 1.0 {
				return fmt.Errorf("invalid valve position %v, please enter a value between 0.0 and 1.0", simulateValve)
			}
			if err := c.AdjustValve(simulateValve); err != nil {
				return fmt.Errorf("unable to adjust valve position: %w", err)
			}
			ui.Success("Valve Position adjusted to %.2f%%", c.ValvePositionPercent())
		}

		simulator := simulation.NewSimulator(c, simulationConfig)
		trace := simulator.Run(context.Background())

		for _, line := range stepLines(trace) {
			ui.Printfln("%s", line)
		}
		ui.Printfln("")

		printSummary(trace)
		if !simulateNoPlot {
			printPlots(trace)
		}

		if len(simulateOutput) > 0 {
			if err := trace.WriteFile(simulateOutput); err != nil {
				return fmt.Errorf("unable to write trace: %w", err)
			}
			ui.Info("Trace written to %s", simulateOutput)
		}

		if simulateMetrics {
			registry := prometheus.NewRegistry()
			statistics.Register(registry, statistics.NewTurbineCollector([]*controller.SpeedController{c}))
			if err := statistics.WriteText(os.Stdout, registry); err != nil {
				return err
			}
		}

		return nil
	},
}

// stepLines describes every operational step of the trace.
// A failed step is already reported by the simulator.
func stepLines(trace *simulation.Trace) []string {
	var lines []string
	for _, step := range trace.Steps {
		if !step.Operational {
			continue
		}
		lines = append(lines, fmt.Sprintf("System is operational. Time: %ds, Current RPM: %.2f, Valve Position: %.2f%%",
			step.Step, step.CurrentRpm, step.ValvePosition*100))
	}
	return lines
}

func findTurbineConfig(config configuration.Configuration, id string) (configuration.TurbineConfig, error) {
	if len(id) <= 0 {
		return config.Turbines[0], nil
	}
	turbineConfig, exists := config.FindTurbineConfig(id)
	if !exists {
		var ids []string
		for _, t := range config.Turbines {
			ids = append(ids, t.ID)
		}
		return turbineConfig, fmt.Errorf("no turbine with id found: %s, options: %s", id, ids)
	}
	return turbineConfig, nil
}

func init() {
	simulateCmd.Flags().StringVarP(&simulateTurbineId, "id", "i", "", "Turbine ID as specified in the config (default is the first turbine)")
	simulateCmd.Flags().IntVarP(&simulateSteps, "steps", "s", configuration.DefaultSimulationSteps, "Number of simulated steps")
	simulateCmd.Flags().Float64VarP(&simulateValve, "valve", "", configuration.DefaultInitialValvePosition, "Manually set the valve position (0.0 to 1.0) before the simulation starts")
	simulateCmd.Flags().StringVarP(&simulateOutput, "output", "o", "", "Write the trace of the simulation as JSON to this file")
	simulateCmd.Flags().BoolVarP(&simulateMetrics, "metrics", "m", false, "Print the turbine metrics in the prometheus text format")
	simulateCmd.Flags().BoolVarP(&simulateNoPlot, "no-plot", "", false, "Do not plot rpm and valve position")

	rootCmd.AddCommand(simulateCmd)
}
