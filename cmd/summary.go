package cmd

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/turbine2go/cmd/global"
	"github.com/markusressel/turbine2go/internal/controller"
	"github.com/markusressel/turbine2go/internal/simulation"
	"github.com/markusressel/turbine2go/internal/ui"
)

func operationalText(operational bool) string {
	if operational {
		return "Operational"
	}
	return "Not Operational"
}

// printSummary prints the final state of the turbine of the given trace
func printSummary(trace *simulation.Trace) {
	c, exists := controller.TurbineMap.Get(trace.Turbine)
	if !exists {
		ui.Warning("No controller found for turbine %s", trace.Turbine)
		return
	}

	settled := "-"
	if trace.SettledAtStep >= 0 {
		settled = fmt.Sprintf("%ds", trace.SettledAtStep)
	}

	summary := trace.Summary()

	err := ui.PrintTable(
		[]string{"Turbine", "Steps", "Current RPM", "Target RPM", "Min/Max RPM", "Valve Position", "Avg Valve", "System", "RPM Sensor", "Valve Sensor", "Settled"},
		[][]string{
			{
				c.GetId(),
				fmt.Sprintf("%d", len(trace.Steps)),
				fmt.Sprintf("%.2f", c.CurrentRpm()),
				fmt.Sprintf("%.0f", c.GetConfig().TargetRpm),
				fmt.Sprintf("%.2f / %.2f", summary.MinRpm, summary.MaxRpm),
				fmt.Sprintf("%.2f%%", c.ValvePositionPercent()),
				fmt.Sprintf("%.2f%%", summary.AvgValvePercent),
				operationalText(c.IsOperational()),
				operationalText(c.RpmSensorStatus()),
				operationalText(c.ValvePositionSensorStatus()),
				settled,
			},
		},
		!global.NoColor,
	)
	if err != nil {
		ui.Error("Unable to print summary: %v", err)
	}
}

// printPlots prints the speed and valve position of every step of the given trace
func printPlots(trace *simulation.Trace) {
	if len(trace.Steps) < 2 {
		return
	}

	rpmGraph := asciigraph.Plot(trace.RpmValues(),
		asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption("RPM / Time (s)"))
	ui.Printfln("%s", rpmGraph)
	ui.Printfln("")

	valveGraph := asciigraph.Plot(trace.ValvePercentValues(),
		asciigraph.Height(10), asciigraph.Width(100), asciigraph.Caption("Valve Position (%) / Time (s)"))
	ui.Printfln("%s", valveGraph)
}
