package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/markusressel/turbine2go/cmd/config"
	"github.com/markusressel/turbine2go/cmd/global"
	"github.com/markusressel/turbine2go/cmd/sensor"
	"github.com/markusressel/turbine2go/internal"
	"github.com/markusressel/turbine2go/internal/configuration"
	"github.com/markusressel/turbine2go/internal/statistics"
	"github.com/markusressel/turbine2go/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "turbine2go",
	Short: "A closed-loop turbine speed regulator.",
	Long: `turbine2go regulates the speed of simulated turbines
by adjusting their valve position based on rpm measurements.`,
	// this is the default command to run when no subcommand is specified
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAllTurbines()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Regulate all configured turbines until their simulation is done",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAllTurbines()
	},
}

func runAllTurbines() error {
	setupUi()
	printHeader()

	global.LoadAndValidateConfig()

	currentConfig := configuration.CurrentConfig
	controllers := internal.InitializeObjects(currentConfig, prometheus.DefaultRegisterer)

	traces, err := internal.RunTurbines(context.Background(), controllers, currentConfig.Simulation)
	if err != nil {
		return err
	}

	for _, trace := range traces {
		printSummary(trace)
	}

	if currentConfig.Statistics.Enabled {
		return statistics.WriteText(os.Stdout, prometheus.DefaultGatherer)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/turbine2go.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(sensor.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("turbine", pterm.NewStyle(pterm.FgLightBlue)),
		pterm.NewLettersFromStringWithStyle("2", pterm.NewStyle(pterm.FgWhite)),
		pterm.NewLettersFromStringWithStyle("go", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()
	if err != nil {
		fmt.Println("turbine2go")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
