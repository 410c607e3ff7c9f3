package sensor

import (
	"fmt"
	"time"

	"github.com/markusressel/turbine2go/cmd/global"
	"github.com/markusressel/turbine2go/internal/configuration"
	"github.com/markusressel/turbine2go/internal/controller"
	"github.com/markusressel/turbine2go/internal/sensors"
	"github.com/markusressel/turbine2go/internal/ui"
	"github.com/spf13/cobra"
)

var (
	turbineId string
	rawRpm    float64
)

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the sensor status of a turbine",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.LoadAndValidateConfig()

		c, err := getController(turbineId)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("rpm") {
			if err := c.IngestSpeed(rawRpm); err != nil {
				ui.Warning("%v", err)
			}
		}
		c.RefreshHealth()

		rows := [][]string{
			sensorRow(c.RpmSensor(), fmt.Sprintf("%.2f", float64(c.RpmSensor().Reading())), c.RpmSensor().GetRange()),
			sensorRow(c.ValveSensor(), fmt.Sprintf("%.2f%%", c.ValveSensor().Reading().Percent()), c.ValveSensor().GetRange()),
		}
		err = ui.PrintTable(
			[]string{"Sensor", "Reading", "Range", "Status", "Last update"},
			rows,
			!global.NoColor,
		)
		if err != nil {
			return err
		}

		if c.IsOperational() {
			ui.Success("System is operational")
		} else {
			ui.Error("System is not operational")
		}
		return nil
	},
}

func sensorRow(sensor sensors.Sensor, reading string, valueRange fmt.Stringer) []string {
	lastUpdate := "never"
	if !sensor.GetLastUpdateTime().IsZero() {
		lastUpdate = sensor.GetLastUpdateTime().Format(time.RFC3339)
	}

	return []string{
		sensor.GetId(),
		reading,
		valueRange.String(),
		sensor.GetStatus().String(),
		lastUpdate,
	}
}

func getController(id string) (*controller.SpeedController, error) {
	config := configuration.CurrentConfig

	turbineConfig, exists := config.FindTurbineConfig(id)
	if !exists {
		availableIds := []string{}
		for _, t := range config.Turbines {
			availableIds = append(availableIds, t.ID)
		}
		return nil, fmt.Errorf("no turbine with id found: %s, options: %s", id, availableIds)
	}

	return controller.NewSpeedController(turbineConfig), nil
}

func init() {
	Command.PersistentFlags().StringVarP(
		&turbineId,
		"id", "i",
		"",
		"Turbine ID as specified in the config",
	)
	Command.Flags().Float64VarP(
		&rawRpm,
		"rpm", "r",
		0,
		"Feed a speed measurement to the rpm sensor before printing its status",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}
