package configuration

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/markusressel/turbine2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	Turbines   []TurbineConfig  `json:"turbines"`
	Simulation SimulationConfig `json:"simulation"`
	Statistics StatisticsConfig `json:"statistics"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("turbine2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/turbine2go/")
	}

	viper.SetEnvPrefix("turbine2go")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("turbines", []TurbineConfig{
		DefaultTurbineConfig(DefaultTurbineId),
	})

	viper.SetDefault("simulation.steps", DefaultSimulationSteps)
	viper.SetDefault("simulation.maxRpmIncrease", DefaultMaxRpmIncrease)
	viper.SetDefault("simulation.rampFactor", DefaultRampFactor)
	viper.SetDefault("simulation.tickRate", 0*time.Second)
	viper.SetDefault("simulation.settleWindowSize", DefaultSettleWindowSize)
	viper.SetDefault("simulation.settleThreshold", DefaultSettleThreshold)

	viper.SetDefault("statistics.enabled", false)
}

// DetectConfigFile reads the config file, if there is one, and returns its path.
// An empty path means that only default values are in use.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &notFoundError) {
			ui.Warning("No configuration file found, using default values")
			return ""
		}
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

// LoadConfig decodes the current viper state into CurrentConfig
func LoadConfig() {
	config, err := decodeConfig(viper.GetViper())
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
	CurrentConfig = config
}

func decodeConfig(v *viper.Viper) (Configuration, error) {
	var config Configuration
	err := v.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	))
	if err != nil {
		return config, err
	}

	config.Turbines, err = decodeTurbines(v.Get("turbines"))
	return config, err
}

// decodeTurbines decodes every turbine on top of DefaultTurbineConfig,
// so omitted values keep their default, including single fields of nested blocks.
func decodeTurbines(raw interface{}) ([]TurbineConfig, error) {
	var items []map[string]interface{}
	if err := mapstructure.Decode(raw, &items); err != nil {
		return nil, fmt.Errorf("turbines: %w", err)
	}

	var result []TurbineConfig
	for i, item := range items {
		turbine := DefaultTurbineConfig("")
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			WeaklyTypedInput: true,
			Result:           &turbine,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(item); err != nil {
			return nil, fmt.Errorf("turbines[%d]: %w", i, err)
		}
		result = append(result, turbine)
	}
	return result, nil
}
