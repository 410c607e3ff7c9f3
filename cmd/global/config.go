package global

import (
	"github.com/markusressel/turbine2go/internal/configuration"
	"github.com/markusressel/turbine2go/internal/ui"
)

// LoadAndValidateConfig loads the configuration into configuration.CurrentConfig
// and exits the process if it is invalid
func LoadAndValidateConfig() {
	configPath := configuration.DetectConfigFile()
	if len(configPath) > 0 {
		ui.Info("Using configuration file at: %s", configPath)
	}
	configuration.LoadConfig()
	if err := configuration.Validate(); err != nil {
		ui.FatalWithoutStacktrace("Config Validation Error: %v", err)
	}
}
