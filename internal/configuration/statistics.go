package configuration

type StatisticsConfig struct {
	// Enabled registers the turbine collector with the prometheus default registry
	Enabled bool `json:"enabled"`
}
