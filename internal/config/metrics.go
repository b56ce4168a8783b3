package config

// MetricsConfig holds metrics configuration settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	Addr    string `mapstructure:"ADDR"    json:"addr"    yaml:"addr"    validate:"required_if=Enabled true,omitempty,listen_addr"`
}
