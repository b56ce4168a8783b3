package config

import "time"

// DatabaseConfig holds settings for reaching MySQL that do not come from the
// per-invocation environment. Host, credentials and schema are read by Env;
// the port is always 3306.
type DatabaseConfig struct {
	DialTimeout time.Duration `mapstructure:"DIAL_TIMEOUT" json:"dial_timeout" yaml:"dial_timeout" validate:"omitempty,timeout_duration"`
}
