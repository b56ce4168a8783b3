package config

import (
	"github.com/spf13/viper"
)

// Environment variable names read on every invocation.
const (
	EnvMySQLHost     = "MYSQL_HOST"
	EnvMySQLUsername = "MYSQL_USERNAME"
	EnvMySQLPassword = "MYSQL_PASSWORD"
	EnvDatabaseName  = "DATABASE_NAME"
	EnvPodName       = "POD_NAME"
	EnvNodeName      = "NODE_NAME"
)

var connectionEnvNames = []string{
	EnvMySQLHost,
	EnvMySQLUsername,
	EnvMySQLPassword,
	EnvDatabaseName,
	EnvPodName,
	EnvNodeName,
}

// ConnectionParams is the per-invocation record the page handler works from.
// Values are taken as-is: nothing is validated or defaulted, and an unset
// variable is an empty string.
type ConnectionParams struct {
	Host     string
	Username string
	Password string
	Database string
	// PodName is read for logging only; the page reports the OS hostname.
	PodName  string
	NodeName string
}

// Env resolves ConnectionParams from the process environment. Lookups are
// late-bound, so a changed variable is seen by the next invocation.
type Env struct {
	v *viper.Viper
}

// NewEnv binds the connection variables by their exact names, without the
// service prefix used by Load.
func NewEnv() *Env {
	v := viper.New()
	for _, name := range connectionEnvNames {
		// BindEnv only errors on an empty key.
		_ = v.BindEnv(name, name)
	}
	return &Env{v: v}
}

// ConnectionParams reads the six variables now.
func (e *Env) ConnectionParams() ConnectionParams {
	return ConnectionParams{
		Host:     e.v.GetString(EnvMySQLHost),
		Username: e.v.GetString(EnvMySQLUsername),
		Password: e.v.GetString(EnvMySQLPassword),
		Database: e.v.GetString(EnvDatabaseName),
		PodName:  e.v.GetString(EnvPodName),
		NodeName: e.v.GetString(EnvNodeName),
	}
}

// Presence reports which variables are set, without their values.
func (e *Env) Presence() map[string]bool {
	out := make(map[string]bool, len(connectionEnvNames))
	for _, name := range connectionEnvNames {
		out[name] = e.v.IsSet(name)
	}
	return out
}
