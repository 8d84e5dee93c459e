package config

import (
	"github.com/0xPolygon/cdk-enconfig/config/types"
	"github.com/0xPolygon/cdk-enconfig/deployment"
)

// DeploymentConfig is the configuration of the services running the node
type DeploymentConfig struct {
	// Name is the compose project name
	Name          string `mapstructure:"Name"`
	PostgresImage string `mapstructure:"PostgresImage"`
	NodeImage     string `mapstructure:"NodeImage"`
	// VolumesDir is the host directory holding the bind mounted state
	VolumesDir             string `mapstructure:"VolumesDir"`
	PostgresPassword       string `mapstructure:"PostgresPassword"`
	PostgresMaxConnections int    `mapstructure:"PostgresMaxConnections"`
	// HostIP is the interface the node ports are published on
	HostIP string `mapstructure:"HostIP"`
	// HealthcheckInterval is the time between two database readiness probes
	HealthcheckInterval types.Duration `mapstructure:"HealthcheckInterval"`
	HealthcheckTimeout  types.Duration `mapstructure:"HealthcheckTimeout"`
	HealthcheckRetries  int            `mapstructure:"HealthcheckRetries"`
	// NodeFlags are extra command line flags of the node
	NodeFlags []string `mapstructure:"NodeFlags"`
}

// Options converts the configuration to the options of deployment.Default
func (c DeploymentConfig) Options() deployment.Options {
	return deployment.Options{
		Name:                   c.Name,
		PostgresImage:          c.PostgresImage,
		NodeImage:              c.NodeImage,
		VolumesDir:             c.VolumesDir,
		PostgresPassword:       c.PostgresPassword,
		PostgresMaxConnections: c.PostgresMaxConnections,
		HostIP:                 c.HostIP,
		HealthcheckInterval:    c.HealthcheckInterval.Duration,
		HealthcheckTimeout:     c.HealthcheckTimeout.Duration,
		HealthcheckRetries:     c.HealthcheckRetries,
		NodeFlags:              c.NodeFlags,
	}
}
