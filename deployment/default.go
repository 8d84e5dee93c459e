package deployment

import (
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/0xPolygon/cdk-enconfig/envmap"
)

const (
	// ServicePostgres is the name of the database service
	ServicePostgres = "postgres"
	// ServiceExternalNode is the name of the node service
	ServiceExternalNode = "external-node"
	// FlagEnableSnapshotsRecovery makes the node restore its state from a snapshot on first start
	FlagEnableSnapshotsRecovery = "--enable-snapshots-recovery"

	postgresDataDir     = "/var/lib/postgresql/data"
	nodeDataDir         = "/db"
	postgresVolumeName  = "postgres"
	nodeVolumeName      = "rocksdb"
	defaultProfileName  = "external-node"
	defaultPostgresUser = "postgres"
)

// Options are the infrastructure parameters of the default profile
type Options struct {
	// Name of the profile, used as compose project name
	Name          string `mapstructure:"Name"`
	PostgresImage string `mapstructure:"PostgresImage"`
	NodeImage     string `mapstructure:"NodeImage"`
	// VolumesDir is the host directory holding the bind mounted state
	VolumesDir             string `mapstructure:"VolumesDir"`
	PostgresPassword       string `mapstructure:"PostgresPassword"`
	PostgresMaxConnections int    `mapstructure:"PostgresMaxConnections"`
	// HostIP is the interface the node ports are published on
	HostIP              string        `mapstructure:"HostIP"`
	HealthcheckInterval time.Duration `mapstructure:"HealthcheckInterval"`
	HealthcheckTimeout  time.Duration `mapstructure:"HealthcheckTimeout"`
	HealthcheckRetries  int           `mapstructure:"HealthcheckRetries"`
	// NodeFlags are appended to the node command line
	NodeFlags []string `mapstructure:"NodeFlags"`
}

// DefaultOptions returns the options used for every unset field of Options
func DefaultOptions() Options {
	return Options{
		Name:                   defaultProfileName,
		PostgresImage:          "postgres:14",
		NodeImage:              "matterlabs/external-node:latest",
		VolumesDir:             "./volumes",
		PostgresPassword:       "notsecurepassword",
		PostgresMaxConnections: 200,
		HostIP:                 "127.0.0.1",
		HealthcheckInterval:    time.Second,
		HealthcheckTimeout:     3 * time.Second,
		HealthcheckRetries:     10,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Name == "" {
		o.Name = def.Name
	}
	if o.PostgresImage == "" {
		o.PostgresImage = def.PostgresImage
	}
	if o.NodeImage == "" {
		o.NodeImage = def.NodeImage
	}
	if o.VolumesDir == "" {
		o.VolumesDir = def.VolumesDir
	}
	if o.PostgresPassword == "" {
		o.PostgresPassword = def.PostgresPassword
	}
	if o.PostgresMaxConnections == 0 {
		o.PostgresMaxConnections = def.PostgresMaxConnections
	}
	if o.HostIP == "" {
		o.HostIP = def.HostIP
	}
	if o.HealthcheckInterval == 0 {
		o.HealthcheckInterval = def.HealthcheckInterval
	}
	if o.HealthcheckTimeout == 0 {
		o.HealthcheckTimeout = def.HealthcheckTimeout
	}
	if o.HealthcheckRetries == 0 {
		o.HealthcheckRetries = def.HealthcheckRetries
	}
	return o
}

// Default builds the two services profile running an external node next to
// its postgres database. The node publishes its HTTP, WS and healthcheck ports,
// receives env as environment and starts once postgres accepts connections.
func Default(env envmap.Env, opts Options) (*Profile, error) {
	opts = opts.withDefaults()

	postgres := Service{
		Name:  ServicePostgres,
		Image: opts.PostgresImage,
		Volumes: []VolumeBind{{
			HostPath:      bindPath(opts.VolumesDir, postgresVolumeName),
			ContainerPath: postgresDataDir,
		}},
		Environment: []envmap.Entry{
			{Key: "POSTGRES_PASSWORD", Value: opts.PostgresPassword},
		},
		Healthcheck: &Healthcheck{
			Test:     []string{"CMD-SHELL", "pg_isready -U " + defaultPostgresUser},
			Interval: opts.HealthcheckInterval,
			Timeout:  opts.HealthcheckTimeout,
			Retries:  opts.HealthcheckRetries,
		},
		Command: []string{"postgres", "-c", "max_connections=" + strconv.Itoa(opts.PostgresMaxConnections)},
	}

	rt := env.Runtime
	node := Service{
		Name:  ServiceExternalNode,
		Image: opts.NodeImage,
		Ports: []PortMapping{
			{HostIP: opts.HostIP, Host: rt.HTTPPort, Container: rt.HTTPPort, Protocol: ProtocolTCP},
			{HostIP: opts.HostIP, Host: rt.WSPort, Container: rt.WSPort, Protocol: ProtocolTCP},
			{HostIP: opts.HostIP, Host: rt.HealthcheckPort, Container: rt.HealthcheckPort, Protocol: ProtocolTCP},
		},
		Volumes: []VolumeBind{{
			HostPath:      bindPath(opts.VolumesDir, nodeVolumeName),
			ContainerPath: nodeDataDir,
		}},
		Environment: env.Entries(),
		DependsOn: []HealthDependency{
			{Service: ServicePostgres, Condition: ConditionServiceHealthy},
		},
		Command: nodeCommand(rt, opts.NodeFlags),
	}

	return NewProfile(opts.Name, postgres, node)
}

// bindPath joins dir and name keeping a relative path explicit, compose reads
// "volumes/x" as a named volume and "./volumes/x" as a bind mount.
func bindPath(dir, name string) string {
	p := path.Join(dir, name)
	if path.IsAbs(p) || strings.HasPrefix(p, "../") {
		return p
	}
	return "./" + p
}

func nodeCommand(rt envmap.RuntimeParams, extra []string) []string {
	var cmd []string
	if rt.SnapshotsRecoveryEnabled {
		cmd = append(cmd, FlagEnableSnapshotsRecovery)
	}
	return append(cmd, extra...)
}
