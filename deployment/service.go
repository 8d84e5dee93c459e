package deployment

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/0xPolygon/cdk-enconfig/envmap"
	"github.com/docker/go-connections/nat"
)

const (
	// ProtocolTCP is the default port protocol
	ProtocolTCP = "tcp"
	// ConditionServiceHealthy waits until the dependency healthcheck passes
	ConditionServiceHealthy = "service_healthy"
	// ConditionServiceStarted only waits until the dependency is started
	ConditionServiceStarted = "service_started"
)

// PortMapping publishes a container port on the host
type PortMapping struct {
	// HostIP restricts the interfaces the port is published on, empty means all
	HostIP string
	// Host is the port exposed on the host, 0 lets the orchestrator pick one
	Host      uint16
	Container uint16
	Protocol  string
}

// ParsePortMapping parses the [ip:]host:container[/proto] form. Ranges produce
// one mapping per port.
func ParsePortMapping(spec string) ([]PortMapping, error) {
	mappings, err := nat.ParsePortSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid port spec %q: %w", spec, err)
	}
	res := make([]PortMapping, 0, len(mappings))
	for _, m := range mappings {
		pm := PortMapping{
			HostIP:    m.Binding.HostIP,
			Container: uint16(m.Port.Int()),
			Protocol:  m.Port.Proto(),
		}
		if m.Binding.HostPort != "" {
			host, err := strconv.ParseUint(m.Binding.HostPort, 10, 16)
			if err != nil {
				return nil, fmt.Errorf("invalid host port in %q: %w", spec, err)
			}
			pm.Host = uint16(host)
		}
		res = append(res, pm)
	}
	return res, nil
}

func (p PortMapping) protocol() string {
	if p.Protocol == "" {
		return ProtocolTCP
	}
	return p.Protocol
}

// Port returns the container port in the nat representation
func (p PortMapping) Port() (nat.Port, error) {
	return nat.NewPort(p.protocol(), strconv.Itoa(int(p.Container)))
}

// String returns the compose short syntax
func (p PortMapping) String() string {
	var b strings.Builder
	if p.HostIP != "" {
		b.WriteString(p.HostIP)
		b.WriteString(":")
	}
	if p.Host != 0 {
		b.WriteString(strconv.Itoa(int(p.Host)))
		b.WriteString(":")
	}
	b.WriteString(strconv.Itoa(int(p.Container)))
	if p.protocol() != ProtocolTCP {
		b.WriteString("/")
		b.WriteString(p.protocol())
	}
	return b.String()
}

// VolumeBind mounts a host path into the container
type VolumeBind struct {
	HostPath      string
	ContainerPath string
	ReadOnly      bool
}

// String returns the compose short syntax
func (v VolumeBind) String() string {
	s := v.HostPath + ":" + v.ContainerPath
	if v.ReadOnly {
		s += ":ro"
	}
	return s
}

func (v VolumeBind) cleanHostPath() string {
	return filepath.Clean(v.HostPath)
}

// Healthcheck is the readiness probe of a service. It's only declared here,
// the orchestrator runs it.
type Healthcheck struct {
	Test        []string
	Interval    time.Duration
	Timeout     time.Duration
	Retries     int
	StartPeriod time.Duration
}

// HealthDependency delays the start of a service until another one reaches Condition
type HealthDependency struct {
	Service   string
	Condition string
}

// Service is a process of the deployment
type Service struct {
	Name        string
	Image       string
	Ports       []PortMapping
	Volumes     []VolumeBind
	Environment []envmap.Entry
	DependsOn   []HealthDependency
	Healthcheck *Healthcheck
	// Command is the ordered list of arguments passed to the service process
	Command []string
}

func (s Service) clone() Service {
	c := s
	c.Ports = slices.Clone(s.Ports)
	c.Volumes = slices.Clone(s.Volumes)
	c.Environment = slices.Clone(s.Environment)
	c.DependsOn = slices.Clone(s.DependsOn)
	c.Command = slices.Clone(s.Command)
	if s.Healthcheck != nil {
		hc := *s.Healthcheck
		hc.Test = slices.Clone(s.Healthcheck.Test)
		c.Healthcheck = &hc
	}
	return c
}
