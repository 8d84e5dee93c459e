package deployment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProfilePortConflict(t *testing.T) {
	_, err := NewProfile("test",
		Service{Name: "a", Ports: []PortMapping{{Host: 3060, Container: 3060}}},
		Service{Name: "b", Ports: []PortMapping{{Host: 3060, Container: 8080}}},
	)
	require.ErrorIs(t, err, ErrPortConflict)

	var portErr *PortConflictError
	require.True(t, errors.As(err, &portErr))
	require.Equal(t, uint16(3060), portErr.Port)
	require.Equal(t, []string{"a", "b"}, portErr.Services)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Errors, 1)
}

func TestNewProfilePortsByProtocol(t *testing.T) {
	_, err := NewProfile("test",
		Service{Name: "a", Ports: []PortMapping{{Host: 3060, Container: 3060, Protocol: "tcp"}}},
		Service{Name: "b", Ports: []PortMapping{{Host: 3060, Container: 3060, Protocol: "udp"}}},
		Service{Name: "c", Ports: []PortMapping{{Container: 3060}}},
		Service{Name: "d", Ports: []PortMapping{{Container: 3060}}},
	)
	require.NoError(t, err)
}

func TestNewProfileVolumeConflict(t *testing.T) {
	_, err := NewProfile("test",
		Service{Name: "a", Volumes: []VolumeBind{{HostPath: "./volumes/data", ContainerPath: "/data"}}},
		Service{Name: "b", Volumes: []VolumeBind{{HostPath: "volumes/./data/", ContainerPath: "/db"}}},
	)
	require.ErrorIs(t, err, ErrVolumeConflict)

	var volumeErr *VolumeConflictError
	require.True(t, errors.As(err, &volumeErr))
	require.Equal(t, "volumes/data", volumeErr.Path)
}

func TestNewProfileCollectsErrors(t *testing.T) {
	_, err := NewProfile("test",
		Service{
			Name:    "a",
			Ports:   []PortMapping{{Host: 3060, Container: 3060}},
			Volumes: []VolumeBind{{HostPath: "/data", ContainerPath: "/data"}},
		},
		Service{
			Name:      "b",
			Ports:     []PortMapping{{Host: 3060, Container: 3060}},
			Volumes:   []VolumeBind{{HostPath: "/data", ContainerPath: "/data"}},
			DependsOn: []HealthDependency{{Service: "missing"}},
		},
		Service{Name: "a"},
		Service{},
	)
	require.ErrorIs(t, err, ErrPortConflict)
	require.ErrorIs(t, err, ErrVolumeConflict)
	require.ErrorIs(t, err, ErrInvalidService)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Equal(t, "test", validationErr.Profile)
	require.Len(t, validationErr.Errors, 5)
}

func TestNewProfileDependencyCycle(t *testing.T) {
	_, err := NewProfile("test",
		Service{Name: "a", DependsOn: []HealthDependency{{Service: "b", Condition: ConditionServiceHealthy}}},
		Service{Name: "b", DependsOn: []HealthDependency{{Service: "a", Condition: ConditionServiceHealthy}}},
		Service{Name: "c"},
	)
	require.ErrorIs(t, err, ErrDependencyCycle)
	require.ErrorContains(t, err, "[a b]")
}

func TestStartupOrder(t *testing.T) {
	p, err := NewProfile("test",
		Service{Name: "node", DependsOn: []HealthDependency{{Service: "db", Condition: ConditionServiceHealthy}}},
		Service{Name: "proxy", DependsOn: []HealthDependency{{Service: "node"}}},
		Service{Name: "db"},
		Service{Name: "metrics"},
	)
	require.NoError(t, err)

	order, err := p.StartupOrder()
	require.NoError(t, err)
	require.Equal(t, []string{"db", "metrics", "node", "proxy"}, order)
}

func TestProfileIsImmutable(t *testing.T) {
	services := []Service{{Name: "db", Command: []string{"postgres"}}}
	p, err := NewProfile("test", services...)
	require.NoError(t, err)

	services[0].Command[0] = "mysql"
	got, ok := p.Service("db")
	require.True(t, ok)
	require.Equal(t, []string{"postgres"}, got.Command)

	got.Command[0] = "mysql"
	p.Services()[0].Command[0] = "mysql"
	again, _ := p.Service("db")
	require.Equal(t, []string{"postgres"}, again.Command)

	_, ok = p.Service("missing")
	require.False(t, ok)
	require.Equal(t, "test", p.Name())
}
