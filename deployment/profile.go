// Package deployment describes the services needed to run an external node
// next to its database. A Profile is a static descriptor handed to an
// external orchestrator; nothing here starts or polls processes.
package deployment

import (
	"errors"
	"fmt"

	"github.com/golang-collections/collections/queue"
)

// Profile is a validated, immutable set of services
type Profile struct {
	name     string
	services []Service
}

type portKey struct {
	port     uint16
	protocol string
}

// NewProfile checks that services are consistent with each other: no host
// port exposed twice, no host path bound twice, unique names and health
// dependencies that point to declared services without cycles. Every problem
// is reported in a single *ValidationError.
func NewProfile(name string, services ...Service) (*Profile, error) {
	var errs []error

	index := make(map[string]int, len(services))
	for i, s := range services {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%w: service #%d has no name", ErrInvalidService, i))
			continue
		}
		if _, found := index[s.Name]; found {
			errs = append(errs, fmt.Errorf("%w: service %s declared more than once", ErrInvalidService, s.Name))
			continue
		}
		index[s.Name] = i
	}

	errs = append(errs, portConflicts(services)...)
	errs = append(errs, volumeConflicts(services)...)

	for _, s := range services {
		for _, dep := range s.DependsOn {
			if _, found := index[dep.Service]; !found {
				errs = append(errs, fmt.Errorf("%w: service %s depends on unknown service %s",
					ErrInvalidService, s.Name, dep.Service))
			}
		}
	}

	p := &Profile{name: name, services: make([]Service, 0, len(services))}
	for _, s := range services {
		p.services = append(p.services, s.clone())
	}
	if len(errs) == 0 {
		if _, err := p.StartupOrder(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Profile: name, Errors: errs}
	}
	return p, nil
}

func portConflicts(services []Service) []error {
	var (
		errs  []error
		order []portKey
	)
	owners := make(map[portKey][]string)
	for _, s := range services {
		for _, pm := range s.Ports {
			if pm.Host == 0 {
				continue
			}
			key := portKey{port: pm.Host, protocol: pm.protocol()}
			if _, found := owners[key]; !found {
				order = append(order, key)
			}
			owners[key] = append(owners[key], s.Name)
		}
	}
	for _, key := range order {
		if len(owners[key]) > 1 {
			errs = append(errs, &PortConflictError{Port: key.port, Protocol: key.protocol, Services: owners[key]})
		}
	}
	return errs
}

func volumeConflicts(services []Service) []error {
	var (
		errs  []error
		order []string
	)
	owners := make(map[string][]string)
	for _, s := range services {
		for _, v := range s.Volumes {
			path := v.cleanHostPath()
			if _, found := owners[path]; !found {
				order = append(order, path)
			}
			owners[path] = append(owners[path], s.Name)
		}
	}
	for _, path := range order {
		if len(owners[path]) > 1 {
			errs = append(errs, &VolumeConflictError{Path: path, Services: owners[path]})
		}
	}
	return errs
}

// Name of the profile
func (p *Profile) Name() string {
	return p.name
}

// Services returns a copy of the services in declaration order
func (p *Profile) Services() []Service {
	res := make([]Service, 0, len(p.services))
	for _, s := range p.services {
		res = append(res, s.clone())
	}
	return res
}

// Service returns a copy of the named service
func (p *Profile) Service(name string) (Service, bool) {
	for _, s := range p.services {
		if s.Name == name {
			return s.clone(), true
		}
	}
	return Service{}, false
}

// StartupOrder returns the service names so that every service comes after
// the ones it depends on. Independent services keep their declaration order.
func (p *Profile) StartupOrder() ([]string, error) {
	pending := make(map[string]int, len(p.services))
	dependents := make(map[string][]string, len(p.services))
	for _, s := range p.services {
		pending[s.Name] = len(s.DependsOn)
		for _, dep := range s.DependsOn {
			dependents[dep.Service] = append(dependents[dep.Service], s.Name)
		}
	}

	ready := queue.New()
	for _, s := range p.services {
		if pending[s.Name] == 0 {
			ready.Enqueue(s.Name)
		}
	}

	order := make([]string, 0, len(p.services))
	for ready.Len() > 0 {
		name, ok := ready.Dequeue().(string)
		if !ok {
			return nil, errors.New("unexpected item in startup queue")
		}
		order = append(order, name)
		for _, dependent := range dependents[name] {
			pending[dependent]--
			if pending[dependent] == 0 {
				ready.Enqueue(dependent)
			}
		}
	}

	if len(order) != len(p.services) {
		var blocked []string
		for _, s := range p.services {
			if pending[s.Name] > 0 {
				blocked = append(blocked, s.Name)
			}
		}
		return nil, fmt.Errorf("%w between services %v", ErrDependencyCycle, blocked)
	}
	return order, nil
}
