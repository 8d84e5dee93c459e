package deployment

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	composeIndent          = 2
	composeFilePermissions = os.FileMode(0600)
)

type composeFile struct {
	Name     string          `yaml:"name,omitempty"`
	Services composeServices `yaml:"services"`
}

type composeService struct {
	Image       string                       `yaml:"image"`
	Command     []string                     `yaml:"command,omitempty"`
	Ports       []string                     `yaml:"ports,omitempty"`
	Volumes     []string                     `yaml:"volumes,omitempty"`
	Environment []string                     `yaml:"environment,omitempty"`
	DependsOn   map[string]composeDependency `yaml:"depends_on,omitempty"`
	Healthcheck *composeHealthcheck          `yaml:"healthcheck,omitempty"`
}

type composeDependency struct {
	Condition string `yaml:"condition"`
}

type composeHealthcheck struct {
	Test        []string `yaml:"test"`
	Interval    string   `yaml:"interval,omitempty"`
	Timeout     string   `yaml:"timeout,omitempty"`
	Retries     int      `yaml:"retries,omitempty"`
	StartPeriod string   `yaml:"start_period,omitempty"`
}

type namedService struct {
	name    string
	service composeService
}

// composeServices keeps the declaration order of the services, a plain map
// would be sorted by the encoder
type composeServices []namedService

func (s composeServices) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, svc := range s {
		value := &yaml.Node{}
		if err := value.Encode(svc.service); err != nil {
			return nil, fmt.Errorf("error encoding service %s: %w", svc.name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: svc.name},
			value,
		)
	}
	return node, nil
}

func toCompose(s Service) composeService {
	cs := composeService{
		Image:   s.Image,
		Command: s.Command,
	}
	for _, p := range s.Ports {
		cs.Ports = append(cs.Ports, p.String())
	}
	for _, v := range s.Volumes {
		cs.Volumes = append(cs.Volumes, v.String())
	}
	for _, e := range s.Environment {
		cs.Environment = append(cs.Environment, e.String())
	}
	if len(s.DependsOn) > 0 {
		cs.DependsOn = make(map[string]composeDependency, len(s.DependsOn))
		for _, dep := range s.DependsOn {
			condition := dep.Condition
			if condition == "" {
				condition = ConditionServiceStarted
			}
			cs.DependsOn[dep.Service] = composeDependency{Condition: condition}
		}
	}
	if hc := s.Healthcheck; hc != nil {
		cs.Healthcheck = &composeHealthcheck{
			Test:        hc.Test,
			Interval:    composeDuration(hc.Interval),
			Timeout:     composeDuration(hc.Timeout),
			Retries:     hc.Retries,
			StartPeriod: composeDuration(hc.StartPeriod),
		}
	}
	return cs
}

func composeDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

// WriteCompose writes the profile as a docker compose document
func (p *Profile) WriteCompose(w io.Writer) error {
	doc := composeFile{Name: p.name}
	for _, s := range p.services {
		doc.Services = append(doc.Services, namedService{name: s.Name, service: toCompose(s)})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(composeIndent)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("error encoding compose document: %w", err)
	}
	return enc.Close()
}

// Compose returns the profile as a docker compose document
func (p *Profile) Compose() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.WriteCompose(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveCompose writes the docker compose document to fullPath
func (p *Profile) SaveCompose(fullPath string) error {
	data, err := p.Compose()
	if err != nil {
		return err
	}
	if err := os.WriteFile(fullPath, data, composeFilePermissions); err != nil {
		return fmt.Errorf("error writing compose file %s: %w", fullPath, err)
	}
	return nil
}
