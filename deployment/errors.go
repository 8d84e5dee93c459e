package deployment

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPortConflict is matched by every PortConflictError
	ErrPortConflict = errors.New("port conflict")
	// ErrVolumeConflict is matched by every VolumeConflictError
	ErrVolumeConflict = errors.New("volume conflict")
	// ErrInvalidService is returned for a service that can't be part of a profile
	ErrInvalidService = errors.New("invalid service")
	// ErrDependencyCycle is returned when the health dependencies form a cycle
	ErrDependencyCycle = errors.New("dependency cycle")
)

// PortConflictError reports a host port exposed more than once
type PortConflictError struct {
	Port     uint16
	Protocol string
	Services []string
}

func (e *PortConflictError) Error() string {
	return fmt.Sprintf("port %d/%s exposed by more than one declaration: %s",
		e.Port, e.Protocol, strings.Join(e.Services, ", "))
}

func (e *PortConflictError) Is(target error) bool {
	return target == ErrPortConflict
}

// VolumeConflictError reports a host path bound more than once
type VolumeConflictError struct {
	Path     string
	Services []string
}

func (e *VolumeConflictError) Error() string {
	return fmt.Sprintf("host path %s bound by more than one declaration: %s",
		e.Path, strings.Join(e.Services, ", "))
}

func (e *VolumeConflictError) Is(target error) bool {
	return target == ErrVolumeConflict
}

// ValidationError collects every inconsistency found in a profile
type ValidationError struct {
	Profile string
	Errors  []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid deployment profile %s:\n\t- %s", e.Profile, strings.Join(msgs, "\n\t- "))
}

func (e *ValidationError) Unwrap() []error {
	return e.Errors
}
