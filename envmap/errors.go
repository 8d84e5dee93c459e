package envmap

import (
	"errors"
	"fmt"
)

// ErrEnvParse is matched by every ParseError
var ErrEnvParse = errors.New("environment variable parse error")

// ParseError reports an environment variable whose value can't be used
type ParseError struct {
	Key    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid environment variable %s: %s", e.Key, e.Reason)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrEnvParse
}

func newParseError(key string, err error) *ParseError {
	return &ParseError{Key: key, Reason: err.Error()}
}
