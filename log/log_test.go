package log

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/hermeznetwork/tracerr"
	"github.com/stretchr/testify/require"
)

func TestLogNotInitialized(t *testing.T) {
	Info("Test log.Info", " value is ", 10)
	Infof("Test log.Infof %d", 10)
	Infow("Test log.Infow", "value", 10)
	Debugf("Test log.Debugf %d", 10)
	Error("Test log.Error", " value is ", 10)
	Errorf("Test log.Errorf %d", 10)
	Errorw("Test log.Errorw", "value", 10)
	Warnf("Test log.Warnf %d", 10)
	Warnw("Test log.Warnw", "value", 10)
}

func TestLog(t *testing.T) {
	cfg := Config{
		Environment: EnvironmentDevelopment,
		Level:       "debug",
		Outputs:     []string{"stderr"},
	}
	Init(cfg)

	Info("Test log.Info", " value is ", 10)
	Infof("Test log.Infof %d", 10)
	Infow("Test log.Infow", "value", 10)
	Debugf("Test log.Debugf %d", 10)
	Error("Test log.Error", " value is ", 10)
	Errorf("Test log.Errorf %d", 10)
	Errorw("Test log.Errorw", "value", 10)
	Warnf("Test log.Warnf %d", 10)
	Warnw("Test log.Warnw", "value", 10)
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	_, _, err := NewLogger(Config{Environment: EnvironmentProduction, Level: "verbose"})
	require.Error(t, err)
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.log")
	logger, level, err := NewLogger(Config{
		Environment: EnvironmentProduction,
		Level:       "warn",
		Outputs:     []string{path},
	})
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.Equal(t, "warn", level.String())
	require.FileExists(t, path)
}

func TestWithFieldsKeepsRoot(t *testing.T) {
	Init(Config{Environment: EnvironmentDevelopment, Level: "info"})
	root := GetDefaultLogger()
	child := WithFields("component", "envmap")
	require.NotSame(t, root, child)
	require.Same(t, root, GetDefaultLogger())
	child.Infof("derived logger %s", "works")
}

func TestAppendStackTraceMaybeArgs(t *testing.T) {
	plain := []interface{}{"msg", errors.New("plain")}
	require.Len(t, appendStackTraceMaybeArgs(plain), 2)

	traced := []interface{}{"msg", tracerr.Wrap(errors.New("traced"))}
	require.Len(t, appendStackTraceMaybeArgs(traced), 3)
}
