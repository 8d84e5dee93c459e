package enconfig

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	info := GetVersion()
	require.Equal(t, Version, info.Version)
	require.NotEmpty(t, info.GitRev)
	require.NotEmpty(t, info.GitBranch)
	require.NotEmpty(t, info.BuildDate)
	require.Equal(t, runtime.Version(), info.GoVersion)
	require.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform())
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintVersion(&buf))
	require.Contains(t, buf.String(), "Version:      "+Version+"\n")
	require.Contains(t, buf.String(), "Git revision: "+GitRev+"\n")
	require.Contains(t, buf.String(), "OS/Arch:      "+runtime.GOOS+"/"+runtime.GOARCH+"\n")
}

func TestBuildInfoLogFields(t *testing.T) {
	info := BuildInfo{Version: "v1", GitRev: "abc", OS: "linux", Arch: "amd64"}
	kv := info.LogFields()
	require.Len(t, kv, 12)
	require.Equal(t, []interface{}{"version", "v1", "gitRevision", "abc"}, kv[:4])
	require.Equal(t, []interface{}{"os/arch", "linux/amd64"}, kv[10:])
}
