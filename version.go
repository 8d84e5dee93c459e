// Package enconfig holds the build information of the external node configuration tool
package enconfig

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Populated during build with -ldflags "-X github.com/0xPolygon/cdk-enconfig.<Var>=..."
var (
	Version   = "v0.1.0"
	GitRev    = "undefined"
	GitBranch = "undefined"
	BuildDate = "Fri, 17 Jun 1988 01:58:00 +0200"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string
	GitRev    string
	GitBranch string
	BuildDate string
	GoVersion string
	OS        string
	Arch      string
}

// GetVersion returns the build information of the running binary
func GetVersion() BuildInfo {
	return BuildInfo{
		Version:   Version,
		GitRev:    GitRev,
		GitBranch: GitBranch,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Platform is the os/arch pair the binary was built for
func (b BuildInfo) Platform() string {
	return b.OS + "/" + b.Arch
}

type buildField struct {
	label string
	key   string
	value string
}

// fields keeps the order shared by the text and the log renderings
func (b BuildInfo) fields() []buildField {
	return []buildField{
		{"Version", "version", b.Version},
		{"Git revision", "gitRevision", b.GitRev},
		{"Git branch", "gitBranch", b.GitBranch},
		{"Go version", "goVersion", b.GoVersion},
		{"Built", "built", b.BuildDate},
		{"OS/Arch", "os/arch", b.Platform()},
	}
}

// LogFields returns the key/value pairs to pass to log.Infow
func (b BuildInfo) LogFields() []interface{} {
	fields := b.fields()
	kv := make([]interface{}, 0, 2*len(fields)) //nolint:mnd
	for _, f := range fields {
		kv = append(kv, f.key, f.value)
	}
	return kv
}

func (b BuildInfo) String() string {
	var sb strings.Builder
	for _, f := range b.fields() {
		fmt.Fprintf(&sb, "%-14s%s\n", f.label+":", f.value)
	}
	return sb.String()
}

// PrintVersion writes the build information of the running binary to w
func PrintVersion(w io.Writer) error {
	_, err := io.WriteString(w, GetVersion().String())
	return err
}
