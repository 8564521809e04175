// Package version reports build provenance for the clawadm binaries.
package version

import (
	"fmt"
	"runtime"
)

// Populated at build time via -ldflags. GitVersion doubles as the version
// stamp written into provider request-id headers, so releases must keep it
// in the NNNN.N form the gateway fleet expects.
var (
	gitVersion = "0203.1"
	gitCommit  = "unknown"
	buildDate  = "1970-01-01T00:00:00Z"
)

// Info holds the version fields exposed on the command line.
type Info struct {
	GitVersion string `json:"gitVersion"`
	GitCommit  string `json:"gitCommit"`
	BuildDate  string `json:"buildDate"`
	GoVersion  string `json:"goVersion"`
	Compiler   string `json:"compiler"`
	Platform   string `json:"platform"`
}

// String returns the semantic version only; use %#v style printing or the
// JSON form for the full record.
func (i Info) String() string {
	return i.GitVersion
}

// Get returns the version information for the running binary.
func Get() Info {
	return Info{
		GitVersion: gitVersion,
		GitCommit:  gitCommit,
		BuildDate:  buildDate,
		GoVersion:  runtime.Version(),
		Compiler:   runtime.Compiler,
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
