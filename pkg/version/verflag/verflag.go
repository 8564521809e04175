// Package verflag defines utility functions to handle command line flags
// related to version of clawadm.
package verflag

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/openclaw/clawadm/pkg/version"
)

var versionFlag = pflag.Bool("version", false, "Print version information and quit")

// AddFlags registers the --version flag on the given flag set.
func AddFlags(fs *pflag.FlagSet) {
	fs.AddFlag(pflag.Lookup("version"))
}

// PrintAndExitIfRequested checks whether --version was passed and, if so,
// prints the version and exits.
func PrintAndExitIfRequested() {
	if *versionFlag {
		info := version.Get()
		fmt.Printf("clawadm %s (%s, built %s, %s %s)\n",
			info.GitVersion, info.GitCommit, info.BuildDate, info.GoVersion, info.Platform)
		os.Exit(0)
	}
}
