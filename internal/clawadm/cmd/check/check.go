package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openclaw/clawadm/internal/clawadm/cmd/util"
	"github.com/openclaw/clawadm/pkg/cli/genericclioptions"
	"github.com/openclaw/clawadm/pkg/utils/templates"
)

var checkExample = templates.Examples(heredoc.Doc(`
		# Run every pre-flight check
		clawadm check

		# Check an alternate config directory
		clawadm check --config-dir=/srv/openclaw
`))

// Check holds the options for the 'check' sub command.
type Check struct {
	ConfigDir string
	UnitFile  string

	Factory util.Factory
	genericclioptions.IOStreams
}

// NewCheckOptions returns check options with production defaults.
func NewCheckOptions(f util.Factory, ioStreams genericclioptions.IOStreams) *Check {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "/root"
	}
	return &Check{
		ConfigDir: filepath.Join(home, ".openclaw"),
		UnitFile:  filepath.Join(home, ".config", "systemd", "user", "openclaw-gateway.service"),
		Factory:   f,
		IOStreams: ioStreams,
	}
}

// NewCmdCheck returns the 'check' sub command.
func NewCmdCheck(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewCheckOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "check",
		DisableFlagsInUseLine: true,
		Short:                 "Run pre-flight checks for a gateway setup",
		Long: templates.LongDesc(`
		Validate that this host is ready for 'clawadm setup': service manager
		availability, config directory and document sanity, detectable memory,
		and metadata service reachability.

		Warnings describe conditions setup degrades around on its own; only a
		failed check points at something setup cannot work through.`),
		Example: checkExample,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&o.ConfigDir, "config-dir", o.ConfigDir, "Directory holding openclaw.json and the optional .env file")
	cmd.Flags().StringVar(&o.UnitFile, "unit-file", o.UnitFile, "Gateway unit file location")

	return cmd
}

// Run executes the pre-flight checks and renders one line per result.
func (o *Check) Run(ctx context.Context) error {
	checker := o.Factory.HostChecker(util.CheckTargets{
		ConfigDir:  o.ConfigDir,
		UnitFile:   o.UnitFile,
		RuntimeDir: fmt.Sprintf("/run/user/%d", os.Getuid()),
	})

	fmt.Fprintf(o.Out, "Running pre-flight checks...\n\n")

	failed := 0
	for _, r := range checker.RunAll(ctx) {
		mark := color.GreenString("✔")
		switch r.Status {
		case "warning":
			mark = color.YellowString("⚠")
		case "failed":
			mark = color.RedString("✖")
			failed++
		}
		fmt.Fprintf(o.Out, "%s %-18s %s\n", mark, r.Name, r.Message)
	}

	if failed > 0 {
		fmt.Fprintf(o.Out, "\n%d check(s) failed.\n", failed)
		return fmt.Errorf("host is not ready for setup")
	}
	fmt.Fprintf(o.Out, "\nHost looks ready. Run 'clawadm setup' to provision.\n")
	return nil
}
