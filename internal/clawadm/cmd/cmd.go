package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdcheck "github.com/openclaw/clawadm/internal/clawadm/cmd/check"
	cmdinfo "github.com/openclaw/clawadm/internal/clawadm/cmd/info"
	cmdsetup "github.com/openclaw/clawadm/internal/clawadm/cmd/setup"
	cmdutil "github.com/openclaw/clawadm/internal/clawadm/cmd/util"
	"github.com/openclaw/clawadm/pkg/cli/genericclioptions"
	"github.com/openclaw/clawadm/pkg/utils/cliflag"
	"github.com/openclaw/clawadm/pkg/utils/templates"
	"github.com/openclaw/clawadm/pkg/version/verflag"
)

// NewDefaultClawAdmCommand creates the `clawadm` command with default arguments.
func NewDefaultClawAdmCommand() *cobra.Command {
	return NewClawAdmCommand(os.Stdin, os.Stdout, os.Stderr)
}

func NewClawAdmCommand(in io.Reader, out, err io.Writer) *cobra.Command {
	// Parent command to which all subcommands are added.
	cmds := &cobra.Command{
		Use:   "clawadm",
		Short: "clawadm provisions hosts for the OpenClaw gateway",
		Long: templates.LongDesc(fmt.Sprintf(`%s
		clawadm is the CLI tool for provisioning a host to run the OpenClaw
		chat-gateway agent.

		It resolves credentials from the environment and a .env file, assembles
		the gateway's JSON configuration (auth token, model provider, messaging
		channels), tunes the gateway's systemd user service memory limits to
		the host's RAM, and enables and starts the service.

		Note: enabling the WeCom channel widens the gateway's network exposure;
		see the README before wiring WeCom credentials.`, Banner())),
		Run: runHelp,
		// Hook before and after Run initialize and write profiles to disk,
		// respectively.
		PersistentPreRunE: func(*cobra.Command, []string) error {
			verflag.PrintAndExitIfRequested()
			return initProfiling()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return flushProfiling()
		},
	}
	flags := cmds.PersistentFlags()
	flags.SetNormalizeFunc(cliflag.WarnWordSepNormalizeFunc) // Warn for "_" flags

	// Normalize all flags that are coming from other packages or pre-configurations
	flags.SetNormalizeFunc(cliflag.WordSepNormalizeFunc)

	addProfilingFlags(flags)
	addGlobalFlags(flags)

	_ = viper.BindPFlags(cmds.PersistentFlags())
	cmds.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	// From this point and forward we get warnings on flags that contain "_" separators
	cmds.SetGlobalNormalizationFunc(cliflag.WarnWordSepNormalizeFunc)

	ioStreams := genericclioptions.IOStreams{In: in, Out: out, ErrOut: err}
	f := cmdutil.NewDefaultFactory(cmdutil.FactoryOptions{MetadataAddr: GetMetadataAddr})

	groups := templates.CommandGroups{
		{
			Message: "Provisioning Commands:",
			Commands: []*cobra.Command{
				cmdsetup.NewCmdSetup(f, ioStreams),
			},
		},
		{
			Message: "Diagnostic Commands:",
			Commands: []*cobra.Command{
				cmdcheck.NewCmdCheck(f, ioStreams),
				cmdinfo.NewCmdInfo(f, ioStreams),
			},
		},
	}
	groups.Add(cmds)

	filters := []string{"options"}
	templates.ActsAsRootCommand(cmds, filters, groups)

	verflag.AddFlags(cmds.PersistentFlags())

	return cmds
}

func runHelp(cmd *cobra.Command, args []string) {
	_ = cmd.Help()
}
