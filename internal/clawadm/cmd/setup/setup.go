package setup

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/openclaw/clawadm/internal/clawadm/cmd/util"
	"github.com/openclaw/clawadm/internal/clawadm/envfile"
	"github.com/openclaw/clawadm/internal/clawadm/gateway"
	"github.com/openclaw/clawadm/internal/clawadm/sysd"
	"github.com/openclaw/clawadm/pkg/cli/genericclioptions"
	"github.com/openclaw/clawadm/pkg/logger"
	"github.com/openclaw/clawadm/pkg/utils/templates"
)

var setupExample = templates.Examples(heredoc.Doc(`
		# Provision this host with credentials from the environment
		ARK_API_KEY=... ARK_MODEL_ID=... clawadm setup

		# Provision from a prepared config directory holding a .env file
		clawadm setup --config-dir=/root/.openclaw

		# Write the gateway config only, leave systemd alone
		clawadm setup --skip-service
`))

// Setup holds the options for the 'setup' sub command.
type Setup struct {
	ConfigDir   string
	LogFile     string
	Service     string
	UnitFile    string
	SkipService bool

	Factory util.Factory
	genericclioptions.IOStreams
}

// NewSetupOptions returns setup options with production defaults.
func NewSetupOptions(f util.Factory, ioStreams genericclioptions.IOStreams) *Setup {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "/root"
	}
	return &Setup{
		ConfigDir: filepath.Join(home, ".openclaw"),
		LogFile:   "/var/log/openclaw-setup.log",
		Service:   "openclaw-gateway.service",
		UnitFile:  filepath.Join(home, ".config", "systemd", "user", "openclaw-gateway.service"),
		Factory:   f,
		IOStreams: ioStreams,
	}
}

// NewCmdSetup returns the 'setup' sub command.
func NewCmdSetup(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewSetupOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "setup",
		DisableFlagsInUseLine: true,
		Short:                 "Provision this host for the OpenClaw gateway",
		Long: templates.LongDesc(`
		Provision the local host for the OpenClaw chat-gateway agent.

		Credentials are resolved from the process environment first, then from
		the .env file inside the config directory. The gateway's JSON config is
		deep-merged in place (the prior file is kept as a .bak sibling), a fresh
		gateway auth token is generated on every run, and each messaging channel
		is enabled only when its own credentials are present. Finally the
		gateway's systemd user service gets memory limits sized to the host's
		RAM and is enabled and restarted with retries.

		Every failure along the way is a logged warning, not an abort: the
		command always finishes and always exits zero.`),
		Example: setupExample,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&o.ConfigDir, "config-dir", o.ConfigDir, "Directory holding openclaw.json and the optional .env file")
	cmd.Flags().StringVar(&o.LogFile, "log-file", o.LogFile, "Best-effort log file; stdout logging is unconditional")
	cmd.Flags().StringVar(&o.Service, "service", o.Service, "Systemd user unit to enable and restart")
	cmd.Flags().StringVar(&o.UnitFile, "unit-file", o.UnitFile, "Unit file that receives MemoryMax/MemoryHigh directives")
	cmd.Flags().BoolVar(&o.SkipService, "skip-service", o.SkipService, "Write the gateway config but do not touch systemd")

	return cmd
}

// Run executes the provisioning flow. It returns nil on every provisioning
// path; degraded steps are logged warnings.
func (o *Setup) Run(ctx context.Context) error {
	logger.Init(o.LogFile)
	logger.Infof("========== clawadm setup started ==========")

	envPath := filepath.Join(o.ConfigDir, ".env")
	logger.Infof("Loading config from %s...", envPath)
	src, err := envfile.Load(envPath)
	if err != nil {
		logger.Warnf("read env file: %v", err)
	}
	if src.Len() > 0 {
		logger.Infof("Found .env file, loaded %d vars", src.Len())
	} else {
		logger.Infof("No .env file found, using environment variables only")
	}

	creds := gateway.ResolveCredentials(src)
	creds.LogSummary()

	configPath := filepath.Join(o.ConfigDir, "openclaw.json")
	doc, err := gateway.LoadDocument(configPath)
	if err != nil {
		logger.Warnf("load existing config: %v", err)
		doc = gateway.Document{}
	} else if len(doc) > 0 {
		logger.Infof("Loading existing config from %s...", configPath)
	} else {
		logger.Infof("No existing config, starting fresh...")
	}

	meta := o.Factory.Metadata()
	site := meta.SiteName(ctx)
	logger.Infof("Site: %s", site)
	instanceID := meta.InstanceID(ctx)
	logger.Infof("Instance ID: %s", instanceID)

	doc.ProvisionAuthToken()
	doc.ApplyArkProvider(creds, site, instanceID)
	doc.ApplyChannels(creds)
	doc.StampMeta(time.Now())

	if err := os.MkdirAll(o.ConfigDir, 0o755); err != nil {
		logger.Warnf("create config dir: %v", err)
	}
	logger.Infof("Writing config to %s...", configPath)
	if err := doc.Save(configPath); err != nil {
		logger.Warnf("save config: %v", err)
	} else {
		logger.Infof("Config saved")
	}

	if o.SkipService {
		logger.Infof("Skipping service provisioning (--skip-service)")
	} else {
		p := sysd.New(o.Service, o.UnitFile)
		p.Runner = o.Factory.Runner()
		p.Provision(ctx)
	}

	logger.Infof("========== clawadm setup completed ==========")
	return nil
}
