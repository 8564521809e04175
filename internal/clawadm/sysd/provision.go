package sysd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/openclaw/clawadm/pkg/logger"
)

const (
	defaultBusWaitAttempts = 60
	defaultRetryAttempts   = 10
	defaultRetryDelay      = 5 * time.Second
)

// StepResult records how one provisioning step went. A degraded step names
// its reason; the run always continues.
type StepResult struct {
	Step     string
	Degraded bool
	Reason   string
}

// Provisioner drives the service manager for one gateway install. All
// fields are explicit configuration; New fills host-derived defaults.
type Provisioner struct {
	// Service is the unit to enable and restart, e.g.
	// "openclaw-gateway.service".
	Service string
	// UnitFile is the on-disk unit file that receives memory directives.
	UnitFile string
	// UID is the invoking user; linger and the bus socket are per-user.
	UID int
	// RuntimeDir is the user's XDG runtime directory.
	RuntimeDir string

	Runner Runner
	// Sleep is swapped out in tests to run the poll/retry loops instantly.
	Sleep func(time.Duration)

	BusWaitAttempts int
	RetryAttempts   int
	RetryDelay      time.Duration
}

// New returns a Provisioner for the invoking user with production defaults.
func New(service, unitFile string) *Provisioner {
	uid := os.Getuid()
	return &Provisioner{
		Service:         service,
		UnitFile:        unitFile,
		UID:             uid,
		RuntimeDir:      fmt.Sprintf("/run/user/%d", uid),
		Runner:          ExecRunner{},
		Sleep:           time.Sleep,
		BusWaitAttempts: defaultBusWaitAttempts,
		RetryAttempts:   defaultRetryAttempts,
		RetryDelay:      defaultRetryDelay,
	}
}

// Provision runs every step in order. Steps are individually best effort:
// a failure logs a warning, lands in the results, and the next step still
// runs. Provision itself never fails.
func (p *Provisioner) Provision(ctx context.Context) []StepResult {
	results := make([]StepResult, 0, 6)
	step := func(name string, fn func(context.Context) error) {
		if err := fn(ctx); err != nil {
			logger.Warnf("%s: %v", name, err)
			results = append(results, StepResult{Step: name, Degraded: true, Reason: err.Error()})
			return
		}
		results = append(results, StepResult{Step: name})
	}

	step("enable linger", p.enableLinger)
	step("wait for bus socket", p.waitBusSocket)

	os.Setenv("XDG_RUNTIME_DIR", p.RuntimeDir)
	logger.Infof("XDG_RUNTIME_DIR: %s", p.RuntimeDir)

	step("configure memory limits", p.configureMemoryLimits)
	step("daemon reload", p.daemonReload)
	step("enable service", p.enableService)
	step("restart service", p.restartService)

	return results
}

func (p *Provisioner) enableLinger(ctx context.Context) error {
	logger.Infof("Enabling linger for user %d...", p.UID)
	if err := p.Runner.Run(ctx, "loginctl", "enable-linger", strconv.Itoa(p.UID)); err != nil {
		return fmt.Errorf("failed to enable linger: %w", err)
	}
	logger.Infof("Linger enabled!")
	return nil
}

func (p *Provisioner) waitBusSocket(ctx context.Context) error {
	socket := filepath.Join(p.RuntimeDir, "bus")
	logger.Infof("Waiting for user bus socket (%s)...", socket)

	for waited := 0; waited < p.BusWaitAttempts; waited++ {
		if _, err := os.Stat(socket); err == nil {
			logger.Infof("Bus socket ready!")
			return nil
		}
		p.Sleep(1 * time.Second)
		if (waited+1)%10 == 0 {
			logger.Infof("Still waiting for bus socket... (%ds)", waited+1)
		}
	}
	if _, err := os.Stat(socket); err == nil {
		logger.Infof("Bus socket ready!")
		return nil
	}
	return fmt.Errorf("bus socket not found after %ds, continuing anyway", p.BusWaitAttempts)
}

func (p *Provisioner) configureMemoryLimits(ctx context.Context) error {
	if _, err := os.Stat(p.UnitFile); err != nil {
		return fmt.Errorf("service file not found: %s", p.UnitFile)
	}
	logger.Infof("Configuring memory limits...")

	out, err := p.Runner.Output(ctx, "free", "-m")
	if err != nil {
		return fmt.Errorf("query total memory: %w", err)
	}
	totalMB := ParseTotalMemoryMB(out)
	if totalMB <= 0 {
		return fmt.Errorf("could not determine total memory")
	}
	logger.Infof("Total memory: %dMB, MemoryMax: %dM, MemoryHigh: %dM",
		totalMB, totalMB*memoryMaxPercent/100, totalMB*memoryHighPercent/100)

	content, err := os.ReadFile(p.UnitFile)
	if err != nil {
		return fmt.Errorf("read service file: %w", err)
	}
	rewritten, err := RewriteMemoryLimits(string(content), totalMB)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p.UnitFile, []byte(rewritten), 0o644); err != nil {
		return fmt.Errorf("write service file: %w", err)
	}
	logger.Infof("Memory limits configured in service file")
	return nil
}

func (p *Provisioner) daemonReload(ctx context.Context) error {
	logger.Infof("Reloading systemd user daemon...")
	if err := p.Runner.Run(ctx, "systemctl", "--user", "daemon-reload"); err != nil {
		return fmt.Errorf("daemon-reload failed: %w", err)
	}
	logger.Infof("Daemon reloaded!")
	return nil
}

func (p *Provisioner) enableService(ctx context.Context) error {
	logger.Infof("Enabling gateway service...")
	err := p.withRetry(ctx, "Enable", func(ctx context.Context) error {
		return p.Runner.Run(ctx, "systemctl", "--user", "enable", p.Service)
	})
	if err != nil {
		return fmt.Errorf("all enable attempts failed")
	}
	logger.Infof("Gateway service enabled!")
	return nil
}

func (p *Provisioner) restartService(ctx context.Context) error {
	logger.Infof("Starting gateway service...")
	err := p.withRetry(ctx, "Start", func(ctx context.Context) error {
		return p.Runner.Run(ctx, "systemctl", "--user", "restart", p.Service)
	})
	if err != nil {
		return fmt.Errorf("all start attempts failed")
	}
	logger.Infof("Gateway service started!")
	return nil
}

// withRetry runs fn up to RetryAttempts times with a fixed delay between
// attempts, warning on every failure. Returns the last error after
// exhaustion.
func (p *Provisioner) withRetry(ctx context.Context, action string, fn func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= p.RetryAttempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		logger.Warnf("%s attempt %d/%d failed: %v", action, attempt, p.RetryAttempts, err)
		if attempt < p.RetryAttempts {
			logger.Infof("Retrying in %s...", p.RetryDelay)
			p.Sleep(p.RetryDelay)
		}
	}
	return err
}
