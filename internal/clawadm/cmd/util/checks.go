package util

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	hoststat "github.com/likexian/host-stat-go"

	"github.com/openclaw/clawadm/internal/clawadm/gateway"
	"github.com/openclaw/clawadm/internal/clawadm/metadata"
)

const (
	statusOK      = "ok"
	statusWarning = "warning"
	statusFailed  = "failed"
)

type defaultHostChecker struct {
	targets  CheckTargets
	metadata *metadata.Client
}

// RunAll executes every pre-flight check. Checks never stop each other;
// the caller decides how to present warnings versus failures.
func (c *defaultHostChecker) RunAll(ctx context.Context) []*CheckResult {
	return []*CheckResult{
		c.checkSystemd(),
		c.checkBusSocket(),
		c.checkConfigDir(),
		c.checkConfigDocument(),
		c.checkUnitFile(),
		c.checkMemory(),
		c.checkMetadata(ctx),
	}
}

func (c *defaultHostChecker) checkSystemd() *CheckResult {
	r := &CheckResult{Name: "systemd"}
	if _, err := exec.LookPath("systemctl"); err != nil {
		r.Status = statusFailed
		r.Message = "systemctl not found in PATH"
		return r
	}
	if _, err := exec.LookPath("loginctl"); err != nil {
		r.Status = statusFailed
		r.Message = "loginctl not found in PATH"
		return r
	}
	r.Status = statusOK
	r.Passed = true
	r.Message = "systemctl and loginctl available"
	return r
}

// checkBusSocket only warns: setup waits for the socket itself, so its
// absence now is expected on a host where linger was never enabled.
func (c *defaultHostChecker) checkBusSocket() *CheckResult {
	r := &CheckResult{Name: "user-bus-socket"}
	socket := filepath.Join(c.targets.RuntimeDir, "bus")
	if _, err := os.Stat(socket); err != nil {
		r.Status = statusWarning
		r.Passed = true
		r.Message = fmt.Sprintf("%s not present yet; setup will wait for it", socket)
		return r
	}
	r.Status = statusOK
	r.Passed = true
	r.Message = socket + " present"
	return r
}

func (c *defaultHostChecker) checkConfigDir() *CheckResult {
	r := &CheckResult{Name: "config-dir"}
	info, err := os.Stat(c.targets.ConfigDir)
	switch {
	case os.IsNotExist(err):
		r.Status = statusWarning
		r.Passed = true
		r.Message = c.targets.ConfigDir + " does not exist; setup will create it"
	case err != nil:
		r.Status = statusFailed
		r.Message = err.Error()
	case !info.IsDir():
		r.Status = statusFailed
		r.Message = c.targets.ConfigDir + " exists but is not a directory"
	default:
		r.Status = statusOK
		r.Passed = true
		r.Message = c.targets.ConfigDir + " present"
	}
	return r
}

func (c *defaultHostChecker) checkConfigDocument() *CheckResult {
	r := &CheckResult{Name: "config-document"}
	path := filepath.Join(c.targets.ConfigDir, "openclaw.json")
	if _, err := os.Stat(path); err != nil {
		r.Status = statusOK
		r.Passed = true
		r.Message = "no existing config; setup starts fresh"
		return r
	}
	if _, err := gateway.LoadDocument(path); err != nil {
		r.Status = statusFailed
		r.Message = err.Error()
		return r
	}
	r.Status = statusOK
	r.Passed = true
	r.Message = path + " parses"
	return r
}

func (c *defaultHostChecker) checkUnitFile() *CheckResult {
	r := &CheckResult{Name: "unit-file"}
	if _, err := os.Stat(c.targets.UnitFile); err != nil {
		r.Status = statusWarning
		r.Passed = true
		r.Message = c.targets.UnitFile + " not found; setup will skip memory limits"
		return r
	}
	r.Status = statusOK
	r.Passed = true
	r.Message = c.targets.UnitFile + " present"
	return r
}

func (c *defaultHostChecker) checkMemory() *CheckResult {
	r := &CheckResult{Name: "memory"}
	stat, err := hoststat.GetMemStat()
	if err != nil || stat.MemTotal == 0 {
		r.Status = statusWarning
		r.Passed = true
		r.Message = "total memory not detectable; setup will skip memory limits"
		return r
	}
	r.Status = statusOK
	r.Passed = true
	r.Message = fmt.Sprintf("%dM total", stat.MemTotal)
	return r
}

func (c *defaultHostChecker) checkMetadata(ctx context.Context) *CheckResult {
	r := &CheckResult{Name: "metadata-service"}
	if site := c.metadata.SiteName(ctx); site != metadata.Unknown {
		r.Status = statusOK
		r.Passed = true
		r.Message = "site " + site
		return r
	}
	r.Status = statusWarning
	r.Passed = true
	r.Message = "metadata service unreachable; setup falls back to default endpoints"
	return r
}
