package util

import (
	"context"

	"github.com/openclaw/clawadm/internal/clawadm/metadata"
	"github.com/openclaw/clawadm/internal/clawadm/sysd"
)

// Factory provides the collaborators commands work through, so commands
// stay decoupled from concrete hosts and tests can swap in fakes.
type Factory interface {
	Metadata() *metadata.Client
	Runner() sysd.Runner
	HostChecker(targets CheckTargets) HostChecker
}

// CheckTargets names the host artifacts the pre-flight checks inspect.
type CheckTargets struct {
	ConfigDir  string
	UnitFile   string
	RuntimeDir string
}

// HostChecker runs pre-flight validations against the local host.
type HostChecker interface {
	RunAll(ctx context.Context) []*CheckResult
}

// CheckResult is the outcome of one pre-flight check. Status is one of
// "ok", "warning", "failed"; Passed is false only for "failed".
type CheckResult struct {
	Name    string
	Status  string
	Message string
	Passed  bool
}

// FactoryOptions tunes the default factory. MetadataAddr is consulted
// lazily so it can be backed by a flag that parses after construction.
type FactoryOptions struct {
	MetadataAddr func() string
}

type defaultFactory struct {
	opts FactoryOptions
}

// NewDefaultFactory returns the production factory.
func NewDefaultFactory(opts FactoryOptions) Factory {
	return &defaultFactory{opts: opts}
}

func (d *defaultFactory) Metadata() *metadata.Client {
	if d.opts.MetadataAddr != nil {
		if addr := d.opts.MetadataAddr(); addr != "" {
			return metadata.NewClientWithBaseURL(addr)
		}
	}
	return metadata.NewClient()
}

func (d *defaultFactory) Runner() sysd.Runner {
	return sysd.ExecRunner{}
}

func (d *defaultFactory) HostChecker(targets CheckTargets) HostChecker {
	return &defaultHostChecker{targets: targets, metadata: d.Metadata()}
}
