package info

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gosuri/uitable"
	hoststat "github.com/likexian/host-stat-go"
	"github.com/spf13/cobra"

	"github.com/openclaw/clawadm/internal/clawadm/cmd/util"
	"github.com/openclaw/clawadm/pkg/cli/genericclioptions"
	"github.com/openclaw/clawadm/pkg/utils/templates"
)

var infoExample = templates.Examples(`
		# Print host and instance information
		clawadm info`)

// Info is an options struct to support the 'info' sub command.
type Info struct {
	Factory util.Factory
	genericclioptions.IOStreams
}

// NewInfoOptions returns an initialized Info instance.
func NewInfoOptions(f util.Factory, ioStreams genericclioptions.IOStreams) *Info {
	return &Info{
		Factory:   f,
		IOStreams: ioStreams,
	}
}

// NewCmdInfo returns new initialized instance of the 'info' sub command.
func NewCmdInfo(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewInfoOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "info",
		DisableFlagsInUseLine: true,
		Short:                 "Print host and instance information",
		Long:                  "Print host facts and the identity resolved from the instance metadata service.",
		Example:               infoExample,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	return cmd
}

// Run executes the info sub command.
func (o *Info) Run(ctx context.Context) error {
	table := uitable.New()
	table.Separator = "  "

	hostInfo, err := hoststat.GetHostInfo()
	if err != nil {
		return fmt.Errorf("get host info failed!error:%w", err)
	}
	table.AddRow("HostName:", hostInfo.HostName)
	table.AddRow("OSRelease:", hostInfo.Release+" "+hostInfo.OSBit)

	cpuInfo, err := hoststat.GetCPUInfo()
	if err != nil {
		return fmt.Errorf("get cpu info failed!error:%w", err)
	}
	table.AddRow("CPUCore:", strconv.FormatUint(cpuInfo.CoreCount, 10))

	memStat, err := hoststat.GetMemStat()
	if err != nil {
		return fmt.Errorf("get mem stat failed!error:%w", err)
	}
	table.AddRow("MemTotal:", strconv.FormatUint(memStat.MemTotal, 10)+"M")
	table.AddRow("MemFree:", strconv.FormatUint(memStat.MemFree, 10)+"M")

	meta := o.Factory.Metadata()
	table.AddRow("Site:", meta.SiteName(ctx))
	table.AddRow("InstanceID:", meta.InstanceID(ctx))

	fmt.Fprintln(o.Out, table)
	return nil
}
