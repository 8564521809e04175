// Package templates normalizes the long descriptions and examples shown in
// command help, and groups subcommands into named sections on the root
// command's help output.
package templates

import (
	"strings"
	"unicode"

	"github.com/spf13/cobra"
)

const indentation = "  "

// LongDesc normalizes a command's long description: leading/trailing
// whitespace is stripped and per-line indentation from the source literal is
// removed so heredoc-style strings render cleanly.
func LongDesc(s string) string {
	if s == "" {
		return s
	}
	return normalizer{s}.trim().string
}

// Examples normalizes a command's example block and indents every line by a
// fixed amount so it lines up under the "Examples:" heading.
func Examples(s string) string {
	if s == "" {
		return s
	}
	return normalizer{s}.trim().indent().string
}

type normalizer struct {
	string
}

func (n normalizer) trim() normalizer {
	lines := strings.Split(strings.TrimSpace(n.string), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeftFunc(line, unicode.IsSpace)
	}
	n.string = strings.Join(lines, "\n")
	return n
}

func (n normalizer) indent() normalizer {
	indented := make([]string, 0, strings.Count(n.string, "\n")+1)
	for _, line := range strings.Split(n.string, "\n") {
		if line == "" {
			indented = append(indented, line)
			continue
		}
		indented = append(indented, indentation+line)
	}
	n.string = strings.Join(indented, "\n")
	return n
}

// CommandGroup holds a set of related subcommands under one heading.
type CommandGroup struct {
	Message  string
	Commands []*cobra.Command
}

// CommandGroups is an ordered list of command groups.
type CommandGroups []CommandGroup

// Add attaches every grouped command to the parent.
func (g CommandGroups) Add(c *cobra.Command) {
	for _, group := range g {
		for _, command := range group.Commands {
			c.AddCommand(command)
		}
	}
}

// ActsAsRootCommand installs a grouped help template on cmd. Commands named
// in filters (and any command hidden by cobra itself) are left out of the
// grouped listing.
func ActsAsRootCommand(cmd *cobra.Command, filters []string, groups ...CommandGroups) {
	if cmd == nil {
		panic("nil root command")
	}

	var flat CommandGroups
	for _, gs := range groups {
		flat = append(flat, gs...)
	}

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return renderUsage(c, flat, filters)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if c.Long != "" {
			writeLine(c, c.Long)
			writeLine(c, "")
		}
		_ = c.Usage()
	})
}

func renderUsage(c *cobra.Command, groups CommandGroups, filters []string) error {
	writeLine(c, "Usage:")
	if c.Runnable() {
		writeLine(c, indentation+c.UseLine())
	}
	if c.HasAvailableSubCommands() {
		writeLine(c, indentation+c.CommandPath()+" [command]")
	}

	if c == c.Root() && len(groups) > 0 {
		for _, group := range groups {
			writeLine(c, "")
			writeLine(c, group.Message)
			for _, sub := range group.Commands {
				if sub.Hidden || filtered(sub.Name(), filters) {
					continue
				}
				writeLine(c, indentation+padName(sub.Name())+sub.Short)
			}
		}
	} else if c.HasAvailableSubCommands() {
		writeLine(c, "")
		writeLine(c, "Available Commands:")
		for _, sub := range c.Commands() {
			if !sub.IsAvailableCommand() || filtered(sub.Name(), filters) {
				continue
			}
			writeLine(c, indentation+padName(sub.Name())+sub.Short)
		}
	}

	if c.HasExample() {
		writeLine(c, "")
		writeLine(c, "Examples:")
		writeLine(c, c.Example)
	}

	if flags := c.LocalFlags(); flags.HasAvailableFlags() {
		writeLine(c, "")
		writeLine(c, "Flags:")
		writeLine(c, strings.TrimRight(flags.FlagUsages(), "\n"))
	}
	if flags := c.InheritedFlags(); flags.HasAvailableFlags() {
		writeLine(c, "")
		writeLine(c, "Global Flags:")
		writeLine(c, strings.TrimRight(flags.FlagUsages(), "\n"))
	}

	if c.HasAvailableSubCommands() {
		writeLine(c, "")
		writeLine(c, `Use "`+c.CommandPath()+` [command] --help" for more information about a command.`)
	}
	return nil
}

func padName(name string) string {
	const width = 14
	if len(name) >= width {
		return name + " "
	}
	return name + strings.Repeat(" ", width-len(name))
}

func filtered(name string, filters []string) bool {
	for _, f := range filters {
		if name == f {
			return true
		}
	}
	return false
}

func writeLine(c *cobra.Command, s string) {
	_, _ = c.OutOrStderr().Write([]byte(s + "\n"))
}
