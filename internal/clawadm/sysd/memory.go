package sysd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoServiceSection is reported when the unit file has no [Service]
// header to anchor the memory directives on.
var ErrNoServiceSection = errors.New("[Service] section not found in service file")

const (
	memoryMaxPercent  = 80
	memoryHighPercent = 75
)

// ParseTotalMemoryMB extracts total system memory from `free -m` output:
// the line starting with "Mem:", second column. Returns 0 when the line or
// column is missing or not a number.
func ParseTotalMemoryMB(output []byte) int {
	for _, line := range strings.Split(string(output), "\n") {
		if !strings.HasPrefix(line, "Mem:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		total, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0
		}
		return total
	}
	return 0
}

// RewriteMemoryLimits strips any existing MemoryMax=/MemoryHigh= directives
// from the unit file text and inserts fresh ones, computed from totalMB,
// as the first lines after the [Service] header. MemoryMax is 80% and
// MemoryHigh 75% of total, floored to whole megabytes.
func RewriteMemoryLimits(content string, totalMB int) (string, error) {
	memoryMax := fmt.Sprintf("%dM", totalMB*memoryMaxPercent/100)
	memoryHigh := fmt.Sprintf("%dM", totalMB*memoryHighPercent/100)

	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines)+2)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "MemoryMax=") || strings.HasPrefix(trimmed, "MemoryHigh=") {
			continue
		}
		kept = append(kept, line)
	}

	inserted := false
	out := make([]string, 0, len(kept)+2)
	for _, line := range kept {
		out = append(out, line)
		if !inserted && strings.TrimSpace(line) == "[Service]" {
			out = append(out, "MemoryMax="+memoryMax, "MemoryHigh="+memoryHigh)
			inserted = true
		}
	}
	if !inserted {
		return "", ErrNoServiceSection
	}
	return strings.Join(out, "\n"), nil
}
