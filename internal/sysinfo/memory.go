// Package sysinfo provides a memory-headroom check the executor runs
// before forking a new pipeline — adapted from the teacher's file-upload
// memory guard, repurposed here for fork-time host pressure instead of
// file-size-vs-RAM comparisons.
package sysinfo

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
)

// WarnThresholdPercent is the used-memory percentage above which
// PreflightFork returns a warning. It never blocks the fork: refusing to
// spawn a pipeline on a loaded host would violate the executor's
// contract to run whatever the user typed.
const WarnThresholdPercent = 90

// PreflightFork reports whether the host currently looks memory-pressured
// enough to warn about before forking. An empty string means no warning.
// Any error probing memory stats is swallowed into a silent "no warning"
// — an inability to read /proc/meminfo is not reason enough to annoy the
// user on every prompt.
func PreflightFork() string {
	v, err := mem.VirtualMemory()
	if err != nil {
		return ""
	}

	if v.UsedPercent >= WarnThresholdPercent {
		return fmt.Sprintf("seal: warning: host memory at %.0f%% used (%s available)",
			v.UsedPercent, formatBytes(v.Available))
	}
	return ""
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
