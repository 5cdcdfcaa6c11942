// Package procstat reports whether a companion process is running, looked
// up by executable name (the pidof equivalent).
package procstat

import (
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// Lookup abstracts process-table access for tests.
type Lookup interface {
	Find(name string) (pid int32, ok bool)
}

// SystemLookup walks the live process table.
type SystemLookup struct{}

// Find returns the pid of the first process whose name matches. Kernel
// process names are truncated to 15 bytes, so a truncated prefix of a
// longer target name also counts as a match.
func (SystemLookup) Find(name string) (int32, bool) {
	procs, err := process.Processes()
	if err != nil {
		return 0, false
	}
	for _, p := range procs {
		n, err := p.Name()
		if err != nil || n == "" {
			continue
		}
		if n == name {
			return p.Pid, true
		}
		if len(n) == 15 && len(name) > 15 && strings.HasPrefix(name, n) {
			return p.Pid, true
		}
	}
	return 0, false
}

// Running reports whether a process with the given name exists.
func Running(l Lookup, name string) bool {
	if name == "" {
		return false
	}
	_, ok := l.Find(name)
	return ok
}
