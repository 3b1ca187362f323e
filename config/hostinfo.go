package config

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/shirou/gopsutil/cpu"
)

// defaultMaxTasks returns 80% of the host's physical core count, per
// spec.md's stated default, falling back to 1 if host introspection fails
// (a container with a cgroup-limited view, for instance).
func defaultMaxTasks() int {
	cores, err := cpu.Counts(false)
	if err != nil || cores <= 0 {
		log.Warn("could not determine physical core count, defaulting max-tasks to 1", "err", err)
		return 1
	}
	n := (cores * 8) / 10
	if n < 1 {
		n = 1
	}
	return n
}
