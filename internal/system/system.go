// Package system sizes the encode worker pool from the machine's
// actual resources and raises process limits for batch runs.
package system

import (
	"runtime"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Per-worker memory estimate for an FFmpeg segment encode. Conservative
// so parallel encodes do not push the machine into swap.
const perWorkerBytes = 512 << 20

// Workers picks a worker count from logical CPU count, capped by
// available memory. Falls back to runtime.NumCPU when probing fails.
func Workers() int {
	workers := runtime.NumCPU()
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		workers = n
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		byMem := int(vm.Available / perWorkerBytes)
		if byMem < 1 {
			byMem = 1
		}
		if byMem < workers {
			workers = byMem
		}
	}

	if workers < 1 {
		workers = 1
	}
	return workers
}

// InitResourceLimits raises the open-file limit; a render with many
// segments plus FFmpeg pipes can exhaust the default soft limit.
func InitResourceLimits() error {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		return err
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}
	return syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
}
