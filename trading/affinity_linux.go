//go:build linux

package trading

import (
	"syscall"
	"unsafe"
)

// setAffinity pins the current thread to the given CPU core via
// sched_setaffinity(2). Best-effort: failures are ignored, correctness never
// depends on pinning.
func setAffinity(cpu int) {
	if cpu < 0 || cpu >= 64 {
		return
	}

	mask := [1]uintptr{1 << uint(cpu)}
	_, _, _ = syscall.RawSyscall(
		syscall.SYS_SCHED_SETAFFINITY,
		0, // current thread
		uintptr(unsafe.Sizeof(mask[0])),
		uintptr(unsafe.Pointer(&mask)),
	)
}
