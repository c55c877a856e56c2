//go:build !linux

package trading

// setAffinity is a no-op where sched_setaffinity(2) is unavailable.
func setAffinity(cpu int) {}
