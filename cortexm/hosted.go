//go:build !cortexm

package cortexm

import "sync/atomic"

// Hosted shims used by check builds and tests. PRIMASK is modeled as a
// single word: on a single core, masking is an atomic swap, and nesting
// works because the inner section restores the already-masked state.

var primask uint32

var hostedICSR uint32

// DisableInterrupts masks interrupt preemption and returns the previous
// mask state for EnableInterrupts to restore.
func DisableInterrupts() uint32 {
	return atomic.SwapUint32(&primask, 1)
}

// EnableInterrupts restores a mask state previously returned by
// DisableInterrupts.
func EnableInterrupts(state uint32) {
	atomic.StoreUint32(&primask, state)
}

// InterruptsMasked reports whether preemption is currently masked.
func InterruptsMasked() bool {
	return atomic.LoadUint32(&primask) != 0
}

func readICSR() uint32 {
	return atomic.LoadUint32(&hostedICSR)
}

// Abort terminates the program. Generated trampolines call it to
// re-assert a non-returning contract.
func Abort() {
	panic("abort")
}

// EnableIRQ is a no-op on hosted builds.
func (i Interrupt) EnableIRQ() {}

// DisableIRQ is a no-op on hosted builds.
func (i Interrupt) DisableIRQ() {}

// SetPriority is a no-op on hosted builds.
func (i Interrupt) SetPriority(priority uint8) {}
