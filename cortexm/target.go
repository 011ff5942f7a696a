//go:build cortexm

package cortexm

import (
	"unsafe"
	"volatile"
)

// Bare-metal bindings. The mask primitives resolve to the toolchain's
// intrinsic wrappers the same way the chip support packages bind theirs.

//veneer:extern disableInterrupts _disable_irq
func disableInterrupts() uint32

//veneer:extern enableInterrupts _enable_irq
func enableInterrupts(state uint32)

//veneer:extern abort _abort
func abort()

var nvic = (*nvicRegs)(unsafe.Pointer(uintptr(0xE000E100)))

type nvicRegs struct {
	ISER [16]uint32
	_    [64]byte
	ICER [16]uint32
	_    [64]byte
	ISPR [16]uint32
	_    [64]byte
	ICPR [16]uint32
	_    [256]byte
	IPRn [124]uint8
}

const icsrAddr = 0xE000ED04

// DisableInterrupts masks interrupt preemption and returns the previous
// mask state for EnableInterrupts to restore.
func DisableInterrupts() uint32 {
	return disableInterrupts()
}

// EnableInterrupts restores a mask state previously returned by
// DisableInterrupts.
func EnableInterrupts(state uint32) {
	enableInterrupts(state)
}

// InterruptsMasked reports whether preemption is currently masked.
func InterruptsMasked() bool {
	state := disableInterrupts()
	enableInterrupts(state)
	return state != 0
}

func readICSR() uint32 {
	return volatile.LoadUint32((*uint32)(unsafe.Pointer(uintptr(icsrAddr))))
}

// Abort terminates the program. Generated trampolines call it to
// re-assert a non-returning contract.
func Abort() {
	abort()
}

func (i Interrupt) EnableIRQ() {
	volatile.StoreUint32(&nvic.ISER[i>>5], 1<<(i&0x1F))
}

func (i Interrupt) DisableIRQ() {
	volatile.StoreUint32(&nvic.ICER[i>>5], 1<<(i&0x1F))
}

func (i Interrupt) SetPriority(priority uint8) {
	volatile.StoreUint8(&nvic.IPRn[i], priority)
}
