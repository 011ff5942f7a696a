// Package cortexm is the runtime half of veneer: the types generated
// trampolines lean on and the init-array ownership protocol that moves
// claimed core peripherals across the reset→main boundary.
//
// Execution is single-threaded with hardware preemption. All
// process-wide state in this package is mutated only between
// DisableInterrupts and EnableInterrupts, and the prior mask state is
// restored on every exit path.
package cortexm

// ExceptionFrame describes the CPU state automatically stacked on
// exception entry.
type ExceptionFrame struct {
	R0   uint32
	R1   uint32
	R2   uint32
	R3   uint32
	R12  uint32
	LR   uint32
	PC   uint32
	XPSR uint32
}

// Interrupt identifies an external interrupt line. Chip support packages
// define the members of their interrupt enumeration as constants of this
// type, conventionally named IRQ_<vector>.
type Interrupt int16

// vectactMask selects the VECTACTIVE field of the ICSR: the low 9 bits
// hold the active exception number.
const vectactMask = 0x1FF

// irqnBias converts an exception number to the external interrupt
// numbering, where the 16 system vectors come out negative.
const irqnBias = 16

// IRQNumber extracts the active interrupt number from an ICSR value.
// SysTick yields -1; the first external interrupt yields 0.
func IRQNumber(icsr uint32) int16 {
	return int16(icsr&vectactMask) - irqnBias
}

// CurrentIRQn returns the interrupt number currently being serviced.
// Generated DefaultHandler trampolines call this to inject the number
// into the user handler.
func CurrentIRQn() int16 {
	return IRQNumber(readICSR())
}
