package cortexm

// Core peripheral handles. Each is an ownership token, not a register
// map: holding one is the right to touch that peripheral. Handles are
// only minted by TakePeripherals, at most once per program lifetime.
type (
	// CBP is the cache and branch predictor maintenance block.
	CBP struct{}
	// CPUID is the CPUID block.
	CPUID struct{}
	// DCB is the debug control block.
	DCB struct{}
	// DWT is the data watchpoint and trace unit.
	DWT struct{}
	// FPB is the flash patch and breakpoint unit.
	FPB struct{}
	// FPU is the floating point unit.
	FPU struct{}
	// ITM is the instrumentation trace macrocell.
	ITM struct{}
	// MPU is the memory protection unit.
	MPU struct{}
	// NVIC is the nested vectored interrupt controller.
	NVIC struct{}
	// SCB is the system control block.
	SCB struct{}
	// SYST is the SysTick timer.
	SYST struct{}
	// TPIU is the trace port interface unit.
	TPIU struct{}
)

// Peripherals is the full set of core peripheral handles.
type Peripherals struct {
	CBP   CBP
	CPUID CPUID
	DCB   DCB
	DWT   DWT
	FPB   FPB
	FPU   FPU
	ITM   ITM
	MPU   MPU
	NVIC  NVIC
	SCB   SCB
	SYST  SYST
	TPIU  TPIU
}

var peripheralsTaken bool

// TakePeripherals claims the core peripheral set. The first call returns
// the set; every later call returns nil for the rest of the program's
// lifetime.
func TakePeripherals() *Peripherals {
	mask := DisableInterrupts()
	defer EnableInterrupts(mask)

	if peripheralsTaken {
		return nil
	}
	peripheralsTaken = true
	return &Peripherals{}
}
