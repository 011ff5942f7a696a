package cortexm

// Init-array peripheral handoff.
//
// Code running before main (bound to __pre_init or the init array) can
// claim the core peripherals, configure some of them, and pass the rest
// on to main:
//
//	p := cortexm.TakeInitArrayPeripherals()
//	// ... enable the cycle counter on p.DWT ...
//	p.DWT = nil // keep the DWT here, don't pass it on
//	cortexm.GiveInitArrayPeripherals(p)
//
// The generated entry trampoline closes the window before user main
// runs; a give that races with early interrupt activity inside main is a
// guaranteed no-op.

// InitArrayPeripherals mirrors Peripherals with one presence slot per
// handle: a nil field was relinquished or never claimed.
type InitArrayPeripherals struct {
	CBP   *CBP
	CPUID *CPUID
	DCB   *DCB
	DWT   *DWT
	FPB   *FPB
	FPU   *FPU
	ITM   *ITM
	MPU   *MPU
	NVIC  *NVIC
	SCB   *SCB
	SYST  *SYST
	TPIU  *TPIU
}

var (
	pendingInitArray *InitArrayPeripherals
	initArrayClosed  bool
)

// FromPeripherals converts a freshly claimed peripheral set into a
// fully-present bundle.
func FromPeripherals(p *Peripherals) *InitArrayPeripherals {
	return &InitArrayPeripherals{
		CBP:   &p.CBP,
		CPUID: &p.CPUID,
		DCB:   &p.DCB,
		DWT:   &p.DWT,
		FPB:   &p.FPB,
		FPU:   &p.FPU,
		ITM:   &p.ITM,
		MPU:   &p.MPU,
		NVIC:  &p.NVIC,
		SCB:   &p.SCB,
		SYST:  &p.SYST,
		TPIU:  &p.TPIU,
	}
}

// TakeInitArrayPeripherals removes and returns the pending bundle if one
// was given back, or claims the full peripheral set if it was never
// claimed. Returns nil when neither source yields a bundle; that is the
// ordinary already-consumed outcome, not an error.
func TakeInitArrayPeripherals() *InitArrayPeripherals {
	mask := DisableInterrupts()
	p := pendingInitArray
	pendingInitArray = nil
	EnableInterrupts(mask)

	if p != nil {
		return p
	}
	if claimed := TakePeripherals(); claimed != nil {
		return FromPeripherals(claimed)
	}
	return nil
}

// GiveInitArrayPeripherals stores the bundle for a later take,
// overwriting any previous pending bundle. Once the entry point has
// begun the handoff window is closed and the bundle is discarded.
func GiveInitArrayPeripherals(p *InitArrayPeripherals) {
	mask := DisableInterrupts()
	if !initArrayClosed {
		pendingInitArray = p
	}
	EnableInterrupts(mask)
}

// InitArrayDone permanently closes the handoff window. The generated
// entry trampoline calls it once at the reset→main boundary; it is not
// for user code.
func InitArrayDone() {
	mask := DisableInterrupts()
	initArrayClosed = true
	EnableInterrupts(mask)
}
