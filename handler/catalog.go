package handler

// Kind selects the calling contract a declaration is checked against and
// the symbol its trampoline is bound to.
type Kind int

const (
	KindEntry Kind = iota
	KindPreInit
	KindDefaultHandler
	KindHardFault
	KindNonMaskableInt
	KindException
	KindInterrupt
)

func (k Kind) String() string {
	switch k {
	case KindEntry:
		return "entry"
	case KindPreInit:
		return "pre_init"
	case KindDefaultHandler:
		return "DefaultHandler"
	case KindHardFault:
		return "HardFault"
	case KindNonMaskableInt:
		return "NonMaskableInt"
	case KindException:
		return "exception"
	case KindInterrupt:
		return "interrupt"
	}
	return "unknown"
}

// ExceptionTarget enumerates the overridable Cortex-M exception vectors,
// plus the DefaultHandler catch-all.
type ExceptionTarget int

const (
	ExcDefaultHandler ExceptionTarget = iota
	ExcNonMaskableInt
	ExcHardFault
	ExcMemoryManagement
	ExcBusFault
	ExcUsageFault
	ExcSecureFault
	ExcSVCall
	ExcDebugMonitor
	ExcPendSV
	ExcSysTick
)

var exceptionNames = map[string]ExceptionTarget{
	"DefaultHandler":   ExcDefaultHandler,
	"NonMaskableInt":   ExcNonMaskableInt,
	"HardFault":        ExcHardFault,
	"MemoryManagement": ExcMemoryManagement,
	"BusFault":         ExcBusFault,
	"UsageFault":       ExcUsageFault,
	"SecureFault":      ExcSecureFault,
	"SVCall":           ExcSVCall,
	"DebugMonitor":     ExcDebugMonitor,
	"PendSV":           ExcPendSV,
	"SysTick":          ExcSysTick,
}

func (t ExceptionTarget) String() string {
	for name, target := range exceptionNames {
		if target == t {
			return name
		}
	}
	return "unknown"
}

// UnsafeToDefine reports whether overriding this vector breaks critical
// sections. NonMaskableInt and HardFault cannot be masked, and the
// DefaultHandler services NMIs, so all three require an explicit unsafe
// marker on the declaration.
func (t ExceptionTarget) UnsafeToDefine() bool {
	switch t {
	case ExcDefaultHandler, ExcNonMaskableInt, ExcHardFault:
		return true
	}
	return false
}

// Kind maps the exception target onto the contract kind that governs it.
func (t ExceptionTarget) Kind() Kind {
	switch t {
	case ExcDefaultHandler:
		return KindDefaultHandler
	case ExcHardFault:
		return KindHardFault
	case ExcNonMaskableInt:
		return KindNonMaskableInt
	}
	return KindException
}

// ReturnRule constrains the declared return shape of a handler.
type ReturnRule int

const (
	// ReturnVoidOrNever accepts a handler that returns nothing or never
	// returns.
	ReturnVoidOrNever ReturnRule = iota
	// ReturnNeverOnly requires a diverging handler.
	ReturnNeverOnly
	// ReturnVoidOnly requires a handler that returns nothing.
	ReturnVoidOnly
)

// ContractRule is the per-kind calling contract. The table below is the
// single source of truth consulted by the validator and the emitter.
type ContractRule struct {
	// Injected names the sole non-resource parameter the trampoline
	// supplies, or RoleNone when the handler takes resources only.
	Injected Role

	// Resources reports whether resource parameters are permitted.
	Resources bool

	// StaticResources reports whether resources may request a
	// process-lifetime reference. Only the entry point runs once and can
	// hold one; re-entered vectors receive a fresh call-scoped reference.
	StaticResources bool

	// Return constrains the declared return shape.
	Return ReturnRule

	// Unsafe requires the explicit unsafe marker on the declaration.
	Unsafe bool

	// Export is the fixed symbol the trampoline is bound to; empty means
	// the vector name of the exception or interrupt itself.
	Export string

	// Diverges makes the emitter re-assert the non-returning contract at
	// the generated call site.
	Diverges bool

	// Section places the trampoline in a dedicated link section on
	// bare-metal targets.
	Section string
}

var contractRules = map[Kind]ContractRule{
	KindEntry: {
		Resources:       true,
		StaticResources: true,
		Return:          ReturnVoidOrNever,
		Export:          "main",
		Diverges:        true,
	},
	KindPreInit: {
		Return: ReturnVoidOnly,
		Unsafe: true,
		Export: "__pre_init",
	},
	KindDefaultHandler: {
		Injected: RoleIRQn,
		Return:   ReturnVoidOrNever,
		Unsafe:   true,
	},
	KindHardFault: {
		Injected: RoleFrame,
		Return:   ReturnNeverOnly,
		Unsafe:   true,
		Diverges: true,
		Section:  ".HardFault.user",
	},
	KindNonMaskableInt: {
		Resources: true,
		Return:    ReturnVoidOrNever,
		Unsafe:    true,
	},
	KindException: {
		Resources: true,
		Return:    ReturnVoidOrNever,
	},
	KindInterrupt: {
		Resources: true,
		Return:    ReturnVoidOrNever,
	},
}

// RuleFor returns the contract rule governing the given kind.
func RuleFor(k Kind) ContractRule {
	return contractRules[k]
}
