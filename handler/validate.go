package handler

import (
	"errors"
	"strings"
)

// Policy carries caller-configurable validation requirements beyond the
// fixed contract table.
type Policy struct {
	// RequireUnsafe demands the explicit unsafe marker on every
	// exception and interrupt handler, not only the hazardous ones.
	RequireUnsafe bool
}

// Validate checks a parsed declaration against the contract rule for its
// kind. Every violation is reported as a Diagnostic naming the unmet
// clause; multiple violations are joined.
func Validate(d *Declaration) error {
	return ValidatePolicy(d, Policy{})
}

func ValidatePolicy(d *Declaration, policy Policy) error {
	rule := RuleFor(d.Kind)
	var errs []error

	if (rule.Unsafe || (policy.RequireUnsafe && isVectorKind(d.Kind))) && !d.Unsafe {
		errs = append(errs, diagf(d.Fn.Pos, ErrMissingUnsafe,
			"defining a `%s` handler is unsafe because it can preempt critical sections; add the `unsafe` marker", d.Vector()))
	}

	switch rule.Injected {
	case RoleIRQn:
		errs = append(errs, checkInjected(d, RoleIRQn, func(p Param) error {
			if p.Type.Ref != RefNone || p.Type.Name != "int16" {
				return diagf(p.Pos, ErrBadParamType,
					"`%s` must receive the interrupt number as a 16-bit signed integer, got `%s`", d.Vector(), p.Type.Name)
			}
			return nil
		})...)
	case RoleFrame:
		errs = append(errs, checkInjected(d, RoleFrame, func(p Param) error {
			if p.Type.Ref == RefNone {
				return diagf(p.Pos, ErrBadParamType,
					"`%s` must receive the exception frame by reference", d.Vector())
			}
			if p.Type.Ref != RefShared || p.Type.Static {
				return diagf(p.Pos, ErrBadParamType,
					"`%s` must receive an immutable, call-scoped reference to the exception frame", d.Vector())
			}
			if !strings.HasSuffix(p.Type.Name, "ExceptionFrame") {
				return diagf(p.Pos, ErrBadParamType,
					"`%s` frame parameter must reference the exception-frame record, got `%s`", d.Vector(), p.Type.Name)
			}
			return nil
		})...)
	default:
		for _, p := range d.Params {
			if p.Role != RoleResource {
				errs = append(errs, diagf(p.Pos, ErrParamRole,
					"`%s` is not allowed on a %s handler", p.Role, d.Kind))
			} else if !rule.Resources {
				errs = append(errs, diagf(p.Pos, ErrBadArity,
					"a %s function takes no parameters", d.Kind))
			}
		}
	}

	if !rule.StaticResources {
		for _, p := range d.Params {
			if p.Role == RoleResource && p.Type.Static {
				errs = append(errs, diagf(p.Pos, ErrStaticResource,
					"resource `%s` cannot hold a process-lifetime reference: a %s handler is re-entered with a fresh call-scoped reference", p.Name, d.Kind))
			}
		}
	}

	switch rule.Return {
	case ReturnVoidOrNever:
		if d.Fn.Return == ReturnOther {
			errs = append(errs, diagf(d.Fn.Pos, ErrBadReturn,
				"handler `%s` must return nothing or never return", d.Fn.Name))
		}
	case ReturnNeverOnly:
		if d.Fn.Return != ReturnNever {
			errs = append(errs, diagf(d.Fn.Pos, ErrBadReturn,
				"`%s` handler must never return (mark it //%s)", d.Vector(), PragmaNoReturn))
		}
	case ReturnVoidOnly:
		if d.Fn.Return != ReturnVoid {
			errs = append(errs, diagf(d.Fn.Pos, ErrBadReturn,
				"a %s function must return nothing", d.Kind))
		}
	}

	return errors.Join(errs...)
}

// checkInjected enforces the exactly-one-injected-parameter shape shared
// by DefaultHandler and HardFault.
func checkInjected(d *Declaration, role Role, typeCheck func(Param) error) []error {
	if len(d.Params) != 1 {
		return []error{diagf(d.Fn.Pos, ErrBadArity,
			"`%s` must take exactly one parameter, the injected `%s` value", d.Vector(), role)}
	}
	p := d.Params[0]
	if p.Role != role {
		return []error{diagf(p.Pos, ErrParamRole,
			"the parameter of `%s` must carry the `%s` role, not `%s`", d.Vector(), role, p.Role)}
	}
	if err := typeCheck(p); err != nil {
		return []error{err}
	}
	return nil
}

func isVectorKind(k Kind) bool {
	switch k {
	case KindEntry, KindPreInit:
		return false
	}
	return true
}
