package handler

import (
	"strings"
)

// Pragma names recognized on handler declarations and their parameters.
const (
	PragmaEntry     = "veneer:entry"
	PragmaPreInit   = "veneer:pre_init"
	PragmaException = "veneer:exception"
	PragmaInterrupt = "veneer:interrupt"
	PragmaInit      = "veneer:init"
	PragmaIRQn      = "veneer:irqn"
	PragmaFrame     = "veneer:frame"
	PragmaCfg       = "veneer:cfg"
	PragmaBuild     = "veneer:build"
	PragmaNoReturn  = "veneer:noreturn"
)

// Attributes that may ride along on a handler declaration. Anything else
// is rejected so that a stray directive cannot silently change the
// meaning of generated code.
var attrWhitelist = map[string]bool{
	"go:section":  true,
	"go:inline":   true,
	"go:noinline": true,
	"nolint":      true,
}

// ParseEntry parses an entry-point declaration. The annotation accepts no
// arguments.
func ParseEntry(attr Pragma, fn *Fn) (*Declaration, error) {
	if len(attr.Args) != 0 {
		return nil, diagf(attr.Pos, ErrAttributeArgs, "%s accepts no arguments", PragmaEntry)
	}
	return parseDeclaration(KindEntry, 0, nil, false, fn)
}

// ParsePreInit parses a pre-main initialization declaration. The single
// mandatory argument is the unsafe marker: pre-init code runs before
// static data is trustworthy.
func ParsePreInit(attr Pragma, fn *Fn) (*Declaration, error) {
	if len(attr.Args) != 1 || attr.Args[0] != "unsafe" {
		return nil, diagf(attr.Pos, ErrAttributeArgs, "%s requires the single argument `unsafe`", PragmaPreInit)
	}
	return parseDeclaration(KindPreInit, 0, nil, true, fn)
}

// ParseException parses an exception-handler declaration. Arguments are
// the exception name and an optional trailing unsafe marker. Hazardous
// vectors demand the marker here, before any signature checking, so the
// diagnostic names the handler rather than a shape mismatch.
func ParseException(attr Pragma, fn *Fn) (*Declaration, error) {
	if len(attr.Args) < 1 || len(attr.Args) > 2 {
		return nil, diagf(attr.Pos, ErrAttributeArgs, "%s requires an exception name and an optional `unsafe` marker", PragmaException)
	}
	name := attr.Args[0]
	target, ok := exceptionNames[name]
	if !ok {
		return nil, diagf(attr.Pos, ErrUnknownException, "invalid exception name `%s`", name)
	}
	unsafe := false
	if len(attr.Args) == 2 {
		if attr.Args[1] != "unsafe" {
			return nil, diagf(attr.Pos, ErrAttributeArgs, "unexpected argument `%s` (only `unsafe` may follow the exception name)", attr.Args[1])
		}
		unsafe = true
	}
	if target.UnsafeToDefine() && !unsafe {
		return nil, diagf(attr.Pos, ErrMissingUnsafe,
			"it is unsafe to handle `%s`: it can preempt critical sections, declare it `//%s %s unsafe`",
			name, PragmaException, name)
	}
	return parseDeclaration(target.Kind(), target, nil, unsafe, fn)
}

// ParseInterrupt parses an interrupt-handler declaration. The single
// argument is the dotted path of an interrupt enumeration member. The
// path must have at least two segments so the member cannot be renamed
// out from under the vector symbol it names.
func ParseInterrupt(attr Pragma, fn *Fn) (*Declaration, error) {
	if len(attr.Args) != 1 {
		return nil, diagf(attr.Pos, ErrAttributeArgs, "%s requires a single interrupt path", PragmaInterrupt)
	}
	path := strings.Split(attr.Args[0], ".")
	if len(path) < 2 {
		return nil, diagf(attr.Pos, ErrInterruptPath,
			"interrupt path must be of the form `Enum.Member` (just `%s` is not allowed)", attr.Args[0])
	}
	for _, segment := range path {
		if !isIdent(segment) {
			return nil, diagf(attr.Pos, ErrInterruptPath,
				"interrupt path segment `%s` must be a plain identifier without type arguments", segment)
		}
	}
	return parseDeclaration(KindInterrupt, 0, path, false, fn)
}

func parseDeclaration(kind Kind, target ExceptionTarget, path []string, unsafe bool, fn *Fn) (*Declaration, error) {
	if err := checkHandlerBase(fn); err != nil {
		return nil, err
	}

	params, err := assignParamRoles(fn)
	if err != nil {
		return nil, err
	}

	guards, passthrough, err := splitAttrs(kind, fn)
	if err != nil {
		return nil, err
	}

	return &Declaration{
		Kind:        kind,
		Exception:   target,
		Interrupt:   path,
		Unsafe:      unsafe,
		Fn:          fn,
		Params:      params,
		Guards:      guards,
		Passthrough: passthrough,
	}, nil
}

// checkHandlerBase rejects function shapes no handler kind permits.
func checkHandlerBase(fn *Fn) error {
	switch {
	case fn.Async:
		return diagf(fn.Pos, ErrAsyncHandler, "handler `%s` must not be asynchronous", fn.Name)
	case fn.Variadic:
		return diagf(fn.Pos, ErrVariadicHandler, "handler `%s` must not be variadic", fn.Name)
	case fn.Generic:
		return diagf(fn.Pos, ErrGenericHandler, "handler `%s` must not have generic parameters or constraints", fn.Name)
	case fn.Receiver:
		return diagf(fn.Pos, ErrReceiverParam, "handler `%s` must not have a receiver parameter", fn.Name)
	}
	return nil
}

// assignParamRoles resolves exactly one role attribute per parameter and
// captures conditional-compilation guards verbatim.
func assignParamRoles(fn *Fn) ([]Param, error) {
	params := make([]Param, 0, len(fn.Params))
	seen := map[string]bool{}

	for _, fp := range fn.Params {
		var roles []Pragma
		var guards []string
		for _, attr := range fp.Attrs {
			switch attr.Name {
			case PragmaInit, PragmaIRQn, PragmaFrame:
				roles = append(roles, attr)
			case PragmaCfg:
				guards = append(guards, strings.Join(attr.Args, " "))
			default:
				return nil, diagf(attr.Pos, ErrBadAttribute, "attribute `%s` is not allowed on a handler parameter", attr.Name)
			}
		}

		if len(roles) == 0 {
			return nil, diagf(fp.Pos, ErrParamRole,
				"handler parameter `%s` must have an attribute denoting its role (try `//%s %s <initial value>`)",
				fp.Name, PragmaInit, fp.Name)
		}
		if len(roles) > 1 {
			return nil, diagf(fp.Pos, ErrParamRole, "only one role attribute is allowed on parameter `%s`", fp.Name)
		}

		param := Param{
			Name:   fp.Name,
			Type:   fp.Type,
			Guards: guards,
			Pos:    fp.Pos,
		}

		attr := roles[0]
		switch attr.Name {
		case PragmaInit:
			if len(attr.Args) == 0 {
				return nil, diagf(attr.Pos, ErrAttributeArgs, "%s requires an initializer expression for `%s`", PragmaInit, fp.Name)
			}
			if fp.Type.Ref != RefMut {
				return nil, diagf(fp.Pos, ErrResourceType, "resource parameter `%s` must be a mutable reference", fp.Name)
			}
			if seen[fp.Name] {
				return nil, diagf(fp.Pos, ErrDuplicateResource, "the resource `%s` is declared multiple times", fp.Name)
			}
			seen[fp.Name] = true
			param.Role = RoleResource
			param.Init = strings.Join(attr.Args, " ")
		case PragmaIRQn:
			if len(attr.Args) != 0 {
				return nil, diagf(attr.Pos, ErrAttributeArgs, "%s does not take arguments", PragmaIRQn)
			}
			param.Role = RoleIRQn
		case PragmaFrame:
			if len(attr.Args) != 0 {
				return nil, diagf(attr.Pos, ErrAttributeArgs, "%s does not take arguments", PragmaFrame)
			}
			param.Role = RoleFrame
		}

		params = append(params, param)
	}

	return params, nil
}

// splitAttrs separates function-level guards from pass-through attributes
// and rejects anything outside the whitelist.
func splitAttrs(kind Kind, fn *Fn) (guards []string, passthrough []Pragma, err error) {
	for _, attr := range fn.Attrs {
		switch {
		case attr.Name == PragmaBuild:
			guards = append(guards, strings.Join(attr.Args, " "))
		case attrWhitelist[attr.Name] || strings.HasPrefix(attr.Name, "nolint:"):
			passthrough = append(passthrough, attr)
		default:
			return nil, nil, diagf(attr.Pos, ErrBadAttribute,
				"attribute `%s` is not allowed on a %s handler", attr.Name, kind)
		}
	}
	return guards, passthrough, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
