package handler

import "go/token"

// Pragma is one directive attached to a function or parameter, already
// split into its name and argument tokens by the build pipeline. The
// handler compiler never touches raw source; it consumes this
// representation only.
type Pragma struct {
	Name string
	Args []string
	Pos  token.Pos
}

// Role classifies what a handler parameter denotes.
type Role int

const (
	RoleNone Role = iota

	// RoleResource is a private persistent storage slot, declared with
	// the init attribute.
	RoleResource

	// RoleIRQn receives the active interrupt number. Only valid on a
	// DefaultHandler.
	RoleIRQn

	// RoleFrame receives a reference to the auto-stacked exception
	// frame. Only valid on a HardFault handler.
	RoleFrame
)

func (r Role) String() string {
	switch r {
	case RoleResource:
		return "init"
	case RoleIRQn:
		return "irqn"
	case RoleFrame:
		return "frame"
	}
	return "none"
}

// RefKind describes how a parameter refers to its value.
type RefKind int

const (
	RefNone RefKind = iota
	RefShared
	RefMut
)

// TypeRef is the declared type of a parameter as the build pipeline saw
// it: an optional reference qualifier around a referent type name.
type TypeRef struct {
	Ref    RefKind
	Static bool
	Name   string
}

// ReturnShape is the declared return shape of a handler function.
type ReturnShape int

const (
	ReturnVoid ReturnShape = iota
	ReturnNever
	ReturnOther
)

// FnParam is one parameter of an annotated function before role
// assignment.
type FnParam struct {
	Name  string
	Type  TypeRef
	Attrs []Pragma
	Pos   token.Pos
}

// Fn describes an annotated function as supplied by the build pipeline.
// The flags mirror constructs the contract forbids outright; front ends
// for languages without a given construct simply never set its flag.
type Fn struct {
	Name     string
	Params   []FnParam
	Return   ReturnShape
	Async    bool
	Variadic bool
	Generic  bool
	Receiver bool
	Attrs    []Pragma
	Doc      []string
	Pos      token.Pos
}

// Param is a role-assigned handler parameter.
type Param struct {
	Name   string
	Type   TypeRef
	Role   Role
	Init   string   // initializer expression, RoleResource only
	Guards []string // conditional-compilation guards, verbatim
	Pos    token.Pos
}

// Declaration is a parsed and role-assigned handler declaration, ready
// for validation and lowering.
type Declaration struct {
	Kind        Kind
	Exception   ExceptionTarget // meaningful for exception kinds
	Interrupt   []string        // enum member path, KindInterrupt only
	Unsafe      bool            // explicit safety marker present
	Fn          *Fn
	Params      []Param
	Guards      []string // function-level guards, verbatim
	Passthrough []Pragma
}

// Resources returns the resource parameters in declaration order.
func (d *Declaration) Resources() []Param {
	var res []Param
	for _, p := range d.Params {
		if p.Role == RoleResource {
			res = append(res, p)
		}
	}
	return res
}

// Vector is the symbol name the trampoline must be bound to.
func (d *Declaration) Vector() string {
	rule := RuleFor(d.Kind)
	if rule.Export != "" {
		return rule.Export
	}
	if d.Kind == KindInterrupt {
		return d.Interrupt[len(d.Interrupt)-1]
	}
	return d.Exception.String()
}
