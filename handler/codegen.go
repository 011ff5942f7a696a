package handler

import (
	"fmt"
	"strings"
)

// RuntimeImport is the runtime package generated trampolines lean on for
// injected values and the non-return shim.
const RuntimeImport = "omibyte.io/veneer/cortexm"

// EmitOptions configures one emission pass. The emitter runs once per
// build configuration, so conditional-compilation guards are evaluated
// here against the active tag set.
type EmitOptions struct {
	// BareMetal enables target-only details such as the dedicated
	// HardFault link section. Hosted passes used only for checking omit
	// them.
	BareMetal bool

	// Tags is the active build tag set guards are evaluated against.
	Tags []string
}

// GenFunc is the generated trampoline for one declaration.
type GenFunc struct {
	// Name of the generated function.
	Name string

	// Export is the fixed symbol the trampoline is bound to.
	Export string

	// Code holds the storage slot declarations and the trampoline.
	Code string

	// Imports lists packages the emitted code itself references.
	Imports []string

	// Skip is set when a function-level guard disabled the whole
	// declaration for this configuration.
	Skip bool
}

// Emit generates the trampoline for a validated declaration. The
// trampoline is bound to the vector symbol, declares the resource slots
// ahead of the call, and re-asserts the non-returning contract where the
// kind demands it.
func Emit(d *Declaration, low Lowering, opts EmitOptions) (GenFunc, error) {
	if !guardsSatisfied(d.Guards, opts.Tags) {
		return GenFunc{Skip: true}, nil
	}

	gen := GenFunc{
		Name:   trampolineName(d.Vector()),
		Export: d.Vector(),
	}
	rule := RuleFor(d.Kind)

	var b strings.Builder

	// Storage slots, filtered by their guards. A disabled resource
	// contributes neither storage nor a call argument.
	slots := activeSlots(low.Slots, opts.Tags)
	if len(slots) > 0 {
		b.WriteString("var (\n")
		for _, slot := range slots {
			fmt.Fprintf(&b, "\t%s %s = %s\n", SlotName(slot.Index), slot.Type, slot.Init)
		}
		b.WriteString(")\n\n")
	}

	// Interrupt declarations reference the enumeration member so an
	// unresolvable name fails the target build instead of silently
	// binding a dead vector symbol.
	if d.Kind == KindInterrupt {
		typeExpr, memberExpr := interruptRefs(d.Interrupt)
		fmt.Fprintf(&b, "var _ %s = %s\n\n", typeExpr, memberExpr)
	}

	for _, line := range d.Fn.Doc {
		fmt.Fprintf(&b, "// %s\n", line)
	}
	for _, attr := range d.Passthrough {
		b.WriteString(renderPragma(attr))
	}
	if rule.Section != "" && opts.BareMetal {
		fmt.Fprintf(&b, "//go:section %s\n", rule.Section)
	}
	fmt.Fprintf(&b, "//go:export %s %s\n", gen.Name, gen.Export)

	switch rule.Injected {
	case RoleFrame:
		frameType := "*" + d.Params[0].Type.Name
		fmt.Fprintf(&b, "func %s(frame %s) {\n", gen.Name, frameType)
		fmt.Fprintf(&b, "\t%s(frame)\n", d.Fn.Name)
	case RoleIRQn:
		fmt.Fprintf(&b, "func %s() {\n", gen.Name)
		fmt.Fprintf(&b, "\t%s(cortexm.CurrentIRQn())\n", d.Fn.Name)
		gen.Imports = append(gen.Imports, RuntimeImport)
	default:
		fmt.Fprintf(&b, "func %s() {\n", gen.Name)
		if d.Kind == KindEntry {
			// The handoff window closes at the reset→main boundary,
			// before user code can observe interrupts.
			b.WriteString("\tcortexm.InitArrayDone()\n")
			gen.Imports = append(gen.Imports, RuntimeImport)
		}
		args := make([]string, 0, len(slots))
		for _, arg := range activeArgs(low.Args, opts.Tags) {
			args = append(args, "&"+SlotName(arg.Slot))
		}
		fmt.Fprintf(&b, "\t%s(%s)\n", d.Fn.Name, strings.Join(args, ", "))
	}

	if rule.Diverges {
		b.WriteString("\tcortexm.Abort() // this handler must not return\n")
		gen.Imports = appendUnique(gen.Imports, RuntimeImport)
	}
	b.WriteString("}\n")

	gen.Code = b.String()
	return gen, nil
}

func trampolineName(export string) string {
	name := strings.TrimLeft(export, "_")
	if i := strings.Index(name, "_"); i >= 0 {
		// __pre_init and friends: camel the remainder.
		parts := strings.Split(name, "_")
		name = ""
		for _, part := range parts {
			if part != "" {
				name += strings.ToUpper(part[:1]) + part[1:]
			}
		}
	} else if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return "_veneer" + name
}

// interruptRefs splits the member path into the enumeration type
// expression and the member constant expression.
func interruptRefs(path []string) (typeExpr, memberExpr string) {
	member := path[len(path)-1]
	typeExpr = strings.Join(path[:len(path)-1], ".")
	if len(path) > 2 {
		memberExpr = path[0] + ".IRQ_" + member
	} else {
		memberExpr = "IRQ_" + member
	}
	return typeExpr, memberExpr
}

func renderPragma(attr Pragma) string {
	if len(attr.Args) == 0 {
		return "//" + attr.Name + "\n"
	}
	return "//" + attr.Name + " " + strings.Join(attr.Args, " ") + "\n"
}

func activeSlots(slots []StorageSlot, tags []string) []StorageSlot {
	var out []StorageSlot
	for _, slot := range slots {
		if guardsSatisfied(slot.Guards, tags) {
			out = append(out, slot)
		}
	}
	return out
}

func activeArgs(args []CallArg, tags []string) []CallArg {
	var out []CallArg
	for _, arg := range args {
		if guardsSatisfied(arg.Guards, tags) {
			out = append(out, arg)
		}
	}
	return out
}

// guardsSatisfied evaluates conditional-compilation guards against the
// active tag set. Every guard must hold; within a guard, every
// space-separated term must hold, with a leading `!` negating a term.
func guardsSatisfied(guards []string, tags []string) bool {
	for _, guard := range guards {
		for _, term := range strings.Fields(guard) {
			want := true
			if strings.HasPrefix(term, "!") {
				want = false
				term = term[1:]
			}
			if hasTag(tags, term) != want {
				return false
			}
		}
	}
	return true
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}
