package handler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omibyte.io/veneer/handler"
)

func emit(t *testing.T, decl *handler.Declaration, opts handler.EmitOptions) handler.GenFunc {
	t.Helper()
	var alloc handler.SlotAllocator
	low := handler.Lower(decl, &alloc)
	gen, err := handler.Emit(decl, low, opts)
	require.NoError(t, err)
	return gen
}

func TestEmitEntry(t *testing.T) {
	decl, err := handler.ParseEntry(handler.Pragma{}, &handler.Fn{
		Name:   "run",
		Params: []handler.FnParam{resourceParam("ticks", "int", "0")},
	})
	require.NoError(t, err)

	gen := emit(t, decl, handler.EmitOptions{})
	assert.Equal(t, "main", gen.Export)
	assert.Contains(t, gen.Code, "//go:export _veneerMain main")
	assert.Contains(t, gen.Code, "_veneerSlot0 int = 0")
	assert.Contains(t, gen.Code, "cortexm.InitArrayDone()")
	assert.Contains(t, gen.Code, "run(&_veneerSlot0)")
	assert.Contains(t, gen.Code, "cortexm.Abort()")
	assert.Contains(t, gen.Imports, handler.RuntimeImport)

	// The handoff window must close before user main runs.
	assert.Less(t,
		strings.Index(gen.Code, "cortexm.InitArrayDone()"),
		strings.Index(gen.Code, "run(&_veneerSlot0)"))
}

func TestEmitPreInit(t *testing.T) {
	decl, err := handler.ParsePreInit(handler.Pragma{Args: []string{"unsafe"}}, &handler.Fn{Name: "earlySetup"})
	require.NoError(t, err)

	gen := emit(t, decl, handler.EmitOptions{})
	assert.Equal(t, "__pre_init", gen.Export)
	assert.Contains(t, gen.Code, "//go:export _veneerPreInit __pre_init")
	assert.Contains(t, gen.Code, "earlySetup()")
	assert.NotContains(t, gen.Code, "Abort")
}

func TestEmitDefaultHandler(t *testing.T) {
	decl, err := handler.ParseException(
		handler.Pragma{Args: []string{"DefaultHandler", "unsafe"}},
		&handler.Fn{Name: "fallback", Params: []handler.FnParam{irqnParam("irqn")}})
	require.NoError(t, err)

	gen := emit(t, decl, handler.EmitOptions{})
	assert.Equal(t, "DefaultHandler", gen.Export)
	assert.Contains(t, gen.Code, "fallback(cortexm.CurrentIRQn())")
	assert.Contains(t, gen.Imports, handler.RuntimeImport)
}

func TestEmitHardFault(t *testing.T) {
	fn := &handler.Fn{Name: "fault", Params: []handler.FnParam{frameParam("frame")}, Return: handler.ReturnNever}
	decl, err := handler.ParseException(handler.Pragma{Args: []string{"HardFault", "unsafe"}}, fn)
	require.NoError(t, err)

	t.Run("bare metal keeps the handler resident", func(t *testing.T) {
		gen := emit(t, decl, handler.EmitOptions{BareMetal: true})
		assert.Contains(t, gen.Code, "//go:section .HardFault.user")
		assert.Contains(t, gen.Code, "func _veneerHardFault(frame *cortexm.ExceptionFrame)")
		assert.Contains(t, gen.Code, "fault(frame)")
		assert.Contains(t, gen.Code, "cortexm.Abort()")
	})

	t.Run("hosted check build omits the section", func(t *testing.T) {
		gen := emit(t, decl, handler.EmitOptions{})
		assert.NotContains(t, gen.Code, "go:section")
	})
}

func TestEmitInterrupt(t *testing.T) {
	decl, err := handler.ParseInterrupt(handler.Pragma{Args: []string{"atsamd21.Interrupt.TC3"}}, &handler.Fn{Name: "tc3"})
	require.NoError(t, err)

	gen := emit(t, decl, handler.EmitOptions{})
	assert.Equal(t, "TC3", gen.Export)
	assert.Contains(t, gen.Code, "var _ atsamd21.Interrupt = atsamd21.IRQ_TC3")
	assert.Contains(t, gen.Code, "//go:export _veneerTC3 TC3")
	assert.Contains(t, gen.Code, "tc3()")
}

func TestEmitGuardedResource(t *testing.T) {
	guarded := resourceParam("x", "int", "0")
	guarded.Attrs = append(guarded.Attrs, handler.Pragma{Name: handler.PragmaCfg, Args: []string{"feature_x"}})
	decl, err := handler.ParseException(handler.Pragma{Args: []string{"SysTick"}},
		newFn(guarded, resourceParam("y", "uint32", "1")))
	require.NoError(t, err)

	t.Run("tag enabled keeps both sites", func(t *testing.T) {
		gen := emit(t, decl, handler.EmitOptions{Tags: []string{"feature_x"}})
		assert.Contains(t, gen.Code, "_veneerSlot0 int = 0")
		assert.Contains(t, gen.Code, "widget(&_veneerSlot0, &_veneerSlot1)")
	})

	t.Run("tag disabled removes storage and argument together", func(t *testing.T) {
		gen := emit(t, decl, handler.EmitOptions{})
		assert.NotContains(t, gen.Code, "_veneerSlot0 int")
		assert.Contains(t, gen.Code, "widget(&_veneerSlot1)")
	})
}

func TestEmitFunctionGuard(t *testing.T) {
	fn := newFn()
	fn.Attrs = []handler.Pragma{{Name: handler.PragmaBuild, Args: []string{"feature_x"}}}
	decl, err := handler.ParseException(handler.Pragma{Args: []string{"SysTick"}}, fn)
	require.NoError(t, err)

	var alloc handler.SlotAllocator
	gen, err := handler.Emit(decl, handler.Lower(decl, &alloc), handler.EmitOptions{})
	require.NoError(t, err)
	assert.True(t, gen.Skip)

	gen, err = handler.Emit(decl, handler.Lower(decl, &alloc), handler.EmitOptions{Tags: []string{"feature_x"}})
	require.NoError(t, err)
	assert.False(t, gen.Skip)
	assert.Contains(t, gen.Code, "widget()")
}

func TestEmitPassthroughAttributes(t *testing.T) {
	fn := newFn()
	fn.Doc = []string{"tick services the system timer."}
	fn.Attrs = []handler.Pragma{{Name: "go:noinline"}}
	decl, err := handler.ParseException(handler.Pragma{Args: []string{"SysTick"}}, fn)
	require.NoError(t, err)

	gen := emit(t, decl, handler.EmitOptions{})
	assert.Contains(t, gen.Code, "// tick services the system timer.")
	assert.Contains(t, gen.Code, "//go:noinline")
}
