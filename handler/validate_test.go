package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omibyte.io/veneer/handler"
)

func parseValid(t *testing.T, kind handler.Pragma, parse func(handler.Pragma, *handler.Fn) (*handler.Declaration, error), fn *handler.Fn) *handler.Declaration {
	t.Helper()
	decl, err := parse(kind, fn)
	require.NoError(t, err)
	return decl
}

func TestValidateEntry(t *testing.T) {
	t.Run("resources ok", func(t *testing.T) {
		decl := parseValid(t, handler.Pragma{}, handler.ParseEntry, newFn(resourceParam("a", "int", "0"), resourceParam("b", "uint32", "7")))
		assert.NoError(t, handler.Validate(decl))
	})

	t.Run("process-lifetime resource permitted", func(t *testing.T) {
		p := resourceParam("a", "int", "0")
		p.Type.Static = true
		decl := parseValid(t, handler.Pragma{}, handler.ParseEntry, newFn(p))
		assert.NoError(t, handler.Validate(decl))
	})

	t.Run("never-returning entry ok", func(t *testing.T) {
		fn := newFn()
		fn.Return = handler.ReturnNever
		decl := parseValid(t, handler.Pragma{}, handler.ParseEntry, fn)
		assert.NoError(t, handler.Validate(decl))
	})

	t.Run("value-returning entry rejected", func(t *testing.T) {
		fn := newFn()
		fn.Return = handler.ReturnOther
		decl := parseValid(t, handler.Pragma{}, handler.ParseEntry, fn)
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrBadReturn)
	})
}

func TestValidateDefaultHandler(t *testing.T) {
	parse := func(fn *handler.Fn) (*handler.Declaration, error) {
		return handler.ParseException(handler.Pragma{Args: []string{"DefaultHandler", "unsafe"}}, fn)
	}

	t.Run("valid signature", func(t *testing.T) {
		decl, err := parse(newFn(irqnParam("irqn")))
		require.NoError(t, err)
		assert.NoError(t, handler.Validate(decl))
	})

	t.Run("no parameters", func(t *testing.T) {
		decl, err := parse(newFn())
		require.NoError(t, err)
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrBadArity)
	})

	t.Run("extra parameter", func(t *testing.T) {
		decl, err := parse(newFn(irqnParam("irqn"), resourceParam("x", "int", "0")))
		require.NoError(t, err)
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrBadArity)
	})

	t.Run("wrong integer width", func(t *testing.T) {
		p := irqnParam("irqn")
		p.Type.Name = "int32"
		decl, err := parse(newFn(p))
		require.NoError(t, err)
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrBadParamType)
	})

	t.Run("wrong role", func(t *testing.T) {
		decl, err := parse(newFn(resourceParam("x", "int16", "0")))
		require.NoError(t, err)
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrParamRole)
	})
}

func TestValidateHardFault(t *testing.T) {
	parse := func(fn *handler.Fn) (*handler.Declaration, error) {
		return handler.ParseException(handler.Pragma{Args: []string{"HardFault", "unsafe"}}, fn)
	}

	t.Run("valid signature", func(t *testing.T) {
		fn := newFn(frameParam("frame"))
		fn.Return = handler.ReturnNever
		decl, err := parse(fn)
		require.NoError(t, err)
		assert.NoError(t, handler.Validate(decl))
	})

	t.Run("non-reference frame", func(t *testing.T) {
		p := frameParam("frame")
		p.Type.Ref = handler.RefNone
		fn := newFn(p)
		fn.Return = handler.ReturnNever
		decl, err := parse(fn)
		require.NoError(t, err)
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrBadParamType)
	})

	t.Run("mutable frame reference", func(t *testing.T) {
		p := frameParam("frame")
		p.Type.Ref = handler.RefMut
		fn := newFn(p)
		fn.Return = handler.ReturnNever
		decl, err := parse(fn)
		require.NoError(t, err)
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrBadParamType)
	})

	t.Run("wrong referent type", func(t *testing.T) {
		p := frameParam("frame")
		p.Type.Name = "uint32"
		fn := newFn(p)
		fn.Return = handler.ReturnNever
		decl, err := parse(fn)
		require.NoError(t, err)
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrBadParamType)
	})

	t.Run("must never return", func(t *testing.T) {
		decl, err := parse(newFn(frameParam("frame")))
		require.NoError(t, err)
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrBadReturn)
	})
}

func TestValidateUnsafeMarker(t *testing.T) {
	// The parser enforces the marker for the exception surface; the
	// validator still owns the clause for declarations built directly
	// from another front end.
	for _, kind := range []handler.Kind{handler.KindDefaultHandler, handler.KindHardFault, handler.KindNonMaskableInt} {
		decl := &handler.Declaration{Kind: kind, Fn: newFn()}
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrMissingUnsafe, kind.String())
	}
}

func TestValidateStaticResources(t *testing.T) {
	t.Run("rejected on exception handlers", func(t *testing.T) {
		p := resourceParam("count", "int", "0")
		p.Type.Static = true
		decl := parseValid(t, handler.Pragma{Args: []string{"SysTick"}}, handler.ParseException, newFn(p))
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrStaticResource)
	})

	t.Run("rejected on interrupt handlers", func(t *testing.T) {
		p := resourceParam("count", "int", "0")
		p.Type.Static = true
		decl := parseValid(t, handler.Pragma{Args: []string{"Interrupt.TC3"}}, handler.ParseInterrupt, newFn(p))
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrStaticResource)
	})
}

func TestValidatePreInit(t *testing.T) {
	parse := func(fn *handler.Fn) (*handler.Declaration, error) {
		return handler.ParsePreInit(handler.Pragma{Args: []string{"unsafe"}}, fn)
	}

	t.Run("no parameters", func(t *testing.T) {
		decl, err := parse(newFn(resourceParam("x", "int", "0")))
		require.NoError(t, err)
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrBadArity)
	})

	t.Run("must return nothing", func(t *testing.T) {
		fn := newFn()
		fn.Return = handler.ReturnNever
		decl, err := parse(fn)
		require.NoError(t, err)
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrBadReturn)
	})
}

func TestValidatePolicy(t *testing.T) {
	decl := parseValid(t, handler.Pragma{Args: []string{"SysTick"}}, handler.ParseException, newFn())

	assert.NoError(t, handler.Validate(decl))
	assert.ErrorIs(t, handler.ValidatePolicy(decl, handler.Policy{RequireUnsafe: true}), handler.ErrMissingUnsafe)

	marked := parseValid(t, handler.Pragma{Args: []string{"SysTick", "unsafe"}}, handler.ParseException, newFn())
	assert.NoError(t, handler.ValidatePolicy(marked, handler.Policy{RequireUnsafe: true}))
}

func TestValidateInjectedRoleMisuse(t *testing.T) {
	t.Run("irqn on interrupt handler", func(t *testing.T) {
		decl, err := handler.ParseInterrupt(handler.Pragma{Args: []string{"Interrupt.TC3"}}, newFn(irqnParam("n")))
		require.NoError(t, err)
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrParamRole)
	})

	t.Run("frame on entry", func(t *testing.T) {
		decl, err := handler.ParseEntry(handler.Pragma{}, newFn(frameParam("f")))
		require.NoError(t, err)
		assert.ErrorIs(t, handler.Validate(decl), handler.ErrParamRole)
	})
}
