package handler

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"strings"
)

// Sentinel errors naming the contract clause a diagnostic violates.
// Callers match with errors.Is.
var (
	ErrAttributeArgs     = errors.New("bad attribute arguments")
	ErrUnknownException  = errors.New("unknown exception name")
	ErrInterruptPath     = errors.New("bad interrupt path")
	ErrMissingUnsafe     = errors.New("missing unsafe marker")
	ErrAsyncHandler      = errors.New("handler is async")
	ErrVariadicHandler   = errors.New("handler is variadic")
	ErrGenericHandler    = errors.New("handler is generic")
	ErrReceiverParam     = errors.New("handler has a receiver parameter")
	ErrParamRole         = errors.New("bad parameter role attributes")
	ErrResourceType      = errors.New("bad resource parameter type")
	ErrStaticResource    = errors.New("process-lifetime resource not permitted")
	ErrDuplicateResource = errors.New("duplicate resource name")
	ErrBadArity          = errors.New("wrong parameter arity")
	ErrBadParamType      = errors.New("wrong parameter type")
	ErrBadReturn         = errors.New("wrong return shape")
	ErrBadAttribute      = errors.New("attribute not allowed here")
)

// Diagnostic is a build-time failure attached to the offending syntax
// span. It wraps the sentinel for the violated clause.
type Diagnostic struct {
	Pos token.Pos
	Err error
	Msg string
}

func (d *Diagnostic) Error() string {
	return d.Msg
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

func diagf(pos token.Pos, sentinel error, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Pos: pos,
		Err: sentinel,
		Msg: fmt.Sprintf(format, args...),
	}
}

// Excerpt renders the source line of a diagnostic with a caret under the
// offending column, for CLI output.
func Excerpt(fset *token.FileSet, pos token.Pos) string {
	if fset == nil || !pos.IsValid() {
		return ""
	}
	position := fset.Position(pos)
	buf, err := os.ReadFile(position.Filename)
	if err != nil {
		return ""
	}
	lines := strings.Split(string(buf), "\n")
	if position.Line < 1 || position.Line > len(lines) {
		return ""
	}
	line := lines[position.Line-1]
	column := []rune(strings.Repeat(" ", len(line)))
	for i, r := range line {
		if r == '\t' {
			// Copy tabs so the caret lines up.
			column[i] = r
		}
		if i == position.Column-1 {
			column[i] = '^'
		}
	}
	return fmt.Sprintf("%s\n%s", line, string(column))
}
