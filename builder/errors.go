package builder

import "errors"

var (
	ErrParserError        = errors.New("parser error occurred")
	ErrConflictingPragmas = errors.New("conflicting handler pragmas")
	ErrUnknownParameter   = errors.New("pragma references unknown parameter")
	ErrNoEntry            = errors.New("no entry point declared")
	ErrVectorAlreadyBound = errors.New("vector already bound to a handler")
	ErrUnknownChip        = errors.New("unknown chip")
	ErrUnknownInterrupt   = errors.New("interrupt is not defined for the target")
)
