package builder

type Options struct {
	// Packages to scan for handler declarations.
	Packages []string

	// Output directory for generated files. Empty writes each file next
	// to the package it was generated for.
	Output string

	// Chip selects the target device. Interrupt declarations are checked
	// against its vector list and its build tags join the active set.
	Chip string

	// BareMetal enables target-only emission details.
	BareMetal bool

	// RequireUnsafe demands the explicit safety marker on every handler
	// declaration.
	RequireUnsafe bool

	BuildTags   []string
	Environment []string
}
