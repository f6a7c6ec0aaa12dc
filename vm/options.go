package vm

import (
	"io"
	"time"
)

// RunOptions configures an Interpreter at construction time rather than
// through a shared config object mutated after the fact.
type RunOptions struct {
	// Input supplies bytes to the "i" instruction. A nil Input reads as
	// immediate EOF (every "i" pushes Int(-1)).
	Input io.Reader
	// Output receives bytes from "o" and "n". A nil Output discards them.
	Output io.Writer
	// Trace, when non-nil, receives one JSON line per executed non-space
	// instruction. Tracing never alters semantics.
	Trace io.Writer
	// Tick is the delay applied after each executed instruction's
	// advance step. Zero disables the delay.
	Tick time.Duration
	// AlwaysTick is accepted for CLI compatibility with the original
	// tool's advertised "-a" flag; the distilled semantics never
	// separated "tick on every step" from "tick on executed
	// instructions only" (every executed instruction already ticks
	// uniformly), so this flag is stored but does not change behavior.
	AlwaysTick bool
	// Seed is pushed onto the initial stack, in order, at Reset.
	Seed []Value
}
