package vm

import (
	"bufio"
	"io"
	"time"

	prand "pgregory.net/rand"
)

// Interpreter owns every piece of mutable state for one program run: the
// IP, direction, parser sub-state, RNG, stacks, overlay, I/O, the
// tracing sink and the optional inter-tick delay. No concurrent access
// to an Interpreter is supported; it executes on a single logical
// thread, matching the language's concurrency model.
type Interpreter struct {
	grid    *Grid
	overlay *Overlay
	stacks  *StackOfStacks

	ip    IP
	dir   Direction
	state ParserState

	rng *prand.Rand

	stdin  *bufio.Reader
	stdout *bufio.Writer
	trace  io.Writer

	tick       time.Duration
	alwaysTick bool
	seed       []Value
}

// NewInterpreter builds an Interpreter over a fixed Grid. The overlay
// and stacks start empty; Run (via Reset) seeds the initial stack from
// opts.Seed before execution begins.
func NewInterpreter(grid *Grid, opts RunOptions) *Interpreter {
	in := opts.Input
	if in == nil {
		in = eofReader{}
	}
	var out io.Writer = io.Discard
	if opts.Output != nil {
		out = opts.Output
	}

	return &Interpreter{
		grid:       grid,
		overlay:    newOverlay(),
		stacks:     newStackOfStacks(),
		dir:        Right,
		state:      Normal,
		rng:        newInstanceRand(),
		stdin:      bufio.NewReader(in),
		stdout:     bufio.NewWriter(out),
		trace:      opts.Trace,
		tick:       opts.Tick,
		alwaysTick: opts.AlwaysTick,
		seed:       opts.Seed,
	}
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }

// Stacks exposes the stack-of-stacks for callers that seed or inspect
// state between runs (tests, the CLI's -s/-v flags are applied via
// RunOptions.Seed instead, so this is mostly a test hook).
func (vm *Interpreter) Stacks() *StackOfStacks { return vm.stacks }

func (vm *Interpreter) IP() IP { return vm.ip }

func (vm *Interpreter) Direction() Direction { return vm.dir }

// Reset restores the IP, direction and parser sub-state to their
// initial values and pushes the configured seed values. It does NOT
// touch the stacks beyond seeding, the overlay, or the overlay's dirty
// flag — those persist across repeated Reset+Run calls on the same
// Interpreter, so self-modified code and accumulated stack state survive
// a jump back to the start of the program.
func (vm *Interpreter) Reset() {
	vm.ip = IP{Chr: 0, Line: 0}
	vm.dir = Right
	vm.state = Normal
	for _, v := range vm.seed {
		vm.stacks.Top().Push(v)
	}
}

// Run executes the program from a freshly Reset state until a ";"
// terminates it successfully (nil returned) or an instruction fails
// (the first error is returned). stdout is flushed before returning
// either way. advance() runs unconditionally after every non-stopped
// step, "." included: a jump lands the IP on its (clamped) target, and
// the following advance moves one cell from there in the current
// direction.
func (vm *Interpreter) Run() error {
	vm.Reset()
	defer vm.stdout.Flush()

	for {
		stopped, err := vm.step()
		if err != nil {
			return err
		}
		if stopped {
			return nil
		}
		vm.advance()
		if vm.tick > 0 {
			time.Sleep(vm.tick)
		}
	}
}

// step fetches, traces and dispatches exactly one instruction.
func (vm *Interpreter) step() (stopped bool, err error) {
	b, err := vm.fetch()
	if err != nil {
		return false, err
	}

	if vm.trace != nil && b != ' ' {
		vm.writeTrace(b)
	}

	switch vm.state {
	case SingleQuoted:
		if b == '\'' {
			vm.state = Normal
		} else {
			vm.stacks.Top().Push(ByteValue(b))
		}
		return false, nil
	case DoubleQuoted:
		if b == '"' {
			vm.state = Normal
		} else {
			vm.stacks.Top().Push(ByteValue(b))
		}
		return false, nil
	default:
		return vm.execute(b)
	}
}

// fetch returns the byte at the current IP: the overlay's value if the
// overlay is dirty and holds an entry there, otherwise the Grid's byte.
// An out-of-bounds IP is a runtime error, not a silent no-op.
func (vm *Interpreter) fetch() (byte, error) {
	if vm.overlay.Dirty() {
		if v, ok := vm.overlay.Get(int64(vm.ip.Chr), int64(vm.ip.Line)); ok {
			return v.ToU8(), nil
		}
	}
	b, ok := vm.grid.Get(vm.ip.Chr, vm.ip.Line)
	if !ok {
		return 0, ErrInvalidIPPosition
	}
	return b, nil
}

// advance moves the IP one step in the current direction with modular
// wrap-around, then re-normalizes in case a prior jump left either
// coordinate past its dimension.
func (vm *Interpreter) advance() {
	w, h := vm.grid.Width(), vm.grid.Height()
	switch vm.dir {
	case Right:
		vm.ip.Chr = wrapInc(vm.ip.Chr, w)
	case Left:
		vm.ip.Chr = wrapDec(vm.ip.Chr, w)
	case Down:
		vm.ip.Line = wrapInc(vm.ip.Line, h)
	case Up:
		vm.ip.Line = wrapDec(vm.ip.Line, h)
	}
	if vm.ip.Chr >= w {
		vm.ip.Chr = 0
	}
	if vm.ip.Line >= h {
		vm.ip.Line = 0
	}
}

func wrapInc(v, n int) int {
	v++
	if v >= n {
		return 0
	}
	return v
}

func wrapDec(v, n int) int {
	if v == 0 {
		return n - 1
	}
	return v - 1
}

// gridRead implements the shared read semantics of "g" and "p": the
// overlay's value when dirty and present, else the grid's byte with
// both out-of-bounds and padding-space treated as Byte(0).
func (vm *Interpreter) gridRead(x, y int64) Value {
	if vm.overlay.Dirty() {
		if v, ok := vm.overlay.Get(x, y); ok {
			return v
		}
	}
	if x < 0 || y < 0 || x > int64(int(^uint(0)>>1)) || y > int64(int(^uint(0)>>1)) {
		return ByteValue(0)
	}
	b, ok := vm.grid.Get(int(x), int(y))
	if !ok || b == ' ' {
		return ByteValue(0)
	}
	return ByteValue(b)
}
