package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/aldden/gridfish/vm"
)

// exitError pairs a process exit code with the error that produced it,
// so main can translate cobra's single RunE error into the three-way
// usage/load/runtime exit code split the CLI surface requires.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &exitError{code: 1, err: fmt.Errorf(format, args...)}
}

func loadErrorf(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

func runtimeError(err error) error {
	return &exitError{code: 3, err: err}
}

var (
	flagCode       string
	flagStrings    []string
	flagValues     []int64
	flagTickSecs   int
	flagAlwaysTick bool
	flagDebug      bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "gridfish [file]",
		Short:        "Run a two-dimensional, stack-based esolang program",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	cmd.Flags().StringVarP(&flagCode, "code", "c", "", "use this string as the program source instead of a file")
	cmd.Flags().StringArrayVarP(&flagStrings, "string", "s", nil, "push the UTF-8 bytes of this string onto the initial stack (repeatable)")
	cmd.Flags().Int64SliceVarP(&flagValues, "value", "v", nil, "push Int(n) onto the initial stack (repeatable)")
	cmd.Flags().IntVarP(&flagTickSecs, "tick", "t", 0, "seconds of delay between instructions")
	cmd.Flags().BoolVarP(&flagAlwaysTick, "always-tick", "a", false, "tick on every step including whitespace/skipped")
	cmd.Flags().BoolVarP(&flagDebug, "debug", "d", false, "enable tracing to stderr")

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	haveFile := len(args) == 1
	haveCode := cmd.Flags().Changed("code")

	if haveFile == haveCode {
		return usageErrorf("exactly one of a file argument or -c/--code is required")
	}

	var source []byte
	if haveCode {
		source = []byte(flagCode)
	} else {
		var err error
		source, err = os.ReadFile(args[0])
		if err != nil {
			return loadErrorf("could not read %s: %w", args[0], err)
		}
	}

	seed, err := seedFromArgs(os.Args[1:])
	if err != nil {
		return usageErrorf("%v", err)
	}

	opts := vm.RunOptions{
		Input:      os.Stdin,
		Output:     os.Stdout,
		Seed:       seed,
		Tick:       time.Duration(flagTickSecs) * time.Second,
		AlwaysTick: flagAlwaysTick,
	}
	if flagDebug {
		opts.Trace = os.Stderr
	}

	interp := vm.NewInterpreter(vm.NewGrid(source), opts)
	if runErr := interp.Run(); runErr != nil {
		fmt.Println("something smells fishy...")
		return runtimeError(runErr)
	}

	fmt.Println()
	return nil
}

// seedFromArgs re-scans the raw argument list for -s/--string and
// -v/--value occurrences so the seed values land on the initial stack
// in true left-to-right command-line order, matching the original
// tool's behavior. pflag's per-flag slices preserve order within a
// single flag but lose the interleaving between -s and -v, so cobra's
// parsed flagStrings/flagValues are used only for validation, not for
// building the seed.
func seedFromArgs(args []string) ([]vm.Value, error) {
	var seed []vm.Value
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, inlineVal, hasInline := splitFlag(arg)

		switch name {
		case "-s", "--string":
			val := inlineVal
			if !hasInline {
				i++
				if i >= len(args) {
					return nil, errors.New("-s/--string requires an argument")
				}
				val = args[i]
			}
			for _, b := range []byte(val) {
				seed = append(seed, vm.ByteValue(b))
			}
		case "-v", "--value":
			val := inlineVal
			if !hasInline {
				i++
				if i >= len(args) {
					return nil, errors.New("-v/--value requires an argument")
				}
				val = args[i]
			}
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("-v/--value: %w", err)
			}
			seed = append(seed, vm.IntValue(n))
		}
	}
	return seed, nil
}

// splitFlag recognizes "-s=x"/"--string=x" inline-value forms in
// addition to the separate-argument form.
func splitFlag(arg string) (name, value string, hasInline bool) {
	for i, r := range arg {
		if r == '=' {
			return arg[:i], arg[i+1:], true
		}
	}
	return arg, "", false
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.code != 3 {
				fmt.Fprintln(os.Stderr, ee.err)
			}
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
