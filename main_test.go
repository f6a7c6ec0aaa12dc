package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestMain(m *testing.M) {
	code := m.Run()
	snaps.Clean(m, snaps.CleanOpts{Sort: true})
	os.Exit(code)
}

func assertMain(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func TestSplitFlagInlineValue(t *testing.T) {
	name, val, has := splitFlag("--value=42")
	assertMain(t, name == "--value" && val == "42" && has, "expected split inline value, got %q %q %v", name, val, has)

	name, _, has = splitFlag("-s")
	assertMain(t, name == "-s" && !has, "expected no inline value for bare flag")
}

func TestSeedFromArgsPreservesInterleavedOrder(t *testing.T) {
	seed, err := seedFromArgs([]string{"-v", "5", "-s", "hi", "-v", "9"})
	assertMain(t, err == nil, "unexpected error: %v", err)
	assertMain(t, len(seed) == 4, "expected 4 seed values, got %d", len(seed))
	assertMain(t, seed[0].ToI64() == 5, "expected first seed value 5")
	assertMain(t, seed[1].ToU8() == 'h', "expected second seed value 'h'")
	assertMain(t, seed[2].ToU8() == 'i', "expected third seed value 'i'")
	assertMain(t, seed[3].ToI64() == 9, "expected fourth seed value 9")
}

func TestSeedFromArgsRejectsMissingValue(t *testing.T) {
	_, err := seedFromArgs([]string{"-v"})
	assertMain(t, err != nil, "expected error for missing -v argument")
}

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	assertMain(t, err == nil, "pipe: %v", err)

	saved := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = saved }()

	fn()

	w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestCLIRunsInlineCode(t *testing.T) {
	out := captureStdout(t, func() {
		cmd := newRootCmd()
		cmd.SetArgs([]string{"-c", `"hi"oo;`})
		err := cmd.Execute()
		assertMain(t, err == nil, "unexpected execution error: %v", err)
	})
	snaps.MatchSnapshot(t, out)
}

func TestCLIReportsRuntimeErrorOnStdout(t *testing.T) {
	var execErr error
	out := captureStdout(t, func() {
		cmd := newRootCmd()
		cmd.SetArgs([]string{"-c", "z"})
		execErr = cmd.Execute()
	})
	assertMain(t, execErr != nil, "expected an execution error for an invalid instruction")
	var ee *exitError
	assertMain(t, asExitError(execErr, &ee), "expected an exitError")
	assertMain(t, ee.code == 3, "expected runtime exit code 3, got %d", ee.code)
	snaps.MatchSnapshot(t, out)
}

func TestCLIRequiresExactlyOneSource(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	var ee *exitError
	assertMain(t, asExitError(err, &ee), "expected an exitError")
	assertMain(t, ee.code == 1, "expected usage exit code 1, got %d", ee.code)
}

func asExitError(err error, target **exitError) bool {
	ee, ok := err.(*exitError)
	if ok {
		*target = ee
	}
	return ok
}
