package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestTraceRecordFields(t *testing.T) {
	var trace bytes.Buffer
	run(t, "5;", RunOptions{Trace: &trace})

	lines := strings.Split(strings.TrimSpace(trace.String()), "\n")
	assert(t, len(lines) == 2, "expected 2 trace lines, got %d", len(lines))

	first := gjson.Parse(lines[0])
	assert(t, first.Get("ip.chr").Int() == 0, "expected ip.chr 0")
	assert(t, first.Get("ip.line").Int() == 0, "expected ip.line 0")
	assert(t, first.Get("dir").String() == "right", "expected dir right, got %q", first.Get("dir").String())
	assert(t, first.Get("next_instr").String() == "5", "expected next_instr '5', got %q", first.Get("next_instr").String())
	assert(t, first.Get("register").Type == gjson.Null, "expected register null before any use")

	second := gjson.Parse(lines[1])
	assert(t, second.Get("next_instr").String() == ";", "expected next_instr ';'")
	stackArr := second.Get("stack").Array()
	assert(t, len(stackArr) == 1, "expected one pushed value in trace stack, got %d", len(stackArr))
}

func TestTraceDisabledByDefault(t *testing.T) {
	vm := run(t, "5;", RunOptions{})
	_ = vm // no trace writer configured; nothing to assert beyond "no panic"
}
