package vm

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// writeTrace emits one diagnostic JSON line for the instruction about to
// execute, containing the IP, direction, the instruction byte, the top
// stack's values and its register (or null). Built with sjson field by
// field rather than a tagged struct + encoding/json, since nothing
// downstream needs a typed trace record.
func (vm *Interpreter) writeTrace(instr byte) {
	doc := []byte("{}")
	doc, _ = sjson.SetBytes(doc, "ip.chr", vm.ip.Chr)
	doc, _ = sjson.SetBytes(doc, "ip.line", vm.ip.Line)
	doc, _ = sjson.SetBytes(doc, "dir", vm.dir.String())
	doc, _ = sjson.SetBytes(doc, "next_instr", string(rune(instr)))

	top := vm.stacks.Top()
	values := top.Values()
	stack := make([]string, len(values))
	for i, v := range values {
		stack[i] = v.GoString()
	}
	doc, _ = sjson.SetBytes(doc, "stack", stack)

	if reg, ok := top.Register(); ok {
		doc, _ = sjson.SetBytes(doc, "register", reg.GoString())
	} else {
		doc, _ = sjson.SetBytes(doc, "register", nil)
	}

	fmt.Fprintln(vm.trace, string(doc))
}
