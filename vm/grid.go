package vm

import "bytes"

// Grid is the immutable, read-only 2D byte array a program is laid out
// on: data[line][chr]. It is constructed once from the program source
// and never rewritten in place — self-modification goes through the
// Overlay side-table instead, which keeps Grid reads O(1) with no
// locking or copy-on-write concerns.
type Grid struct {
	lines  [][]byte
	width  int
	height int
}

// NewGrid splits src on line terminators (LF, or CRLF with the CR
// stripped) and records each line as-is; short lines are not padded in
// storage, Get synthesizes the padding space at read time instead. A
// single trailing newline does not count as a phantom blank final line
// (matching the behavior of reading lines from a file), and an empty
// source yields zero lines.
func NewGrid(src []byte) *Grid {
	var rawLines [][]byte
	if len(src) > 0 {
		rawLines = bytes.Split(src, []byte{'\n'})
		if bytes.HasSuffix(src, []byte{'\n'}) {
			rawLines = rawLines[:len(rawLines)-1]
		}
	}
	lines := make([][]byte, len(rawLines))
	width := 0
	for i, l := range rawLines {
		l = bytes.TrimSuffix(l, []byte{'\r'})
		lines[i] = l
		if len(l) > width {
			width = len(l)
		}
	}
	return &Grid{lines: lines, width: width, height: len(lines)}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Get returns the byte at (x,y): false if the coordinate is out of the
// grid's [0,width)x[0,height) bounds, the line's content if present, or
// a padding space (0x20) for a coordinate past that line's own length.
func (g *Grid) Get(x, y int) (byte, bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0, false
	}
	line := g.lines[y]
	if x >= len(line) {
		return ' ', true
	}
	return line[x], true
}
