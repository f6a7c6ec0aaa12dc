package vm

import (
	"crypto/rand"
	"encoding/binary"

	prand "pgregory.net/rand"
)

var allDirections = [4]Direction{Right, Left, Up, Down}

// newInstanceRand seeds an instance-local generator from crypto/rand so
// concurrently constructed Interpreters never share RNG state. pgregory's
// rand is a drop-in, allocation-light Source the rest of the corpus
// already reaches for when it needs reproducible-looking pseudorandom
// streams (Fantom-foundation/Tosca uses it for fuzz-style randomized EVM
// inputs); here it only ever backs the "x" instruction's direction pick,
// so its behavior is explicitly non-deterministic and out of the test
// contract per the design notes.
func newInstanceRand() *prand.Rand {
	var seed [8]byte
	// A crypto/rand failure here is vanishingly rare and not itself a
	// runtime error kind; fall back to the zero seed rather than
	// threading an error through VM construction for it.
	_, _ = rand.Read(seed[:])
	return prand.New(prand.NewSource(binary.LittleEndian.Uint64(seed[:])))
}

func (vm *Interpreter) randomDirection() Direction {
	return allDirections[vm.rng.Intn(len(allDirections))]
}
