// Package sampling implements the process-lifetime quasi-random value
// table and the 2D sampler built on top of it, used by the shading driver
// for cosine-hemisphere sampling and by area lights for barycentric point
// sampling (spec section 4.10).
package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/seehuhn/mt19937"
)

// TableSize is the number of entries in the shared random-value table.
const TableSize = 1 << 20

var (
	table     [TableSize]float32
	tableOnce sync.Once
	cursor    atomic.Uint64
)

// Next returns the next value from the shared table, advancing the cursor.
// The cursor is a relaxed atomic counter: any thread can call Next
// concurrently and will see a distinct (possibly wrapped) slot, which is
// all the table's quasi-random guarantee requires (spec section 5,
// "relaxed ordering is sufficient").
func Next() float32 {
	tableOnce.Do(initTable)
	n := cursor.Add(1)
	return table[n&(TableSize-1)]
}

// initTable fills the table with a Halton base-2 sequence and shuffles it
// once with a Mersenne-Twister PRNG seeded from OS entropy, matching spec
// section 4.10's construction.
func initTable() {
	for i := 0; i < TableSize; i++ {
		table[i] = haltonBase2(uint64(i + 1))
	}

	seed := seedFromEntropy()
	rng := mt19937.New()
	rng.Seed(seed)

	for i := TableSize - 1; i > 0; i-- {
		j := int(rng.Uint64() % uint64(i+1))
		table[i], table[j] = table[j], table[i]
	}
}

// haltonBase2 computes the n-th term of the base-2 Halton sequence by
// bit-reversing n's fractional binary expansion.
func haltonBase2(n uint64) float32 {
	var result float64
	f := 0.5
	for n > 0 {
		result += f * float64(n&1)
		n >>= 1
		f *= 0.5
	}
	return float32(result)
}

func seedFromEntropy() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is a hard environment error; fall back to a
		// fixed seed rather than leaving the table unseeded.
		return 1
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}
