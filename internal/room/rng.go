package room

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
)

// newFairRand seeds a math/rand source from crypto/rand. Deck shuffling and
// starting-player selection are fairness-critical (spec.md §9), so each
// room gets its own unpredictable, unshared PRNG rather than a
// process-global one.
func newFairRand() *mathrand.Rand {
	var seed [8]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic("room: failed to seed PRNG from crypto/rand: " + err.Error())
	}
	return mathrand.New(mathrand.NewSource(int64(binary.BigEndian.Uint64(seed[:]))))
}
