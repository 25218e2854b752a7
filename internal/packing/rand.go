package packing

import (
	"math/rand"
	"time"
)

// Rand is the random stream consumed by the search operators.
// *math/rand.Rand satisfies it; every solver run owns its own instance.
type Rand interface {
	Intn(n int) int
	Float64() float64
	Perm(n int) []int
}

// NewRand returns a stream seeded with seed, or with the current time when seed is zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
