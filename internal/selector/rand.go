package selector

import rand "math/rand/v2"

// NewRand builds the deterministic source the quiz machinery draws
// from. PCG wants two 64-bit words; stepping a splitmix64 state twice
// gives both from one seed and keeps adjacent seeds decorrelated.
func NewRand(seed int64) *rand.Rand {
	state := uint64(seed)
	hi := splitmix64(&state)
	lo := splitmix64(&state)
	return rand.New(rand.NewPCG(hi, lo))
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	x := *state
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
