package mines

import (
	"hash/maphash"
	"math/rand/v2"
)

// NewRand returns a PCG-backed generator. A zero seed draws a fresh one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// forEachNeighbor calls fn with the linear index of every cell in the 3x3
// block around i on an n-by-n grid, clipped to the grid, excluding i.
func forEachNeighbor(n, i int, fn func(j int)) {
	row, col := i/n, i%n
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if 0 <= r && r < n && 0 <= c && c < n {
				fn(r*n + c)
			}
		}
	}
}
