package mines

import "math/rand/v2"

// placeMines picks p.NumBombs distinct cells uniformly at random.
func placeMines(p Params, r *rand.Rand) []bool {
	n := p.Cells()
	mines := make([]bool, n)

	/*
	 * Write down the list of possible mine locations, then pick
	 * NumBombs off the list at random, swapping each pick out.
	 */
	candidates := make([]int, n)
	for i := range candidates {
		candidates[i] = i
	}
	k := n
	for range p.NumBombs {
		i := r.IntN(k)
		mines[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	return mines
}

// countNeighbors derives the cell values of an n-by-n grid once all mines
// are in place.
func countNeighbors(n int, mines []bool) []Cell {
	grid := make([]Cell, len(mines))
	for i, mine := range mines {
		if mine {
			grid[i] = Mine
			continue
		}
		var c Cell
		forEachNeighbor(n, i, func(j int) {
			if mines[j] {
				c++
			}
		})
		grid[i] = c
	}
	return grid
}
