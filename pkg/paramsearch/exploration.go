package paramsearch

import "math/rand"

// ExplorationStrategy is the pluggable trait mapping a ranked cycle of
// PointScores to the next generation of Points (§4.4, GLOSSARY). An
// implementation must preserve cardinality and must never return
// duplicate points (§8 invariant 3).
type ExplorationStrategy interface {
	Name() string
	NextPointsFrom(ranking []PointScore, space *SearchSpace, rng *rand.Rand) []Point
}

// ShiftAndKeepBestHalf keeps the best half (rounded up) of a ranked cycle
// and extends the retained set back to full cardinality by shifting
// retained points, cycling round-robin through them until the target size
// is reached (§4.4). When the space has no unused point left to shift
// into, it stops and returns fewer points than the ranking holds rather
// than a duplicate.
type ShiftAndKeepBestHalf struct{}

// Name identifies the strategy.
func (ShiftAndKeepBestHalf) Name() string { return "shift_and_keep_best_half" }

// NextPointsFrom implements the procedure of §4.4: take the best ⌈N/2⌉
// points from the ascending ranking, then extend to N by shifting, or to
// fewer than N if the space runs out of unused points.
func (ShiftAndKeepBestHalf) NextPointsFrom(ranking []PointScore, space *SearchSpace, rng *rand.Rand) []Point {
	n := len(ranking)
	if n == 0 {
		return nil
	}
	sorted := SortedPointScores(ranking)

	keep := (n + 1) / 2 // ⌈n/2⌉
	if keep > n {
		keep = n
	}

	used := make(map[string]bool, n)
	result := make([]Point, 0, n)
	retained := make([]Point, 0, keep)
	for i := 0; i < keep; i++ {
		p := sorted[i].Point
		result = append(result, p)
		retained = append(retained, p)
		used[p.Key()] = true
	}

	// The space can be smaller than the population being evolved, in
	// which case no amount of shifting finds a fresh point; track
	// consecutive misses across a full round-robin pass through the
	// retained points and stop rather than manufacture a duplicate
	// (§8 invariant 3 forbids repeated points even under cardinality
	// pressure).
	miss := 0
	for i := 0; len(result) < n && miss < len(retained); i++ {
		base := retained[i%len(retained)]
		next, ok := space.shiftExcluding(base, used, rng)
		if !ok {
			miss++
			continue
		}
		miss = 0
		used[next.Key()] = true
		result = append(result, next)
	}

	return result
}

// shiftExcluding performs a breadth-first search outward from start for
// the nearest point (by unit-shift distance) not already present in
// exclude, so extension never manufactures a duplicate while the space
// still has room.
func (s *SearchSpace) shiftExcluding(start Point, exclude map[string]bool, rng *rand.Rand) (Point, bool) {
	visited := map[string]bool{start.Key(): true}
	queue := []Point{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		neighbors := s.unitNeighbors(cur)
		rng.Shuffle(len(neighbors), func(i, j int) { neighbors[i], neighbors[j] = neighbors[j], neighbors[i] })

		for _, nb := range neighbors {
			if !exclude[nb.Key()] {
				return nb, true
			}
			if !visited[nb.Key()] {
				visited[nb.Key()] = true
				queue = append(queue, nb)
			}
		}
	}
	return Point{}, false
}
