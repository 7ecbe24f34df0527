package paramsearch

import (
	"math/rand"
	"testing"
)

func newTestSpace(t *testing.T) *SearchSpace {
	t.Helper()
	space, err := NewSearchSpace(
		Dimension{Name: "x", Min: 0, Max: 50},
		Dimension{Name: "y", Min: 0, Max: 50},
	)
	if err != nil {
		t.Fatalf("NewSearchSpace failed: %v", err)
	}
	return space
}

func TestShiftAndKeepBestHalfPreservesCardinality(t *testing.T) {
	space := newTestSpace(t)
	rng := rand.New(rand.NewSource(7))
	strategy := ShiftAndKeepBestHalf{}

	ranking := []PointScore{
		{Point: NewPoint(10, 10), Score: Score{Objective: 3}},
		{Point: NewPoint(11, 10), Score: Score{Objective: 1}},
		{Point: NewPoint(10, 11), Score: Score{Objective: 4}},
		{Point: NewPoint(9, 10), Score: Score{Objective: 2}},
	}

	next := strategy.NextPointsFrom(ranking, space, rng)
	if got, want := len(next), len(ranking); got != want {
		t.Fatalf("len(next) = %d, want %d", got, want)
	}

	seen := map[string]bool{}
	for _, p := range next {
		if seen[p.Key()] {
			t.Errorf("expected no duplicate points in the next generation, got repeat of %v", p)
		}
		seen[p.Key()] = true
	}
}

func TestShiftAndKeepBestHalfKeepsBestPoints(t *testing.T) {
	space := newTestSpace(t)
	rng := rand.New(rand.NewSource(1))
	strategy := ShiftAndKeepBestHalf{}

	best := PointScore{Point: NewPoint(10, 10), Score: Score{Objective: -100}}
	worst := PointScore{Point: NewPoint(20, 20), Score: Score{Objective: 100}}
	ranking := []PointScore{worst, best}

	next := strategy.NextPointsFrom(ranking, space, rng)

	found := false
	for _, p := range next {
		if p.Equal(best.Point) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the best point %v to be retained in the next generation %v", best.Point, next)
	}
}

func TestShiftAndKeepBestHalfCeilingRounding(t *testing.T) {
	space := newTestSpace(t)
	rng := rand.New(rand.NewSource(1))
	strategy := ShiftAndKeepBestHalf{}

	// Three points: ceil(3/2) = 2 should be retained verbatim.
	ranking := []PointScore{
		{Point: NewPoint(1, 1), Score: Score{Objective: 3}},
		{Point: NewPoint(2, 2), Score: Score{Objective: 1}},
		{Point: NewPoint(3, 3), Score: Score{Objective: 2}},
	}
	next := strategy.NextPointsFrom(ranking, space, rng)
	if len(next) != 3 {
		t.Fatalf("len(next) = %d, want 3", len(next))
	}

	sorted := SortedPointScores(ranking)
	bestTwo := map[string]bool{sorted[0].Point.Key(): true, sorted[1].Point.Key(): true}
	retainedCount := 0
	for _, p := range next {
		if bestTwo[p.Key()] {
			retainedCount++
		}
	}
	if retainedCount < 2 {
		t.Errorf("expected both of the best two points to survive verbatim, found %d in %v", retainedCount, next)
	}
}

func TestShiftAndKeepBestHalfFillsSpaceWithNoRoomToSpare(t *testing.T) {
	space, err := NewSearchSpace(Dimension{Name: "x", Min: 0, Max: 1})
	if err != nil {
		t.Fatalf("NewSearchSpace failed: %v", err)
	}
	rng := rand.New(rand.NewSource(1))
	strategy := ShiftAndKeepBestHalf{}

	ranking := []PointScore{
		{Point: NewPoint(0), Score: Score{Objective: 1}},
		{Point: NewPoint(1), Score: Score{Objective: 2}},
	}
	next := strategy.NextPointsFrom(ranking, space, rng)
	if len(next) != 2 {
		t.Fatalf("len(next) = %d, want 2", len(next))
	}
}

func TestShiftAndKeepBestHalfReturnsFewerRatherThanDuplicateOnTrueExhaustion(t *testing.T) {
	// A single-point dimension (Min == Max) has no neighbors to shift into
	// at all, so once the retained point is used up there is nowhere left
	// to go — NextPointsFrom must stop rather than pad the result with a
	// second copy of the same Point.
	space, err := NewSearchSpace(Dimension{Name: "x", Min: 0, Max: 0})
	if err != nil {
		t.Fatalf("NewSearchSpace failed: %v", err)
	}
	rng := rand.New(rand.NewSource(1))
	strategy := ShiftAndKeepBestHalf{}

	ranking := []PointScore{
		{Point: NewPoint(0), Score: Score{Objective: 1}},
		{Point: NewPoint(0), Score: Score{Objective: 2}},
	}
	next := strategy.NextPointsFrom(ranking, space, rng)

	if len(next) != 1 {
		t.Fatalf("len(next) = %d, want 1 (the retained point, no manufactured duplicate)", len(next))
	}

	seen := map[string]bool{}
	for _, p := range next {
		if seen[p.Key()] {
			t.Errorf("expected no duplicate points, got repeat of %v", p)
		}
		seen[p.Key()] = true
	}
}

func TestExplorationStrategyName(t *testing.T) {
	if got, want := (ShiftAndKeepBestHalf{}).Name(), "shift_and_keep_best_half"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestShiftExcludingFindsNearestUnused(t *testing.T) {
	space := newTestSpace(t)
	rng := rand.New(rand.NewSource(1))

	start := NewPoint(10, 10)
	exclude := map[string]bool{start.Key(): true}
	for _, nb := range space.unitNeighbors(start) {
		exclude[nb.Key()] = true
	}

	found, ok := space.shiftExcluding(start, exclude, rng)
	if !ok {
		t.Fatal("expected shiftExcluding to find a point at distance 2")
	}
	if exclude[found.Key()] {
		t.Errorf("expected the found point %v not to be in the exclude set", found)
	}
}
