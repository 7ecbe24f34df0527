// Package paramsearch implements a parameter-space exploration engine: a
// worker pool that drives a user-supplied deterministic task across a
// population of configuration points, scores the results against a
// constraining specification, and evolves the population toward better
// regions.
package paramsearch

import "math"

// Score is the four-field result of evaluating a ConstrainingSpecification
// against an (input, output) pair. Order is lexicographic on
// (HardFailures, SoftFailures, Objective); Successes is metadata and does
// not participate in ordering.
type Score struct {
	Successes    []int
	HardFailures []int
	SoftFailures []int
	Objective    float64
}

// NewScore returns an empty Score with a zero objective.
func NewScore() Score {
	return Score{}
}

// Compare returns -1, 0, or 1 as s is less than, equal to, or greater than
// other, in the lexicographic order of §4.1: HardFailures, then
// SoftFailures, then Objective (smaller is better throughout).
func (s Score) Compare(other Score) int {
	if c := compareIndexSets(s.HardFailures, other.HardFailures); c != 0 {
		return c
	}
	if c := compareIndexSets(s.SoftFailures, other.SoftFailures); c != 0 {
		return c
	}
	return compareObjective(s.Objective, other.Objective)
}

// Less reports whether s orders before other.
func (s Score) Less(other Score) bool {
	return s.Compare(other) < 0
}

// Equal reports structural equality: all four fields equal, with the
// convention that two NaN objectives compare equal to each other.
func (s Score) Equal(other Score) bool {
	return compareIndexSets(s.HardFailures, other.HardFailures) == 0 &&
		compareIndexSets(s.SoftFailures, other.SoftFailures) == 0 &&
		compareObjective(s.Objective, other.Objective) == 0 &&
		compareIndexSets(s.Successes, other.Successes) == 0
}

func compareObjective(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareIndexSets compares two ascending-sorted index slices in the
// lexicographic order of the built-in ordered set: the first differing
// element decides, and a strict prefix is smaller than its extension.
func compareIndexSets(a, b []int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// PointScore pairs a Point with its Score. Total order compares Scores
// first; ties are broken by Point order, giving trichotomy over any two
// PointScores (Testable Properties §8, invariant 1).
type PointScore struct {
	Point Point
	Score Score
}

// Compare returns -1, 0, or 1 as ps orders before, equal to, or after other.
func (ps PointScore) Compare(other PointScore) int {
	if c := ps.Score.Compare(other.Score); c != 0 {
		return c
	}
	return ps.Point.Compare(other.Point)
}

// Less reports whether ps orders before other.
func (ps PointScore) Less(other PointScore) bool {
	return ps.Compare(other) < 0
}

// MinPointScore returns the minimum (best) PointScore in a non-empty slice.
// It panics on an empty slice; callers own the emptiness check because an
// empty ranking is itself a precondition violation in this engine.
func MinPointScore(scores []PointScore) PointScore {
	if len(scores) == 0 {
		panic("paramsearch: MinPointScore called on an empty ranking")
	}
	best := scores[0]
	for _, ps := range scores[1:] {
		if ps.Less(best) {
			best = ps
		}
	}
	return best
}

// SortedPointScores returns a new slice holding scores in ascending order
// (best first), using insertion sort — rankings are always sized to the
// runner's concurrency, which is small, so this favours clarity over
// asymptotics.
func SortedPointScores(scores []PointScore) []PointScore {
	out := make([]PointScore, len(scores))
	copy(out, scores)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Less(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
