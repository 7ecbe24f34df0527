package paramsearch

import (
	"math"
	"testing"
)

func TestScoreCompareOrdersByHardFailuresFirst(t *testing.T) {
	a := Score{HardFailures: []int{0}, Objective: -100}
	b := Score{HardFailures: nil, Objective: 100}

	if a.Compare(b) <= 0 {
		t.Errorf("expected a with a hard failure to order after b, got Compare=%d", a.Compare(b))
	}
}

func TestScoreCompareFallsBackToSoftFailuresThenObjective(t *testing.T) {
	base := Score{}
	withSoft := Score{SoftFailures: []int{2}}
	if base.Compare(withSoft) >= 0 {
		t.Error("expected score with no soft failures to order before one with a soft failure")
	}

	lowObjective := Score{Objective: 1}
	highObjective := Score{Objective: 2}
	if lowObjective.Compare(highObjective) >= 0 {
		t.Error("expected lower objective to order first when failure sets are equal")
	}
}

func TestScoreCompareObjectiveNaNSortsLast(t *testing.T) {
	nan := Score{Objective: math.NaN()}
	finite := Score{Objective: 0}

	if nan.Compare(finite) != 1 {
		t.Errorf("expected NaN objective to compare greater than finite, got %d", nan.Compare(finite))
	}
	if finite.Compare(nan) != -1 {
		t.Errorf("expected finite objective to compare less than NaN, got %d", finite.Compare(nan))
	}
	if nan.Compare(Score{Objective: math.NaN()}) != 0 {
		t.Error("expected two NaN objectives to compare equal")
	}
}

func TestScoreEqualTreatsSuccessesAsNonOrderingButComparedField(t *testing.T) {
	a := Score{Successes: []int{1, 2}}
	b := Score{Successes: []int{1, 2}}
	c := Score{Successes: []int{1}}

	if !a.Equal(b) {
		t.Error("expected identical scores to be equal")
	}
	if a.Equal(c) {
		t.Error("expected differing Successes to break equality")
	}
	if a.Compare(c) != 0 {
		t.Error("expected differing Successes alone not to affect Compare ordering")
	}
}

func TestCompareIndexSetsPrefixIsSmaller(t *testing.T) {
	if compareIndexSets([]int{1}, []int{1, 2}) != -1 {
		t.Error("expected a strict prefix to compare less than its extension")
	}
	if compareIndexSets([]int{1, 2}, []int{1}) != 1 {
		t.Error("expected an extension to compare greater than its prefix")
	}
	if compareIndexSets(nil, nil) != 0 {
		t.Error("expected two empty sets to compare equal")
	}
}

func TestMinPointScoreReturnsBest(t *testing.T) {
	worse := PointScore{Point: NewPoint(0), Score: Score{Objective: 5}}
	better := PointScore{Point: NewPoint(1), Score: Score{Objective: -5}}

	got := MinPointScore([]PointScore{worse, better})
	if !got.Point.Equal(better.Point) {
		t.Errorf("expected MinPointScore to return the lower-objective point, got %v", got.Point)
	}
}

func TestMinPointScorePanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MinPointScore to panic on an empty slice")
		}
	}()
	MinPointScore(nil)
}

func TestSortedPointScoresAscending(t *testing.T) {
	scores := []PointScore{
		{Point: NewPoint(0), Score: Score{Objective: 3}},
		{Point: NewPoint(1), Score: Score{Objective: 1}},
		{Point: NewPoint(2), Score: Score{Objective: 2}},
	}

	sorted := SortedPointScores(scores)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Score.Objective > sorted[i].Score.Objective {
			t.Errorf("expected ascending order, got %v", sorted)
		}
	}
	// Input must be left untouched.
	if scores[0].Score.Objective != 3 {
		t.Error("SortedPointScores must not mutate its input")
	}
}

func TestPointScoreCompareBreaksTiesByPoint(t *testing.T) {
	a := PointScore{Point: NewPoint(0), Score: Score{Objective: 1}}
	b := PointScore{Point: NewPoint(1), Score: Score{Objective: 1}}

	if a.Compare(b) != -1 {
		t.Errorf("expected tie broken by point order, got %d", a.Compare(b))
	}
}
