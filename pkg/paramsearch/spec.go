package paramsearch

import "sort"

// ConstrainingSpecification owns an ordered sequence of ConstraintStates.
// Indices into that sequence are stable identifiers used in Score's index
// sets (§3). It is exclusively owned by one Task; the Runner touches it in
// two disciplines only: read-only evaluation from any worker, and
// lifecycle mutation from the pull thread alone (§5, §9).
type ConstrainingSpecification struct {
	states      []*ConstraintState
	activeCount int
}

// NewConstrainingSpecification builds a specification from constraints, in
// the order given; that order fixes each constraint's index for the
// lifetime of the specification.
func NewConstrainingSpecification(constraints []Constraint) *ConstrainingSpecification {
	states := make([]*ConstraintState, len(constraints))
	for i, c := range constraints {
		c.Controller = c.Controller.Clone()
		states[i] = NewConstraintState(c)
	}
	return &ConstrainingSpecification{states: states, activeCount: len(states)}
}

// ActiveCount returns the number of ConstraintStates still active.
func (cs *ConstrainingSpecification) ActiveCount() int {
	return cs.activeCount
}

// Inactive reports whether the specification has no active constraints
// left (§3 "A Spec becomes inactive when active_count == 0").
func (cs *ConstrainingSpecification) Inactive() bool {
	return cs.activeCount == 0
}

// Snapshot returns a read-only copy of every tracked state's lifecycle
// flags, for NoActiveConstraints diagnostics.
func (cs *ConstrainingSpecification) Snapshot() []Snapshot {
	out := make([]Snapshot, len(cs.states))
	for i, s := range cs.states {
		out[i] = Snapshot{
			Name:      s.Constraint.Name,
			GroupID:   s.Constraint.GroupID,
			Active:    s.Active,
			Succeeded: s.Succeeded,
			Failed:    s.Failed,
		}
	}
	return out
}

// robustnessResult is the per-index outcome of one evaluation pass.
type robustnessResult struct {
	index      int
	robustness float64
}

// evaluate is the shared engine behind Evaluate and UpdateFrom (§4.2): it
// walks every active, non-terminal state, applies its controller, and
// files the outcome into successes/hard/soft failures and the objective
// sum.
func (cs *ConstrainingSpecification) evaluate(input, output any, mutate bool) (Score, []robustnessResult, error) {
	if cs.activeCount == 0 {
		return Score{}, nil, &NoActiveConstraints{Snapshot: cs.Snapshot()}
	}

	score := Score{}
	var results []robustnessResult

	for i, s := range cs.states {
		if !s.Active || s.terminal() {
			continue
		}
		raw := s.Constraint.Func(input, output)
		r := s.Constraint.Controller.Apply(raw, input, output, mutate)
		results = append(results, robustnessResult{index: i, robustness: r})

		switch s.Constraint.ObjectiveImpact {
		case ImpactUnsigned:
			score.Objective += absFloat(r)
		case ImpactSigned:
			score.Objective += r
		}

		if r < 0 {
			switch s.Constraint.FailureKind {
			case FailureHard:
				score.HardFailures = append(score.HardFailures, i)
			case FailureSoft:
				score.SoftFailures = append(score.SoftFailures, i)
			}
		} else {
			score.Successes = append(score.Successes, i)
		}
	}

	sort.Ints(score.Successes)
	sort.Ints(score.HardFailures)
	sort.Ints(score.SoftFailures)

	return score, results, nil
}

// Evaluate computes the Score for (input, output) without mutating the
// specification's lifecycle state — every worker calls this on every
// candidate (§4.2, §8 invariant 5 "evaluate never mutates spec state").
// Controllers are invoked in read-only mode.
func (cs *ConstrainingSpecification) Evaluate(input, output any) (Score, error) {
	score, _, err := cs.evaluate(input, output, false)
	return score, err
}

// UpdateFrom computes the Score for (input, output) with controller
// mutation enabled, then advances the constraint lifecycle using the
// two-pass algorithm of §4.3: pass one classifies each newly-resolved
// state and collects the set of group ids to deactivate; pass two
// deactivates every state — including ones not touched in pass one —
// whose group id was collected, decrementing activeCount. Running the
// passes separately makes the result independent of state declaration
// order, resolving the "open question" of §4.3/§9 in favour of
// order-independence rather than the single-pass, order-dependent scheme.
//
// Only the winner's (input, output) may call UpdateFrom (§4.5, §9 "no
// shared mutable task body"); it is the runner's job to enforce that
// discipline, not this method's.
func (cs *ConstrainingSpecification) UpdateFrom(input, output any) (Score, error) {
	score, results, err := cs.evaluate(input, output, true)
	if err != nil {
		return Score{}, err
	}

	isSuccess := make(map[int]bool, len(score.Successes))
	for _, i := range score.Successes {
		isSuccess[i] = true
	}
	isHardFailure := make(map[int]bool, len(score.HardFailures))
	for _, i := range score.HardFailures {
		isHardFailure[i] = true
	}

	groupIDsToDeactivate := make(map[int]bool)

	// Pass 1: classify.
	for _, r := range results {
		s := cs.states[r.index]
		switch {
		case isSuccess[r.index]:
			if s.Succeeded || s.Failed {
				return Score{}, &PreconditionViolation{Message: "constraint state already resolved before success transition"}
			}
			s.Succeeded = true
			if s.Constraint.SuccessAction == SuccessDeactivate {
				groupIDsToDeactivate[s.Constraint.GroupID] = true
			}
		case isHardFailure[r.index]:
			if s.Succeeded || s.Failed {
				return Score{}, &PreconditionViolation{Message: "constraint state already resolved before failure transition"}
			}
			s.Failed = true
			groupIDsToDeactivate[s.Constraint.GroupID] = true
		}
		// Soft failures neither resolve the state nor trigger
		// deactivation (§4.3 "soft failures do not trigger deactivation").
	}

	// Pass 2: deactivate every active state sharing a collected group id,
	// regardless of whether that state itself was evaluated this call.
	for _, s := range cs.states {
		if s.Active && groupIDsToDeactivate[s.Constraint.GroupID] {
			s.Active = false
			cs.activeCount--
		}
	}

	if err := cs.checkCritical(results); err != nil {
		return score, err
	}

	return score, nil
}

// checkCritical implements the legacy-runner critical-constraint check of
// §4.5: a constraint marked Critical fails ranking when its post-cycle
// robustness lands on the wrong side of its Criterion.
func (cs *ConstrainingSpecification) checkCritical(results []robustnessResult) error {
	for _, r := range results {
		s := cs.states[r.index]
		if !s.Constraint.Critical {
			continue
		}
		switch s.Constraint.Criterion {
		case CriterionMaximise:
			if r.robustness < 0 {
				return &CriticalRankingFailure{ConstraintName: s.Constraint.Name, Robustness: r.robustness}
			}
		case CriterionMinimisePositive:
			if r.robustness > 0 {
				return &CriticalRankingFailure{ConstraintName: s.Constraint.Name, Robustness: r.robustness}
			}
		}
	}
	return nil
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
