package paramsearch

// SuccessAction controls what happens to a constraint's group when the
// constraint succeeds.
type SuccessAction int

const (
	// SuccessNone leaves the group untouched on success.
	SuccessNone SuccessAction = iota
	// SuccessDeactivate deactivates every ConstraintState sharing this
	// constraint's GroupID when this constraint succeeds.
	SuccessDeactivate
)

func (a SuccessAction) String() string {
	switch a {
	case SuccessDeactivate:
		return "deactivate"
	default:
		return "none"
	}
}

// FailureKind classifies a negative robustness value.
type FailureKind int

const (
	// FailureNone discards a negative robustness without recording a
	// failure.
	FailureNone FailureKind = iota
	// FailureSoft records the index in Score.SoftFailures; soft failures
	// never mark the constraint as failed or trigger deactivation.
	FailureSoft
	// FailureHard records the index in Score.HardFailures, marks the
	// state failed, and triggers deactivation of its group.
	FailureHard
)

func (k FailureKind) String() string {
	switch k {
	case FailureSoft:
		return "soft"
	case FailureHard:
		return "hard"
	default:
		return "none"
	}
}

// ObjectiveImpact controls how an evaluated robustness, failing or not,
// contributes to the aggregated objective.
type ObjectiveImpact int

const (
	// ImpactNone excludes the robustness from the objective.
	ImpactNone ObjectiveImpact = iota
	// ImpactSigned adds the signed robustness to the objective.
	ImpactSigned
	// ImpactUnsigned adds the absolute value of the robustness to the
	// objective.
	ImpactUnsigned
)

func (i ObjectiveImpact) String() string {
	switch i {
	case ImpactSigned:
		return "signed"
	case ImpactUnsigned:
		return "unsigned"
	default:
		return "none"
	}
}

// RobustnessFunc computes a signed robustness scalar from an (input,
// output) pair. A non-negative value means the constraint is satisfied;
// the magnitude expresses margin.
type RobustnessFunc func(input, output any) float64

// Constraint is immutable once built (§3): it names a robustness function,
// a group id for joint deactivation, and the policy enumerations that
// decide how its robustness feeds into a Score and into the constraint
// lifecycle.
type Constraint struct {
	Name            string
	GroupID         int
	SuccessAction   SuccessAction
	FailureKind     FailureKind
	ObjectiveImpact ObjectiveImpact
	Func            RobustnessFunc
	Controller      RobustnessController

	// Critical marks a legacy-runner critical constraint (§4.5): a
	// post-cycle robustness on the wrong side of Criterion raises
	// CriticalRankingFailure.
	Critical  bool
	Criterion Criterion
}

// Criterion names the optimisation direction a Critical constraint is
// judged against.
type Criterion int

const (
	// CriterionNone means the constraint is not judged for criticality.
	CriterionNone Criterion = iota
	// CriterionMaximise fails critically when the robustness is negative.
	CriterionMaximise
	// CriterionMinimisePositive fails critically when the robustness is
	// positive.
	CriterionMinimisePositive
)

// NewConstraint builds a Constraint with an identity controller unless
// WithController overrides it.
func NewConstraint(name string, groupID int, fn RobustnessFunc, opts ...ConstraintOption) Constraint {
	c := Constraint{
		Name:       name,
		GroupID:    groupID,
		Func:       fn,
		Controller: IdentityController{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ConstraintOption configures a Constraint at construction time.
type ConstraintOption func(*Constraint)

// WithSuccessAction sets the constraint's SuccessAction.
func WithSuccessAction(a SuccessAction) ConstraintOption {
	return func(c *Constraint) { c.SuccessAction = a }
}

// WithFailureKind sets the constraint's FailureKind.
func WithFailureKind(k FailureKind) ConstraintOption {
	return func(c *Constraint) { c.FailureKind = k }
}

// WithObjectiveImpact sets the constraint's ObjectiveImpact.
func WithObjectiveImpact(i ObjectiveImpact) ConstraintOption {
	return func(c *Constraint) { c.ObjectiveImpact = i }
}

// WithController overrides the default identity controller.
func WithController(ctrl RobustnessController) ConstraintOption {
	return func(c *Constraint) { c.Controller = ctrl }
}

// WithCritical marks the constraint critical under the given criterion
// (§4.5, legacy runners).
func WithCritical(criterion Criterion) ConstraintOption {
	return func(c *Constraint) {
		c.Critical = true
		c.Criterion = criterion
	}
}

// ConstraintState wraps an immutable Constraint with the mutable lifecycle
// flags a ConstrainingSpecification tracks per index. Invariants:
// ¬(Succeeded ∧ Failed); ¬Active ⇒ terminal (never revisited).
type ConstraintState struct {
	Constraint Constraint
	Active     bool
	Succeeded  bool
	Failed     bool
}

// NewConstraintState wraps c as a freshly active state.
func NewConstraintState(c Constraint) *ConstraintState {
	return &ConstraintState{Constraint: c, Active: true}
}

// terminal reports whether this state has already resolved to succeeded or
// failed (still distinct from Active — see spec.md §3).
func (s *ConstraintState) terminal() bool {
	return s.Succeeded || s.Failed
}

// Snapshot is a read-only copy of a ConstraintState's lifecycle flags, used
// in NoActiveConstraints diagnostics so callers never receive a live
// pointer into the specification.
type Snapshot struct {
	Name      string
	GroupID   int
	Active    bool
	Succeeded bool
	Failed    bool
}
