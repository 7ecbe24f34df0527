package paramsearch

import "fmt"

// TaskFailure wraps a recovered error from a task body. It never escapes a
// worker goroutine directly (§7); it is logged and folded into the
// runner's failure counter.
type TaskFailure struct {
	Message string
	Cause   error
}

func (e *TaskFailure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("paramsearch: task failure: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("paramsearch: task failure: %s", e.Message)
}

func (e *TaskFailure) Unwrap() error { return e.Cause }

// CriticalRankingFailure is raised when a legacy critical constraint's
// post-cycle robustness lands on the wrong side of its criterion (§4.5,
// S6). It carries the offending constraint's name and robustness for
// diagnostics.
type CriticalRankingFailure struct {
	ConstraintName string
	Robustness     float64
}

func (e *CriticalRankingFailure) Error() string {
	return fmt.Sprintf("paramsearch: critical constraint %q failed ranking with robustness %g", e.ConstraintName, e.Robustness)
}

// NoActiveConstraints is raised when evaluate or update_from is invoked on
// a specification with no active constraint states (§4.2 precondition,
// §7). It carries a snapshot for diagnostics.
type NoActiveConstraints struct {
	Snapshot []Snapshot
}

func (e *NoActiveConstraints) Error() string {
	return fmt.Sprintf("paramsearch: no active constraints remain (%d states tracked)", len(e.Snapshot))
}

// InvalidConcurrency is raised when a concurrency value of zero or above
// the hardware cap is requested (§4.6, §7).
type InvalidConcurrency struct {
	Requested int
	Cap       int
}

func (e *InvalidConcurrency) Error() string {
	return fmt.Sprintf("paramsearch: invalid concurrency %d (must be in [1, %d])", e.Requested, e.Cap)
}

// PreconditionViolation is raised when a ConstraintState transition breaks
// the ¬(Succeeded ∧ Failed) invariant, or another precondition documented
// in §3/§7 does not hold.
type PreconditionViolation struct {
	Message string
}

func (e *PreconditionViolation) Error() string {
	return "paramsearch: precondition violation: " + e.Message
}
