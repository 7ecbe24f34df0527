package paramsearch

// RobustnessController is a narrow, single-method capability that rewrites
// a raw robustness value before it is scored. It is modelled as a trait
// (interface) rather than a class hierarchy, per §9's "polymorphism via
// enumerations" guidance for everything except this one stateful piece.
//
// Apply may be called in two modes: read-only scoring (every worker, every
// evaluation) and update mode (only the winner's evaluation during
// update_from). Implementations that hold no state — IdentityController —
// need not distinguish the two; stateful implementations must confine
// mutation to update-mode calls (§4.2, §9 open question 3).
type RobustnessController interface {
	// Apply rewrites raw given the (input, output) pair that produced it.
	// When mutate is false the call must not change the controller's
	// internal state.
	Apply(raw float64, input, output any, mutate bool) float64
	// Clone returns an independent copy of the controller, so that two
	// ConstraintStates built from constraints sharing a controller
	// instance do not alias mutable state.
	Clone() RobustnessController
}

// IdentityController passes the raw robustness through unchanged. It is
// the default controller for every Constraint that does not opt into a
// stateful one.
type IdentityController struct{}

// Apply returns raw unmodified.
func (IdentityController) Apply(raw float64, _, _ any, _ bool) float64 {
	return raw
}

// Clone returns an equivalent IdentityController; it has no state to copy.
func (IdentityController) Clone() RobustnessController {
	return IdentityController{}
}

// TimeFunc extracts an elapsed-time coordinate from an (input, output)
// pair, used by TimeProgressLinearController to compute how much of the
// run's final time budget has passed.
type TimeFunc func(input, output any) float64

// TimeProgressLinearController amortises a robustness error against the
// fraction of elapsed time remaining until FinalTime, matching the
// original library's time-progress-linear controller: each call subtracts
// the portion of previously accumulated error attributable to the time
// that has passed since the last call, then updates the accumulator with
// the new result spread over the time remaining.
type TimeProgressLinearController struct {
	TimeFunc  TimeFunc
	FinalTime float64

	previousTime     float64
	accumulatedValue float64
}

// NewTimeProgressLinearController builds a controller measuring elapsed
// time via timeFunc, amortising error against finalTime.
func NewTimeProgressLinearController(timeFunc TimeFunc, finalTime float64) *TimeProgressLinearController {
	return &TimeProgressLinearController{TimeFunc: timeFunc, FinalTime: finalTime}
}

// Apply computes the amortised robustness. When mutate is true (winner-only
// update_from calls, per §4.2/§9) the controller advances its internal
// clock and accumulator; read-only scoring calls compute the same
// projection without persisting it, so per-worker evaluation never
// perturbs the trajectory a later update_from call will see.
func (c *TimeProgressLinearController) Apply(raw float64, input, output any, mutate bool) float64 {
	currentTime := c.TimeFunc(input, output)
	result := raw - (currentTime-c.previousTime)*c.accumulatedValue

	if !mutate {
		return result
	}

	c.previousTime = currentTime
	remaining := c.FinalTime - currentTime
	if remaining != 0 {
		c.accumulatedValue += result / remaining
	}
	return result
}

// Clone returns an independent controller starting from the same
// parameters with a reset accumulator, matching per-ConstraintState
// controller ownership (§3 "Ownership").
func (c *TimeProgressLinearController) Clone() RobustnessController {
	return &TimeProgressLinearController{TimeFunc: c.TimeFunc, FinalTime: c.FinalTime}
}
