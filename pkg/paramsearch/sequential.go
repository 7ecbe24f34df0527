package paramsearch

import "github.com/prometheus/client_golang/prometheus"

// SequentialRunner is the trivial degenerate case of the parameter-search
// runner (§1, §4.6): no worker pool, no channels — push stores the input,
// pull runs the task body inline against a single fixed point and advances
// the constraint lifecycle directly from that one (input, output) pair.
// TaskManager selects it whenever the configuration is a singleton, or
// concurrency has been set to 1 (in which case it runs on the search
// space's initial point).
type SequentialRunner struct {
	task    *Task
	point   Point
	manager *TaskManager

	lastInput any

	failureCounter prometheus.Counter
}

// NewSequentialRunner builds a runner that always evaluates the task at
// point.
func NewSequentialRunner(task *Task, point Point, manager *TaskManager) *SequentialRunner {
	return &SequentialRunner{task: task, point: point, manager: manager}
}

// SetFailureCounter wires a Prometheus counter that Inc()s if the task body
// fails. Passing nil (the default) disables it.
func (r *SequentialRunner) SetFailureCounter(c prometheus.Counter) {
	r.failureCounter = c
}

// Push records input for the next Pull.
func (r *SequentialRunner) Push(input any) error {
	r.lastInput = input
	return nil
}

// Pull runs the task body synchronously on the caller's goroutine,
// advances the constraint lifecycle from the resulting (input, output)
// pair, publishes the single-element cycle to the manager, and returns the
// output.
func (r *SequentialRunner) Pull() (any, error) {
	output, err := r.task.Run(r.lastInput, r.point)
	if err != nil {
		if r.failureCounter != nil {
			r.failureCounter.Inc()
		}
		return nil, err
	}

	score, err := r.task.Spec().UpdateFrom(r.lastInput, output)
	if err != nil {
		return nil, err
	}

	if r.manager != nil {
		r.manager.AppendScores([]PointScore{{Point: r.point, Score: score}})
	}

	if r.task.Spec().Inactive() {
		return nil, &NoActiveConstraints{Snapshot: r.task.Spec().Snapshot()}
	}

	return output, nil
}

// Close is a no-op: the sequential runner owns no goroutines or channels.
func (r *SequentialRunner) Close() {}
