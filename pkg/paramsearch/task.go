package paramsearch

import "fmt"

// TaskFunc is the user-supplied task body: a deterministic, thread-safe
// pure function of (input, configuration) that may fail (§6.2, §9 "no
// shared mutable task body").
type TaskFunc func(input any, cfg *Configuration) (any, error)

// Task is the named wrapper binding a user body, its constraining
// specification, and the search space/base configuration it is projected
// against (component G).
type Task struct {
	name       string
	body       TaskFunc
	spec       *ConstrainingSpecification
	space      *SearchSpace
	baseConfig *Configuration
}

// NewTask builds a Task named name, running body against a
// ConstrainingSpecification built from constraints, over space.
func NewTask(name string, body TaskFunc, constraints []Constraint, space *SearchSpace) *Task {
	return &Task{
		name:       name,
		body:       body,
		spec:       NewConstrainingSpecification(constraints),
		space:      space,
		baseConfig: NewConfiguration(space),
	}
}

// Name returns the task's name.
func (t *Task) Name() string { return t.name }

// Spec returns the task's ConstrainingSpecification. Workers may only call
// its read-only Evaluate; lifecycle mutation via UpdateFrom is confined to
// the runner's pull thread (§9).
func (t *Task) Spec() *ConstrainingSpecification { return t.spec }

// SearchSpace returns the task's search space.
func (t *Task) SearchSpace() *SearchSpace { return t.space }

// BaseConfiguration returns the task's unfixed base configuration, used to
// project points into singleton configurations.
func (t *Task) BaseConfiguration() *Configuration { return t.baseConfig }

// Run invokes the task body against a configuration projected onto point,
// recovering any panic into a TaskFailure so a misbehaving body can never
// take down a worker goroutine (§7 "task-body errors ... never escape").
func (t *Task) Run(input any, point Point) (output any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TaskFailure{Message: fmt.Sprintf("task %q panicked", t.name), Cause: fmt.Errorf("%v", r)}
		}
	}()

	cfg := t.baseConfig.Project(point)
	out, runErr := t.body(input, cfg)
	if runErr != nil {
		return nil, &TaskFailure{Message: fmt.Sprintf("task %q failed", t.name), Cause: runErr}
	}
	return out, nil
}
