package paramsearch

import (
	"errors"
	"testing"
)

func newTestTask(t *testing.T, body TaskFunc, constraints []Constraint) *Task {
	t.Helper()
	space, err := NewSearchSpace(Dimension{Name: "x", Min: 0, Max: 10})
	if err != nil {
		t.Fatalf("NewSearchSpace failed: %v", err)
	}
	return NewTask("demo", body, constraints, space)
}

func TestTaskRunProjectsPointIntoConfiguration(t *testing.T) {
	var gotValue int
	body := func(input any, cfg *Configuration) (any, error) {
		v, _ := cfg.Value("x")
		gotValue = v
		return v, nil
	}
	task := newTestTask(t, body, nil)

	out, err := task.Run(nil, NewPoint(7))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out != 7 || gotValue != 7 {
		t.Errorf("expected the task body to see the projected value 7, got out=%v gotValue=%d", out, gotValue)
	}
}

func TestTaskRunWrapsBodyError(t *testing.T) {
	sentinel := errors.New("boom")
	body := func(input any, cfg *Configuration) (any, error) { return nil, sentinel }
	task := newTestTask(t, body, nil)

	_, err := task.Run(nil, NewPoint(1))
	var tf *TaskFailure
	if !errors.As(err, &tf) {
		t.Fatalf("expected a *TaskFailure, got %T: %v", err, err)
	}
	if !errors.Is(err, sentinel) {
		t.Error("expected the wrapped error to unwrap to the sentinel")
	}
}

func TestTaskRunRecoversPanic(t *testing.T) {
	body := func(input any, cfg *Configuration) (any, error) {
		panic("kaboom")
	}
	task := newTestTask(t, body, nil)

	_, err := task.Run(nil, NewPoint(1))
	var tf *TaskFailure
	if !errors.As(err, &tf) {
		t.Fatalf("expected a *TaskFailure recovered from the panic, got %T: %v", err, err)
	}
}

func TestTaskAccessors(t *testing.T) {
	body := func(input any, cfg *Configuration) (any, error) { return nil, nil }
	c := NewConstraint("a", 0, func(any, any) float64 { return 1 })
	task := newTestTask(t, body, []Constraint{c})

	if task.Name() != "demo" {
		t.Errorf("Name() = %q, want %q", task.Name(), "demo")
	}
	if task.Spec().ActiveCount() != 1 {
		t.Errorf("Spec().ActiveCount() = %d, want 1", task.Spec().ActiveCount())
	}
	if task.SearchSpace().TotalPoints() != 11 {
		t.Errorf("SearchSpace().TotalPoints() = %d, want 11", task.SearchSpace().TotalPoints())
	}
	if task.BaseConfiguration().IsSingleton() {
		t.Error("expected a freshly built base configuration to be unfixed, not a singleton")
	}
}
