package paramsearch

import "testing"

func TestSequentialRunnerRunsAtFixedPoint(t *testing.T) {
	resetForTest()
	manager := Instance()

	var seenValue int
	body := func(input any, cfg *Configuration) (any, error) {
		v, _ := cfg.Value("x")
		seenValue = v
		return v, nil
	}
	c := NewConstraint("a", 0, func(any, any) float64 { return 1 })
	space, err := NewSearchSpace(Dimension{Name: "x", Min: 0, Max: 10})
	if err != nil {
		t.Fatalf("NewSearchSpace failed: %v", err)
	}
	task := NewTask("fixed", body, []Constraint{c}, space)

	runner := NewSequentialRunner(task, NewPoint(4), manager)
	defer runner.Close()

	if err := runner.Push(nil); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	out, err := runner.Pull()
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if out != 4 || seenValue != 4 {
		t.Errorf("expected the task to run at the fixed point x=4, got out=%v seenValue=%d", out, seenValue)
	}
}

func TestSequentialRunnerReportsNoActiveConstraints(t *testing.T) {
	resetForTest()
	manager := Instance()

	body := func(input any, cfg *Configuration) (any, error) { return nil, nil }
	c := NewConstraint("a", 0, func(any, any) float64 { return -1 }, WithFailureKind(FailureHard))
	space, err := NewSearchSpace(Dimension{Name: "x", Min: 0, Max: 0})
	if err != nil {
		t.Fatalf("NewSearchSpace failed: %v", err)
	}
	task := NewTask("dies", body, []Constraint{c}, space)

	runner := NewSequentialRunner(task, NewPoint(0), manager)
	defer runner.Close()

	if err := runner.Push(nil); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	_, err = runner.Pull()
	if _, ok := err.(*NoActiveConstraints); !ok {
		t.Errorf("expected *NoActiveConstraints once the lone constraint fails, got %T: %v", err, err)
	}
}
