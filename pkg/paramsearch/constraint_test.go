package paramsearch

import "testing"

func TestNewConstraintDefaultsToIdentityController(t *testing.T) {
	c := NewConstraint("latency", 1, func(any, any) float64 { return 1 })
	if _, ok := c.Controller.(IdentityController); !ok {
		t.Errorf("expected default controller to be IdentityController, got %T", c.Controller)
	}
	if c.SuccessAction != SuccessNone {
		t.Errorf("expected default SuccessAction to be SuccessNone, got %v", c.SuccessAction)
	}
}

func TestConstraintOptionsApply(t *testing.T) {
	c := NewConstraint("mem", 2, func(any, any) float64 { return -1 },
		WithSuccessAction(SuccessDeactivate),
		WithFailureKind(FailureHard),
		WithObjectiveImpact(ImpactUnsigned),
		WithCritical(CriterionMaximise),
	)

	if c.SuccessAction != SuccessDeactivate {
		t.Errorf("SuccessAction = %v, want SuccessDeactivate", c.SuccessAction)
	}
	if c.FailureKind != FailureHard {
		t.Errorf("FailureKind = %v, want FailureHard", c.FailureKind)
	}
	if c.ObjectiveImpact != ImpactUnsigned {
		t.Errorf("ObjectiveImpact = %v, want ImpactUnsigned", c.ObjectiveImpact)
	}
	if !c.Critical || c.Criterion != CriterionMaximise {
		t.Errorf("expected Critical/Criterion set, got Critical=%v Criterion=%v", c.Critical, c.Criterion)
	}
}

func TestEnumStringers(t *testing.T) {
	if SuccessDeactivate.String() != "deactivate" {
		t.Errorf("SuccessDeactivate.String() = %q", SuccessDeactivate.String())
	}
	if SuccessNone.String() != "none" {
		t.Errorf("SuccessNone.String() = %q", SuccessNone.String())
	}
	if FailureSoft.String() != "soft" || FailureHard.String() != "hard" || FailureNone.String() != "none" {
		t.Errorf("unexpected FailureKind stringification: soft=%q hard=%q none=%q",
			FailureSoft.String(), FailureHard.String(), FailureNone.String())
	}
	if ImpactSigned.String() != "signed" || ImpactUnsigned.String() != "unsigned" || ImpactNone.String() != "none" {
		t.Errorf("unexpected ObjectiveImpact stringification: signed=%q unsigned=%q none=%q",
			ImpactSigned.String(), ImpactUnsigned.String(), ImpactNone.String())
	}
}

func TestConstraintStateTerminal(t *testing.T) {
	c := NewConstraint("x", 0, func(any, any) float64 { return 1 })
	s := NewConstraintState(c)
	if s.terminal() {
		t.Error("expected a freshly built state not to be terminal")
	}
	s.Succeeded = true
	if !s.terminal() {
		t.Error("expected a succeeded state to be terminal")
	}
}
