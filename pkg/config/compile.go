package config

import (
	"fmt"

	"github.com/pexplore-go/paramsearch/pkg/paramsearch"
)

// RobustnessFuncs maps a constraint name to the robustness function that
// implements it. YAML cannot describe a function, so the caller supplies
// this registry alongside the parsed document.
type RobustnessFuncs map[string]paramsearch.RobustnessFunc

// TimeFuncs maps a constraint name to the TimeFunc its
// time_progress_linear controller (if any) should use.
type TimeFuncs map[string]paramsearch.TimeFunc

// BuildSearchSpace compiles a SearchSpace document into a
// paramsearch.SearchSpace.
func BuildSearchSpace(s SearchSpace) (*paramsearch.SearchSpace, error) {
	dims := make([]paramsearch.Dimension, len(s.Dimensions))
	for i, d := range s.Dimensions {
		dims[i] = paramsearch.Dimension{Name: d.Name, Min: d.Min, Max: d.Max}
	}
	return paramsearch.NewSearchSpace(dims...)
}

// BuildConstraints compiles a Constraint document list into
// paramsearch.Constraint values, resolving each constraint's robustness
// function (and, for time_progress_linear controllers, its TimeFunc) from
// the supplied registries.
func BuildConstraints(specs []Constraint, funcs RobustnessFuncs, timeFuncs TimeFuncs) ([]paramsearch.Constraint, error) {
	out := make([]paramsearch.Constraint, len(specs))
	for i, c := range specs {
		fn, ok := funcs[c.Name]
		if !ok {
			return nil, fmt.Errorf("config: no robustness function registered for constraint %q", c.Name)
		}

		opts := []paramsearch.ConstraintOption{
			paramsearch.WithSuccessAction(successActionOf(c.SuccessAction)),
			paramsearch.WithFailureKind(failureKindOf(c.FailureKind)),
			paramsearch.WithObjectiveImpact(objectiveImpactOf(c.ObjectiveImpact)),
		}

		if c.Critical {
			opts = append(opts, paramsearch.WithCritical(criterionOf(c.Criterion)))
		}

		if c.Controller == "time_progress_linear" {
			tf, ok := timeFuncs[c.Name]
			if !ok {
				return nil, fmt.Errorf("config: constraint %q declares a time_progress_linear controller with no registered TimeFunc", c.Name)
			}
			opts = append(opts, paramsearch.WithController(paramsearch.NewTimeProgressLinearController(tf, c.FinalTime)))
		}

		out[i] = paramsearch.NewConstraint(c.Name, c.GroupID, fn, opts...)
	}
	return out, nil
}

func successActionOf(s string) paramsearch.SuccessAction {
	if s == "deactivate" {
		return paramsearch.SuccessDeactivate
	}
	return paramsearch.SuccessNone
}

func failureKindOf(s string) paramsearch.FailureKind {
	switch s {
	case "soft":
		return paramsearch.FailureSoft
	case "hard":
		return paramsearch.FailureHard
	default:
		return paramsearch.FailureNone
	}
}

func objectiveImpactOf(s string) paramsearch.ObjectiveImpact {
	switch s {
	case "signed":
		return paramsearch.ImpactSigned
	case "unsigned":
		return paramsearch.ImpactUnsigned
	default:
		return paramsearch.ImpactNone
	}
}

func criterionOf(s string) paramsearch.Criterion {
	switch s {
	case "maximise":
		return paramsearch.CriterionMaximise
	case "minimise_positive":
		return paramsearch.CriterionMinimisePositive
	default:
		return paramsearch.CriterionNone
	}
}
