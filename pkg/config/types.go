// Package config loads the YAML-declared shape of a parameter-search run:
// the search-space dimensions, the runner settings, and the constraint
// list compiled into a paramsearch.ConstrainingSpecification at startup.
package config

// RunConfig is the top-level document a paramsearchd invocation loads.
type RunConfig struct {
	LogLevel    string       `yaml:"log_level"`
	SearchSpace SearchSpace  `yaml:"search_space"`
	Runner      RunnerConfig `yaml:"runner"`
	Constraints []Constraint `yaml:"constraints"`
}

// SearchSpace declares the integer-lattice dimensions a task is explored
// over.
type SearchSpace struct {
	Dimensions []Dimension `yaml:"dimensions"`
}

// Dimension is one named, bounded integer axis of the search space.
type Dimension struct {
	Name string `yaml:"name"`
	Min  int    `yaml:"min"`
	Max  int    `yaml:"max"`
}

// RunnerConfig declares the worker-pool sizing and exploration policy.
type RunnerConfig struct {
	Concurrency int    `yaml:"concurrency"`
	Exploration string `yaml:"exploration"` // e.g. "shift_and_keep_best_half"
	Seed        int64  `yaml:"seed,omitempty"`
}

// Constraint declares one entry of a ConstrainingSpecification. The
// robustness function itself is not part of the YAML document — it is
// resolved at load time from a registry the task author supplies, keyed
// by Name; the document only carries the policy enumerations and
// controller parameters.
type Constraint struct {
	Name            string  `yaml:"name"`
	GroupID         int     `yaml:"group_id"`
	SuccessAction   string  `yaml:"success_action"`       // "none" | "deactivate"
	FailureKind     string  `yaml:"failure_kind"`         // "none" | "soft" | "hard"
	ObjectiveImpact string  `yaml:"objective_impact"`     // "none" | "signed" | "unsigned"
	Critical        bool    `yaml:"critical,omitempty"`
	Criterion       string  `yaml:"criterion,omitempty"` // "maximise" | "minimise_positive"
	Controller      string  `yaml:"controller,omitempty"` // "identity" | "time_progress_linear"
	FinalTime       float64 `yaml:"final_time,omitempty"`
}
