package config

import (
	"fmt"
	"os"
)

// LoadRunConfig loads and parses a run configuration file.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run config file %s: %w", path, err)
	}
	cfg, err := ParseRunConfigYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run config file %s: %w", path, err)
	}
	return cfg, nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validSuccessActions = map[string]bool{"none": true, "deactivate": true}
var validFailureKinds = map[string]bool{"none": true, "soft": true, "hard": true}
var validObjectiveImpacts = map[string]bool{"none": true, "signed": true, "unsigned": true}
var validCriteria = map[string]bool{"": true, "maximise": true, "minimise_positive": true}
var validControllers = map[string]bool{"": true, "identity": true, "time_progress_linear": true}
var validExplorations = map[string]bool{"": true, "shift_and_keep_best_half": true}

// validateRunConfig performs validation on a run configuration.
func validateRunConfig(cfg *RunConfig) error {
	if cfg.LogLevel != "" && !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	if err := validateSearchSpace(&cfg.SearchSpace); err != nil {
		return fmt.Errorf("search_space validation failed: %w", err)
	}

	if err := validateRunnerConfig(&cfg.Runner); err != nil {
		return fmt.Errorf("runner validation failed: %w", err)
	}

	if err := validateConstraints(cfg.Constraints); err != nil {
		return fmt.Errorf("constraints validation failed: %w", err)
	}

	return nil
}

func validateSearchSpace(s *SearchSpace) error {
	if len(s.Dimensions) == 0 {
		return fmt.Errorf("at least one dimension must be defined")
	}
	names := make(map[string]bool)
	for _, d := range s.Dimensions {
		if d.Name == "" {
			return fmt.Errorf("dimension name cannot be empty")
		}
		if names[d.Name] {
			return fmt.Errorf("duplicate dimension name: %s", d.Name)
		}
		names[d.Name] = true
		if d.Max < d.Min {
			return fmt.Errorf("dimension %s: max %d cannot be less than min %d", d.Name, d.Max, d.Min)
		}
	}
	return nil
}

func validateRunnerConfig(r *RunnerConfig) error {
	if r.Concurrency < 0 {
		return fmt.Errorf("concurrency cannot be negative, got %d", r.Concurrency)
	}
	if !validExplorations[r.Exploration] {
		return fmt.Errorf("invalid exploration strategy: %s", r.Exploration)
	}
	return nil
}

func validateConstraints(constraints []Constraint) error {
	if len(constraints) == 0 {
		return fmt.Errorf("at least one constraint must be defined")
	}
	names := make(map[string]bool)
	for _, c := range constraints {
		if c.Name == "" {
			return fmt.Errorf("constraint name cannot be empty")
		}
		if names[c.Name] {
			return fmt.Errorf("duplicate constraint name: %s", c.Name)
		}
		names[c.Name] = true

		if !validSuccessActions[c.SuccessAction] {
			return fmt.Errorf("constraint %s: invalid success_action %s", c.Name, c.SuccessAction)
		}
		if !validFailureKinds[c.FailureKind] {
			return fmt.Errorf("constraint %s: invalid failure_kind %s", c.Name, c.FailureKind)
		}
		if !validObjectiveImpacts[c.ObjectiveImpact] {
			return fmt.Errorf("constraint %s: invalid objective_impact %s", c.Name, c.ObjectiveImpact)
		}
		if !validCriteria[c.Criterion] {
			return fmt.Errorf("constraint %s: invalid criterion %s", c.Name, c.Criterion)
		}
		if c.Critical && c.Criterion == "" {
			return fmt.Errorf("constraint %s: critical constraint requires a criterion", c.Name)
		}
		if !validControllers[c.Controller] {
			return fmt.Errorf("constraint %s: invalid controller %s", c.Name, c.Controller)
		}
		if c.Controller == "time_progress_linear" && c.FinalTime <= 0 {
			return fmt.Errorf("constraint %s: time_progress_linear controller requires a positive final_time", c.Name)
		}
	}
	return nil
}
