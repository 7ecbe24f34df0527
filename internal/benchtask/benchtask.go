// Package benchtask is the demo task body shipped with paramsearchd: a
// synthetic service model whose latency and memory footprint respond to
// two search-space dimensions, "replicas" and "cache_size_mb". It exists
// to exercise the engine end-to-end without requiring a real workload,
// and doubles as a template for wiring a task body against
// pkg/paramsearch.
package benchtask

import (
	"fmt"

	"github.com/pexplore-go/paramsearch/pkg/paramsearch"
	"github.com/pexplore-go/paramsearch/pkg/utils"
)

// Input carries the fixed load level a cycle's whole population is
// evaluated against.
type Input struct {
	TargetLoad float64
}

// Output is the synthetic measurement a body run at one point produces.
type Output struct {
	LatencyMs      float64
	MemoryMB       float64
	ElapsedSeconds float64
}

// Body returns a TaskFunc modelling latency and memory as functions of the
// "replicas" and "cache_size_mb" dimensions, perturbed by rng so that
// repeated evaluations at the same point are not perfectly deterministic —
// closer to a real load test than a pure formula. clock supplies the
// elapsed-time coordinate a TimeProgressLinearController reads.
func Body(rng *utils.RandSource, clock func() float64) paramsearch.TaskFunc {
	return func(input any, cfg *paramsearch.Configuration) (any, error) {
		in, ok := input.(Input)
		if !ok {
			return nil, fmt.Errorf("benchtask: expected Input, got %T", input)
		}

		replicas, ok := cfg.Value("replicas")
		if !ok || replicas < 1 {
			return nil, fmt.Errorf("benchtask: configuration missing a valid \"replicas\" dimension")
		}
		cacheMB, ok := cfg.Value("cache_size_mb")
		if !ok || cacheMB < 0 {
			return nil, fmt.Errorf("benchtask: configuration missing a valid \"cache_size_mb\" dimension")
		}

		perReplicaLoad := in.TargetLoad / float64(replicas)
		cacheRelief := 1.0 / (1.0 + float64(cacheMB)/64.0)
		latency := perReplicaLoad * cacheRelief * 10.0
		latency += rng.UniformFloat64(-0.5, 0.5)
		if latency < 0 {
			latency = 0
		}

		memory := float64(replicas)*32.0 + float64(cacheMB)
		memory += rng.NormFloat64(0, 4)

		return Output{
			LatencyMs:      latency,
			MemoryMB:       memory,
			ElapsedSeconds: clock(),
		}, nil
	}
}

// LatencyRobustness returns a RobustnessFunc satisfied (non-negative) when
// the observed latency is at or under budgetMs.
func LatencyRobustness(budgetMs float64) paramsearch.RobustnessFunc {
	return func(_, output any) float64 {
		out := output.(Output)
		return budgetMs - out.LatencyMs
	}
}

// MemoryRobustness returns a RobustnessFunc satisfied when the observed
// memory footprint is at or under budgetMB.
func MemoryRobustness(budgetMB float64) paramsearch.RobustnessFunc {
	return func(_, output any) float64 {
		out := output.(Output)
		return budgetMB - out.MemoryMB
	}
}

// ElapsedTimeFunc extracts the elapsed-time coordinate an Output carries,
// for use with a TimeProgressLinearController.
func ElapsedTimeFunc() paramsearch.TimeFunc {
	return func(_, output any) float64 {
		out := output.(Output)
		return out.ElapsedSeconds
	}
}
