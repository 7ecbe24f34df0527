package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"

	"github.com/pexplore-go/paramsearch/internal/benchtask"
	"github.com/pexplore-go/paramsearch/internal/telemetry"
	"github.com/pexplore-go/paramsearch/pkg/config"
	"github.com/pexplore-go/paramsearch/pkg/logger"
	"github.com/pexplore-go/paramsearch/pkg/paramsearch"
	"github.com/pexplore-go/paramsearch/pkg/utils"
)

func main() {
	var configPaths string
	var httpAddr string
	var logLevel string
	var maxCycles int
	var targetLoad float64
	var latencyBudgetMs float64
	var memoryBudgetMB float64
	var batchConcurrency int64

	flag.StringVar(&configPaths, "configs", "", "comma-separated list of run config YAML files")
	flag.StringVar(&httpAddr, "http-addr", ":8080", "HTTP listen address for /metrics")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.IntVar(&maxCycles, "max-cycles", 50, "maximum push/pull cycles per run before stopping")
	flag.Float64Var(&targetLoad, "target-load", 100, "benchtask input load level")
	flag.Float64Var(&latencyBudgetMs, "latency-budget-ms", 15, "benchtask latency constraint budget")
	flag.Float64Var(&memoryBudgetMB, "memory-budget-mb", 512, "benchtask memory constraint budget")
	flag.Int64Var(&batchConcurrency, "batch-concurrency", 2, "max number of run configs processed concurrently")
	flag.Parse()

	logger.SetDefault(logger.NewText(logLevel, os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)

	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           telemetry.Handler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	lis, err := net.Listen("tcp", httpAddr)
	if err != nil {
		logger.Error("failed to listen for HTTP", "addr", httpAddr, "error", err)
		os.Exit(1)
	}
	go func() {
		logger.Info("metrics server listening", "addr", httpAddr)
		if err := httpSrv.Serve(lis); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
			stop()
		}
	}()

	paths := splitConfigs(configPaths)
	if len(paths) == 0 {
		logger.Error("no run configs supplied", "hint", "pass -configs one.yaml,two.yaml")
		os.Exit(1)
	}

	opts := runOptions{
		maxCycles:       maxCycles,
		targetLoad:      targetLoad,
		latencyBudgetMs: latencyBudgetMs,
		memoryBudgetMB:  memoryBudgetMB,
		metrics:         metrics,
	}

	if err := runBatch(ctx, paths, batchConcurrency, opts); err != nil {
		logger.Error("batch run failed", "error", err)
		shutdown(httpSrv)
		os.Exit(1)
	}

	shutdown(httpSrv)
}

func splitConfigs(csv string) []string {
	var out []string
	for _, p := range strings.Split(csv, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

type runOptions struct {
	maxCycles       int
	targetLoad      float64
	latencyBudgetMs float64
	memoryBudgetMB  float64
	metrics         *telemetry.Metrics
}

// runBatch runs each config path's search session, bounding how many run
// concurrently with a weighted semaphore — replacing what would otherwise
// be a hand-rolled channel-based limiter for this batch-of-independent-runs
// mode.
func runBatch(ctx context.Context, paths []string, concurrency int64, opts runOptions) error {
	sem := semaphore.NewWeighted(concurrency)
	var wg sync.WaitGroup
	errs := make(chan error, len(paths))

	for _, path := range paths {
		if err := sem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("paramsearchd: acquiring batch semaphore: %w", err)
		}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.Release(1)
			if err := runOne(ctx, path, opts); err != nil {
				errs <- fmt.Errorf("paramsearchd: run %q: %w", path, err)
			}
		}(path)
	}

	wg.Wait()
	close(errs)

	var combined error
	for err := range errs {
		if combined == nil {
			combined = err
		} else {
			combined = fmt.Errorf("%w; %v", combined, err)
		}
	}
	return combined
}

// runOne loads one run config, wires it to the benchtask demo body, and
// drives push/pull cycles until the constraining specification goes
// inactive, a critical constraint fails ranking, or max-cycles is reached.
func runOne(ctx context.Context, path string, opts runOptions) error {
	cfg, err := config.LoadRunConfig(path)
	if err != nil {
		return err
	}

	space, err := config.BuildSearchSpace(cfg.SearchSpace)
	if err != nil {
		return err
	}

	rng := utils.NewRandSource(cfg.Runner.Seed)
	clockStart := time.Now()
	clock := func() float64 { return time.Since(clockStart).Seconds() }

	funcs := config.RobustnessFuncs{}
	timeFuncs := config.TimeFuncs{}
	for _, c := range cfg.Constraints {
		switch {
		case strings.Contains(c.Name, "latency"):
			funcs[c.Name] = benchtask.LatencyRobustness(opts.latencyBudgetMs)
		case strings.Contains(c.Name, "memory"):
			funcs[c.Name] = benchtask.MemoryRobustness(opts.memoryBudgetMB)
		default:
			return fmt.Errorf("no robustness function known for constraint %q", c.Name)
		}
		if c.Controller == "time_progress_linear" {
			timeFuncs[c.Name] = benchtask.ElapsedTimeFunc()
		}
	}

	constraints, err := config.BuildConstraints(cfg.Constraints, funcs, timeFuncs)
	if err != nil {
		return err
	}

	task := paramsearch.NewTask(path, benchtask.Body(rng, clock), constraints, space)

	manager := paramsearch.Instance()
	if cfg.Runner.Concurrency > 0 {
		if err := manager.SetConcurrency(cfg.Runner.Concurrency); err != nil {
			return err
		}
	}

	runner, err := manager.ChooseRunner(task, cfg.Runner.Seed)
	if err != nil {
		return err
	}
	defer runner.Close()

	if fr, ok := runner.(interface {
		SetFailureCounter(prometheus.Counter)
	}); ok {
		fr.SetFailureCounter(opts.metrics.TaskFailuresTotal)
	}

	input := benchtask.Input{TargetLoad: opts.targetLoad}

	for cycle := 0; cycle < opts.maxCycles; cycle++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start := time.Now()
		if err := runner.Push(input); err != nil {
			return err
		}
		_, err := runner.Pull()
		opts.metrics.CyclesTotal.WithLabelValues(task.Name()).Inc()
		opts.metrics.CycleDurationSeconds.Observe(time.Since(start).Seconds())
		opts.metrics.ActiveConstraints.Set(float64(task.Spec().ActiveCount()))

		if err != nil {
			if _, ok := err.(*paramsearch.NoActiveConstraints); ok {
				logger.Info("run complete: constraints exhausted", "task", task.Name(), "cycle", cycle)
				break
			}
			return err
		}

		best := manager.BestScores()
		if len(best) > 0 {
			opts.metrics.BestObjective.Set(best[len(best)-1].Score.Objective)
		}
	}

	if mean, stddev, ok := manager.ObjectiveSummary(); ok {
		logger.Info("objective summary", "task", task.Name(), "mean", mean, "stddev", stddev)
	}

	artifactName := strings.TrimSuffix(filepath.Base(task.Name()), filepath.Ext(task.Name())) + ".points.m"
	f, err := os.Create(artifactName)
	if err != nil {
		return fmt.Errorf("paramsearchd: creating points.m artifact: %w", err)
	}
	defer f.Close()
	return manager.PrintBestScores(f, space.Dimensions())
}

func shutdown(srv *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}
}
