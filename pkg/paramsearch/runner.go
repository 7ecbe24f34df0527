package paramsearch

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pexplore-go/paramsearch/pkg/logger"
	"github.com/pexplore-go/paramsearch/pkg/utils"
)

// Runner is the interface both the concurrent ParameterSearchRunner and
// the degenerate SequentialRunner satisfy (§1 "the sequential and
// single-thread runners are trivial degenerate cases of the
// parameter-search runner").
type Runner interface {
	// Push queues input for the next cycle.
	Push(input any) error
	// Pull blocks until the cycle completes and returns the winning
	// output.
	Pull() (any, error)
	// Close releases the runner's resources. Idempotent.
	Close()
}

type inputJob struct {
	input any
	point Point
}

type outputMsg struct {
	pointScore PointScore
	output     any
	err        error
}

// ParameterSearchRunner is the worker pool of component E: a fixed-size
// pool of goroutines fanning one input out across `concurrency` perturbed
// configuration points, collecting scored outputs, and advancing the
// point population with an ExplorationStrategy (§4.5).
type ParameterSearchRunner struct {
	task        *Task
	concurrency int
	exploration ExplorationStrategy
	manager     *TaskManager

	rng *rand.Rand

	inputCh  chan inputJob
	outputCh chan outputMsg
	stopCh   chan struct{}
	wg       sync.WaitGroup

	mu            sync.Mutex // guards pendingPoints, lastInput, started
	pendingPoints []Point
	lastInput     any
	started       bool
	closed        bool

	failures       atomic.Int64
	failureCounter prometheus.Counter
}

// SetFailureCounter wires a Prometheus counter that Inc()s alongside every
// task-body or evaluation failure. Passing nil (the default) disables the
// counter without disabling failure tracking itself (FailureCount still
// works).
func (r *ParameterSearchRunner) SetFailureCounter(c prometheus.Counter) {
	r.failureCounter = c
}

// NewParameterSearchRunner builds a runner over task with the given
// concurrency and exploration strategy, seeded by seed (0 seeds from the
// current time, matching pkg/utils.RandSource's convention).
func NewParameterSearchRunner(task *Task, concurrency int, exploration ExplorationStrategy, manager *TaskManager, seed int64) (*ParameterSearchRunner, error) {
	if concurrency < 1 {
		return nil, &InvalidConcurrency{Requested: concurrency}
	}
	if exploration == nil {
		exploration = ShiftAndKeepBestHalf{}
	}
	r := &ParameterSearchRunner{
		task:        task,
		concurrency: concurrency,
		exploration: exploration,
		manager:     manager,
		rng:         newSeededRand(seed),
		inputCh:     make(chan inputJob, concurrency),
		outputCh:    make(chan outputMsg, concurrency),
		stopCh:      make(chan struct{}),
	}
	return r, nil
}

func newSeededRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (r *ParameterSearchRunner) startWorkers() {
	r.wg.Add(r.concurrency)
	for i := 0; i < r.concurrency; i++ {
		go r.workerLoop(i)
	}
}

// workerLoop is the per-thread suspension loop of §5: a worker's only
// blocking point is waiting for input availability (here, the buffered
// input channel) or the terminate signal.
func (r *ParameterSearchRunner) workerLoop(id int) {
	defer r.wg.Done()
	for {
		select {
		case job, ok := <-r.inputCh:
			if !ok {
				return
			}
			r.runJob(id, job)
		case <-r.stopCh:
			return
		}
	}
}

func (r *ParameterSearchRunner) runJob(workerID int, job inputJob) {
	output, err := r.task.Run(job.input, job.point)
	if err != nil {
		r.recordFailure()
		logger.Warn("paramsearch worker: task body failed", "worker", workerID, "point", job.point.String(), "error", err)
		r.sendOutput(outputMsg{err: err})
		return
	}

	score, err := r.task.Spec().Evaluate(job.input, output)
	if err != nil {
		r.recordFailure()
		logger.Warn("paramsearch worker: evaluation failed", "worker", workerID, "point", job.point.String(), "error", err)
		r.sendOutput(outputMsg{err: err})
		return
	}

	r.sendOutput(outputMsg{pointScore: PointScore{Point: job.point, Score: score}, output: output})
}

func (r *ParameterSearchRunner) recordFailure() {
	r.failures.Add(1)
	if r.failureCounter != nil {
		r.failureCounter.Inc()
	}
}

func (r *ParameterSearchRunner) sendOutput(msg outputMsg) {
	select {
	case r.outputCh <- msg:
	case <-r.stopCh:
	}
}

// Push queues input for the next cycle (§4.5 state machine). The first
// call seeds pendingPoints with `concurrency` random-shifted copies of the
// search space's initial point and activates the worker pool; every call
// pulls `concurrency` points off the head of pendingPoints and enqueues
// (input, point) pairs into the input channel, blocking (back-pressure)
// until workers have drained the previous batch.
func (r *ParameterSearchRunner) Push(input any) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return errors.New("paramsearch: push on a closed runner")
	}
	if !r.started {
		initial := r.task.SearchSpace().InitialPoint()
		r.pendingPoints = r.task.SearchSpace().RandomShifted(initial, r.concurrency, r.rng)
		r.started = true
		r.startWorkers()
	}
	if len(r.pendingPoints) < r.concurrency {
		r.mu.Unlock()
		return fmt.Errorf("paramsearch: pending_points invariant broken: have %d, need %d", len(r.pendingPoints), r.concurrency)
	}
	points := r.pendingPoints[:r.concurrency]
	r.pendingPoints = r.pendingPoints[r.concurrency:]
	r.lastInput = input
	r.mu.Unlock()

	for _, p := range points {
		select {
		case r.inputCh <- inputJob{input: input, point: p}:
		case <-r.stopCh:
			return errors.New("paramsearch: push on a closed runner")
		}
	}
	return nil
}

// Pull blocks until output_count == concurrency - failures (§4.5), ranks
// the successful outputs, steps the exploration strategy to refill
// pendingPoints, advances the constraint lifecycle from the winner's
// (input, output) alone, publishes the cycle's scores to the manager, and
// returns the winning output.
func (r *ParameterSearchRunner) Pull() (any, error) {
	ranking := make([]PointScore, 0, r.concurrency)
	outputs := make(map[string]any, r.concurrency)
	failures := 0

	for i := 0; i < r.concurrency; i++ {
		msg := <-r.outputCh
		if msg.err != nil {
			failures++
			continue
		}
		ranking = append(ranking, msg.pointScore)
		outputs[msg.pointScore.Point.Key()] = msg.output
	}

	if len(ranking) == 0 {
		// The design permits indefinite waiting on an all-failed cycle
		// (§7 open question); this implementation treats that as a bug
		// and fails fast instead of blocking the next Push forever.
		return nil, fmt.Errorf("paramsearch: cycle failed entirely (%d/%d task failures)", failures, r.concurrency)
	}

	nextPoints := r.exploration.NextPointsFrom(ranking, r.task.SearchSpace(), r.rng)
	if len(nextPoints) != r.concurrency {
		if failures > 0 {
			return nil, fmt.Errorf("paramsearch: cycle had %d/%d task failures, leaving too short a ranking for exploration strategy %q to refill to %d points (got %d)", failures, r.concurrency, r.exploration.Name(), r.concurrency, len(nextPoints))
		}
		return nil, fmt.Errorf("paramsearch: exploration strategy %q returned %d points, want %d", r.exploration.Name(), len(nextPoints), r.concurrency)
	}

	r.mu.Lock()
	r.pendingPoints = append(r.pendingPoints, nextPoints...)
	lastInput := r.lastInput
	r.mu.Unlock()

	winner := MinPointScore(ranking)
	winnerOutput := outputs[winner.Point.Key()]

	if _, err := r.task.Spec().UpdateFrom(lastInput, winnerOutput); err != nil {
		return nil, err
	}

	if r.task.Spec().Inactive() {
		return nil, &NoActiveConstraints{Snapshot: r.task.Spec().Snapshot()}
	}

	if r.manager != nil {
		r.manager.AppendScores(ranking)
	}

	logger.Info("paramsearch cycle complete", "cycle_id", utils.GenerateCycleID(), "task", r.task.Name(), "winner", winner.Point.String(), "failures", failures)

	return winnerOutput, nil
}

// FailureCount returns the cumulative count of task-body/evaluation
// failures recorded across every cycle so far.
func (r *ParameterSearchRunner) FailureCount() int64 {
	return r.failures.Load()
}

// Close sets the terminate flag, wakes every worker, and joins them
// (§5 "the runner's destructor sets terminate, wakes all workers, and
// joins"). In-flight tasks complete but their outputs are discarded.
// Idempotent.
func (r *ParameterSearchRunner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	close(r.stopCh)
	r.wg.Wait()
}
