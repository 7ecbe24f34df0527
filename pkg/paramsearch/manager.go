package paramsearch

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pexplore-go/paramsearch/pkg/utils"
)

// TaskManager is the process-wide singleton of component F: it probes the
// hardware concurrency cap, owns a mutable concurrency setting and the
// default exploration strategy, owns the append-only best-scores log under
// a mutex, and selects a Runner implementation for a given Task (§4.6).
//
// Construction is idempotent and creates no goroutines; a
// ParameterSearchRunner starts its workers on its first Push, per §9's
// "avoid initialising threads during manager construction".
type TaskManager struct {
	mu sync.Mutex

	cap         int
	concurrency int
	exploration ExplorationStrategy

	// scores is the append-only best-scores log: one entry (a full ranked
	// set of PointScores) per completed pull cycle.
	scores [][]PointScore

	id string
}

var (
	managerOnce     sync.Once
	managerInstance *TaskManager
)

// Instance returns the process-wide TaskManager, constructing it on first
// call (Meyer's-singleton idiom).
func Instance() *TaskManager {
	managerOnce.Do(func() {
		cap := runtime.NumCPU()
		managerInstance = &TaskManager{
			cap:         cap,
			concurrency: cap,
			exploration: ShiftAndKeepBestHalf{},
			id:          utils.GenerateRunID(),
		}
	})
	return managerInstance
}

// resetForTest rebuilds the singleton. It is unexported and only ever
// called from this package's own tests, which need a clean manager
// between cases.
func resetForTest() {
	managerOnce = sync.Once{}
	managerInstance = nil
}

// ID returns the run ID ("run-" plus a timestamp and a UUID) stamped when
// this manager instance was constructed.
func (m *TaskManager) ID() string {
	return m.id
}

// Cap returns the hardware concurrency probe result.
func (m *TaskManager) Cap() int {
	return m.cap
}

// Concurrency returns the currently configured concurrency.
func (m *TaskManager) Concurrency() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.concurrency
}

// SetConcurrency sets the manager's concurrency to n, failing fast if n is
// zero or exceeds the hardware cap (§4.6, §7).
func (m *TaskManager) SetConcurrency(n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n < 1 || n > m.cap {
		return &InvalidConcurrency{Requested: n, Cap: m.cap}
	}
	m.concurrency = n
	return nil
}

// ExplorationStrategy returns the manager's default exploration strategy.
func (m *TaskManager) ExplorationStrategy() ExplorationStrategy {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exploration
}

// SetExplorationStrategy replaces the manager's default exploration
// strategy.
func (m *TaskManager) SetExplorationStrategy(s ExplorationStrategy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exploration = s
}

// AppendScores records one pull cycle's full ranked set of PointScores to
// the best-scores log.
func (m *TaskManager) AppendScores(cycle []PointScore) {
	cp := make([]PointScore, len(cycle))
	copy(cp, cycle)
	m.mu.Lock()
	m.scores = append(m.scores, cp)
	m.mu.Unlock()
}

// BestScores projects the minimum PointScore of every logged cycle, in
// logging order (§3 "a flat best_scores view extracts the minimum
// PointScore of each set").
func (m *TaskManager) BestScores() []PointScore {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PointScore, 0, len(m.scores))
	for _, cycle := range m.scores {
		if len(cycle) == 0 {
			continue
		}
		out = append(out, MinPointScore(cycle))
	}
	return out
}

// OptimalPoint estimates the most representative point across the
// best-scores log as the per-coordinate arithmetic mean, rounded to the
// nearest integer (§4.6). It returns nil if no scores have been logged
// (§8 "Empty best_scores ⇒ optimal_point() returns the empty sequence").
func (m *TaskManager) OptimalPoint() []int {
	best := m.BestScores()
	if len(best) == 0 {
		return nil
	}

	dims := best[0].Point.Dim()
	columns := make([][]float64, dims)
	for i := range columns {
		columns[i] = make([]float64, 0, len(best))
	}
	for _, ps := range best {
		coords := ps.Point.Coordinates()
		for i := 0; i < dims && i < len(coords); i++ {
			columns[i] = append(columns[i], float64(coords[i]))
		}
	}

	out := make([]int, dims)
	for i, col := range columns {
		out[i] = int(utils.Round(utils.Mean(col), 0))
	}
	return out
}

// ObjectiveSummary reports the mean and standard deviation of the
// objective field across the best-scores log, computed with gonum/stat.
// The second return value is false when no scores have been logged.
func (m *TaskManager) ObjectiveSummary() (mean, stddev float64, ok bool) {
	best := m.BestScores()
	if len(best) == 0 {
		return 0, 0, false
	}
	objectives := make([]float64, len(best))
	for i, ps := range best {
		objectives[i] = ps.Score.Objective
	}
	mean, stddev = stat.MeanStdDev(objectives, nil)
	return mean, stddev, true
}

// ChooseRunner implements the runner-selection policy of §4.6: a singleton
// configuration or a manager concurrency of 1 degenerates to the
// sequential runner; otherwise a ParameterSearchRunner is built with
// min(concurrency, search_space.total_points) workers.
func (m *TaskManager) ChooseRunner(task *Task, seed int64) (Runner, error) {
	if task.BaseConfiguration().IsSingleton() {
		return NewSequentialRunner(task, task.SearchSpace().InitialPoint(), m), nil
	}

	concurrency := m.Concurrency()
	if concurrency == 1 {
		return NewSequentialRunner(task, task.SearchSpace().InitialPoint(), m), nil
	}

	concurrency = utils.Min(concurrency, task.SearchSpace().TotalPoints())
	if concurrency < 1 {
		concurrency = 1
	}
	return NewParameterSearchRunner(task, concurrency, m.ExplorationStrategy(), m, seed)
}
