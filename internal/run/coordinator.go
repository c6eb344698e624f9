// Package run wires the gate, listener, and report writer into the host
// build's lifecycle hooks.
//
// A Coordinator drives one run: it consults the gate at start (inactive runs
// incur zero overhead, not even a writer allocation), hands the listener to
// the host's event registry, and at run end determines the final task list,
// re-checks the gate against it, and finalizes or discards the report.
//
// Import rules:
//   - CAN import: internal/clock, internal/config, internal/constants,
//     internal/domain, internal/gate, internal/listener, internal/report,
//     std lib
//   - MUST NOT import: internal/cli, internal/replay
package run

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/buildtrack/internal/clock"
	"github.com/mrz1836/buildtrack/internal/config"
	"github.com/mrz1836/buildtrack/internal/constants"
	"github.com/mrz1836/buildtrack/internal/domain"
	"github.com/mrz1836/buildtrack/internal/gate"
	"github.com/mrz1836/buildtrack/internal/listener"
	"github.com/mrz1836/buildtrack/internal/report"
)

// Coordinator orchestrates observation of a single build run.
// It is created per run and is not reusable.
type Coordinator struct {
	mu sync.Mutex

	cfg            *config.Config
	clk            clock.Clock
	logger         zerolog.Logger
	runID          string
	projectName    string
	requestedTasks []string

	started  bool
	finished bool
	active   bool

	startTimeMillis int64
	writer          *report.Writer
	listener        *listener.Listener
}

// New creates a Coordinator for one run. requestedTasks is the task list the
// host was invoked with; it may be empty for default-tasks runs, in which
// case the effective task list is only discoverable in hindsight.
func New(cfg *config.Config, projectName string, requestedTasks []string,
	clk clock.Clock, logger zerolog.Logger) *Coordinator {
	runID := uuid.NewString()
	return &Coordinator{
		cfg:            cfg,
		clk:            clk,
		logger:         logger.With().Str("component", "run").Str("run_id", runID).Logger(),
		runID:          runID,
		projectName:    projectName,
		requestedTasks: requestedTasks,
	}
}

// RunID returns the unique identifier assigned to this run for log correlation.
func (c *Coordinator) RunID() string {
	return c.runID
}

// Start evaluates the gate with the requested task names and, when active,
// creates the writer and listener. startTimeMillis is the host-provided run
// start time; pass 0 when unknown and the listener derives it lazily from the
// first task-finish notification.
//
// Returns the listener to register with the host's event registry, or nil
// when observation is inactive for this run.
func (c *Coordinator) Start(startTimeMillis int64) *listener.Listener {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return c.listener
	}
	c.started = true

	c.active = gate.IsActive(c.cfg, c.requestedTasks)
	if !c.active {
		c.logger.Debug().
			Strs("requested_tasks", c.requestedTasks).
			Msg("observation inactive for this run")
		return nil
	}

	c.writer = report.NewWriter(c.cfg, c.requestedTasks, c.logger)
	c.listener = listener.New(c.writer, c.projectName, c.logger)

	if startTimeMillis > 0 {
		c.startTimeMillis = startTimeMillis
		c.listener.SetStartTime(startTimeMillis)
		c.writer.Open(c.projectName, startTimeMillis)
	}

	c.logger.Debug().
		Strs("requested_tasks", c.requestedTasks).
		Int64("start_time", startTimeMillis).
		Msg("observation started")
	return c.listener
}

// Finish concludes the run. It determines the final task-name list, derives
// the reported status and duration from the host result, re-runs the gate
// against the final names (a task list discovered late can retroactively
// disable reporting), and finalizes or discards the report accordingly.
//
// Idempotent: only the first call has an effect.
func (c *Coordinator) Finish(result domain.BuildResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started || c.finished {
		return
	}
	c.finished = true

	if !c.active {
		return
	}

	finalNames := c.finalTaskNames()
	status := constants.BuildStatusFailed
	if result.Passed() {
		status = constants.BuildStatusSuccess
	}
	duration := c.buildDuration(result)

	if !gate.IsActive(c.cfg, finalNames) {
		// The task list known only in hindsight matches an exclude filter;
		// the run should not have been recorded after all.
		c.logger.Debug().
			Strs("final_tasks", finalNames).
			Msg("gate rejected run at end, discarding report")
		c.writer.Discard()
		return
	}

	c.writer.Finalize(finalNames, status, duration)
}

// ReportPath returns the final artifact path, or empty when observation is
// inactive or the writer never opened.
func (c *Coordinator) ReportPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writer == nil {
		return ""
	}
	return c.writer.Path()
}

// finalTaskNames resolves the task list reported at run end: the requested
// list when non-empty, else the listener's last known task, else empty.
// Evaluating the gate against a single hindsight task is a best-effort
// heuristic, not a precise guarantee. Called with c.mu held.
func (c *Coordinator) finalTaskNames() []string {
	if len(c.requestedTasks) > 0 {
		return c.requestedTasks
	}
	if last, ok := c.listener.LastKnownTask(); ok {
		return []string{last}
	}
	return nil
}

// buildDuration computes the reported run duration: wall-clock elapsed since
// the known (or derived) start, or the listener's summed task duration when
// no start time ever became known. Negative values clamp to zero.
// Called with c.mu held.
func (c *Coordinator) buildDuration(result domain.BuildResult) int64 {
	start, known := c.listener.StartTimeMillis()
	if !known {
		_, sum := c.listener.Totals()
		return sum
	}

	end := result.EndTimeMillis
	if end <= 0 {
		end = clock.NowMillis(c.clk)
	}
	d := end - start
	if d < 0 {
		return 0
	}
	return d
}
