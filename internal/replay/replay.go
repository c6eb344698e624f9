// Package replay drives a build observation run from a recorded event stream.
//
// The core's contract is "given a sequence of task-finish events in this
// shape, produce this accumulated state"; replay is the external driver that
// delivers such a sequence, standing in for a live host build system. Streams
// are JSON lines, one event per line: a leading build_start, any number of
// task_finish events, and a trailing build_finish.
package replay

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/buildtrack/internal/clock"
	"github.com/mrz1836/buildtrack/internal/config"
	"github.com/mrz1836/buildtrack/internal/domain"
	"github.com/mrz1836/buildtrack/internal/errors"
	"github.com/mrz1836/buildtrack/internal/run"
)

// Event type tags for stream lines.
const (
	// EventBuildStart opens a stream: project, requested tasks, start time.
	EventBuildStart = "build_start"

	// EventTaskFinish delivers one task-finish notification.
	EventTaskFinish = "task_finish"

	// EventBuildFinish closes a stream with the host's run result.
	EventBuildFinish = "build_finish"
)

// Event is one line of a recorded run stream. Type selects which of the
// remaining fields are meaningful.
type Event struct {
	// Type is one of EventBuildStart, EventTaskFinish, EventBuildFinish.
	Type string `json:"type"`

	// Project is the project name (build_start only).
	Project string `json:"project,omitempty"`

	// StartTimeMillis is the run start time in epoch milliseconds
	// (build_start only; 0 means unknown, triggering lazy derivation).
	StartTimeMillis int64 `json:"start_time_ms,omitempty"`

	// RequestedTasks is the task list the host was invoked with
	// (build_start only; may be empty for default-tasks runs).
	RequestedTasks []string `json:"requested_tasks,omitempty"`

	// Task is the finished task (task_finish only).
	Task *domain.TaskFinishEvent `json:"task,omitempty"`

	// Result is the host's run result (build_finish only).
	Result *domain.BuildResult `json:"result,omitempty"`
}

// Summary describes the outcome of a replayed run.
type Summary struct {
	// RunID is the coordinator's run identifier.
	RunID string `json:"run_id"`

	// Active reports whether the gate admitted the run.
	Active bool `json:"active"`

	// TasksDelivered is the number of task-finish events delivered.
	TasksDelivered int `json:"tasks_delivered"`

	// ReportPath is the final artifact path, empty when inactive or
	// suppressed.
	ReportPath string `json:"report_path,omitempty"`
}

// Replayer replays recorded event streams through a run coordinator.
type Replayer struct {
	cfg     *config.Config
	clk     clock.Clock
	logger  zerolog.Logger
	workers int
}

// NewReplayer creates a Replayer. workers controls how many goroutines
// deliver task-finish events concurrently; values below 1 mean sequential
// delivery in stream order.
func NewReplayer(cfg *config.Config, clk clock.Clock, logger zerolog.Logger, workers int) *Replayer {
	return &Replayer{
		cfg:     cfg,
		clk:     clk,
		logger:  logger.With().Str("component", "replay").Logger(),
		workers: workers,
	}
}

// Replay reads events from src and drives one observation run.
//
// A malformed line or a stream not opening with build_start returns a wrapped
// ErrMalformedEvent. A stream that ends without build_finish still concludes
// the run: with no result available the run is reported FAILED, matching how
// a missing host signal is treated, and ErrEventStreamClosed is returned.
//
// The context parameter is accepted for API consistency and future use; the
// core is purely reactive to delivered events and models no cancellation.
func (r *Replayer) Replay(_ context.Context, src io.Reader) (*Summary, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	start, err := readStart(scanner)
	if err != nil {
		return nil, err
	}

	coord := run.New(r.cfg, start.Project, start.RequestedTasks, r.clk, r.logger)
	l := coord.Start(start.StartTimeMillis)

	summary := &Summary{RunID: coord.RunID(), Active: l != nil}

	var g errgroup.Group
	if r.workers > 1 {
		g.SetLimit(r.workers)
	} else {
		g.SetLimit(1)
	}

	var result *domain.BuildResult
	var parseErr error
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			parseErr = errors.Wrap(errors.ErrMalformedEvent, err.Error())
			break
		}
		if ev.Type == EventBuildFinish {
			result = ev.Result
			if result == nil {
				result = &domain.BuildResult{}
			}
			break
		}
		if ev.Type != EventTaskFinish || ev.Task == nil {
			parseErr = errors.Wrapf(errors.ErrMalformedEvent, "unexpected event type %q", ev.Type)
			break
		}
		task := *ev.Task
		summary.TasksDelivered++
		if l != nil {
			g.Go(func() error {
				l.OnTaskFinished(task)
				return nil
			})
		}
	}
	// Listener delivery must complete before the run is concluded.
	_ = g.Wait()

	if parseErr != nil {
		coord.Finish(domain.BuildResult{})
		return nil, parseErr
	}
	if err := scanner.Err(); err != nil {
		coord.Finish(domain.BuildResult{})
		return nil, errors.Wrap(err, "failed to read event stream")
	}

	if result == nil {
		// No result signal from the stream: conclude as FAILED.
		coord.Finish(domain.BuildResult{})
		summary.ReportPath = coord.ReportPath()
		return summary, errors.ErrEventStreamClosed
	}

	coord.Finish(*result)
	summary.ReportPath = coord.ReportPath()

	r.logger.Info().
		Str("run_id", summary.RunID).
		Bool("active", summary.Active).
		Int("tasks", summary.TasksDelivered).
		Str("report", summary.ReportPath).
		Msg("replay complete")
	return summary, nil
}

// readStart consumes lines until the opening build_start event.
// Blank lines are tolerated; anything else out of order is malformed.
func readStart(scanner *bufio.Scanner) (*Event, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return nil, errors.Wrap(errors.ErrMalformedEvent, err.Error())
		}
		if ev.Type != EventBuildStart {
			return nil, errors.Wrapf(errors.ErrMalformedEvent, "stream must open with %s, got %q", EventBuildStart, ev.Type)
		}
		return &ev, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read event stream")
	}
	return nil, errors.Wrap(errors.ErrEventStreamClosed, "empty stream")
}
