// Package listener consumes task-finish notifications from the host build.
//
// The host pushes one notification per completed task, potentially from
// multiple worker goroutines at once. The listener classifies each outcome,
// clamps the computed duration, forwards the record to the report writer, and
// tracks the bookkeeping the coordinator needs at run end: the most recently
// seen task path and running totals, plus the derived run start time when the
// host never supplied one.
//
// Import rules:
//   - CAN import: internal/domain, internal/report, std lib
//   - MUST NOT import: internal/run, internal/cli
package listener

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/mrz1836/buildtrack/internal/domain"
	"github.com/mrz1836/buildtrack/internal/report"
)

// Listener receives task-finish notifications and streams records into the
// report writer. All methods are safe for concurrent use.
type Listener struct {
	mu sync.Mutex

	writer      *report.Writer
	logger      zerolog.Logger
	projectName string

	startKnown      bool
	startTimeMillis int64

	lastKnownTask     string
	taskCount         int
	sumDurationMillis int64
}

// New creates a Listener forwarding records to the given writer.
// projectName is needed because the listener may be the one to open the
// writer, when the run's true start time only becomes known from the first
// task notification.
func New(writer *report.Writer, projectName string, logger zerolog.Logger) *Listener {
	return &Listener{
		writer:      writer,
		logger:      logger.With().Str("component", "listener").Logger(),
		projectName: projectName,
	}
}

// SetStartTime records the run's authoritative start time.
// Called by the coordinator when the host provided one up front; the lazy
// derivation in OnTaskFinished then never fires.
func (l *Listener) SetStartTime(millis int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.startKnown = true
	l.startTimeMillis = millis
}

// OnTaskFinished handles one task-finish notification:
//
//  1. Classify the host outcome into a task status.
//  2. Compute the duration, clamped to be non-negative.
//  3. On the first notification with the run start still unknown, derive the
//     start from this task's start time and lazily open the writer.
//  4. Forward the record to the writer.
//  5. Track the task path as the last known task and update running totals.
func (l *Listener) OnTaskFinished(ev domain.TaskFinishEvent) {
	rec := ev.Record()

	l.mu.Lock()
	if !l.startKnown {
		// Best available approximation of the run start: the start time
		// of the first task seen to finish.
		l.startKnown = true
		l.startTimeMillis = ev.StartTimeMillis
		l.writer.Open(l.projectName, ev.StartTimeMillis)
		l.logger.Debug().
			Int64("derived_start", ev.StartTimeMillis).
			Str("task", ev.Path).
			Msg("derived run start time from first task")
	}
	l.lastKnownTask = ev.Path
	l.taskCount++
	l.sumDurationMillis += rec.DurationMillis
	l.mu.Unlock()

	l.writer.AddTask(rec)

	l.logger.Debug().
		Str("task", rec.Path).
		Int64("duration", rec.DurationMillis).
		Str("status", rec.Status.Render()).
		Msg("task recorded")
}

// LastKnownTask returns the path of the most recently seen task, if any.
// Used at run end when the originally requested task list was empty and the
// effective task is only discoverable in hindsight.
func (l *Listener) LastKnownTask() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastKnownTask, l.lastKnownTask != ""
}

// StartTimeMillis returns the run start time and whether one is known,
// either host-supplied or derived from the first notification.
func (l *Listener) StartTimeMillis() (int64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.startTimeMillis, l.startKnown
}

// Totals returns the running task count and summed duration. The summed
// duration stands in for the run duration when the host never supplies an
// authoritative end time.
func (l *Listener) Totals() (count int, sumDurationMillis int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.taskCount, l.sumDurationMillis
}
