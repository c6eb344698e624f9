// Package report owns the build report artifact for a single run.
//
// The Writer is the only component that touches the artifact file. It accepts
// task records as they arrive, journals them eagerly to a provisional file so
// a mid-run host crash loses at most the in-flight record, and emits the
// complete, contractually-ordered document on finalize via an atomic rename.
//
// Every operation degrades rather than fails: an I/O error while opening
// suppresses the writer for the rest of the run, and errors during append or
// finalize are logged and otherwise ignored. Observation must never break or
// slow the build it observes.
//
// Import rules:
//   - CAN import: internal/constants, internal/config, internal/domain,
//     internal/errors, std lib
//   - MUST NOT import: internal/listener, internal/run, internal/cli
package report

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mrz1836/buildtrack/internal/config"
	"github.com/mrz1836/buildtrack/internal/constants"
	"github.com/mrz1836/buildtrack/internal/domain"
)

// Totals accumulates per-run aggregates. Owned exclusively by the Writer and
// mutated only through AddTask.
type Totals struct {
	// TaskCount is the number of task records accepted so far.
	TaskCount int

	// SumDurationMillis is the sum of all accepted task durations.
	SumDurationMillis int64
}

// Writer owns the report artifact and its state machine.
// All methods are safe for concurrent use: the single mutex covers every
// state-check-and-mutate sequence, including the lazy-open path, since two
// notification goroutines could otherwise race the check-then-act.
type Writer struct {
	mu sync.Mutex

	cfg            *config.Config
	logger         zerolog.Logger
	requestedTasks []string

	state           State
	projectName     string
	startTimeMillis int64

	provisionalPath string
	finalPath       string
	file            *os.File

	records []domain.TaskRecord
	totals  Totals
}

// NewWriter creates a Writer in the Unopened state.
// requestedTasks is used only to derive the artifact file name; it may be
// empty for default-tasks runs, in which case the name omits the task segment.
func NewWriter(cfg *config.Config, requestedTasks []string, logger zerolog.Logger) *Writer {
	return &Writer{
		cfg:            cfg,
		logger:         logger.With().Str("component", "report").Logger(),
		requestedTasks: requestedTasks,
		state:          StateUnopened,
	}
}

// Open creates the provisional artifact and writes the header block (format
// version, project name, run start time), transitioning Unopened→Open.
//
// Any failure (missing/unwritable directory, file creation error) transitions
// to Suppressed instead: the failure is logged once and every subsequent call
// on the writer becomes a no-op. Open reports whether the writer is accepting
// records afterwards, so a second call while Open is a successful no-op.
func (w *Writer) Open(projectName string, startTimeMillis int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateUnopened {
		return w.state == StateOpen
	}

	outputDir := w.cfg.OutputHomePath
	if outputDir == "" {
		w.suppress("no output home path configured", nil)
		return false
	}

	if err := os.MkdirAll(outputDir, constants.DirPerm); err != nil {
		w.suppress("failed to create report directory", err)
		return false
	}

	base := FileBaseName(startTimeMillis, projectName, w.requestedTasks)
	w.provisionalPath = filepath.Join(outputDir, base+constants.ProvisionalExtension)
	w.finalPath = filepath.Join(outputDir, base+constants.ReportExtension)

	f, err := os.OpenFile(w.provisionalPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePerm) //#nosec G304 -- path is constructed from validated config
	if err != nil {
		w.suppress("failed to create report file", err)
		return false
	}

	if _, err := f.Write(renderHeader(projectName, startTimeMillis)); err != nil {
		_ = f.Close()
		_ = os.Remove(w.provisionalPath)
		w.suppress("failed to write report header", err)
		return false
	}

	w.file = f
	w.projectName = projectName
	w.startTimeMillis = startTimeMillis
	w.state = StateOpen

	w.logger.Debug().
		Str("path", w.provisionalPath).
		Int64("build_start_time", startTimeMillis).
		Msg("report opened")
	return true
}

// AddTask appends one task record in arrival order and updates the run totals.
// The record is journaled to the provisional file immediately so that at most
// the in-flight record is lost on a crash. No-op unless the writer is Open.
func (w *Writer) AddTask(rec domain.TaskRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateOpen {
		w.logger.Debug().
			Str("task", rec.Path).
			Stringer("state", w.state).
			Msg("task record dropped, report not open")
		return
	}

	if len(w.records) == 0 {
		if _, err := w.file.Write(renderTaskDetailsKey(false)); err != nil {
			w.logger.Warn().Err(err).Msg("failed to append to report journal")
		}
	}
	if _, err := w.file.Write(renderTaskEntry(rec)); err != nil {
		w.logger.Warn().Err(err).Str("task", rec.Path).
			Msg("failed to append task record to report journal")
	}

	w.records = append(w.records, rec)
	w.totals.TaskCount++
	w.totals.SumDurationMillis += rec.DurationMillis
}

// Finalize appends the task-name list, final status, and total duration,
// emits the complete document in contract order, and atomically renames the
// provisional artifact to its final extension, transitioning Open→Finalized.
//
// Idempotent: a second call, or a call after Discard, is a no-op. Calls on an
// Unopened or Suppressed writer are also no-ops.
func (w *Writer) Finalize(taskNames []string, status constants.BuildStatus, durationMillis int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateOpen {
		return
	}

	doc := renderDocument(w.projectName, w.startTimeMillis, taskNames, w.records, status, durationMillis)

	// The journal was appended in arrival order; the final document places
	// buildTaskNames ahead of taskDetails per the report contract, so the
	// terminal write replaces the journal contents before the rename.
	if err := w.rewrite(doc); err != nil {
		w.logger.Warn().Err(err).Str("path", w.provisionalPath).
			Msg("failed to write final report document")
		w.closeFile()
		w.state = StateFinalized
		return
	}
	w.closeFile()

	if err := os.Rename(w.provisionalPath, w.finalPath); err != nil {
		w.logger.Warn().Err(err).
			Str("from", w.provisionalPath).
			Str("to", w.finalPath).
			Msg("failed to rename report to final extension")
	}

	w.state = StateFinalized
	w.logger.Info().
		Str("path", w.finalPath).
		Stringer("build_status", status).
		Int64("build_duration", durationMillis).
		Int("task_count", w.totals.TaskCount).
		Msg("report finalized")
}

// Discard closes and deletes the artifact entirely, transitioning
// Open→Discarded. Used when the gate, re-evaluated at run end against the
// now-known task list, determines the run should not have been recorded.
// Idempotent no-op once the writer is in any terminal state.
func (w *Writer) Discard() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateOpen {
		return
	}

	w.closeFile()
	if err := os.Remove(w.provisionalPath); err != nil && !os.IsNotExist(err) {
		w.logger.Warn().Err(err).Str("path", w.provisionalPath).
			Msg("failed to delete discarded report")
	}

	w.state = StateDiscarded
	w.logger.Info().Str("path", w.provisionalPath).Msg("report discarded")
}

// Totals returns a snapshot of the accumulated run totals.
func (w *Writer) Totals() Totals {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.totals
}

// State returns the writer's current lifecycle state.
func (w *Writer) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Path returns the final artifact path, or empty if the writer never opened.
func (w *Writer) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.finalPath
}

// suppress records a permanent open failure. Called with w.mu held.
// The failure is logged once; all subsequent operations are no-ops.
func (w *Writer) suppress(reason string, err error) {
	w.state = StateSuppressed
	w.logger.Warn().Err(err).Str("reason", reason).
		Msg("report suppressed for this run")
}

// rewrite replaces the journal contents with the final document.
// Called with w.mu held and w.file open.
func (w *Writer) rewrite(doc []byte) error {
	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, 0); err != nil {
		return err
	}
	if _, err := w.file.Write(doc); err != nil {
		return err
	}
	return w.file.Sync()
}

// closeFile closes the artifact handle if open. Called with w.mu held.
func (w *Writer) closeFile() {
	if w.file != nil {
		_ = w.file.Close()
		w.file = nil
	}
}
