package listener

import (
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/buildtrack/internal/config"
	"github.com/mrz1836/buildtrack/internal/constants"
	"github.com/mrz1836/buildtrack/internal/domain"
	"github.com/mrz1836/buildtrack/internal/report"
)

// newTestListener wires a Listener to a real writer over a temp directory.
func newTestListener(t *testing.T) (*Listener, *report.Writer) {
	t.Helper()
	cfg := &config.Config{OutputHomePath: t.TempDir()}
	w := report.NewWriter(cfg, nil, zerolog.Nop())
	return New(w, "demo", zerolog.Nop()), w
}

// TestListener_LazyOpen verifies the first notification derives the run start
// time from the task's start time and opens the writer.
func TestListener_LazyOpen(t *testing.T) {
	l, w := newTestListener(t)

	_, known := l.StartTimeMillis()
	assert.False(t, known)
	assert.Equal(t, report.StateUnopened, w.State())

	l.OnTaskFinished(domain.TaskFinishEvent{
		Path:            ":app:build",
		StartTimeMillis: 5000,
		EndTimeMillis:   5100,
		Outcome:         domain.Outcome{Kind: domain.OutcomeSuccess},
	})

	start, known := l.StartTimeMillis()
	require.True(t, known)
	assert.Equal(t, int64(5000), start, "start derives from the first task's start time")
	assert.Equal(t, report.StateOpen, w.State())
	assert.Equal(t, 1, w.Totals().TaskCount)
}

// TestListener_KnownStartSkipsDerivation verifies an authoritative start time
// disables the lazy derivation.
func TestListener_KnownStartSkipsDerivation(t *testing.T) {
	l, w := newTestListener(t)

	l.SetStartTime(1000)
	w.Open("demo", 1000)

	l.OnTaskFinished(domain.TaskFinishEvent{
		Path:            ":app:build",
		StartTimeMillis: 5000,
		EndTimeMillis:   5100,
		Outcome:         domain.Outcome{Kind: domain.OutcomeSuccess},
	})

	start, known := l.StartTimeMillis()
	require.True(t, known)
	assert.Equal(t, int64(1000), start, "host-supplied start must not be overwritten")
}

// TestListener_ForwardsRecords verifies classification, clamping, and
// forwarding into the writer.
func TestListener_ForwardsRecords(t *testing.T) {
	l, w := newTestListener(t)

	l.OnTaskFinished(domain.TaskFinishEvent{
		Path:            ":app:compile",
		StartTimeMillis: 1000,
		EndTimeMillis:   1050,
		Outcome:         domain.Outcome{Kind: domain.OutcomeSuccess, UpToDate: true},
	})
	l.OnTaskFinished(domain.TaskFinishEvent{
		Path:            ":app:test",
		StartTimeMillis: 2000,
		EndTimeMillis:   1900, // clock anomaly
		Outcome:         domain.Outcome{Kind: domain.OutcomeOther},
	})

	count, sum := l.Totals()
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(50), sum, "negative durations contribute zero")
	assert.Equal(t, 2, w.Totals().TaskCount)
	assert.Equal(t, int64(50), w.Totals().SumDurationMillis)
}

// TestListener_LastKnownTask verifies the most recently seen task path wins.
func TestListener_LastKnownTask(t *testing.T) {
	l, _ := newTestListener(t)

	_, ok := l.LastKnownTask()
	assert.False(t, ok)

	l.OnTaskFinished(domain.TaskFinishEvent{Path: ":a", Outcome: domain.Outcome{Kind: domain.OutcomeSuccess}})
	l.OnTaskFinished(domain.TaskFinishEvent{Path: ":b", Outcome: domain.Outcome{Kind: domain.OutcomeSuccess}})

	last, ok := l.LastKnownTask()
	require.True(t, ok)
	assert.Equal(t, ":b", last)
}

// TestListener_ConcurrentNotifications verifies concurrent delivery from
// multiple goroutines records every task exactly once.
func TestListener_ConcurrentNotifications(t *testing.T) {
	const n = 48

	l, w := newTestListener(t)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			l.OnTaskFinished(domain.TaskFinishEvent{
				Path:            ":app:task" + strconv.Itoa(i),
				StartTimeMillis: int64(1000 + i),
				EndTimeMillis:   int64(1000 + i + 10),
				Outcome:         domain.Outcome{Kind: domain.OutcomeSuccess},
			})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	count, sum := l.Totals()
	assert.Equal(t, n, count)
	assert.Equal(t, int64(n*10), sum)
	assert.Equal(t, n, w.Totals().TaskCount)
	assert.Equal(t, report.StateOpen, w.State(), "exactly one lazy open despite the race")

	w.Finalize(nil, constants.BuildStatusSuccess, 0)
}
