package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/buildtrack/internal/clock"
	"github.com/mrz1836/buildtrack/internal/config"
	"github.com/mrz1836/buildtrack/internal/replay"
)

// AddReplayCommand adds the replay command to the root command.
// Replay drives one observation run from a recorded JSON-lines event stream,
// read from a file argument or stdin.
func AddReplayCommand(root *cobra.Command, flags *GlobalFlags) {
	var (
		workers int
		verify  bool
	)

	cmd := &cobra.Command{
		Use:   "replay [events-file]",
		Short: "Replay a recorded build event stream and emit its report",
		Long: `Replay reads a recorded run as JSON lines (a build_start event, any number
of task_finish events, and a build_finish event) and drives the observation
core with it, producing the same YAML report a live run would.

With --workers > 1, task_finish events are delivered concurrently to
exercise the same parallelism a multi-worker host build produces.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := GetLogger()
			ctx := logger.WithContext(cmd.Context())

			cfg := config.Load(ctx, flags.ConfigPath)

			var src io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0]) //#nosec G304 -- user-supplied input file
				if err != nil {
					return fmt.Errorf("failed to open event stream: %w", err)
				}
				defer func() { _ = f.Close() }()
				src = f
			}

			r := replay.NewReplayer(cfg, clock.RealClock{}, logger, workers)
			summary, err := r.Replay(ctx, src)
			if err != nil {
				return err
			}

			if !summary.Active {
				fmt.Fprintln(cmd.OutOrStdout(), "observation inactive for this run, no report written")
				return nil
			}
			if summary.ReportPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "report discarded or suppressed")
				return nil
			}

			if verify {
				doc, err := replay.VerifyReport(summary.ReportPath)
				if err != nil {
					return err
				}
				logger.Info().
					Int("task_count", len(doc.TaskDetails)).
					Str("build_status", doc.BuildStatus).
					Msg("report verified")
			}

			fmt.Fprintln(cmd.OutOrStdout(), summary.ReportPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 1, "number of goroutines delivering task events")
	cmd.Flags().BoolVar(&verify, "verify", false, "parse the emitted report back and check it is well-formed")

	root.AddCommand(cmd)
}
