package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/plus3/boxpush/internal/config"
	"github.com/plus3/boxpush/internal/levels"
	"github.com/plus3/boxpush/internal/sokoban"
)

var (
	flagTicks          int
	flagDuration       time.Duration
	flagSeed           uint64
	flagGCPauseMetrics bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure simulation throughput",
	Long: `Tick a level headlessly with one random direction key per tick and
print a timing and memory report. The run stops after --ticks ticks or
--duration, whichever comes first. FreezeOnWin is turned off so the board
keeps moving after a win.

Examples:
  boxpush bench
  boxpush bench --level 03 --ticks 100000 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().StringVar(&flagLevel, "level", "", "Level id within the pack (default: first)")
	benchCmd.Flags().StringVar(&flagFile, "file", "", "Raw level text or pack YAML file")
	benchCmd.Flags().IntVar(&flagTicks, "ticks", 10000, "Number of ticks to run")
	benchCmd.Flags().DurationVar(&flagDuration, "duration", 10*time.Second, "Upper bound on run time")
	benchCmd.Flags().Uint64Var(&flagSeed, "seed", 1, "Seed for the random key sequence")
	benchCmd.Flags().BoolVar(&flagGCPauseMetrics, "gc-pause-metrics", false, "Include GC pause metrics in the report")
}

func runBench(cmd *cobra.Command, args []string) error {
	if flagTicks <= 0 {
		return fmt.Errorf("--ticks must be positive, got %d", flagTicks)
	}
	if flagDuration <= 0 {
		return fmt.Errorf("--duration must be positive, got %v", flagDuration)
	}

	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}

	entry, err := resolveLevel(flagFile, flagLevel)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), flagDuration)
	defer cancel()

	report := bench(ctx, cfg, logger, entry, flagTicks, flagSeed)
	report.GCPauseMetrics = flagGCPauseMetrics

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "--- Benchmark Report ---")
	if err := report.Generate(out); err != nil {
		return fmt.Errorf("generating report: %w", err)
	}
	fmt.Fprintln(out, "--- End of Report ---")
	return nil
}

var benchKeys = []sokoban.KeyCode{sokoban.KeyUp, sokoban.KeyDown, sokoban.KeyLeft, sokoban.KeyRight}

// bench ticks a fresh world until ticks have run or ctx is done.
func bench(ctx context.Context, cfg config.Config, logger *log.Logger, entry levels.Entry, ticks int, seed uint64) *Report {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	opts := cfg.WorldOptions(logger)
	opts.FreezeOnWin = false
	world := sokoban.NewWorldFromLevel(entry.Level, opts)

	rng := rand.New(rand.NewPCG(seed, seed))
	dt := cfg.TickInterval()

	report := &Report{
		Level:     entry.ID,
		Entities:  world.Storage().Len(),
		Requested: ticks,
		Seed:      seed,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, max(ticks, 0)),
		},
	}

	logger.Info("benchmark started", "level", entry.ID, "ticks", ticks, "seed", seed)
	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

Loop:
	for range ticks {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		world.PushKey(benchKeys[rng.IntN(len(benchKeys))])

		updateStart := time.Now()
		world.Tick(dt)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.TotalUpdates++
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Moves = world.MoveCount()
	report.FinalState = world.State().String()
	report.Systems = world.Scheduler().GetStats().Systems

	logger.Info("benchmark finished", "updates", report.TotalUpdates, "elapsed", report.TotalTime)
	return report
}
