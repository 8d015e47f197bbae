package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/gravwar/ai"
	"github.com/pthm-cable/gravwar/config"
	"github.com/pthm-cable/gravwar/game"
	"github.com/pthm-cable/gravwar/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run CPU vs CPU without graphics")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	rounds := flag.Int("rounds", 1, "Headless: rounds to play before exiting")
	difficulty := flag.String("difficulty", "hard", "CPU difficulty: easy, medium, hard")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	perfWindow := flag.Int("perf-window", 600, "Ticks per perf sample window")

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid log level", "value", *logLevel, "error", err)
		os.Exit(1)
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	var logger *slog.Logger
	if *headless {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
	}
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	diff, err := ai.ParseDifficulty(*difficulty)
	if err != nil {
		slog.Error("invalid difficulty", "error", err)
		os.Exit(1)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output dir", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	opts := game.Options{
		Logger:    logger,
		Collector: telemetry.NewCollector(),
		Perf:      telemetry.NewPerfCollector(*perfWindow),
	}

	if *headless {
		slog.Info("starting headless match",
			"seed", rngSeed,
			"difficulty", diff.String(),
			"rounds", *rounds,
			"max_ticks", *maxTicks,
		)
		runHeadless(cfg, opts, rng, out, headlessParams{
			reset:      game.ResetConfig{Spectate: true, Difficulty: diff},
			rounds:     *rounds,
			maxTicks:   *maxTicks,
			perfWindow: *perfWindow,
		})
		return
	}

	runWindow(cfg, opts, rng, out, *maxTicks)
}

type headlessParams struct {
	reset      game.ResetConfig
	rounds     int
	maxTicks   int
	perfWindow int
}

// runHeadless plays CPU vs CPU rounds back to back and logs a summary.
func runHeadless(cfg *config.Config, opts game.Options, rng *rand.Rand, out *telemetry.OutputManager, p headlessParams) {
	opts.CPU = p.reset.Controllers()
	round := game.NewRound(cfg, opts, rng)

	var all []telemetry.TurnRecord
	wins := map[string]int{}
	played := 0
	ticks := 0

	for p.maxTicks == 0 || ticks < p.maxTicks {
		snap := round.AdvanceTick(game.Input{})
		ticks++

		if recs := opts.Collector.Flush(); len(recs) > 0 {
			all = append(all, recs...)
			if err := out.WriteTurns(recs); err != nil {
				slog.Error("failed to write turns", "error", err)
			}
		}
		if p.perfWindow > 0 && ticks%p.perfWindow == 0 {
			stats := opts.Perf.Stats()
			if err := out.WritePerf(stats.ToCSV(int64(ticks))); err != nil {
				slog.Error("failed to write perf", "error", err)
			}
			slog.Debug("perf", "stats", stats)
		}

		if snap.Phase != game.PhaseRoundOver {
			continue
		}
		played++
		wins[snap.Winner.String()]++
		slog.Info("round finished", "round", played, "winner", snap.Winner.String(), "turns", snap.Turn, "tick", snap.Tick)
		if played >= p.rounds {
			break
		}
		round = round.Reset(p.reset)
	}

	if p.maxTicks > 0 && ticks >= p.maxTicks {
		slog.Info("max ticks reached", "tick", ticks)
	}
	slog.Info("match summary", "rounds", played, "wins", wins, "turns", telemetry.Summarize(all))
}
