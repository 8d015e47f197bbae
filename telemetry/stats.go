package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the turns of one or more rounds.
type Summary struct {
	Turns         int
	MeanTicks     float64
	StdTicks      float64
	MedianTicks   float64
	MeanFragments float64
	Captures      int
	Exits         int
	AsteroidHits  int
	PadHits       int
	Thrusts       int
	Wins          map[string]int
}

// Summarize computes per-turn statistics over records.
func Summarize(records []TurnRecord) Summary {
	s := Summary{Turns: len(records), Wins: make(map[string]int)}
	if len(records) == 0 {
		return s
	}

	ticks := make([]float64, len(records))
	frags := make([]float64, len(records))
	for i, r := range records {
		ticks[i] = float64(r.Ticks)
		frags[i] = float64(r.Fragments)
		s.Captures += r.Captures
		s.Exits += r.Exits
		s.AsteroidHits += r.AsteroidHits
		s.PadHits += r.PadHits
		s.Thrusts += r.Thrusts
		if r.Winner != "" {
			s.Wins[r.Winner]++
		}
	}

	s.MeanTicks = stat.Mean(ticks, nil)
	if len(ticks) > 1 {
		s.StdTicks = stat.StdDev(ticks, nil)
	}
	s.MeanFragments = stat.Mean(frags, nil)

	sort.Float64s(ticks)
	s.MedianTicks = stat.Quantile(0.5, stat.Empirical, ticks, nil)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("turns", s.Turns),
		slog.Float64("mean_ticks", s.MeanTicks),
		slog.Float64("std_ticks", s.StdTicks),
		slog.Float64("median_ticks", s.MedianTicks),
		slog.Float64("mean_fragments", s.MeanFragments),
		slog.Int("captures", s.Captures),
		slog.Int("exits", s.Exits),
		slog.Int("asteroid_hits", s.AsteroidHits),
		slog.Int("pad_hits", s.PadHits),
		slog.Int("thrusts", s.Thrusts),
	}
	for side, n := range s.Wins {
		attrs = append(attrs, slog.Int("wins_"+side, n))
	}
	return slog.GroupValue(attrs...)
}
