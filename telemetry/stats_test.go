package telemetry

import (
	"math"
	"testing"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Turns != 0 || s.MeanTicks != 0 || s.StdTicks != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	records := []TurnRecord{
		{Turn: 1, Ticks: 100, Fragments: 0, Exits: 1},
		{Turn: 2, Ticks: 200, Fragments: 12, Captures: 1, AsteroidHits: 1, Exits: 11},
		{Turn: 3, Ticks: 300, Fragments: 0, PadHits: 1, Winner: "Player 1"},
	}

	s := Summarize(records)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"mean ticks", s.MeanTicks, 200},
		{"std ticks", s.StdTicks, 100}, // sample std dev
		{"median ticks", s.MedianTicks, 200},
		{"mean fragments", s.MeanFragments, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if s.Turns != 3 || s.Captures != 1 || s.Exits != 12 || s.AsteroidHits != 1 || s.PadHits != 1 {
		t.Errorf("totals = %+v", s)
	}
	if s.Wins["Player 1"] != 1 || len(s.Wins) != 1 {
		t.Errorf("wins = %v", s.Wins)
	}
}
