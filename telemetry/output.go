package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/gravwar/config"
)

// OutputManager writes a run's configuration and CSV logs to a directory.
type OutputManager struct {
	dir       string
	turnsFile *os.File
	perfFile  *os.File

	turnsHeaderWritten bool
	perfHeaderWritten  bool
}

// NewOutputManager creates the output directory and opens the CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "turns.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating turns.csv: %w", err)
	}
	om.turnsFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.turnsFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the active configuration as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTurns appends turn records to turns.csv.
func (om *OutputManager) WriteTurns(records []TurnRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}

	if !om.turnsHeaderWritten {
		if err := gocsv.Marshal(records, om.turnsFile); err != nil {
			return fmt.Errorf("writing turns: %w", err)
		}
		om.turnsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.turnsFile); err != nil {
			return fmt.Errorf("writing turns: %w", err)
		}
	}

	return nil
}

// WritePerf appends a perf sample to perf.csv.
func (om *OutputManager) WritePerf(p PerfStatsCSV) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{p}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.turnsFile != nil {
		if err := om.turnsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
