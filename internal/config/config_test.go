package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecosim/trophic/internal/dynamo"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate(false))
	require.NoError(t, cfg.Validate(true))
}

func TestValidateNamesOffendingField(t *testing.T) {
	tests := []struct {
		name  string
		web   bool
		mut   func(*Sweep)
		wants string
	}{
		{"analyze_ts zero", false, func(c *Sweep) { c.AnalyzeTS = 0 }, "analyze_ts"},
		{"analyze_ts above one", false, func(c *Sweep) { c.AnalyzeTS = 1.5 }, "analyze_ts"},
		{"negative steplength", false, func(c *Sweep) { c.Steplength = -0.5 }, "steplength"},
		{"zero n0", false, func(c *Sweep) { c.N0 = 0 }, "n0"},
		{"zero a", false, func(c *Sweep) { c.A = 0 }, "a"},
		{"qmax below qmin", false, func(c *Sweep) { c.QMin, c.QMax = 0.2, 0.1 }, "qmax"},
		{"zero ts_length", false, func(c *Sweep) { c.TSLength = 0 }, "ts_length"},
		{"negative r", false, func(c *Sweep) { c.R = -1 }, "r"},
		{"rrange inverted", true, func(c *Sweep) { c.RRange = [2]float64{100, 10} }, "rrange"},
		{"rrange non-positive", true, func(c *Sweep) { c.RRange = [2]float64{0, 10} }, "rrange"},
		{"zero ts_runs", true, func(c *Sweep) { c.TSRuns = 0 }, "ts_runs"},
		{"negative max_out", false, func(c *Sweep) { c.MaxOut = -1 }, "max_out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(cfg)
			err := cfg.Validate(tt.web)
			require.ErrorIs(t, err, dynamo.ErrConfig)
			require.Contains(t, err.Error(), tt.wants, "message must name the parameter")
		})
	}
}

func TestQsExplicitRangeWins(t *testing.T) {
	cfg := Default()
	cfg.QRange = []float64{0, 0.05, 0.2}
	cfg.QSteps = 100

	require.Equal(t, []float64{0, 0.05, 0.2}, cfg.Qs())
}

func TestQsLinearSpacing(t *testing.T) {
	cfg := Default()
	cfg.QMin, cfg.QMax, cfg.QSteps = 0, 0.2, 5

	qs := cfg.Qs()
	require.Len(t, qs, 5)
	require.Equal(t, 0.0, qs[0])
	require.Equal(t, 0.2, qs[4])
	require.InDelta(t, 0.05, qs[1]-qs[0], 1e-12)
}

func TestQsSinglePoint(t *testing.T) {
	cfg := Default()
	cfg.QMin, cfg.QMax, cfg.QSteps = 0.07, 0.2, 1

	require.Equal(t, []float64{0.07}, cfg.Qs())
}

func TestWorkersExplicitOverride(t *testing.T) {
	cfg := Default()
	cfg.NoC = 3
	require.Equal(t, 3, cfg.Workers())

	cfg.NoC = 0
	require.GreaterOrEqual(t, cfg.Workers(), 1, "at least one worker")
}

func TestTolDefaultsPerTopology(t *testing.T) {
	cfg := Default()
	require.Equal(t, DefaultTolChain, cfg.Tol(false))
	require.Equal(t, DefaultTolWeb, cfg.Tol(true))

	cfg.Tolerance = 1e-6
	require.Equal(t, 1e-6, cfg.Tol(false))
	require.Equal(t, 1e-6, cfg.Tol(true))
}

func TestLoadSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.QSteps = 17
	cfg.QRange = []float64{0, 0.05, 0.1}
	cfg.RRange = [2]float64{5, 50}
	cfg.OutputPath = "results"

	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
