package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/ecosim/trophic/internal/dynamo"
)

// Default ecological inputs (allometric scaling of consumer metabolism).
const (
	DefaultA          = 0.2227
	DefaultB          = -0.25
	DefaultE          = 1.0
	DefaultY          = 8.0
	DefaultN0         = 0.5
	DefaultR          = 100.0
	DefaultSteplength = 0.5
	DefaultTolChain   = 1e-8
	DefaultTolWeb     = 1e-12
)

// WorkerFraction of the available CPUs used for sweep workers by
// default, so the machine stays responsive during long sweeps.
const WorkerFraction = 0.75

// Sweep holds all configuration for one q-sweep.
type Sweep struct {
	QMin   float64   `yaml:"qmin"`
	QMax   float64   `yaml:"qmax"`
	QSteps int       `yaml:"qsteps"`
	QRange []float64 `yaml:"qrange"` // explicit sweep points; overrides qmin/qmax/qsteps

	TSLength    int     `yaml:"ts_length"`     // chain: total integration steps
	TSRuns      int     `yaml:"ts_runs"`       // web: number of resumed segments
	TSRunLength int     `yaml:"ts_run_length"` // web: steps per segment
	Steplength  float64 `yaml:"steplength"`    // nominal step size
	AnalyzeTS   float64 `yaml:"analyze_ts"`    // trailing fraction kept for analysis, (0,1]
	Tolerance   float64 `yaml:"tolerance"`     // adaptive error tolerance

	UniqueOut bool `yaml:"unique_out"` // dedupe extrema per q-value
	MaxOut    int  `yaml:"max_out"`    // cap on retained extrema per q-value, 0 = unbounded

	OutputPath string `yaml:"output_path"`
	NoC        int    `yaml:"noC"` // worker count, 0 = WorkerFraction of CPUs
	Seed       int64  `yaml:"seed"`

	// Ecological/allometric inputs.
	A      float64    `yaml:"a"`
	B      float64    `yaml:"b"`
	E      float64    `yaml:"e"`
	Y      float64    `yaml:"y"`
	N0     float64    `yaml:"n0"`
	R      float64    `yaml:"r"`      // chain: top:basal body-mass ratio
	RRange [2]float64 `yaml:"rrange"` // web: [min, max] per-consumer draw
}

func Default() *Sweep {
	return &Sweep{
		QMin:        0,
		QMax:        0.2,
		QSteps:      41,
		TSLength:    20000,
		TSRuns:      10,
		TSRunLength: 2000,
		Steplength:  DefaultSteplength,
		AnalyzeTS:   0.05,
		UniqueOut:   true,
		MaxOut:      600,
		OutputPath:  "out",
		A:           DefaultA,
		B:           DefaultB,
		E:           DefaultE,
		Y:           DefaultY,
		N0:          DefaultN0,
		R:           DefaultR,
		RRange:      [2]float64{10, 100},
	}
}

func Load(path string) (*Sweep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Sweep) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field eagerly, naming the offending parameter,
// before any simulation work is dispatched.
func (c *Sweep) Validate(web bool) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf(format+": %w", append(args, dynamo.ErrConfig)...)
	}

	if len(c.QRange) == 0 {
		if c.QSteps < 1 {
			return fail("qsteps must be at least 1, got %d", c.QSteps)
		}
		if c.QMax < c.QMin {
			return fail("qmax %g below qmin %g", c.QMax, c.QMin)
		}
	}
	if c.Steplength <= 0 {
		return fail("steplength must be positive, got %g", c.Steplength)
	}
	if c.AnalyzeTS <= 0 || c.AnalyzeTS > 1 {
		return fail("analyze_ts must be in (0, 1], got %g", c.AnalyzeTS)
	}
	if c.MaxOut < 0 {
		return fail("max_out must be non-negative, got %d", c.MaxOut)
	}
	if c.A <= 0 {
		return fail("allometric constant a must be positive, got %g", c.A)
	}
	if c.N0 <= 0 {
		return fail("half-saturation n0 must be positive, got %g", c.N0)
	}

	if web {
		if c.TSRuns < 1 || c.TSRunLength < 1 {
			return fail("ts_runs and ts_run_length must be at least 1, got %d and %d", c.TSRuns, c.TSRunLength)
		}
		if c.RRange[0] <= 0 || c.RRange[0] >= c.RRange[1] {
			return fail("rrange [%g, %g] must satisfy 0 < min < max", c.RRange[0], c.RRange[1])
		}
	} else {
		if c.TSLength < 1 {
			return fail("ts_length must be at least 1, got %d", c.TSLength)
		}
		if c.R <= 0 {
			return fail("body-mass ratio r must be positive, got %g", c.R)
		}
	}

	return nil
}

// Qs expands the configured sweep points, in requested order.
func (c *Sweep) Qs() []float64 {
	if len(c.QRange) > 0 {
		qs := make([]float64, len(c.QRange))
		copy(qs, c.QRange)
		return qs
	}
	qs := make([]float64, c.QSteps)
	if c.QSteps == 1 {
		qs[0] = c.QMin
		return qs
	}
	step := (c.QMax - c.QMin) / float64(c.QSteps-1)
	for i := range qs {
		qs[i] = c.QMin + float64(i)*step
	}
	return qs
}

// Workers resolves the worker count: NoC when set, otherwise
// WorkerFraction of the available CPUs, at least 1.
func (c *Sweep) Workers() int {
	if c.NoC > 0 {
		return c.NoC
	}
	n := int(WorkerFraction * float64(runtime.GOMAXPROCS(0)))
	if n < 1 {
		n = 1
	}
	return n
}

// Tol resolves the adaptive tolerance, defaulting per topology. The web
// default is tighter because its 10-dimensional dynamics accumulate
// error faster.
func (c *Sweep) Tol(web bool) float64 {
	if c.Tolerance > 0 {
		return c.Tolerance
	}
	if web {
		return DefaultTolWeb
	}
	return DefaultTolChain
}
