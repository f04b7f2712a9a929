package sweep

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/ecosim/trophic/internal/analysis"
	"github.com/ecosim/trophic/internal/config"
	"github.com/ecosim/trophic/internal/dataset"
	"github.com/ecosim/trophic/internal/dynamo"
	"github.com/ecosim/trophic/internal/foodweb"
	"github.com/ecosim/trophic/internal/integrators"
)

// Progress is one sweep progress event, emitted after each completed
// q-value.
type Progress struct {
	Chunk int
	Q     float64
	Done  int
	Total int
}

// ChainResult holds the three per-species bifurcation tables of a chain
// sweep, each with columns (q, extremum).
type ChainResult struct {
	Basal        *dataset.Table
	Intermediate *dataset.Table
	Top          *dataset.Table
}

// WebResult holds the diversity table of a web sweep, with columns
// (q, diversity).
type WebResult struct {
	Diversity *dataset.Table
}

// Orchestrator partitions a q-range, dispatches chunks to workers, and
// merges partial tables after the end-of-sweep barrier. Workers fail
// fast: the first error cancels the sweep and is reported with its chunk
// index and q-value. This is deliberate; a silently skipped q-value
// would be invisible in the output tables.
type Orchestrator struct {
	cfg    *config.Sweep
	events chan<- Progress
}

func New(cfg *config.Sweep) *Orchestrator {
	return &Orchestrator{cfg: cfg}
}

// Notify directs progress events to ch. Sends never block; events are
// dropped when the receiver lags.
func (o *Orchestrator) Notify(ch chan<- Progress) { o.events = ch }

func (o *Orchestrator) emit(p Progress) {
	if o.events == nil {
		return
	}
	select {
	case o.events <- p:
	default:
	}
}

// RunChain sweeps the 3-species chain over the configured q-range.
func (o *Orchestrator) RunChain(ctx context.Context) (*ChainResult, error) {
	if err := o.cfg.Validate(false); err != nil {
		return nil, err
	}

	partials, err := o.run(ctx, false, func(q float64, rng *rand.Rand, drv *integrators.Driver) (*partial, error) {
		in := o.ecoInputs(q)
		params, err := foodweb.MapChain(in, o.cfg.R)
		if err != nil {
			return nil, err
		}

		x0 := dynamo.RandomState(3, 0.1, 1.0, rng)
		tr, err := drv.Integrate(foodweb.NewChain(params), x0, o.cfg.Steplength, o.cfg.TSLength)
		if err != nil {
			return nil, err
		}

		win := tr.Tail(o.cfg.AnalyzeTS)
		p := newChainPartial()
		for s := 0; s < 3; s++ {
			ex, err := analysis.Extrema(win.Component(s))
			if err != nil {
				return nil, err
			}
			for _, v := range analysis.Reduce(ex, o.cfg.UniqueOut, o.cfg.MaxOut, rng) {
				if err := p.tables[s].Append(q, v); err != nil {
					return nil, err
				}
			}
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	out := &ChainResult{
		Basal:        dataset.New("q", "extremum"),
		Intermediate: dataset.New("q", "extremum"),
		Top:          dataset.New("q", "extremum"),
	}
	for _, p := range partials {
		if err := out.Basal.Concat(p.tables[0]); err != nil {
			return nil, err
		}
		if err := out.Intermediate.Concat(p.tables[1]); err != nil {
			return nil, err
		}
		if err := out.Top.Concat(p.tables[2]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RunWeb sweeps the 10-species web, recording the surviving-species
// count per q-value. Body-mass ratios are redrawn for every q-value.
func (o *Orchestrator) RunWeb(ctx context.Context) (*WebResult, error) {
	if err := o.cfg.Validate(true); err != nil {
		return nil, err
	}

	top := foodweb.WebTopology()

	partials, err := o.run(ctx, true, func(q float64, rng *rand.Rand, drv *integrators.Driver) (*partial, error) {
		in := o.ecoInputs(q)
		params, err := foodweb.MapWeb(in, top, o.cfg.RRange[0], o.cfg.RRange[1], rng)
		if err != nil {
			return nil, err
		}

		x0 := dynamo.RandomState(foodweb.WebSize, 0.1, 1.0, rng)
		tr, err := drv.IntegrateSegments(foodweb.NewWeb(top, params), x0, o.cfg.Steplength, o.cfg.TSRunLength, o.cfg.TSRuns)
		if err != nil {
			return nil, err
		}

		p := newWebPartial()
		if err := p.tables[0].Append(q, float64(tr.Final().Alive())); err != nil {
			return nil, err
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	out := &WebResult{Diversity: dataset.New("q", "diversity")}
	for _, p := range partials {
		if err := out.Diversity.Concat(p.tables[0]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// partial accumulates one worker's rows for one or more tables.
type partial struct {
	tables []*dataset.Table
}

func newChainPartial() *partial {
	return &partial{tables: []*dataset.Table{
		dataset.New("q", "extremum"),
		dataset.New("q", "extremum"),
		dataset.New("q", "extremum"),
	}}
}

func newWebPartial() *partial {
	return &partial{tables: []*dataset.Table{dataset.New("q", "diversity")}}
}

func (p *partial) concat(other *partial) error {
	for i := range p.tables {
		if err := p.tables[i].Concat(other.tables[i]); err != nil {
			return err
		}
	}
	return nil
}

// run partitions the q-range and executes perQ for every value, one
// goroutine per chunk. Each worker is self-contained: it builds its own
// integrator driver and rng, so no mutable state is shared. Partials are
// merged in chunk order after the barrier, which keeps fixed-seed runs
// byte-identical while leaving rows unordered in q.
func (o *Orchestrator) run(ctx context.Context, web bool, perQ func(q float64, rng *rand.Rand, drv *integrators.Driver) (*partial, error)) ([]*partial, error) {
	qs := o.cfg.Qs()
	chunks := Partition(qs, o.cfg.Workers(), rand.New(rand.NewSource(o.cfg.Seed)))
	tol := o.cfg.Tol(web)

	partials := make([]*partial, len(chunks))
	done := 0
	progress := make(chan Progress, len(qs))

	g, ctx := errgroup.WithContext(ctx)
	for ci, chunk := range chunks {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(o.cfg.Seed + int64(ci) + 1))
			drv := integrators.NewDriver(integrators.NewRK45(), tol)

			var acc *partial
			for _, q := range chunk {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				p, err := perQ(q, rng, drv)
				if err != nil {
					return fmt.Errorf("chunk %d, q=%g: %w", ci, q, err)
				}
				if acc == nil {
					acc = p
				} else if err := acc.concat(p); err != nil {
					return fmt.Errorf("chunk %d, q=%g: %w", ci, q, err)
				}
				progress <- Progress{Chunk: ci, Q: q, Total: len(qs)}
			}
			partials[ci] = acc
			return nil
		})
	}

	// drain progress while workers run, forwarding to the observer
	waitErr := make(chan error, 1)
	go func() {
		waitErr <- g.Wait()
		close(progress)
	}()
	for p := range progress {
		done++
		p.Done = done
		o.emit(p)
	}
	if err := <-waitErr; err != nil {
		return nil, err
	}

	out := make([]*partial, 0, len(partials))
	for _, p := range partials {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (o *Orchestrator) ecoInputs(q float64) foodweb.EcoInputs {
	return foodweb.EcoInputs{
		A: o.cfg.A, B: o.cfg.B, E: o.cfg.E,
		Y: o.cfg.Y, N0: o.cfg.N0, Q: q,
	}
}
