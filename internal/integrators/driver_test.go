package integrators

import (
	"math"
	"testing"

	"github.com/ecosim/trophic/internal/dynamo"
)

// dying drives every component toward extinction at a fixed rate.
type dying struct{ n int }

func (d dying) Dim() int { return d.n }
func (d dying) Derive(x dynamo.State, _ float64) dynamo.State {
	dx := make(dynamo.State, d.n)
	for i, v := range x {
		dx[i] = -5 * v
	}
	return dx
}

// reviving pushes components back up, extinct or not.
type reviving struct{ n int }

func (r reviving) Dim() int { return r.n }
func (r reviving) Derive(x dynamo.State, _ float64) dynamo.State {
	dx := make(dynamo.State, r.n)
	for i := range x {
		dx[i] = 0.5
	}
	return dx
}

func TestIntegrateCoversHorizon(t *testing.T) {
	d := NewDriver(NewRK45(), 1e-8)

	tr, err := d.Integrate(logistic{}, dynamo.State{0.2}, 0.5, 100)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	if tr.Len() < 2 {
		t.Fatal("trajectory too short")
	}
	if math.Abs(tr.Times[len(tr.Times)-1]-50.0) > 1e-9 {
		t.Errorf("expected final time 50, got %g", tr.Times[len(tr.Times)-1])
	}
	for i := 1; i < tr.Len(); i++ {
		if tr.Times[i] <= tr.Times[i-1] {
			t.Fatalf("times not strictly increasing at %d", i)
		}
	}
}

func TestIntegrateConvergesToCapacity(t *testing.T) {
	d := NewDriver(NewRK45(), 1e-8)

	tr, err := d.Integrate(logistic{}, dynamo.State{0.2}, 0.5, 100)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	if math.Abs(tr.Final()[0]-1.0) > 1e-6 {
		t.Errorf("logistic should settle at carrying capacity, got %g", tr.Final()[0])
	}
}

func TestExtinctMaskHoldsAgainstGrowth(t *testing.T) {
	d := NewDriver(NewRK45(), 1e-8)

	// the reviving dynamics would resurrect component 0 if the mask leaked
	tr, err := d.integrate(reviving{n: 2}, dynamo.State{0, 0.5}, 0.5, 20, []bool{true, false})
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	for k, s := range tr.States {
		if s[0] != 0 {
			t.Fatalf("step %d: extinct component must stay exactly 0, got %g", k, s[0])
		}
	}
	if tr.Final()[1] <= 0.5 {
		t.Errorf("live component should keep growing, got %g", tr.Final()[1])
	}
}

func TestSegmentsClampAtThreshold(t *testing.T) {
	d := NewDriver(NewRK45(), 1e-8)

	tr, err := d.IntegrateSegments(dying{n: 3}, dynamo.State{0.5, 0.5, 0.5}, 0.5, 50, 4)
	if err != nil {
		t.Fatalf("segments failed: %v", err)
	}

	// decay at rate 5 over 100 time units is far below 1e-10
	for i, v := range tr.Final() {
		if v != 0 {
			t.Errorf("component %d: expected exact 0 after extinction, got %g", i, v)
		}
	}
}

func TestSegmentsResumeFromFinalState(t *testing.T) {
	d := NewDriver(NewRK45(), 1e-8)

	one, err := d.Integrate(logistic{}, dynamo.State{0.2}, 0.5, 100)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	seg, err := d.IntegrateSegments(logistic{}, dynamo.State{0.2}, 0.5, 50, 2)
	if err != nil {
		t.Fatalf("segments failed: %v", err)
	}

	// same total horizon, same endpoint (both converged)
	if math.Abs(one.Final()[0]-seg.Final()[0]) > 1e-6 {
		t.Errorf("resumed run should match single run: %g vs %g", one.Final()[0], seg.Final()[0])
	}
}

func TestTrajectoryTail(t *testing.T) {
	d := NewDriver(NewRK45(), 1e-8)

	tr, err := d.Integrate(logistic{}, dynamo.State{0.2}, 0.5, 100)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	tail := tr.Tail(0.05)
	if tail.Len() == 0 || tail.Len() >= tr.Len() {
		t.Fatalf("tail should be a proper suffix: %d of %d", tail.Len(), tr.Len())
	}
	cutoff := tr.Times[len(tr.Times)-1] - 0.05*tr.Duration()
	if tail.Times[0] < cutoff {
		t.Errorf("tail starts at %g, before cutoff %g", tail.Times[0], cutoff)
	}
}
