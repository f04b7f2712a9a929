package integrators

import (
	"fmt"

	"github.com/ecosim/trophic/internal/dynamo"
)

// ExtinctionThreshold is the biomass density below which a species is
// treated as extinct between resumed segments.
const ExtinctionThreshold = 1e-10

// minStep is the floor for the adaptive step size; falling below it
// means the dynamics are stiffer than the scheme can resolve.
const minStep = 1e-14

// Driver advances a system over a nominal horizon with an adaptive
// stepper, recording every accepted step.
type Driver struct {
	integ dynamo.AdaptiveIntegrator
	tol   float64
}

func NewDriver(integ dynamo.AdaptiveIntegrator, tol float64) *Driver {
	return &Driver{integ: integ, tol: tol}
}

// Integrate advances sys from x0 over nSteps of nominal step size h,
// returning the full trajectory including adaptively inserted steps.
func (d *Driver) Integrate(sys dynamo.System, x0 dynamo.State, h float64, nSteps int) (*dynamo.Trajectory, error) {
	return d.integrate(sys, x0, h, nSteps, nil)
}

func (d *Driver) integrate(sys dynamo.System, x0 dynamo.State, h float64, nSteps int, extinct []bool) (*dynamo.Trajectory, error) {
	tEnd := float64(nSteps) * h
	tr := &dynamo.Trajectory{
		Times:  make([]float64, 0, nSteps+1),
		States: make([]dynamo.State, 0, nSteps+1),
	}

	x := x0.Clone()
	clampExtinct(x, extinct)
	t := 0.0
	dt := h

	tr.Times = append(tr.Times, t)
	tr.States = append(tr.States, x.Clone())

	for t < tEnd {
		if t+dt > tEnd {
			dt = tEnd - t
		}

		xNew, dtNext, ok := d.integ.TryStep(sys, x, t, dt, d.tol)
		if !ok {
			if dtNext < minStep {
				return nil, fmt.Errorf("t=%g dt=%g: %w", t, dtNext, dynamo.ErrStepTooSmall)
			}
			dt = dtNext
			continue
		}

		if !xNew.IsValid() {
			return nil, fmt.Errorf("t=%g: %w", t, dynamo.ErrInvalidState)
		}

		t += dt
		x = xNew
		clampExtinct(x, extinct)
		dt = dtNext

		tr.Times = append(tr.Times, t)
		tr.States = append(tr.States, x.Clone())
	}

	return tr, nil
}

// IntegrateSegments builds one long effective run from runs segments of
// runLen nominal steps each, without retaining every segment. After each
// segment any component below ExtinctionThreshold is forced to exactly 0
// and held there for all later segments; otherwise the segment's final
// state seeds the next. The last segment's trajectory is returned.
func (d *Driver) IntegrateSegments(sys dynamo.System, x0 dynamo.State, h float64, runLen, runs int) (*dynamo.Trajectory, error) {
	x := x0.Clone()
	extinct := make([]bool, len(x))

	var tr *dynamo.Trajectory
	for seg := 0; seg < runs; seg++ {
		var err error
		tr, err = d.integrate(sys, x, h, runLen, extinct)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", seg, err)
		}

		x = tr.Final().Clone()
		for i, v := range x {
			if v < ExtinctionThreshold {
				x[i] = 0
				extinct[i] = true
			}
		}
	}

	return tr, nil
}

// clampExtinct holds extinct components at exactly zero. A species,
// once extinct, cannot spontaneously reappear.
func clampExtinct(x dynamo.State, extinct []bool) {
	if extinct == nil {
		return
	}
	for i := range x {
		if extinct[i] {
			x[i] = 0
		}
	}
}
