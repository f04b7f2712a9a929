package dynamo

import (
	"math"
	"math/rand"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Alive counts the components strictly above zero. Clamped (extinct)
// components count as dead.
func (s State) Alive() int {
	n := 0
	for _, v := range s {
		if v > 0 {
			n++
		}
	}
	return n
}

// RandomState draws each component independently from U(lo, hi).
func RandomState(n int, lo, hi float64, rng *rand.Rand) State {
	s := make(State, n)
	for i := range s {
		s[i] = lo + (hi-lo)*rng.Float64()
	}
	return s
}

// System is an autonomous ODE system dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// Integrator advances a system by one accepted step.
type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveIntegrator additionally proposes a step and reports whether the
// local error estimate met the tolerance, together with the next step size.
type AdaptiveIntegrator interface {
	Integrator
	TryStep(sys System, x State, t, dt, tol float64) (State, float64, bool)
}

// Trajectory is an ordered (time, state) series produced by one
// integration call, including any adaptively inserted steps.
type Trajectory struct {
	Times  []float64
	States []State
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// Duration is the simulated time span covered by the trajectory.
func (tr *Trajectory) Duration() float64 {
	if len(tr.Times) == 0 {
		return 0
	}
	return tr.Times[len(tr.Times)-1] - tr.Times[0]
}

// Final returns the last recorded state, or nil for an empty trajectory.
func (tr *Trajectory) Final() State {
	if len(tr.States) == 0 {
		return nil
	}
	return tr.States[len(tr.States)-1]
}

// Component extracts one state variable as a flat series.
func (tr *Trajectory) Component(i int) []float64 {
	out := make([]float64, len(tr.States))
	for k, s := range tr.States {
		out[k] = s[i]
	}
	return out
}

// Tail returns the trailing fraction frac of the trajectory's simulated
// time. frac must be in (0, 1]; frac = 1 returns the trajectory itself.
func (tr *Trajectory) Tail(frac float64) *Trajectory {
	if frac >= 1 || tr.Len() == 0 {
		return tr
	}
	cutoff := tr.Times[len(tr.Times)-1] - frac*tr.Duration()
	lo := 0
	for lo < len(tr.Times) && tr.Times[lo] < cutoff {
		lo++
	}
	return &Trajectory{Times: tr.Times[lo:], States: tr.States[lo:]}
}
