package foodweb

import "github.com/ecosim/trophic/internal/dynamo"

// Web is the 10-species food web model over the fixed topology.
type Web struct {
	top *Topology
	p   WebParams
}

func NewWeb(top *Topology, p WebParams) *Web { return &Web{top: top, p: p} }

func (w *Web) Dim() int { return WebSize }

// Derive computes the web derivatives. Each consumption term uses the
// generalized functional response weighted by the consumer's diet
// fraction; basal species grow logistically and every consumer pays its
// own metabolic loss.
func (w *Web) Derive(s dynamo.State, _ float64) dynamo.State {
	dx := make(dynamo.State, WebSize)

	for i := 0; i < WebSize; i++ {
		n := s[i]

		if w.top.Basal(i) {
			dx[i] = n * (1 - n)
		} else {
			gain := 0.0
			for _, l := range w.top.Diet[i] {
				gain += l.Fraction * response(s[l.Resource], w.p.Fmax[i], w.p.N0, w.p.Q)
			}
			dx[i] = w.p.E*gain*n - w.p.X[i]*n
		}

		// predation losses
		for _, c := range w.top.Predators(i) {
			for _, l := range w.top.Diet[c] {
				if l.Resource == i {
					dx[i] -= l.Fraction * response(n, w.p.Fmax[c], w.p.N0, w.p.Q) * s[c]
				}
			}
		}
	}

	return dx
}
