package foodweb

import "github.com/ecosim/trophic/internal/dynamo"

// Chain is the 3-species food chain: basal resource, intermediate
// consumer, top predator.
type Chain struct {
	p ChainParams
}

func NewChain(p ChainParams) *Chain { return &Chain{p: p} }

func (c *Chain) Dim() int { return 3 }

// Derive computes the chain derivatives. The basal species grows
// logistically and loses biomass to the intermediate consumer; each
// consumer gains assimilated biomass from its resource and pays its
// metabolic loss.
func (c *Chain) Derive(s dynamo.State, _ float64) dynamo.State {
	b, i, p := s[0], s[1], s[2]

	fi := response(b, c.p.YI, c.p.N0, c.p.Q)
	fp := response(i, c.p.YP, c.p.N0, c.p.Q)

	return dynamo.State{
		b*(1-b) - fi*i,
		c.p.E*fi*i - c.p.XI*i - fp*p,
		c.p.E*fp*p - c.p.XP*p,
	}
}
