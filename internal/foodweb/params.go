package foodweb

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ecosim/trophic/internal/dynamo"
)

// EcoInputs are the ecological/allometric inputs shared by both models.
type EcoInputs struct {
	A  float64 // allometric constant
	B  float64 // allometric exponent
	E  float64 // assimilation efficiency
	Y  float64 // max feeding rate relative to metabolic rate
	N0 float64 // half-saturation density
	Q  float64 // functional-response shaping exponent
}

// ChainParams are the numeric coefficients consumed by the Chain model.
type ChainParams struct {
	XI, XP float64 // metabolic rates (intermediate, top)
	YI, YP float64 // max feeding rates (intermediate, top)
	E      float64
	N0     float64
	Q      float64
}

// WebParams are the numeric coefficients consumed by the Web model.
// X and Fmax are zero for basal species.
type WebParams struct {
	X    [WebSize]float64
	Fmax [WebSize]float64
	E    float64
	N0   float64
	Q    float64
}

func (in EcoInputs) validate() error {
	if in.A <= 0 {
		return fmt.Errorf("allometric constant a must be positive, got %g: %w", in.A, dynamo.ErrConfig)
	}
	if in.N0 <= 0 {
		return fmt.Errorf("half-saturation n0 must be positive, got %g: %w", in.N0, dynamo.ErrConfig)
	}
	return nil
}

// MapChain converts ecological inputs and the top:basal body-mass ratio r
// into chain coefficients. The intermediate consumer's metabolic rate is
// a*r^b and the top predator's a*r^2b, since the top:intermediate ratio
// compounds; max feeding rates are y times the metabolic rates.
func MapChain(in EcoInputs, r float64) (ChainParams, error) {
	if err := in.validate(); err != nil {
		return ChainParams{}, err
	}
	if r <= 0 {
		return ChainParams{}, fmt.Errorf("body-mass ratio must be positive, got %g: %w", r, dynamo.ErrConfig)
	}

	xi := in.A * math.Pow(r, in.B)
	xp := in.A * math.Pow(r, 2*in.B)

	return ChainParams{
		XI: xi, XP: xp,
		YI: in.Y * xi, YP: in.Y * xp,
		E: in.E, N0: in.N0, Q: in.Q,
	}, nil
}

// MapWeb derives web coefficients from ecological inputs plus a fresh
// random body-mass draw per consumer: each consumer's ratio is
// U(rmin, rmax)^(level-1), weighted by its trophic level. Every call
// consumes fresh randomness, so callers must map once per trajectory run.
func MapWeb(in EcoInputs, top *Topology, rmin, rmax float64, rng *rand.Rand) (WebParams, error) {
	if err := in.validate(); err != nil {
		return WebParams{}, err
	}
	if rmin <= 0 || rmin >= rmax {
		return WebParams{}, fmt.Errorf("body-mass range [%g, %g] must satisfy 0 < min < max: %w", rmin, rmax, dynamo.ErrConfig)
	}

	p := WebParams{E: in.E, N0: in.N0, Q: in.Q}
	for i := 0; i < WebSize; i++ {
		if top.Basal(i) {
			continue
		}
		u := rmin + (rmax-rmin)*rng.Float64()
		ratio := math.Pow(u, top.Levels[i]-1)
		p.X[i] = in.A * math.Pow(ratio, in.B)
		p.Fmax[i] = in.Y * p.X[i]
	}
	return p, nil
}
