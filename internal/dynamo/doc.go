// Package dynamo provides core simulation primitives for population
// dynamics models.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector of species biomass densities
//   - [System]: interface for autonomous ODE systems (dX/dt = f(X, t))
//   - [Integrator] / [AdaptiveIntegrator]: numerical stepper interfaces
//   - [Trajectory]: (time, state) series produced by one integration call
//
// # Example
//
//	sys := foodweb.NewChain(params)
//	integ := integrators.NewRK45()
//	tr, _ := integrators.Integrate(sys, x0, h, steps, tol)
//
// # Thread Safety
//
// Systems and integrators are NOT thread-safe. Parallel sweeps give each
// worker its own instances; see the sweep package.
package dynamo
