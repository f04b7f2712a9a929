// Package foodweb provides the population dynamics models.
//
// Two topologies implement [dynamo.System]:
//
//   - [Chain]: 3-species food chain (basal, intermediate, top)
//   - [Web]: 10-species food web over a fixed diet structure
//
// Both share the generalized Hill-type functional response, whose shaping
// exponent q interpolates between a Type II (q=0) and Type III (q>0)
// response. [MapChain] and [MapWeb] translate ecological/allometric
// inputs into the numeric coefficients the models consume; the web mapper
// draws fresh random body-mass ratios on every call.
package foodweb
