// Package analysis measures recorded orbit traces.
//
//   - [EstimatePeriod]: dominant period from the power spectrum of a trace
//   - [CrossingPeriod]: period from positive-going threshold crossings
//   - [AnalyticPeriod]: the exact period implied by a speed and orbit rate
//   - [PortraitToASCII]: top-down plot of orbit trajectories
//
// # Period Estimation
//
// Sample a body's x coordinate at a fixed step and compare:
//
//	est, err := analysis.EstimatePeriod(result.X("Earth"), dt)
//	want := analysis.AnalyticPeriod(2.98, orbit.DefaultOrbitRate)
package analysis
