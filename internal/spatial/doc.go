// Package spatial implements the geometric half of the pipeline: a pinhole
// camera model and an iterative spherical distance determination that
// estimates the range to a spherical body from the limb points seen in a
// single frame.
//
// # Geometry
//
// Every limb pixel back-projects to a unit ray from the camera. For a sphere
// of radius R at distance d, all limb rays lie on a cone around the direction
// to the body center with half-angle rho, where sin(rho) = R/d. Writing
// w = c/cos(rho) for the center direction c, each limb ray u satisfies
// u·w = 1, which is a linear system in w. The solver fits w by weighted
// least squares, reads cos(rho) off 1/|w|, and converts the cone angle to a
// range.
//
// # Iteration
//
// Real limb points carry detector noise and the occasional terminator or
// cloud-band false positive. After each fit the solver reweights points by
// their cone residual and discards gross outliers, repeating until the range
// estimate stabilizes. A configurable number of refresh passes restarts from
// the full point set so that points discarded by an early bad fit can
// re-enter.
package spatial
