// Package detect extracts horizon (limb) edge points from a photograph of an
// illuminated planetary body against dark space.
//
// The detector is a threshold scanner: pixels are reduced to perceptual
// luminance, and every transition between below-threshold (space) and
// at-or-above-threshold (body) along a row or column scan is recorded as an
// edge point. An optional Gaussian prefilter suppresses sensor noise before
// scanning.
//
// This is intentionally simple. The downstream range solver performs its own
// outlier rejection, so the detector favors recall over precision: every
// plausible limb crossing is reported.
package detect
