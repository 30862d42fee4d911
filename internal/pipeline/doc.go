// Package pipeline runs the end-to-end distance determination and formats
// its outcome.
//
// A run is a single synchronous sequence: load image, detect limb edges,
// build the camera model, solve for range, compare against ground truth.
// Every failure mode is collapsed into the returned RunResult rather than
// propagated; Run never returns an error and never panics. The result is
// consumed once, by the text writer or the JSON writer.
package pipeline
