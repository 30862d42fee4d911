package detect

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/lucasb-eyer/go-colorful"
)

// Point is a detected edge location in pixel coordinates. Coordinates are
// float64 because the scan offset can place an edge between pixel centers.
type Point struct {
	X float64
	Y float64
}

// Detector finds limb crossings by thresholded luminance scanning.
//
// The zero value is not useful; Threshold of 0 classifies every pixel as
// body and produces no transitions. Typical parameters for a dark-sky limb
// photograph are Threshold 10, Border 1, Offset 0.
type Detector struct {
	// Threshold is the luminance value (0-255) separating space from body.
	// Pixels at or above the threshold count as body.
	Threshold int

	// Border is the width in pixels of the frame margin to exclude from
	// scanning. Sensor vignetting and readout artifacts cluster there.
	Border int

	// Offset shifts each detected crossing along its scan axis, in pixels.
	// A transition between pixel i-1 and pixel i is reported at i + Offset.
	Offset float64

	// BlurSigma is the radius of a Gaussian prefilter applied before
	// scanning. Zero disables the prefilter.
	BlurSigma float64
}

// Detect scans img and returns the limb crossing points found.
//
// Both row and column scans are performed; a crossing found by both is
// reported once. The returned slice is empty (not nil) when no transitions
// exist, e.g. for a uniform frame.
func (d *Detector) Detect(img image.Image) []Point {
	if d.BlurSigma > 0 {
		img = blur.Gaussian(img, d.BlurSigma)
	}

	lum := luminanceGrid(img)
	height := len(lum)
	if height == 0 {
		return []Point{}
	}
	width := len(lum[0])

	threshold := float64(d.Threshold)
	border := d.Border
	if border < 0 {
		border = 0
	}

	seen := make(map[[2]int]struct{})
	points := []Point{}

	// Row scan: left-to-right transitions.
	for y := border; y < height-border; y++ {
		for x := border + 1; x < width-border; x++ {
			if crossing(lum[y][x-1], lum[y][x], threshold) {
				key := [2]int{x, y}
				if _, ok := seen[key]; !ok {
					seen[key] = struct{}{}
					points = append(points, Point{X: float64(x) + d.Offset, Y: float64(y)})
				}
			}
		}
	}

	// Column scan: top-to-bottom transitions.
	for x := border; x < width-border; x++ {
		for y := border + 1; y < height-border; y++ {
			if crossing(lum[y-1][x], lum[y][x], threshold) {
				key := [2]int{x, y}
				if _, ok := seen[key]; !ok {
					seen[key] = struct{}{}
					points = append(points, Point{X: float64(x), Y: float64(y) + d.Offset})
				}
			}
		}
	}

	return points
}

// crossing reports whether the space/body classification changes between two
// adjacent luminance samples.
func crossing(prev, cur, threshold float64) bool {
	return (prev < threshold) != (cur < threshold)
}

// luminanceGrid converts img to a [y][x] grid of perceptual luminance values
// scaled to 0-255. CIE L* from go-colorful is used rather than a plain RGB
// average so that dim atmosphere haze and dark ocean pixels order the same
// way they do to the eye.
func luminanceGrid(img image.Image) [][]float64 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	grid := make([][]float64, height)
	for y := 0; y < height; y++ {
		grid[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			c, ok := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
			if !ok {
				// Fully transparent pixel; reads as empty space.
				continue
			}
			l, _, _ := c.Lab()
			grid[y][x] = l * 255.0
		}
	}
	return grid
}
