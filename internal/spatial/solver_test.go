package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const earthRadius = 6378137.0

// testSolver mirrors the harness parameter set.
func testSolver(cam Camera) *Solver {
	return NewSolver(earthRadius, cam, 2, 1, 10, 1.1, 2, 4)
}

// horizonPixels images n points of the horizon circle seen from distance d
// along the given view axis.
func horizonPixels(cam Camera, axis Vec3, d float64, n int) []Pixel {
	axis = axis.Unit()
	sinRho := earthRadius / d
	cosRho := math.Sqrt(1 - sinRho*sinRho)

	// Orthonormal basis perpendicular to the axis.
	ref := Vec3{X: 1, Y: 0, Z: 0}
	if math.Abs(axis.X) > 0.9 {
		ref = Vec3{X: 0, Y: 1, Z: 0}
	}
	e1 := axis.Cross(ref).Unit()
	e2 := axis.Cross(e1).Unit()

	pixels := make([]Pixel, 0, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		rim := e1.Scale(math.Cos(theta) * sinRho).Add(e2.Scale(math.Sin(theta) * sinRho))
		u := axis.Scale(cosRho).Add(rim)
		pixels = append(pixels, cam.Project(u))
	}
	return pixels
}

func TestSolve_NadirView(t *testing.T) {
	cam := NewCamera(0.01, 1e-5, 1000, 1000)
	trueDist := 3 * earthRadius
	pixels := horizonPixels(cam, Vec3{Z: 1}, trueDist, 64)

	pos, err := testSolver(cam).Solve(pixels)
	require.NoError(t, err)

	assert.InDelta(t, trueDist, pos.Norm(), 1.0)

	// The recovered center direction is the view axis.
	c := pos.Unit()
	assert.InDelta(t, 0, c.X, 1e-6)
	assert.InDelta(t, 0, c.Y, 1e-6)
	assert.InDelta(t, 1, c.Z, 1e-6)
}

func TestSolve_TiltedView(t *testing.T) {
	cam := NewCamera(0.01, 1e-5, 1000, 1000)
	axis := Vec3{X: 0.15, Y: -0.1, Z: 1}
	trueDist := 4 * earthRadius
	pixels := horizonPixels(cam, axis, trueDist, 48)

	pos, err := testSolver(cam).Solve(pixels)
	require.NoError(t, err)

	assert.InDelta(t, trueDist, pos.Norm(), 1.0)

	c := pos.Unit()
	a := axis.Unit()
	assert.InDelta(t, a.X, c.X, 1e-6)
	assert.InDelta(t, a.Y, c.Y, 1e-6)
	assert.InDelta(t, a.Z, c.Z, 1e-6)
}

func TestSolve_RejectsOutliers(t *testing.T) {
	cam := NewCamera(0.01, 1e-5, 1000, 1000)
	trueDist := 3 * earthRadius
	pixels := horizonPixels(cam, Vec3{Z: 1}, trueDist, 64)

	// Cloud-band style false positives well inside the disk.
	pixels = append(pixels,
		Pixel{X: 500, Y: 500},
		Pixel{X: 520, Y: 480},
		Pixel{X: 470, Y: 530},
	)

	pos, err := testSolver(cam).Solve(pixels)
	require.NoError(t, err)

	relErr := math.Abs(pos.Norm()-trueDist) / trueDist
	assert.Less(t, relErr, 1e-3, "distance %.0f m vs true %.0f m", pos.Norm(), trueDist)
}

func TestSolve_TooFewPoints(t *testing.T) {
	cam := NewCamera(0.01, 1e-5, 1000, 1000)

	_, err := testSolver(cam).Solve([]Pixel{{X: 1, Y: 1}, {X: 2, Y: 2}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestSolve_DegenerateInput(t *testing.T) {
	cam := NewCamera(0.01, 1e-5, 1000, 1000)

	// Identical points cannot constrain a cone.
	_, err := testSolver(cam).Solve([]Pixel{
		{X: 300, Y: 300},
		{X: 300, Y: 300},
		{X: 300, Y: 300},
	})
	require.Error(t, err)
}
