package spatial

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// minLimbPoints is the smallest point set that constrains the cone fit.
const minLimbPoints = 3

var (
	// ErrTooFewPoints is returned when the limb point set cannot constrain
	// the three cone parameters.
	ErrTooFewPoints = errors.New("need at least 3 limb points")

	// ErrDegenerateGeometry is returned when the fitted cone does not
	// correspond to a sphere in front of the camera, e.g. when the points
	// are collinear or the fit opens wider than a hemisphere.
	ErrDegenerateGeometry = errors.New("limb geometry does not subtend a sphere")
)

// Solver estimates the position of a spherical body's center from limb
// points. All tunables are fixed at construction; Solve may be called
// repeatedly and concurrently.
type Solver struct {
	radius    float64
	camera    Camera
	iters     int
	refreshes int
	distTol   float64
	discrim   float64
	pdfOrder  float64
	lossOrder float64
}

// NewSolver builds a solver for a body of the given radius in meters.
//
// Parameters:
//   - camera: the pinhole model the limb points were imaged with.
//   - iterations: reweighting passes per refresh. Noise-free input converges
//     on the first pass regardless of this value.
//   - refreshes: outer passes that restart from the full point set, letting
//     points discarded by an early bad fit re-enter.
//   - distanceTolerance: range change in meters below which iteration stops.
//   - discriminatorRatio: points whose cone residual exceeds this multiple of
//     the median residual are discarded. Values <= 0 disable discarding.
//   - pdfOrder: exponent of the residual reweighting kernel; 2 gives
//     Cauchy-style weights.
//   - radiusLossOrder: exponent of the residual loss used to pick the best
//     estimate across refreshes.
func NewSolver(radius float64, camera Camera, iterations, refreshes int,
	distanceTolerance, discriminatorRatio float64, pdfOrder, radiusLossOrder int) *Solver {
	if iterations < 1 {
		iterations = 1
	}
	if refreshes < 1 {
		refreshes = 1
	}
	return &Solver{
		radius:    radius,
		camera:    camera,
		iters:     iterations,
		refreshes: refreshes,
		distTol:   distanceTolerance,
		discrim:   discriminatorRatio,
		pdfOrder:  float64(pdfOrder),
		lossOrder: float64(radiusLossOrder),
	}
}

// Radius returns the body radius the solver was built for.
func (s *Solver) Radius() float64 {
	return s.radius
}

// estimate is one converged fit: the cone vector w, the derived position,
// and the loss used to rank it against other refreshes.
type estimate struct {
	w    Vec3
	pos  Vec3
	loss float64
}

// Solve runs the iterative fit and returns the body center position in the
// camera frame. The returned vector's magnitude is the camera-to-center
// range in meters.
func (s *Solver) Solve(points []Pixel) (Vec3, error) {
	if len(points) < minLimbPoints {
		return Vec3{}, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}

	rays := make([]Vec3, len(points))
	for i, p := range points {
		rays[i] = s.camera.Ray(p)
	}

	weights := make([]float64, len(rays))
	for i := range weights {
		weights[i] = 1
	}

	var best *estimate
	for refresh := 0; refresh < s.refreshes; refresh++ {
		est, err := s.converge(rays, weights)
		if err != nil {
			if best != nil {
				break
			}
			return Vec3{}, err
		}
		if best == nil || est.loss < best.loss {
			best = est
		}
		// Seed the next refresh: weights for the full set under the best
		// fit so far.
		res := coneResiduals(rays, best.w)
		s.reweight(weights, res)
	}

	return best.pos, nil
}

// converge runs the inner reweight-and-discard loop until the range estimate
// moves less than the distance tolerance or the iteration budget runs out.
func (s *Solver) converge(rays []Vec3, seedWeights []float64) (*estimate, error) {
	active := make([]int, len(rays))
	for i := range active {
		active[i] = i
	}
	weights := make([]float64, len(seedWeights))
	copy(weights, seedWeights)

	var (
		w    Vec3
		dist float64
		res  []float64
	)
	prevDist := math.Inf(1)

	for iter := 0; iter < s.iters; iter++ {
		var err error
		w, err = fitCone(rays, active, weights)
		if err != nil {
			return nil, err
		}

		normW := w.Norm()
		if normW <= 1 {
			return nil, ErrDegenerateGeometry
		}
		cosRho := 1 / normW
		sinRho := math.Sqrt(1 - cosRho*cosRho)
		dist = s.radius / sinRho

		res = coneResiduals(rays, w)
		if math.Abs(dist-prevDist) < s.distTol {
			break
		}
		prevDist = dist

		s.reweight(weights, res)
		active = s.discriminate(active, res)
	}

	center := w.Unit()
	return &estimate{
		w:    w,
		pos:  center.Scale(dist),
		loss: s.loss(res, weights),
	}, nil
}

// fitCone solves u_i . w = 1 for w over the active rays by weighted least
// squares on the normal of the ray matrix.
func fitCone(rays []Vec3, active []int, weights []float64) (Vec3, error) {
	a := mat.NewDense(len(active), 3, nil)
	b := mat.NewVecDense(len(active), nil)
	for row, i := range active {
		sw := math.Sqrt(weights[i])
		a.Set(row, 0, sw*rays[i].X)
		a.Set(row, 1, sw*rays[i].Y)
		a.Set(row, 2, sw*rays[i].Z)
		b.SetVec(row, sw)
	}

	var w mat.VecDense
	if err := w.SolveVec(a, b); err != nil {
		return Vec3{}, fmt.Errorf("cone fit is ill-conditioned: %w", err)
	}
	return Vec3{X: w.AtVec(0), Y: w.AtVec(1), Z: w.AtVec(2)}, nil
}

// coneResiduals returns |u_i . w - 1| for every ray.
func coneResiduals(rays []Vec3, w Vec3) []float64 {
	res := make([]float64, len(rays))
	for i, u := range rays {
		res[i] = math.Abs(u.Dot(w) - 1)
	}
	return res
}

// reweight updates weights in place from the cone residuals using a
// heavy-tailed kernel: weight = 1 / (1 + (r/sigma)^pdfOrder) with sigma the
// median residual.
func (s *Solver) reweight(weights, res []float64) {
	sigma := medianAbs(res)
	if sigma == 0 {
		for i := range weights {
			weights[i] = 1
		}
		return
	}
	for i, r := range res {
		weights[i] = 1 / (1 + math.Pow(r/sigma, s.pdfOrder))
	}
}

// discriminate drops active points whose residual exceeds the discriminator
// multiple of the median residual, never going below minLimbPoints.
func (s *Solver) discriminate(active []int, res []float64) []int {
	if s.discrim <= 0 {
		return active
	}

	med := medianAbs(res)
	if med == 0 {
		return active
	}
	cutoff := s.discrim * med

	kept := make([]int, 0, len(active))
	for _, i := range active {
		if res[i] <= cutoff {
			kept = append(kept, i)
		}
	}
	if len(kept) >= minLimbPoints {
		return kept
	}

	// Too aggressive; fall back to the lowest-residual points.
	sort.Slice(active, func(a, b int) bool { return res[active[a]] < res[active[b]] })
	return active[:minLimbPoints]
}

// loss is the weighted residual power sum used to compare refreshes.
func (s *Solver) loss(res, weights []float64) float64 {
	var sum float64
	for i, r := range res {
		sum += weights[i] * math.Pow(r, s.lossOrder)
	}
	return sum / float64(len(res))
}

// medianAbs returns the median of a slice of non-negative residuals.
func medianAbs(res []float64) float64 {
	sorted := make([]float64, len(res))
	copy(sorted, res)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
