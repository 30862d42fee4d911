package pipeline

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/skyfield-systems/horizon-distance/internal/detect"
	"github.com/skyfield-systems/horizon-distance/internal/imaging"
	"github.com/skyfield-systems/horizon-distance/internal/spatial"
)

// EarthRadiusM is the WGS84 equatorial radius.
const EarthRadiusM = 6378137.0

// Detector and solver tuning. These match the parameter set the algorithms
// were validated with on limb photographs.
const (
	edgeThreshold = 10
	edgeBorder    = 1
	edgeOffset    = 0

	solverIterations   = 2
	solverRefreshes    = 1
	distanceToleranceM = 10
	discriminatorRatio = 1.1
	pdfOrder           = 2
	radiusLossOrder    = 4
)

var debug = os.Getenv("HORIZON_LOG_LEVEL") == "debug"

// CameraConfig carries the two pinhole parameters the solver needs. Both are
// lengths in meters and are passed through to the camera model unchanged.
type CameraConfig struct {
	FocalLength float64 `json:"focal_length_m" yaml:"focal_length_m"`
	PixelSize   float64 `json:"pixel_size_m" yaml:"pixel_size_m"`
}

// RunResult accumulates the outcome of one pipeline run. It is populated
// incrementally by Run and never mutated after being returned.
//
// ErrorPercent is always ErrorM / GroundTruthM * 100.
type RunResult struct {
	Success      bool    `json:"success"`
	ErrorMessage string  `json:"error,omitempty"`
	NumEdges     int     `json:"num_edges"`
	DistanceM    float64 `json:"distance_m"`
	AltitudeM    float64 `json:"altitude_m"`
	GroundTruthM float64 `json:"ground_truth_m"`
	ErrorM       float64 `json:"error_m"`
	ErrorPercent float64 `json:"error_percent"`
}

// Run executes the full pipeline against a single image and reports the
// computed range against groundTruthM.
//
// All failures are terminal for the run and collapsed into the result:
// a missing file, an undecodable image, an empty edge set, and any error or
// panic out of the solver all produce Success=false with ErrorMessage set.
// Run itself never fails.
func Run(imagePath string, camera CameraConfig, groundTruthM float64) (r RunResult) {
	r.GroundTruthM = groundTruthM

	defer func() {
		if p := recover(); p != nil {
			r.Success = false
			r.ErrorMessage = fmt.Sprint(p)
		}
	}()

	img, err := imaging.Load(imagePath)
	if err != nil {
		var nf *imaging.ErrNotFound
		if errors.As(err, &nf) {
			r.ErrorMessage = "Image file not found: " + imagePath
		} else {
			r.ErrorMessage = "Could not load image: " + imagePath
		}
		return r
	}

	if debug {
		if info, err := imaging.Stat(img, imagePath); err == nil {
			log.Printf("loaded %s: %dx%d %s, %d bytes",
				imagePath, info.Width, info.Height, info.Format, info.FileSizeBytes)
		}
	}

	detector := &detect.Detector{
		Threshold: edgeThreshold,
		Border:    edgeBorder,
		Offset:    edgeOffset,
	}
	edges := detector.Detect(img)
	r.NumEdges = len(edges)

	if len(edges) == 0 {
		r.ErrorMessage = "No edges detected"
		return r
	}
	if debug {
		log.Printf("detected %d limb points", len(edges))
	}

	bounds := img.Bounds()
	cam := spatial.NewCamera(camera.FocalLength, camera.PixelSize, bounds.Dx(), bounds.Dy())
	solver := spatial.NewSolver(EarthRadiusM, cam,
		solverIterations, solverRefreshes,
		distanceToleranceM, discriminatorRatio,
		pdfOrder, radiusLossOrder)

	pixels := make([]spatial.Pixel, len(edges))
	for i, e := range edges {
		pixels[i] = spatial.Pixel{X: e.X, Y: e.Y}
	}

	pos, err := solver.Solve(pixels)
	if err != nil {
		r.ErrorMessage = err.Error()
		return r
	}

	r.DistanceM = pos.Norm()
	r.AltitudeM = r.DistanceM - EarthRadiusM
	r.ErrorM = math.Abs(r.DistanceM - groundTruthM)
	r.ErrorPercent = r.ErrorM / groundTruthM * 100
	r.Success = true
	return r
}
