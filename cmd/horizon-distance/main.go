package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/skyfield-systems/horizon-distance/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("horizon-distance %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		imagePath   = flag.String("image", "", "path to the limb photograph (required)")
		cameraPath  = flag.String("camera", "", "path to a camera config file (.json, .yaml, or .yml)")
		focalLength = flag.Float64("focal-length", 0.01, "camera focal length in meters (ignored when -camera is set)")
		pixelSize   = flag.Float64("pixel-size", 1e-5, "camera pixel pitch in meters (ignored when -camera is set)")
		groundTruth = flag.Float64("ground-truth", 0, "ground-truth camera-to-center range in meters (required)")
		jsonOut     = flag.String("json-out", "", "write a JSON report to this path")
	)
	flag.Parse()

	// Reports go to stdout; diagnostics stay on stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "error: -image is required")
		flag.Usage()
		os.Exit(2)
	}
	if *groundTruth <= 0 {
		fmt.Fprintln(os.Stderr, "error: -ground-truth must be a positive range in meters")
		flag.Usage()
		os.Exit(2)
	}

	camera := pipeline.CameraConfig{
		FocalLength: *focalLength,
		PixelSize:   *pixelSize,
	}
	if *cameraPath != "" {
		var err error
		camera, err = pipeline.LoadCameraConfig(*cameraPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
	}

	result := pipeline.Run(*imagePath, camera, *groundTruth)
	pipeline.WriteText(os.Stdout, result)

	if *jsonOut != "" {
		if err := pipeline.WriteJSON(*jsonOut, result); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
	}

	if !result.Success {
		os.Exit(1)
	}
}
