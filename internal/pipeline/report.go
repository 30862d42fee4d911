package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteText prints the human-readable run summary. Distances are reported in
// megameters with altitude and error in kilometers, matching the scales a
// low-orbit ground truth lives at.
func WriteText(w io.Writer, r RunResult) {
	if !r.Success {
		fmt.Fprintf(w, "[integration] FAILED: %s\n", r.ErrorMessage)
		return
	}
	fmt.Fprintf(w, "[integration] edges:        %d\n", r.NumEdges)
	fmt.Fprintf(w, "[integration] distance:     %g Mm  (%g km alt)\n", r.DistanceM/1e6, r.AltitudeM/1e3)
	fmt.Fprintf(w, "[integration] ground truth: %g Mm\n", r.GroundTruthM/1e6)
	fmt.Fprintf(w, "[integration] error:        %g km  (%g%%)\n", r.ErrorM/1e3, r.ErrorPercent)
}

// WriteJSON writes the run report to path as a JSON object.
//
// The object always carries "success". A failed run carries "error" and
// nothing else; a successful run carries the numeric fields and no "error"
// key. Unlike every other failure in the pipeline, an unwritable report path
// is returned to the caller.
func WriteJSON(path string, r RunResult) error {
	var report any
	if !r.Success {
		report = struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}{Success: false, Error: r.ErrorMessage}
	} else {
		report = struct {
			Success      bool    `json:"success"`
			NumEdges     int     `json:"num_edges"`
			DistanceM    float64 `json:"distance_m"`
			AltitudeM    float64 `json:"altitude_m"`
			GroundTruthM float64 `json:"ground_truth_m"`
			ErrorM       float64 `json:"error_m"`
			ErrorPercent float64 `json:"error_percent"`
		}{
			Success:      true,
			NumEdges:     r.NumEdges,
			DistanceM:    r.DistanceM,
			AltitudeM:    r.AltitudeM,
			GroundTruthM: r.GroundTruthM,
			ErrorM:       r.ErrorM,
			ErrorPercent: r.ErrorPercent,
		}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}
