package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCameraConfig reads a CameraConfig from a JSON or YAML file. The format
// is chosen by extension: ".yaml"/".yml" parse as YAML, anything else as
// JSON.
//
// Both parameters must be present and positive; a config that would build a
// meaningless camera is rejected here rather than surfacing later as a
// cryptic solver failure.
func LoadCameraConfig(path string) (CameraConfig, error) {
	var cfg CameraConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read camera config: %w", err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse camera config %s: %w", path, err)
	}

	if cfg.FocalLength <= 0 {
		return cfg, fmt.Errorf("camera config %s: focal_length_m must be positive, got %g", path, cfg.FocalLength)
	}
	if cfg.PixelSize <= 0 {
		return cfg, fmt.Errorf("camera config %s: pixel_size_m must be positive, got %g", path, cfg.PixelSize)
	}
	return cfg, nil
}
