package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCameraConfig_JSON(t *testing.T) {
	path := writeConfig(t, "cam.json", `{"focal_length_m": 0.012, "pixel_size_m": 2e-5}`)

	cfg, err := LoadCameraConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.012, cfg.FocalLength)
	assert.Equal(t, 2e-5, cfg.PixelSize)
}

func TestLoadCameraConfig_YAML(t *testing.T) {
	path := writeConfig(t, "cam.yaml", "focal_length_m: 0.085\npixel_size_m: 1.0e-5\n")

	cfg, err := LoadCameraConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.085, cfg.FocalLength)
	assert.Equal(t, 1e-5, cfg.PixelSize)
}

func TestLoadCameraConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad json", "cam.json", `{"focal_length_m": }`},
		{"bad yaml", "cam.yml", "focal_length_m: [unclosed"},
		{"zero focal length", "cam.json", `{"focal_length_m": 0, "pixel_size_m": 1e-5}`},
		{"negative pixel size", "cam.json", `{"focal_length_m": 0.01, "pixel_size_m": -1}`},
		{"missing pixel size", "cam.json", `{"focal_length_m": 0.01}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			_, err := LoadCameraConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadCameraConfig_MissingFile(t *testing.T) {
	_, err := LoadCameraConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
