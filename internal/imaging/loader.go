package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ErrNotFound wraps the missing-file case so callers can distinguish it from
// a decode failure without parsing message text.
type ErrNotFound struct {
	Path string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("image file not found: %s", e.Path)
}

// Load decodes the image at path.
//
// The file is probed with os.Stat before decoding so that a missing file is
// reported as *ErrNotFound rather than as a decode error. Decoding goes
// through the imaging library, which registers PNG, JPEG, GIF, TIFF, and BMP
// decoders and applies EXIF auto-orientation to JPEGs.
//
// Returns:
//   - image.Image: the decoded image. The concrete type depends on the source
//     format (e.g., *image.NRGBA, *image.YCbCr).
//   - error: *ErrNotFound if the path does not exist; a wrapped decode error
//     if the file exists but cannot be parsed as an image.
func Load(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &ErrNotFound{Path: path}
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Info contains metadata about a loaded image file.
type Info struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format inferred from the file extension: "png", "jpeg",
	// "gif", or "unknown". Detection is by extension, not file contents.
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Stat returns metadata for an already-decoded image and its source file.
//
// The image is not re-read from disk; only os.Stat is performed for the file
// size. Returns an error if the file cannot be stat'd.
func Stat(img image.Image, path string) (*Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	bounds := img.Bounds()
	return &Info{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		FileSizeBytes: st.Size(),
	}, nil
}
