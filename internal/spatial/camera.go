package spatial

// Pixel is an image-plane coordinate in pixels. Fractional values are
// meaningful; limb detectors report sub-pixel positions.
type Pixel struct {
	X float64
	Y float64
}

// Camera is a pinhole camera model. Focal length and pixel pitch are both in
// meters; together with the sensor resolution they fix the mapping between
// pixels and view rays.
type Camera struct {
	FocalLength float64 // meters
	PixelSize   float64 // meters per pixel
	Width       int     // sensor width in pixels
	Height      int     // sensor height in pixels
}

// NewCamera builds a camera with the principal point at the sensor center.
func NewCamera(focalLength, pixelSize float64, width, height int) Camera {
	return Camera{
		FocalLength: focalLength,
		PixelSize:   pixelSize,
		Width:       width,
		Height:      height,
	}
}

// Ray back-projects a pixel to the unit view ray through it. The ray points
// out of the camera along +Z.
func (c Camera) Ray(p Pixel) Vec3 {
	cx := float64(c.Width) / 2
	cy := float64(c.Height) / 2
	v := Vec3{
		X: (p.X - cx) * c.PixelSize,
		Y: (p.Y - cy) * c.PixelSize,
		Z: c.FocalLength,
	}
	return v.Unit()
}

// Project maps a direction in the camera frame to the pixel it images at.
// The direction must have positive Z; Project does not check.
func (c Camera) Project(v Vec3) Pixel {
	cx := float64(c.Width) / 2
	cy := float64(c.Height) / 2
	scale := c.FocalLength / v.Z / c.PixelSize
	return Pixel{
		X: v.X*scale + cx,
		Y: v.Y*scale + cy,
	}
}
