// Package imaging handles loading of input photographs for the distance
// pipeline.
//
// Decoding is delegated to github.com/disintegration/imaging, which registers
// decoders for PNG, JPEG, GIF, TIFF, and BMP and applies EXIF orientation to
// JPEG sources. The package adds an existence probe ahead of the decode so
// that a missing file and a corrupt file surface as distinct error kinds.
//
// # Coordinate System
//
// Decoded images use the standard Go convention: (0,0) at the top-left
// corner, X increasing rightward, Y increasing downward.
package imaging
