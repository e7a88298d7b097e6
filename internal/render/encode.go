package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
)

// SurfaceError reports that a visualization target could not be produced.
// In this module the drawable surface is an in-memory PNG, so the only
// acquisition failure is an encoding failure.
type SurfaceError struct {
	Err error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("failed to produce render surface: %v", e.Err)
}

func (e *SurfaceError) Unwrap() error { return e.Err }

// Raster is the wire form of a visualization: a base64-encoded PNG with its
// dimensions. Every analyzer's visualization tool returns one.
type Raster struct {
	// Width of the rendered image in pixels.
	Width int `json:"width"`

	// Height of the rendered image in pixels.
	Height int `json:"height"`

	// ImageBase64 is the rendered image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// EncodeRaster encodes an image as base64 PNG wrapped in a Raster.
// Encoding failures surface as *SurfaceError.
func EncodeRaster(img image.Image) (*Raster, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &SurfaceError{Err: err}
	}

	bounds := img.Bounds()
	return &Raster{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
