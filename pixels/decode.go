package pixels

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log/slog"
	"math"

	xdraw "golang.org/x/image/draw"
	"pault.ag/go/cbeff/jpeg2000"
)

// DefaultAnalysisWidth is the width frames are normalized to before quality
// analysis, so blur variance stays comparable across capture devices.
const DefaultAnalysisWidth = 1280

// Decode decodes raw image bytes into an RGB buffer at full resolution.
func Decode(data []byte) (*Buffer, error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// DecodeScaled decodes raw image bytes and downscales the result so its width
// does not exceed maxWidth. Smaller images are left untouched.
func DecodeScaled(data []byte, maxWidth int) (*Buffer, error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	slog.Debug("Frame decoded", "width", bounds.Dx(), "height", bounds.Dy())

	if maxWidth > 0 {
		img = scaleToWidth(img, maxWidth)
	}
	return FromImage(img), nil
}

// DecodeBase64 decodes a base64-encoded image payload into an RGB buffer,
// downscaled to maxWidth like DecodeScaled.
func DecodeBase64(encoded string, maxWidth int) (*Buffer, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}
	return DecodeScaled(data, maxWidth)
}

// DecodeForAnalysis is DecodeBase64 plus the factor that maps coordinates
// from the submitted image into the returned buffer. Callers holding face
// boxes in original-image pixels multiply them by the factor; it is 1 when
// nothing was scaled.
func DecodeForAnalysis(encoded string, maxWidth int) (*Buffer, float64, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode base64 image: %w", err)
	}

	img, err := decodeImage(data)
	if err != nil {
		return nil, 0, err
	}

	originalWidth := img.Bounds().Dx()
	if maxWidth > 0 {
		img = scaleToWidth(img, maxWidth)
	}

	factor := 1.0
	if w := img.Bounds().Dx(); originalWidth > 0 && w != originalWidth {
		factor = float64(w) / float64(originalWidth)
	}
	return FromImage(img), factor, nil
}

// decodeImage attempts to decode an image from bytes, trying multiple formats
func decodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no image data provided")
	}

	// Try JPEG first (most common)
	if img, err := jpeg.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	// Try JPEG 2000 (JP2/J2K)
	if img, err := jpeg2000.Parse(data); err == nil {
		return img, nil
	}

	// Try generic image decode as fallback (PNG and friends)
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	return nil, fmt.Errorf("unsupported or invalid image format")
}

// scaleToWidth downscales img so its width is maxWidth, keeping aspect
// ratio. Images at or below maxWidth are returned as-is, never upscaled.
func scaleToWidth(src image.Image, maxWidth int) image.Image {
	bw := src.Bounds().Dx()
	bh := src.Bounds().Dy()

	if bw <= maxWidth || bw == 0 {
		return src
	}

	scale := float64(maxWidth) / float64(bw)
	h := int(math.Max(1, math.Round(float64(bh)*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	// CatmullRom = high quality, good for photos/faces
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}
