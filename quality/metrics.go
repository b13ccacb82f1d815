package quality

import (
	"go-identity-capture/pixels"
)

// Metrics are the raw image measurements quality verdicts are built from.
type Metrics struct {
	BlurScore  float64 `json:"blur_score"`  // Laplacian variance, higher is sharper
	Brightness float64 `json:"brightness"`  // mean luminance, 0-1
	GlareRatio float64 `json:"glare_ratio"` // fraction of near-white pixels, 0-1
}

// Grayscale returns the per-pixel luminance map in row-major order, using
// the ITU-R 601 weights 0.299R + 0.587G + 0.114B.
func Grayscale(b *pixels.Buffer) []float64 {
	lum := make([]float64, b.Width*b.Height)
	for i, j := 0, 0; i < len(b.Pix); i, j = i+3, j+1 {
		lum[j] = 0.299*float64(b.Pix[i]) + 0.587*float64(b.Pix[i+1]) + 0.114*float64(b.Pix[i+2])
	}
	return lum
}

// BlurScore measures focus as the population variance of the Laplacian
// response over the luminance map. The kernel only covers interior pixels;
// borders stay at zero response. The score is deliberately not normalized by
// image size, so captures must be scaled to a common width before comparing
// against a fixed threshold.
func BlurScore(b *pixels.Buffer) float64 {
	if b.Width == 0 || b.Height == 0 {
		return 0
	}
	return laplacianVariance(Grayscale(b), b.Width, b.Height)
}

// Brightness is the mean luminance over all pixels, scaled to [0, 1].
func Brightness(b *pixels.Buffer) float64 {
	if b.Width == 0 || b.Height == 0 {
		return 0
	}
	return meanLuminance(Grayscale(b)) / 255
}

// GlareRatio is the fraction of pixels with R, G and B all strictly above
// 250, the blown-out highlights a flash leaves on a laminated document.
func GlareRatio(b *pixels.Buffer) float64 {
	if b.Width == 0 || b.Height == 0 {
		return 0
	}
	glare := 0
	for i := 0; i < len(b.Pix); i += 3 {
		if b.Pix[i] > 250 && b.Pix[i+1] > 250 && b.Pix[i+2] > 250 {
			glare++
		}
	}
	return float64(glare) / float64(b.Width*b.Height)
}

// Compute measures all metrics in one pass over the luminance map.
func Compute(b *pixels.Buffer) Metrics {
	if b == nil || b.Width == 0 || b.Height == 0 {
		return Metrics{}
	}

	lum := Grayscale(b)
	return Metrics{
		BlurScore:  laplacianVariance(lum, b.Width, b.Height),
		Brightness: meanLuminance(lum) / 255,
		GlareRatio: GlareRatio(b),
	}
}

// laplacianVariance convolves the discrete Laplacian [[0,1,0],[1,-4,1],[0,1,0]]
// over interior pixels and returns the population variance of the full
// response map, zero borders included.
func laplacianVariance(lum []float64, w, h int) float64 {
	resp := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			resp[i] = lum[i-w] + lum[i+w] + lum[i-1] + lum[i+1] - 4*lum[i]
		}
	}

	mean := 0.0
	for _, v := range resp {
		mean += v
	}
	mean /= float64(len(resp))

	variance := 0.0
	for _, v := range resp {
		d := v - mean
		variance += d * d
	}
	return variance / float64(len(resp))
}

func meanLuminance(lum []float64) float64 {
	sum := 0.0
	for _, v := range lum {
		sum += v
	}
	return sum / float64(len(lum))
}
