package preprocess

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Distinct maxima for the two paths: previews can stay sharper, the
// submission path shrinks harder to bound payload size and provider cost.
const (
	MaxPreviewDim = 1600
	MaxSubmitDim  = 1024

	jpegQuality = 80
)

// Image is a processed page ready for submission.
type Image struct {
	Data []byte
	MIME string
}

// CompressImage decodes data (JPEG or PNG), proportionally scales it so
// neither dimension exceeds maxDim, and re-encodes it as JPEG. Any
// decode or encode failure falls back to the original bytes and MIME
// unmodified; compression is best effort, never fatal.
func CompressImage(data []byte, mime string, maxDim int) Image {
	original := Image{Data: data, MIME: mime}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return original
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return original
	}

	nw, nh := fitWithin(w, h, maxDim)
	var resized image.Image = src
	if nw != w || nh != h {
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		resized = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return original
	}
	return Image{Data: buf.Bytes(), MIME: "image/jpeg"}
}

// fitWithin computes proportional dimensions capped at maxDim.
func fitWithin(w, h, maxDim int) (int, int) {
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return w, h
	}
	if w >= h {
		return maxDim, maxInt(h*maxDim/w, 1)
	}
	return maxInt(w*maxDim/h, 1), maxDim
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
