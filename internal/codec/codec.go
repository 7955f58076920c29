// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package codec decodes source images and encodes web-optimized output
// in the supported target formats. Policy (flattening, subsampling,
// compression levels) comes from the types.Policies table; the
// conversion code only ever passes a kind and a quality.
package codec

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"

	"github.com/meshintelligence/asset-converter/pkg/types"
)

// Open decodes a source image, applying the embedded EXIF orientation so
// downstream processing always sees an upright raster.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// TargetSize scales (w, h) so the longer side equals target, preserving
// aspect ratio. Images already within target keep their size unless
// allowUpscale is set (PDF pages upscale so output widths stay uniform).
func TargetSize(w, h, target int, allowUpscale bool) (int, int) {
	longer := w
	if h > longer {
		longer = h
	}
	if longer <= target && !allowUpscale {
		return w, h
	}
	ratio := float64(target) / float64(longer)
	nw := int(math.Round(float64(w) * ratio))
	nh := int(math.Round(float64(h) * ratio))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

// Resize resamples img to the longer-side target with Lanczos. The input
// is returned untouched when no scaling is needed.
func Resize(img image.Image, target int, allowUpscale bool) image.Image {
	b := img.Bounds()
	nw, nh := TargetSize(b.Dx(), b.Dy(), target, allowUpscale)
	if nw == b.Dx() && nh == b.Dy() {
		return img
	}
	return imaging.Resize(img, nw, nh, imaging.Lanczos)
}

// Flatten composes img over an opaque background of the given color.
// Already-opaque images pass through.
func Flatten(img image.Image, bg color.Color) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), bg)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}

// Prepare applies the kind's transparency policy to img: JPEG always
// flattens, the alpha-capable kinds flatten only when forced.
func Prepare(img image.Image, kind types.OutputKind, forceFlatten bool) image.Image {
	p := types.Policies[kind]
	if p.AlwaysFlatten || forceFlatten {
		return Flatten(img, p.Background)
	}
	return img
}

// Encode writes img to w in the given output kind, embedding the
// TIFF-form EXIF payload where the container supports it. A payload that
// cannot be embedded degrades to a warning, never to a failed file.
func Encode(w io.Writer, img image.Image, kind types.OutputKind, quality int, exifPayload []byte) error {
	switch kind {
	case types.KindJPEG:
		return encodeJPEG(w, img, quality, exifPayload)
	case types.KindPNG:
		return encodePNG(w, img, exifPayload)
	case types.KindWebP:
		return encodeWebP(w, img, quality, exifPayload)
	case types.KindAVIF:
		return encodeAVIF(w, img, quality, exifPayload)
	}
	return fmt.Errorf("unknown output kind %q", kind)
}
