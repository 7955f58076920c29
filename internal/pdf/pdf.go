// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf rasterizes PDF pages for conversion. Rendering sits behind
// the Renderer interface so the orchestrator can run against a fake.
package pdf

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// BaseDPI is the PDF unit resolution; the render DPI is BaseDPI times
// the configured zoom factor.
const BaseDPI = 72

// DPI derives the render resolution from the zoom factor (1.0 = 72 DPI,
// 3.0 = 216 DPI).
func DPI(zoom float64) int {
	return int(BaseDPI * zoom)
}

// Renderer turns a PDF file into one RGB raster per page.
type Renderer interface {
	// Render returns all pages of the document at the given DPI, in
	// page order, as RGB images (CMYK sources are converted by the
	// backend).
	Render(path string, dpi int) ([]image.Image, error)
}

// MuPDF renders through the MuPDF library.
type MuPDF struct{}

// Render opens the document and rasterizes every page. An unreadable
// document fails before any page is returned; pages are never partial.
func (MuPDF) Render(path string, dpi int) ([]image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer doc.Close()

	pages := make([]image.Image, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("rendering page %d of %s: %w", i+1, path, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
