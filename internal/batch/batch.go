// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch walks a source tree and converts every matching image
// and PDF into the configured web-optimized output format. Files are
// processed one at a time in traversal order; a file that fails to
// convert is reported and skipped, never aborting the run.
package batch

import (
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/meshintelligence/asset-converter/internal/codec"
	"github.com/meshintelligence/asset-converter/internal/meta"
	"github.com/meshintelligence/asset-converter/internal/naming"
	"github.com/meshintelligence/asset-converter/internal/pdf"
	"github.com/meshintelligence/asset-converter/internal/slug"
	"github.com/meshintelligence/asset-converter/pkg/types"
)

// imageExts are the source extensions handled by single-frame image
// conversion. Anything else a user includes is reported as unsupported.
var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".tif": true, ".tiff": true, ".bmp": true, ".gif": true,
}

const pdfExt = ".pdf"

// Summary holds the outcome counters of one run. Skipped counts files
// excluded by the filename filter.
type Summary struct {
	Converted int `yaml:"converted"`
	Skipped   int `yaml:"skipped"`
	Failed    int `yaml:"failed"`
}

// Total returns the number of files that reached a terminal state.
func (s Summary) Total() int { return s.Converted + s.Skipped + s.Failed }

// HasFailures reports whether any file failed conversion.
func (s Summary) HasFailures() bool { return s.Failed > 0 }

// Recorder persists one line per written output file. A nil Recorder
// disables history.
type Recorder interface {
	Record(source, output, kind, caption string) error
}

// run carries the state of one orchestration: the per-run name registry,
// parsed filters, and counters. It is discarded when Run returns.
type run struct {
	cfg      types.RunConfig
	renderer pdf.Renderer
	rec      Recorder
	w        io.Writer

	alloc    *naming.Allocator
	prefix   string
	exts     []string
	excludes []string
	includes []string

	summary Summary
	report  *Report
}

// Run converts the tree rooted at cfg.SourceDir into cfg.OutputDir,
// writing one progress line per converted file (and per rendered PDF
// page) to w. The returned error covers setup and traversal problems
// only; per-file conversion errors are counted in the summary.
func Run(cfg types.RunConfig, renderer pdf.Renderer, rec Recorder, w io.Writer) (Summary, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating output directory: %w", err)
	}

	r := &run{
		cfg:      cfg,
		renderer: renderer,
		rec:      rec,
		w:        w,
		alloc:    naming.NewAllocator(),
		prefix:   slug.NormalizePrefix(cfg.Prefix),
		exts:     NormalizeExts(cfg.Extensions),
		excludes: SplitPatterns(cfg.ExcludeDirs),
		includes: SplitPatterns(cfg.IncludeNames),
	}
	if cfg.ReportPath != "" {
		r.report = NewReport(cfg)
	}

	if err := filepath.WalkDir(cfg.SourceDir, r.visit); err != nil {
		return r.summary, fmt.Errorf("walking %s: %w", cfg.SourceDir, err)
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed\n",
		r.summary.Converted, r.summary.Skipped, r.summary.Failed)

	if r.report != nil {
		if err := r.report.WriteFile(cfg.ReportPath, r.summary); err != nil {
			fmt.Fprintf(os.Stderr, "warning: writing report: %v\n", err)
		}
	}
	return r.summary, nil
}

func (r *run) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		return err
	}

	if d.IsDir() {
		if path == r.cfg.SourceDir {
			return nil
		}
		// Never re-ingest our own output when it lives under the source.
		if same, _ := samePath(path, r.cfg.OutputDir); same {
			return filepath.SkipDir
		}
		if ExcludeDir(path, r.excludes) {
			fmt.Fprintf(r.w, "skipping directory: %s\n", path)
			return filepath.SkipDir
		}
		return nil
	}
	if !d.Type().IsRegular() {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !contains(r.exts, ext) {
		return nil
	}

	stem := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
	if !IncludeName(stem, r.includes) {
		r.summary.Skipped++
		return nil
	}

	var convErr error
	switch {
	case ext == pdfExt:
		convErr = r.convertPDF(path, stem)
	case imageExts[ext]:
		convErr = r.convertImage(path, stem)
	default:
		fmt.Fprintf(r.w, "skipped (unsupported): %s\n", d.Name())
		return nil
	}

	if convErr != nil {
		fmt.Fprintf(r.w, "error: %s: %v\n", d.Name(), convErr)
		r.summary.Failed++
		r.reportFile(FileResult{Source: path, Status: "failed", Error: convErr.Error()})
	}
	return nil
}

func (r *run) convertImage(path, stem string) error {
	var rec meta.Record
	if r.cfg.PreserveMetadata {
		rec = meta.Extract(path)
	}

	img, err := codec.Open(path)
	if err != nil {
		return err
	}
	img = codec.Resize(img, r.cfg.TargetSize, false)

	base, fallback := r.names(stem)
	outPath := r.alloc.Allocate(r.cfg.OutputDir, base, r.cfg.Kind.Ext(), r.cfg.Overwrite)

	rec = meta.MergeFallback(rec, fallback, r.cfg.FilenameFallback)

	if err := r.encodeTo(outPath, img, rec); err != nil {
		return err
	}
	r.postSaveIPTC(outPath, rec)

	fmt.Fprintf(r.w, "%s -> %s\n", filepath.Base(path), filepath.Base(outPath))
	r.summary.Converted++
	r.recordOutput(path, outPath, rec.Caption)
	return nil
}

func (r *run) convertPDF(path, stem string) error {
	pages, err := r.renderer.Render(path, pdf.DPI(r.cfg.PDFZoom))
	if err != nil {
		return err
	}

	base, fallback := r.names(stem)
	for i, img := range pages {
		page := i + 1

		// Upscaling is allowed for PDF pages so all pages of a batch
		// come out at a uniform width.
		img = codec.Resize(img, r.cfg.TargetSize, true)

		pageBase := base + naming.PageSuffix(page)
		outPath := r.alloc.Allocate(r.cfg.OutputDir, pageBase, r.cfg.Kind.Ext(), r.cfg.Overwrite)

		rec := meta.MergeFallback(meta.Record{}, fallback, r.cfg.FilenameFallback)

		if err := r.encodeTo(outPath, img, rec); err != nil {
			return fmt.Errorf("page %d: %w", page, err)
		}
		r.postSaveIPTC(outPath, rec)

		fmt.Fprintf(r.w, "%s [page %d] -> %s\n", filepath.Base(path), page, filepath.Base(outPath))
		r.recordOutput(path, outPath, rec.Caption)
	}

	r.summary.Converted++
	return nil
}

// encodeTo applies the transparency policy and writes the encoded image
// plus its EXIF payload (when metadata is preserved) to outPath.
func (r *run) encodeTo(outPath string, img image.Image, rec meta.Record) error {
	var payload []byte
	if r.cfg.PreserveMetadata && !rec.Empty() {
		p, err := meta.BuildEXIF(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", filepath.Base(outPath), err)
		} else {
			payload = p
		}
	}

	img = codec.Prepare(img, r.cfg.Kind, r.cfg.WhiteBackground)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := codec.Encode(f, img, r.cfg.Kind, r.cfg.Quality, payload); err != nil {
		f.Close()
		os.Remove(outPath)
		return err
	}
	return f.Close()
}

// postSaveIPTC writes the legacy IPTC block for JPEG outputs. Failures
// degrade to a warning.
func (r *run) postSaveIPTC(outPath string, rec meta.Record) {
	if r.cfg.Kind != types.KindJPEG || !r.cfg.PreserveMetadata {
		return
	}
	if err := meta.WriteIPTC(outPath, rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// names derives the prefixed output base name and the caption fallback.
// The fallback is built from the slug before prefixing, so the prefix
// never leaks into captions.
func (r *run) names(stem string) (base, fallback string) {
	s := slug.Slugify(stem)
	if r.cfg.FilenameFallback {
		fallback = slug.ReadableCaption(s)
	}
	return slug.EnsurePrefix(s, r.prefix), fallback
}

func (r *run) recordOutput(source, output, caption string) {
	if r.rec != nil {
		if err := r.rec.Record(source, output, string(r.cfg.Kind), caption); err != nil {
			fmt.Fprintf(os.Stderr, "warning: recording history: %v\n", err)
		}
	}
	r.reportFile(FileResult{Source: source, Output: output, Status: "converted", Caption: caption})
}

func (r *run) reportFile(fr FileResult) {
	if r.report != nil {
		r.report.Add(fr)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// samePath compares two paths after absolutization.
func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
