// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/meshintelligence/asset-converter/pkg/types"
)

// fakeRenderer stands in for MuPDF and returns a fixed number of
// solid-color pages.
type fakeRenderer struct {
	pages int
	dpi   int
}

func (f *fakeRenderer) Render(path string, dpi int) ([]image.Image, error) {
	f.dpi = dpi
	out := make([]image.Image, f.pages)
	for i := range out {
		img := image.NewRGBA(image.Rect(0, 0, 100, 150))
		for y := 0; y < 150; y++ {
			for x := 0; x < 100; x++ {
				img.Set(x, y, color.White)
			}
		}
		out[i] = img
	}
	return out, nil
}

type fakeRecorder struct {
	sources []string
	outputs []string
}

func (f *fakeRecorder) Record(source, output, kind, caption string) error {
	f.sources = append(f.sources, source)
	f.outputs = append(f.outputs, output)
	return nil
}

func writeJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 90}))
}

func testConfig(src, out string) types.RunConfig {
	return types.RunConfig{
		SourceDir:        src,
		OutputDir:        out,
		Extensions:       types.DefaultExtensions,
		Kind:             types.KindJPEG,
		TargetSize:       1920,
		Quality:          80,
		PDFZoom:          3.0,
		FilenameFallback: true,
	}
}

func TestRunConvertsImagesAndPDFs(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	writeJPEG(t, filepath.Join(src, "Büro Plan.jpg"))
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("not an image"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "doc.pdf"), []byte("%PDF-fake"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "Backup-Old"), 0o755))
	writeJPEG(t, filepath.Join(src, "Backup-Old", "skipme.jpg"))

	cfg := testConfig(src, out)
	cfg.ExcludeDirs = "backup"

	renderer := &fakeRenderer{pages: 2}
	rec := &fakeRecorder{}
	var buf SyncBuffer

	sum, err := Run(cfg, renderer, rec, &buf)
	require.NoError(t, err)

	assert.Equal(t, Summary{Converted: 2}, sum)
	assert.Equal(t, 216, renderer.dpi)

	for _, name := range []string{"buero-plan.jpg", "doc-p001.jpg", "doc-p002.jpg"} {
		assert.FileExists(t, filepath.Join(out, name))
	}
	assert.NoFileExists(t, filepath.Join(out, "skipme.jpg"))

	output := buf.String()
	assert.Contains(t, output, "skipping directory:")
	assert.Contains(t, output, "doc.pdf [page 2] -> doc-p002.jpg")
	assert.Contains(t, output, "Batch summary: 2 converted, 0 skipped, 0 failed")

	// One history record per written output file.
	assert.Len(t, rec.outputs, 3)
}

func TestRunIncludeFilterCountsSkips(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeJPEG(t, filepath.Join(src, "site-plan.jpg"))
	writeJPEG(t, filepath.Join(src, "invoice.jpg"))

	cfg := testConfig(src, out)
	cfg.IncludeNames = "plan"

	var buf SyncBuffer
	sum, err := Run(cfg, &fakeRenderer{}, nil, &buf)
	require.NoError(t, err)

	assert.Equal(t, Summary{Converted: 1, Skipped: 1}, sum)
	assert.FileExists(t, filepath.Join(out, "site-plan.jpg"))
	assert.NoFileExists(t, filepath.Join(out, "invoice.jpg"))
}

func TestRunContinuesPastBrokenFile(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "broken.jpg"), []byte("garbage"), 0o644))
	writeJPEG(t, filepath.Join(src, "good.jpg"))

	var buf SyncBuffer
	sum, err := Run(testConfig(src, out), &fakeRenderer{}, nil, &buf)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Converted)
	assert.Equal(t, 1, sum.Failed)
	assert.True(t, sum.HasFailures())
	assert.Contains(t, buf.String(), "error: broken.jpg:")
	assert.FileExists(t, filepath.Join(out, "good.jpg"))
}

func TestRunAppliesPrefix(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeJPEG(t, filepath.Join(src, "hero.jpg"))

	cfg := testConfig(src, out)
	cfg.Prefix = "WKB"

	var buf SyncBuffer
	_, err := Run(cfg, &fakeRenderer{}, nil, &buf)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "wkb-hero.jpg"))
}

func TestRunWritesReport(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeJPEG(t, filepath.Join(src, "hero.jpg"))

	cfg := testConfig(src, out)
	cfg.ReportPath = filepath.Join(out, "report.yaml")

	var buf SyncBuffer
	_, err := Run(cfg, &fakeRenderer{}, nil, &buf)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.ReportPath)
	require.NoError(t, err)

	var rep Report
	require.NoError(t, yaml.Unmarshal(data, &rep))
	assert.Equal(t, Summary{Converted: 1}, rep.Summary)
	require.Len(t, rep.Files, 1)
	assert.Equal(t, "converted", rep.Files[0].Status)
	assert.Equal(t, filepath.Join(out, "hero.jpg"), rep.Files[0].Output)
}

func TestRunSkipsOutputDirInsideSource(t *testing.T) {
	src := t.TempDir()
	writeJPEG(t, filepath.Join(src, "hero.jpg"))

	cfg := testConfig(src, filepath.Join(src, "output-web"))

	var buf SyncBuffer
	sum, err := Run(cfg, &fakeRenderer{}, nil, &buf)
	require.NoError(t, err)
	assert.Equal(t, Summary{Converted: 1}, sum)

	// A second run must not pick up the first run's outputs.
	sum, err = Run(cfg, &fakeRenderer{}, nil, &buf)
	require.NoError(t, err)
	assert.Equal(t, Summary{Converted: 1}, sum)
}
