package types

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
)

// OutputKind identifies the target image format of a conversion run.
type OutputKind string

const (
	KindJPEG OutputKind = "jpg"
	KindPNG  OutputKind = "png"
	KindWebP OutputKind = "webp"
	KindAVIF OutputKind = "avif"
)

// ParseOutputKind normalizes and validates a user-supplied format name.
// "jpeg" is folded into "jpg" so output filenames use the short extension.
func ParseOutputKind(s string) (OutputKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpg", "jpeg":
		return KindJPEG, nil
	case "png":
		return KindPNG, nil
	case "webp":
		return KindWebP, nil
	case "avif":
		return KindAVIF, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected avif, webp, png, or jpg)", s)
}

// Ext returns the output filename extension including the leading dot.
func (k OutputKind) Ext() string {
	return "." + string(k)
}

// EncodePolicy holds the fixed encode parameters for one output kind.
// Quality and target size come from the run configuration; everything
// else is policy and lives in this table.
type EncodePolicy struct {
	// Progressive requests progressive scan order (JPEG only).
	Progressive bool

	// ChromaSubsampling is the subsampling mode (JPEG only, "4:2:0").
	ChromaSubsampling string

	// PNGCompression is the zlib compression level for PNG output.
	PNGCompression int

	// WebPMethod is the encoder effort level for WebP output (0-6).
	WebPMethod int

	// AlwaysFlatten forces transparency flattening regardless of the
	// white-background option (the format cannot carry alpha).
	AlwaysFlatten bool

	// Background is the flatten color used when transparency is removed.
	Background color.Color
}

// Policies maps each output kind to its encode policy. Tuning an output
// format means editing this table, not the conversion code.
var Policies = map[OutputKind]EncodePolicy{
	KindJPEG: {Progressive: true, ChromaSubsampling: "4:2:0", AlwaysFlatten: true, Background: color.White},
	KindPNG:  {PNGCompression: 6, Background: color.White},
	KindWebP: {WebPMethod: 6, Background: color.White},
	KindAVIF: {Background: color.White},
}

// DefaultExtensions is the source extension filter used when the run
// configuration leaves it empty.
const DefaultExtensions = "tif,jpg,jpeg,png,pdf"

// RunConfig holds every option consumed by a single conversion run.
type RunConfig struct {
	// SourceDir is the root of the tree to convert.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// OutputDir receives converted files (default: SourceDir/output-web).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Prefix is prepended to every output slug after normalization.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Overwrite replaces existing output files instead of probing for a
	// free -NN suffixed name.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`

	// WhiteBackground flattens transparency onto the policy background
	// color even for formats that could carry alpha.
	WhiteBackground bool `json:"white_background" yaml:"white_background"`

	// PreserveMetadata carries EXIF/IPTC metadata into the output.
	PreserveMetadata bool `json:"preserve_metadata" yaml:"preserve_metadata"`

	// FilenameFallback derives a caption from the filename when the
	// source carries none.
	FilenameFallback bool `json:"filename_fallback" yaml:"filename_fallback"`

	// ExcludeDirs is a comma-separated list of directory name patterns
	// to skip (case-insensitive substring match per path segment).
	ExcludeDirs string `json:"exclude_dirs,omitempty" yaml:"exclude_dirs,omitempty"`

	// IncludeNames is a comma-separated list of filename patterns; when
	// set, only files whose stem contains one of them are converted.
	IncludeNames string `json:"include_names,omitempty" yaml:"include_names,omitempty"`

	// Extensions is the comma-separated list of source extensions to
	// pick up (leading dots optional).
	Extensions string `json:"extensions" yaml:"extensions"`

	// Kind is the output format.
	Kind OutputKind `json:"format" yaml:"format"`

	// TargetSize is the maximum length of the longer image side in
	// pixels. Smaller images are not upscaled, except PDF pages.
	TargetSize int `json:"target_size" yaml:"target_size"`

	// Quality is the encode quality (0-100); PNG ignores it.
	Quality int `json:"quality" yaml:"quality"`

	// PDFZoom scales PDF rendering: the page raster DPI is 72 * zoom.
	PDFZoom float64 `json:"pdf_zoom" yaml:"pdf_zoom"`

	// ReportPath, when set, receives a YAML report of the run.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`

	// HistoryDB, when set, records each conversion in a SQLite database.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty"`
}

// Exit codes for configuration errors. Each category aborts the run
// before any conversion starts.
const (
	ExitSourceDir  = 2
	ExitOutputKind = 3
	ExitTargetSize = 5
	ExitQuality    = 6
	ExitZoom       = 7
)

// ConfigError is a configuration error with a process exit code.
type ConfigError struct {
	Code int
	Msg  string
}

func (e *ConfigError) Error() string { return e.Msg }

// ApplyDefaults fills empty optional fields with their documented
// default values.
func (c *RunConfig) ApplyDefaults() {
	if c.OutputDir == "" && c.SourceDir != "" {
		c.OutputDir = filepath.Join(c.SourceDir, "output-web")
	}
	if c.Extensions == "" {
		c.Extensions = DefaultExtensions
	}
}

// Validate checks numeric parameters and the output kind. It returns a
// ConfigError carrying the exit code for the failing category.
func (c *RunConfig) Validate() error {
	if c.SourceDir == "" {
		return &ConfigError{Code: ExitSourceDir, Msg: "source directory must be given"}
	}
	if _, ok := Policies[c.Kind]; !ok {
		return &ConfigError{Code: ExitOutputKind, Msg: fmt.Sprintf("invalid output format %q", c.Kind)}
	}
	if c.TargetSize < 1 {
		return &ConfigError{Code: ExitTargetSize, Msg: fmt.Sprintf("target size must be at least 1, got %d", c.TargetSize)}
	}
	if c.Quality < 0 || c.Quality > 100 {
		return &ConfigError{Code: ExitQuality, Msg: fmt.Sprintf("quality must be 0-100, got %d", c.Quality)}
	}
	if c.PDFZoom <= 0 {
		return &ConfigError{Code: ExitZoom, Msg: fmt.Sprintf("PDF zoom must be positive, got %g", c.PDFZoom)}
	}
	return nil
}
