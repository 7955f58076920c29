// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintelligence/asset-converter/internal/batch"
	"github.com/meshintelligence/asset-converter/internal/history"
	"github.com/meshintelligence/asset-converter/internal/pathmap"
	"github.com/meshintelligence/asset-converter/internal/pdf"
	"github.com/meshintelligence/asset-converter/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <source-dir>",
	Short: "Convert a directory tree of images and PDFs",
	Long: `Convert walks the source directory recursively, converts every matching
image and PDF page to the chosen output format, and writes the results into
the output directory (default: <source-dir>/output-web) under slugified,
collision-safe filenames.

The source and output paths may be Windows UNC or drive-letter paths; they
are translated through the path mapping file before use.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("out", "", "output directory (default: <source-dir>/output-web)")
	convertCmd.Flags().String("prefix", "", "filename prefix prepended to every output name")
	convertCmd.Flags().Bool("overwrite", false, "overwrite existing output files instead of suffixing")
	convertCmd.Flags().Bool("white-background", false, "flatten transparency onto white even for formats that support it")
	convertCmd.Flags().Bool("preserve-metadata", true, "carry EXIF/IPTC metadata into the output")
	convertCmd.Flags().Bool("filename-fallback", true, "derive a caption from the filename when the source has none")
	convertCmd.Flags().String("exclude-dirs", "", "comma-separated directory name patterns to skip")
	convertCmd.Flags().String("include-names", "", "comma-separated filename patterns; only matching files convert")
	convertCmd.Flags().String("extensions", types.DefaultExtensions, "comma-separated source extensions to consider")
	convertCmd.Flags().String("format", "webp", "output format: webp, avif, jpg, or png")
	convertCmd.Flags().Int("size", 1920, "maximum length of the longer image side in pixels")
	convertCmd.Flags().Int("quality", 80, "encode quality (0-100); ignored for png")
	convertCmd.Flags().Float64("pdf-zoom", 3.0, "PDF render zoom factor (1.0 = 72 DPI)")
	convertCmd.Flags().String("mapping-file", pathmap.DefaultConfigPath, "Windows path mapping file")
	convertCmd.Flags().String("report", "", "write a YAML run report to this path")
	convertCmd.Flags().String("history-db", "", "record conversions in this SQLite database")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := convertConfig(cmd, args[0])
	if err != nil {
		return err
	}

	var rec batch.Recorder
	if cfg.HistoryDB != "" {
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = store
	}

	sum, err := batch.Run(cfg, pdf.MuPDF{}, rec, os.Stdout)
	if err != nil {
		return err
	}
	if sum.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", sum.Failed)
	}
	return nil
}

// convertConfig assembles the run configuration from flags, translates
// Windows paths, and validates the result.
func convertConfig(cmd *cobra.Command, sourceArg string) (types.RunConfig, error) {
	flags := cmd.Flags()

	mappingFile, _ := flags.GetString("mapping-file")
	maps, err := pathmap.Load(mappingFile)
	if err != nil {
		return types.RunConfig{}, err
	}

	var cfg types.RunConfig
	cfg.SourceDir = maps.Translate(sourceArg)
	out, _ := flags.GetString("out")
	cfg.OutputDir = maps.Translate(out)
	cfg.Prefix, _ = flags.GetString("prefix")
	cfg.Overwrite, _ = flags.GetBool("overwrite")
	cfg.WhiteBackground, _ = flags.GetBool("white-background")
	cfg.PreserveMetadata, _ = flags.GetBool("preserve-metadata")
	cfg.FilenameFallback, _ = flags.GetBool("filename-fallback")
	cfg.ExcludeDirs, _ = flags.GetString("exclude-dirs")
	cfg.IncludeNames, _ = flags.GetString("include-names")
	cfg.Extensions, _ = flags.GetString("extensions")
	cfg.TargetSize, _ = flags.GetInt("size")
	cfg.Quality, _ = flags.GetInt("quality")
	cfg.PDFZoom, _ = flags.GetFloat64("pdf-zoom")
	cfg.ReportPath, _ = flags.GetString("report")
	cfg.HistoryDB, _ = flags.GetString("history-db")

	format, _ := flags.GetString("format")
	kind, err := types.ParseOutputKind(format)
	if err != nil {
		return types.RunConfig{}, &types.ConfigError{Code: types.ExitOutputKind, Msg: err.Error()}
	}
	cfg.Kind = kind

	info, err := os.Stat(cfg.SourceDir)
	if err != nil || !info.IsDir() {
		return types.RunConfig{}, &types.ConfigError{
			Code: types.ExitSourceDir,
			Msg:  fmt.Sprintf("source directory does not exist: %s", cfg.SourceDir),
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return types.RunConfig{}, err
	}
	return cfg, nil
}
