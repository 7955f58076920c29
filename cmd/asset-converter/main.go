// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the asset-converter CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintelligence/asset-converter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the asset-converter CLI.
var rootCmd = &cobra.Command{
	Use:   "asset-converter",
	Short: "Batch-convert images and PDFs to web-optimized formats",
	Long: `asset-converter walks a directory tree, converts images and PDF pages
to a web-optimized format (WebP, AVIF, JPEG, or PNG), and writes the results
under WordPress-friendly ASCII filenames. Descriptive metadata (EXIF captions,
copyright, IPTC fields) is carried from source to output where the target
format supports it.

Windows UNC and drive-letter paths are translated to local mount points
through a mapping file, so jobs written on Windows machines run unchanged.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./asset-converter.yaml or ~/.config/asset-converter/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("asset-converter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "asset-converter"))
		}
	}

	viper.SetEnvPrefix("ASSET_CONVERTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var cfgErr *types.ConfigError
		if errors.As(err, &cfgErr) {
			os.Exit(cfgErr.Code)
		}
		os.Exit(1)
	}
}
