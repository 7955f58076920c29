// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/meshintelligence/asset-converter/internal/pathmap"
)

var mappingsCmd = &cobra.Command{
	Use:   "mappings [paths...]",
	Short: "Show the Windows path mapping table and translate paths",
	Long: `Mappings loads the path mapping file and prints the configured UNC and
drive-letter mappings. Any path arguments are translated through the table
and printed one per line, useful for checking a job before running it.`,
	RunE: runMappings,
}

func init() {
	mappingsCmd.Flags().String("mapping-file", pathmap.DefaultConfigPath, "Windows path mapping file")

	rootCmd.AddCommand(mappingsCmd)
}

func runMappings(cmd *cobra.Command, args []string) error {
	mappingFile, _ := cmd.Flags().GetString("mapping-file")
	maps, err := pathmap.Load(mappingFile)
	if err != nil {
		return err
	}

	if maps.Empty() {
		fmt.Println("No path mappings configured; paths pass through unchanged.")
	} else {
		printTable("UNC mappings:", maps.UNC())
		printTable("Drive mappings:", maps.Drives())
	}

	for _, p := range args {
		fmt.Fprintf(os.Stdout, "%s -> %s\n", p, maps.Translate(p))
	}
	return nil
}

func printTable(title string, table map[string]string) {
	if len(table) == 0 {
		return
	}
	fmt.Println(title)
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-40s %s\n", k, table[k])
	}
}
