// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintelligence/asset-converter/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversions from the history database",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("history-db", "", "SQLite history database (as passed to convert)")
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("history-db")
	if dbPath == "" {
		return fmt.Errorf("--history-db is required")
	}
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-5s  %-40s  %s\n", "When", "Kind", "Output", "Caption")
	for _, e := range entries {
		when := e.CreatedAt.Local().Format("2006-01-02 15:04:05")
		out := e.Output
		if len(out) > 40 {
			out = "..." + out[len(out)-37:]
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-5s  %-40s  %s\n", when, e.Kind, out, e.Caption)
	}
	return nil
}
