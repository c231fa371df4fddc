package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akeefe/tagdex/internal/config"
	"github.com/akeefe/tagdex/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tagdex",
	Short: "Resumable tag indexing for markdown documents",
	Long: `tagdex scans markdown documents for #tag tokens and maintains a "Tags"
index section at the end of each document, grouping tagged content by tag
with back-links to the date headings it was found under.

Indexing runs under a time budget: a run that cannot finish in time saves a
checkpoint and exits, and the next run resumes where it left off. The final
document is identical whether the job ran in one pass or across many.`,
}

var configPath string

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("tagdex %s\n", version.String()))
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to tagdex.toml (default: search upward from the working directory)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to determine working directory: %w", err)
	}
	return config.LoadOrDefault(wd)
}
