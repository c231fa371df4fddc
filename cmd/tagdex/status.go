package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/akeefe/tagdex/internal/checkpoint"
)

var statusCmd = &cobra.Command{
	Use:   "status <file>",
	Short: "Show the checkpoint status for a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbPath, err := cfg.DBPath()
		if err != nil {
			return err
		}
		store, err := checkpoint.NewSQLiteStore(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open checkpoint store: %w", err)
		}
		defer func() { _ = store.Close() }()

		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		phase, savedAt, err := store.Stat(cmd.Context(), path)
		if errors.Is(err, checkpoint.ErrNotFound) {
			printStatus(cmd.OutOrStdout(), path, false, "", time.Time{})
			return nil
		}
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), path, true, string(phase), savedAt)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <file>",
	Short: "Discard the saved checkpoint for a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbPath, err := cfg.DBPath()
		if err != nil {
			return err
		}
		store, err := checkpoint.NewSQLiteStore(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open checkpoint store: %w", err)
		}
		defer func() { _ = store.Close() }()

		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		if err := store.Delete(cmd.Context(), path); err != nil {
			return fmt.Errorf("failed to discard checkpoint: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "checkpoint cleared for %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
}
