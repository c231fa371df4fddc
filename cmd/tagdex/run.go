package main

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/akeefe/tagdex/internal/checkpoint"
	"github.com/akeefe/tagdex/internal/document"
	"github.com/akeefe/tagdex/internal/engine"
)

var (
	runJobs         int
	runUntilDone    bool
	runForceRestart bool
	runBudget       time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Run or resume tag indexing for one or more documents",
	Long: `Run one indexing pass for each document. A pass that exhausts its time
budget saves a checkpoint and reports suspended; rerun the command (or pass
--until-complete) to continue from the checkpoint.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if runBudget > 0 {
			cfg.Budget.Gather.Duration = runBudget
			cfg.Budget.Write.Duration = runBudget
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

		open := func(docID string) (document.Document, error) {
			return document.OpenFile(docID)
		}
		eng := engine.New(store, open, cfg)

		jobs := runJobs
		if jobs <= 0 {
			jobs = runtime.GOMAXPROCS(0)
		}

		out := cmd.OutOrStdout()
		var mu sync.Mutex

		g, gctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(min(jobs, len(args)))
		for _, arg := range args {
			path, err := filepath.Abs(arg)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", arg, err)
			}
			g.Go(func() error {
				if runForceRestart {
					if err := store.Delete(gctx, path); err != nil {
						return fmt.Errorf("%s: failed to discard checkpoint: %w", path, err)
					}
				}
				for {
					res, err := eng.RunIndexing(gctx, path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					mu.Lock()
					printResult(out, path, res)
					mu.Unlock()
					if !res.Suspended || !runUntilDone {
						return nil
					}
				}
			})
		}
		return g.Wait()
	},
}

func init() {
	runCmd.Flags().IntVarP(&runJobs, "jobs", "j", 0, "Number of documents to index concurrently (0 = GOMAXPROCS)")
	runCmd.Flags().BoolVar(&runUntilDone, "until-complete", false, "Keep rerunning suspended documents until they complete")
	runCmd.Flags().BoolVar(&runForceRestart, "force-restart", false, "Discard saved checkpoints and start fresh runs")
	runCmd.Flags().DurationVar(&runBudget, "budget", 0, "Override the per-phase time budget (0 = use config)")

	rootCmd.AddCommand(runCmd)
}
