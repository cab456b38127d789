package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/waypointhq/waypoint/internal/config"
	"github.com/waypointhq/waypoint/internal/cpm"
)

var watchCmd = &cobra.Command{
	Use:   "watch <project-id>",
	Short: "Re-run analysis whenever the project database changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID := args[0]
		cfg := config.Load()
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		runOnce := func() {
			tasks, deps, err := loadSnapshot(ctx, s, projectID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "load: %v\n", err)
				return
			}
			res, err := cpm.Analyze(projectID, tasks, deps)
			if err != nil {
				fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
				return
			}
			printer(cfg).AnalysisReport(res, tasks)
		}
		runOnce()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		defer watcher.Close()
		if err := watcher.Add(cfg.DatabasePath); err != nil {
			return fmt.Errorf("watch %s: %w", cfg.DatabasePath, err)
		}
		fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", cfg.DatabasePath)

		// Debounce: coalesce write bursts into one re-analysis.
		const debounce = 250 * time.Millisecond
		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					pending = time.After(debounce)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(os.Stderr, "watch: %v\n", err)
			case <-pending:
				pending = nil
				runOnce()
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
