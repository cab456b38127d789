package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waypointhq/waypoint/internal/advisor"
	"github.com/waypointhq/waypoint/internal/config"
	"github.com/waypointhq/waypoint/internal/cpm"
)

var optimizeJSON bool

var optimizeCmd = &cobra.Command{
	Use:   "optimize <project-id>",
	Short: "Derive schedule-compression suggestions from a CPM analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID := args[0]
		cfg := config.Load()
		ctx := cmd.Context()

		s, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		tasks, deps, err := loadSnapshot(ctx, s, projectID)
		if err != nil {
			return err
		}

		res, err := cpm.Analyze(projectID, tasks, deps)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", projectID, err)
		}
		report := advisor.Optimize(res, tasks, deps)

		if optimizeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		printer(cfg).Suggestions(report)
		return nil
	},
}

func init() {
	optimizeCmd.Flags().BoolVar(&optimizeJSON, "json", false, "emit the raw report as JSON")
	rootCmd.AddCommand(optimizeCmd)
}
