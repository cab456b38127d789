package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waypointhq/waypoint/internal/config"
	"github.com/waypointhq/waypoint/internal/cpm"
	"github.com/waypointhq/waypoint/internal/telemetry"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <project-id>",
	Short: "Run Critical Path Method analysis over a project",
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

		emitter, err := openTelemetry(cfg)
		if err != nil {
			return err
		}
		defer emitter.Close()

		tasks, deps, err := loadSnapshot(ctx, s, projectID)
		if err != nil {
			return err
		}

		_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindAnalysisStart, ProjectID: projectID})
		res, err := cpm.Analyze(projectID, tasks, deps)
		if err != nil {
			_ = emitter.Emit(telemetry.Event{
				Kind:      telemetry.KindAnalysisFailed,
				ProjectID: projectID,
				Data:      map[string]any{"error": err.Error()},
			})
			return fmt.Errorf("analyze %s: %w", projectID, err)
		}
		_ = emitter.Emit(telemetry.Event{
			Kind:      telemetry.KindAnalysisDone,
			ProjectID: projectID,
			Data: map[string]any{
				"health":        res.HealthScore,
				"critical_path": res.CriticalPathLength,
				"duration_days": res.ProjectDurationDays,
			},
		})

		// Persist the critical display hint; the analysis itself stays
		// ephemeral.
		if err := s.MarkCritical(ctx, projectID, res.CriticalPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printer(cfg).AnalysisReport(res, tasks)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit the raw result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}
