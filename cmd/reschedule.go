package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/waypointhq/waypoint/internal/cascade"
	"github.com/waypointhq/waypoint/internal/config"
)

var (
	reschedProject  string
	reschedStart    string
	reschedDuration float64
	reschedCascade  bool
)

var rescheduleCmd = &cobra.Command{
	Use:   "reschedule <task-id>",
	Short: "Move or resize one task, optionally cascading to its dependents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID := args[0]
		cfg := config.Load()
		ctx := cmd.Context()

		if reschedStart == "" && !cmd.Flags().Changed("duration") {
			return fmt.Errorf("nothing to change: pass --start and/or --duration")
		}

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

		req := cascade.Request{
			ProjectID: reschedProject,
			TaskID:    taskID,
			Cascade:   reschedCascade,
		}
		if reschedStart != "" {
			start, err := parseDate(reschedStart)
			if err != nil {
				return err
			}
			req.NewStart = &start
		}
		if cmd.Flags().Changed("duration") {
			if reschedDuration < 0 {
				return fmt.Errorf("duration must be non-negative")
			}
			req.NewDurationHours = &reschedDuration
		}

		r := cascade.New(s,
			cascade.WithMaxDepth(cfg.MaxCascadeDepth),
			cascade.WithTelemetry(emitter))
		res, err := r.Reschedule(ctx, req)
		if err != nil {
			return err
		}
		printer(cfg).CascadeResult(res)
		return nil
	},
}

// parseDate accepts a date or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want 2006-01-02 or RFC 3339)", s)
}

func init() {
	rescheduleCmd.Flags().StringVar(&reschedProject, "project", "", "project the task belongs to")
	rescheduleCmd.Flags().StringVar(&reschedStart, "start", "", "new start date")
	rescheduleCmd.Flags().Float64Var(&reschedDuration, "duration", 0, "new duration in hours")
	rescheduleCmd.Flags().BoolVar(&reschedCascade, "cascade", false, "propagate the change to all transitive successors")
	_ = rescheduleCmd.MarkFlagRequired("project")
	rootCmd.AddCommand(rescheduleCmd)
}
