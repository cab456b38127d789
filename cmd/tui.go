package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/waypointhq/waypoint/internal/config"
	"github.com/waypointhq/waypoint/internal/cpm"
	"github.com/waypointhq/waypoint/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <project-id>",
	Short: "Open the interactive timeline viewer",
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

		p := tea.NewProgram(tui.NewModel(res, tasks), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
