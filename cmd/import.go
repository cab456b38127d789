package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waypointhq/waypoint/internal/config"
	"github.com/waypointhq/waypoint/internal/store"
)

var importProject string

var importCmd = &cobra.Command{
	Use:   "import <file.toml>",
	Short: "Import a TOML project fixture into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		ctx := cmd.Context()

		pf, err := store.LoadProjectFile(args[0])
		if err != nil {
			return err
		}
		if importProject != "" {
			pf.ProjectID = importProject
		}

		s, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.ImportProject(ctx, pf); err != nil {
			return err
		}
		fmt.Printf("imported %d tasks and %d dependencies into project %s\n",
			len(pf.Tasks), len(pf.Deps), pf.ProjectID)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importProject, "project", "", "override the project identifier from the file")
	rootCmd.AddCommand(importCmd)
}
