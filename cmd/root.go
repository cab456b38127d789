package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/waypointhq/waypoint/internal/config"
	"github.com/waypointhq/waypoint/internal/model"
	"github.com/waypointhq/waypoint/internal/store"
	"github.com/waypointhq/waypoint/internal/telemetry"
	"github.com/waypointhq/waypoint/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "waypoint",
	Short: "Project scheduling engine",
	Long:  "Waypoint analyzes project task graphs with the Critical Path Method and propagates schedule edits through dependency chains.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .waypoint.yaml)")
	rootCmd.PersistentFlags().String("db", "", "database path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".waypoint")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("WAYPOINT")
	viper.AutomaticEnv()

	if db, _ := rootCmd.Flags().GetString("db"); db != "" {
		viper.Set("database_path", db)
	}
	if noColor, _ := rootCmd.Flags().GetBool("no-color"); noColor {
		viper.Set("color", false)
	}

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// openStore opens the configured database.
func openStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	s, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DatabasePath, err)
	}
	return s, nil
}

// openTelemetry creates the configured emitter, or nil (a valid no-op
// emitter) when telemetry is not configured.
func openTelemetry(cfg config.Config) (*telemetry.Emitter, error) {
	if cfg.TelemetryPath == "" {
		return nil, nil
	}
	return telemetry.NewEmitter(cfg.TelemetryPath)
}

// loadSnapshot fetches a project's tasks and dependencies.
func loadSnapshot(ctx context.Context, s store.SnapshotReader, projectID string) ([]model.Task, []model.Dependency, error) {
	tasks, err := s.Tasks(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	deps, err := s.Dependencies(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	return tasks, deps, nil
}

// printer builds the stderr report printer from config.
func printer(cfg config.Config) *ui.Printer {
	return ui.New(os.Stdout, cfg.Color)
}
