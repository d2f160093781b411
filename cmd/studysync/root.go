package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/store"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	dbPath     string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "studysync",
		Short: "Personal study planner: tasks, notes, reflections and reminders",
		Long: `StudySync keeps study tasks with subtasks, free-form notes linked to tasks,
daily mood/productivity reflections and time-based reminders in a local
SQLite database, and serves them over a JSON HTTP API.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", model.DefaultConfigPath(), "Path to the YAML config file")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "SQLite database path (overrides config)")

	root.AddCommand(
		newServeCmd(flags),
		newMigrateCmd(flags),
		newSeedCmd(flags),
		newDueCmd(flags),
		newWatchCmd(flags),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads the config file and applies flag overrides.
func (f *globalFlags) loadConfig() (*model.AppConfig, error) {
	cfg, err := model.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.dbPath != "" {
		cfg.Database.Path = f.dbPath
	}
	return cfg, nil
}

// openStore loads the config and opens the database it names.
func (f *globalFlags) openStore() (*model.AppConfig, *store.SQLiteStore, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database %s: %w", cfg.Database.Path, err)
	}
	return cfg, st, nil
}
