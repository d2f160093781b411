package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studysync/studysync/internal/seed"
	"github.com/studysync/studysync/internal/service"
)

func newSeedCmd(flags *globalFlags) *cobra.Command {
	var fixturesPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Reset the database and load demo data",
		Long: `Delete every task, note, reflection and reminder, then load the demo
fixtures. Due dates and reminder times are relative to now.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := loadFixtures(fixturesPath)
			if err != nil {
				return err
			}

			cfg, st, err := flags.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			if err := st.Reset(ctx); err != nil {
				return err
			}
			summary, err := seed.Apply(ctx, service.New(st), fx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seed complete: %s (%s)\n", cfg.Database.Path, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&fixturesPath, "fixtures", "", "YAML fixtures file (default: built-in demo data)")
	return cmd
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures %s: %w", path, err)
	}
	return seed.Parse(data)
}
