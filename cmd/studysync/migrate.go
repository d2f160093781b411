package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database and apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := flags.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema up to date: %s\n", cfg.Database.Path)
			return nil
		},
	}
}
