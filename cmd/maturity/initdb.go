package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openmaturity/maturity/internal/db"
	"github.com/openmaturity/maturity/internal/utils"
)

func newInitDBCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the database schema (idempotent)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = utils.SafeEnv("MATURITY_DB_PATH", "maturity.db")
			}
			store, err := db.Open(dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.InitSchema(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema ready at %s\n", dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default: $MATURITY_DB_PATH or maturity.db)")
	return cmd
}
