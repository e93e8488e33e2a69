// Package cmd - init-db command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cloudcost/db"
	"cloudcost/internal/config"
)

// initDBCmd creates the local database schema. Shared deployments manage
// their schemas externally; this serves the sqlite local mode.
var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the local database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		store, err := db.Open(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.InitSchema(context.Background()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Schema ready (%s: %s)\n", cfg.Database.Driver, cfg.Database.DSN)
		return nil
	},
}
