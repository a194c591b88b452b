package main

import (
	"fmt"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update all tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Migrate(app.db, app.logger); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d tables\n", len(entity.All()))
		return nil
	},
}
