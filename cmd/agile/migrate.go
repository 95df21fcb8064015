package main

import (
	"github.com/deppfellow/agile/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, loggerService, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		if err := database.Migrate(cmd.Context(), log, cfg.Database.DSN()); err != nil {
			log.Error().Err(err).Msg("migration failed")
			return err
		}
		return nil
	},
}
