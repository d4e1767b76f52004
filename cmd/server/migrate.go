package main

import (
	"sport_club_backend/internal/config"
	"sport_club_backend/internal/database"
	"sport_club_backend/pkg/utils"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		utils.InitLogger(cfg.Log.Level, cfg.Log.Pretty)

		db, err := database.Open(cmd.Context(), cfg.DSN(), cfg.Database.MaxConns)
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := database.Migrate(cmd.Context(), db)
		if err != nil {
			return err
		}
		cmd.Printf("applied %d migration(s)\n", applied)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
