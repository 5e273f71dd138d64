package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := dbpkg.Open(cfg)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			slog.Info("migrations applied")
			return nil
		},
	}
}

func newSeedAdminCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-admin",
		Short: "Create or promote the ADMIN_EMAIL account and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := dbpkg.Open(cfg)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}
			if cfg.Admin.Email == "" {
				slog.Warn("ADMIN_EMAIL not set, nothing to seed")
				return nil
			}
			return dbpkg.SeedAdmin(db, cfg.Admin)
		},
	}
}
