package main

import (
	"github.com/spf13/cobra"

	"github.com/tair/catalog-mvc/internal/catalog/repository"
	"github.com/tair/catalog-mvc/pkg/database"
	"github.com/tair/catalog-mvc/pkg/logger"
)

func migrateCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the catalog tables and seed default categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.NewGormConnection(cfg.Database)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := repository.AutoMigrate(db); err != nil {
				return err
			}
			logger.Logger.Info().Msg("Migrations applied")

			if !seed {
				return nil
			}
			created, err := repository.SeedCategories(cmd.Context(), db, repository.DefaultCategories)
			if err != nil {
				return err
			}
			logger.Logger.Info().Int("created", created).Msg("Categories seeded")
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", true, "insert default categories")
	return cmd
}
