package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"go.uber.org/zap"

	"github.com/Z4rru/hangulmastery/internal/database"
	"github.com/Z4rru/hangulmastery/internal/logger"
)

func seedCmd() *cobra.Command {
	var force, optimize bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the content tables into SQLite",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			progress := mpb.New(mpb.WithOutput(cmd.OutOrStdout()), mpb.WithWidth(48))
			seeded, err := database.NewRepository(db).SeedCatalog(cat, force, progress)
			progress.Wait()
			if err != nil {
				return err
			}

			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "Content unchanged, nothing to do (use --force to reseed).")
				return nil
			}

			if optimize {
				logger.Info("Optimizing database")
				if err := db.Exec("VACUUM").Error; err != nil {
					logger.Warn("Failed to vacuum database", zap.Error(err))
				}
				if err := db.Exec("ANALYZE").Error; err != nil {
					logger.Warn("Failed to analyze database", zap.Error(err))
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s\n", cfg.Database.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reseed even when content is unchanged")
	cmd.Flags().BoolVar(&optimize, "optimize", true, "Run VACUUM and ANALYZE after seeding")
	return cmd
}
