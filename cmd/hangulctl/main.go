package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Z4rru/hangulmastery/internal/config"
	"github.com/Z4rru/hangulmastery/internal/content"
	"github.com/Z4rru/hangulmastery/internal/database"
	"github.com/Z4rru/hangulmastery/internal/loader"
	"github.com/Z4rru/hangulmastery/internal/logger"
)

var (
	configPath string
	dbPath     string
	contentDir string
	debug      bool
)

func main() {
	root := &cobra.Command{
		Use:   "hangulctl",
		Short: "Hangul Mastery command line",
		Long:  "Seed the content database, inspect statistics, and practice Korean from the terminal.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(debug)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config.yaml")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	root.PersistentFlags().StringVar(&contentDir, "content", "", "Content directory (default: embedded content)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Verbose logging")

	root.AddCommand(seedCmd(), statsCmd(), quizCmd(), breatheCmd(), focusCmd())

	err := root.ExecuteContext(context.Background())
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig applies command line overrides on top of the loaded config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if contentDir != "" {
		cfg.Content.Dir = contentDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadCatalog(cfg *config.Config) (*content.Catalog, error) {
	cat, err := loader.Load(cfg.Content.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	logger.Debug("Content loaded",
		zap.Int("characters", len(cat.Characters())),
		zap.Int("vocabulary", len(cat.Vocabulary())),
	)
	return cat, nil
}

// openDB opens and migrates the configured database.
func openDB(cfg *config.Config) (*database.DB, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}
