package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Phase-Platform/phase/internal/config"
	"github.com/Phase-Platform/phase/internal/db"
	"github.com/Phase-Platform/phase/internal/logging"
)

// loadConfig reads configuration from the sources named by the root flags
// and the process environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(config.Sources{File: path, DotEnv: envFile})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger writes to the command's stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config) (zerolog.Logger, error) {
	return logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.Mode == config.ModeDevelopment)
}

// connectFromConfig loads configuration and opens the store. The caller
// closes the returned handle.
func connectFromConfig(cmd *cobra.Command) (*config.Config, *gorm.DB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	gdb, err := db.Open(cfg.Database.URL, cfg.DBOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	return cfg, gdb, nil
}
