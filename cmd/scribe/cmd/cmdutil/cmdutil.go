// Package cmdutil holds the setup shared by every scribe subcommand.
package cmdutil

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scribe/internal/app/logger"
	"scribe/internal/config"
)

// LoadSettings reads configuration from the --config file and the environment
func LoadSettings(cmd *cobra.Command) (*config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// NewLogger builds a development logger with --verbose and a production one otherwise
func NewLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logger.New(verbose)
}

// Setup loads settings and a logger; callers should Sync the logger when done
func Setup(cmd *cobra.Command) (*config.Settings, *zap.Logger, error) {
	settings, err := LoadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := NewLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	return settings, log, nil
}
