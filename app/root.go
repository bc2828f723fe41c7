// Package app implements the main application commands.
package app

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/profilemanager/profilemanager/internal/config"
	"github.com/profilemanager/profilemanager/internal/logger"
)

var (
	configPath string // Path to the configuration directory

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "profilemanager",
		Short: "Profile Manager edits a single locally stored user profile",
		Long: `Profile Manager keeps one user profile (username, email, password and picture)
in a local database and lets you view, edit and clear it from a web page or the command line.`,
		Args:              cobra.OnlyValidArgs,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"./etc/",
		"Directory holding main.toml",
	)
}

// loadConfig reads the configuration and sets up logging before any command runs.
func loadConfig(_ *cobra.Command, _ []string) error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err //nolint:wrapcheck
	}

	if err = logger.Init(cfg.Log); err != nil {
		return errors.Wrap(err, "failed to init logger")
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
