package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"HirschPicks/internal/config"
	"HirschPicks/internal/logger"
)

var (
	configPath string
	envFiles   []string
	logLevel   string

	cfg *config.Config
)

// rootCmd is the base command for the picker CLI.
var rootCmd = &cobra.Command{
	Use:   "hirsch-picks",
	Short: "Daily per-tier stock picks with a self-tuning track record",
	Long: `hirsch-picks selects, scores and republishes one top candidate per market-cap
tier for each trading window, and grades every prior pick against the session it
was made for.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFiles...); err != nil {
			return err
		}
		if v := os.Getenv("CONFIG_PATH"); v != "" && !cmd.Flags().Changed("config") {
			configPath = v
		}
		c, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if logLevel != "" {
			c.Log.Level = logLevel
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
		if err := logger.Init(loggerOptions(c)); err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func loggerOptions(c *config.Config) logger.Options {
	return logger.Options{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
		JSON:       strings.EqualFold(c.Log.Format, "json"),
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "Dotenv files loaded before the config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
