// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the doiminer CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grmmg/doiminer/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, otherwise the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the doiminer CLI.
var rootCmd = &cobra.Command{
	Use:   "doiminer",
	Short: "Discover journal-article DOIs by title keywords",
	Long: `doiminer mines the CrossRef metadata corpus for journal articles whose
titles match a set of keywords. Candidates are filtered by publisher and
publication year, scored by title-keyword match count, deduplicated by
DOI, and ranked for triage.

Results render as a table by default and can be exported as JSON, CSV, or
a CSL-YAML bibliography for Pandoc and reference managers.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./doiminer.yaml or ~/.config/doiminer/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging of requests and retries")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("doiminer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "doiminer"))
		}
	}

	viper.SetEnvPrefix("DOIMINER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
