// Package cmd implements the CLI commands for the yelp-fusion server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "yelp-fusion",
	Short: "HTTP proxy and watch daemon for the Yelp Fusion API",
	Long: "A service that fronts the Yelp Fusion v3 API: it manages OAuth tokens,\n" +
		"transparently pages large search requests, exposes search, business detail\n" +
		"and review endpoints over HTTP, and polls saved searches to announce\n" +
		"businesses the first time they appear.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
