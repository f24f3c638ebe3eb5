// Package cmd implements the yf CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mfreitag/yelp-fusion/pkg/yelp"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "yf",
		Short: "CLI client for the Yelp Fusion API",
		Long: "yf is a command-line client for the Yelp Fusion v3 API.\n" +
			"It searches businesses, shows business details, and fetches review\n" +
			"excerpts from the terminal, handling OAuth and result paging for you.",
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.yf.yaml)")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(businessCmd())
	rootCmd.AddCommand(reviewsCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".yf")
	}

	viper.SetEnvPrefix("YF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newFusionClient builds a Fusion client from viper config. Credentials come
// from the config file or the YF_CLIENT_ID / YF_CLIENT_SECRET environment.
func newFusionClient() (yelp.Client, error) {
	clientID := viper.GetString("client_id")
	clientSecret := viper.GetString("client_secret")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf(
			"missing Yelp credentials: set client_id and client_secret in " +
				"$HOME/.yf.yaml or export YF_CLIENT_ID and YF_CLIENT_SECRET",
		)
	}

	var authOpts []yelp.OAuthOption
	if u := viper.GetString("token_url"); u != "" {
		authOpts = append(authOpts, yelp.WithTokenURL(u))
	}
	tokens := yelp.NewOAuthTokenProvider(clientID, clientSecret, authOpts...)

	var opts []yelp.FusionOption
	if u := viper.GetString("base_url"); u != "" {
		opts = append(opts, yelp.WithBaseURL(u))
	}

	return yelp.NewFusionClient(tokens, opts...), nil
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
