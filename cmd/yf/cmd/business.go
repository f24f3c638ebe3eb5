package cmd

import (
	"github.com/spf13/cobra"
)

func businessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "business <id>",
		Short: "Show business details",
		Long: "Fetches the full record for one business by its Yelp ID or alias,\n" +
			"including hours, photos, and claim status.",
		Example: `  yf business north-india-restaurant-san-francisco
  yf business WavvLdfdP6g8aZTtbBQHTw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newFusionClient()
			if err != nil {
				return err
			}

			biz, err := client.BusinessDetails(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(biz)
			}

			return printBusinessDetail(biz)
		},
	}
}
