package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func reviewsCmd() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "reviews <id>",
		Short: "Show review excerpts for a business",
		Example: `  yf reviews north-india-restaurant-san-francisco
  yf reviews WavvLdfdP6g8aZTtbBQHTw --locale fr_FR`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newFusionClient()
			if err != nil {
				return err
			}

			resp, err := client.BusinessReviews(cmd.Context(), args[0], locale)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Reviews) == 0 {
				fmt.Println("No reviews found.")
				return nil
			}

			fmt.Printf("Showing %d of %d reviews\n\n", len(resp.Reviews), resp.Total)
			return printReviewsTable(resp.Reviews)
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "review language, e.g. fr_FR")

	return cmd
}
