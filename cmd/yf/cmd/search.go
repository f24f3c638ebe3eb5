package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfreitag/yelp-fusion/pkg/yelp"
)

func searchCmd() *cobra.Command {
	var (
		location   string
		latitude   float64
		longitude  float64
		radius     int
		categories []string
		locale     string
		limit      int
		offset     int
		sortBy     string
		price      []int
		openNow    bool
		attributes []string
	)

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search for businesses",
		Long: "Searches the Fusion API for businesses matching a term. The API\n" +
			"requires either --location or a --lat/--lng pair. Limits above one\n" +
			"API page are fetched with sequential paged requests.",
		Example: `  yf search coffee --location "Portland, OR"
  yf search ramen --lat 37.7749 --lng -122.4194 --radius 5000
  yf search tacos --location "San Diego" --limit 120 --sort rating
  yf search pizza --location NYC --price 1,2 --open-now`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newFusionClient()
			if err != nil {
				return err
			}

			resp, err := client.Search(cmd.Context(), yelp.SearchRequest{
				Term:       args[0],
				Location:   location,
				Latitude:   latitude,
				Longitude:  longitude,
				Radius:     radius,
				Categories: categories,
				Locale:     locale,
				Limit:      limit,
				Offset:     offset,
				SortBy:     sortBy,
				Price:      price,
				OpenNow:    openNow,
				Attributes: attributes,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Businesses) == 0 {
				fmt.Println("No businesses found.")
				return nil
			}

			fmt.Printf("Showing %d of %d businesses\n\n", len(resp.Businesses), resp.Total)
			return printBusinessesTable(resp.Businesses)
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "address, neighborhood, or city")
	cmd.Flags().Float64Var(&latitude, "lat", 0, "latitude (use with --lng)")
	cmd.Flags().Float64Var(&longitude, "lng", 0, "longitude (use with --lat)")
	cmd.Flags().IntVar(&radius, "radius", 0, "search radius in meters (max 40000)")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "category alias filters")
	cmd.Flags().StringVar(&locale, "locale", "", "response locale, e.g. fr_FR")
	cmd.Flags().IntVar(&limit, "limit", 20, "total number of results to fetch")
	cmd.Flags().IntVar(&offset, "offset", 0, "result offset")
	cmd.Flags().
		StringVar(&sortBy, "sort", "", "sort order (best_match, rating, review_count, distance)")
	cmd.Flags().IntSliceVar(&price, "price", nil, "price tiers (1-4)")
	cmd.Flags().BoolVar(&openNow, "open-now", false, "only businesses open right now")
	cmd.Flags().
		StringSliceVar(&attributes, "attribute", nil, "attribute filters, e.g. hot_and_new")

	return cmd
}
