package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mfreitag/yelp-fusion/pkg/yelp"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printBusinessesTable(businesses []yelp.Business) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("NAME\tRATING\tREVIEWS\tPRICE\tCATEGORIES\tALIAS\n")
	for i := range businesses {
		b := &businesses[i]
		tw.writef("%s\t%.1f\t%d\t%s\t%s\t%s\n",
			truncate(b.Name, 32),
			b.Rating,
			b.ReviewCount,
			b.Price,
			truncate(joinCategories(b.Categories), 28),
			b.Alias,
		)
	}
	return tw.finish()
}

func printBusinessDetail(b *yelp.Business) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Name:\t%s\n", b.Name)
	tw.writef("ID:\t%s\n", b.ID)
	tw.writef("Alias:\t%s\n", b.Alias)
	tw.writef("Rating:\t%.1f (%d reviews)\n", b.Rating, b.ReviewCount)
	if b.Price != "" {
		tw.writef("Price:\t%s\n", b.Price)
	}
	tw.writef("Categories:\t%s\n", joinCategories(b.Categories))
	tw.writef("Address:\t%s\n", strings.Join(b.Location.DisplayAddress, ", "))
	if b.DisplayPhone != "" {
		tw.writef("Phone:\t%s\n", b.DisplayPhone)
	}
	tw.writef("Claimed:\t%v\n", b.IsClaimed)
	tw.writef("Closed:\t%v\n", b.IsClosed)
	if len(b.Transactions) > 0 {
		tw.writef("Transactions:\t%s\n", strings.Join(b.Transactions, ", "))
	}
	if len(b.Hours) > 0 {
		tw.writef("Open now:\t%v\n", b.Hours[0].IsOpenNow)
	}
	tw.writef("URL:\t%s\n", b.URL)
	return tw.finish()
}

func printReviewsTable(reviews []yelp.Review) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("RATING\tDATE\tUSER\tEXCERPT\n")
	for i := range reviews {
		r := &reviews[i]
		tw.writef("%.0f\t%s\t%s\t%s\n",
			r.Rating,
			r.TimeCreated,
			truncate(r.User.Name, 20),
			truncate(strings.ReplaceAll(r.Text, "\n", " "), 60),
		)
	}
	return tw.finish()
}

func joinCategories(cats []yelp.Category) string {
	titles := make([]string, len(cats))
	for i, c := range cats {
		titles[i] = c.Title
	}
	return strings.Join(titles, ", ")
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
