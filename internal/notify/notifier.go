// Package notify defines the notification interface and implementations
// for new-business alert delivery.
package notify

import (
	"context"
	"strings"

	"github.com/mfreitag/yelp-fusion/pkg/yelp"
)

// AlertPayload contains the data needed to announce a newly seen business.
type AlertPayload struct {
	WatchName   string
	BusinessID  string
	Name        string
	YelpURL     string
	ImageURL    string
	Rating      float64
	ReviewCount int
	Price       string
	Address     string
	Categories  []string
}

// Notifier defines the interface for sending new-business notifications.
type Notifier interface {
	SendAlert(ctx context.Context, alert AlertPayload) error
	SendBatchAlert(ctx context.Context, alerts []AlertPayload, watchName string) error
}

// PayloadFromBusiness builds an AlertPayload from a business record.
func PayloadFromBusiness(watchName string, biz yelp.Business) AlertPayload {
	categories := make([]string, 0, len(biz.Categories))
	for _, cat := range biz.Categories {
		categories = append(categories, cat.Title)
	}

	return AlertPayload{
		WatchName:   watchName,
		BusinessID:  biz.ID,
		Name:        biz.Name,
		YelpURL:     biz.URL,
		ImageURL:    biz.ImageURL,
		Rating:      biz.Rating,
		ReviewCount: biz.ReviewCount,
		Price:       biz.Price,
		Address:     strings.Join(biz.Location.DisplayAddress, ", "),
		Categories:  categories,
	}
}
