package yelp

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidRequest marks search parameters rejected before any request is
// issued. Use errors.Is to distinguish these from API failures.
var ErrInvalidRequest = errors.New("invalid search request")

// Sort orders accepted by the search endpoint.
const (
	SortBestMatch   = "best_match"
	SortRating      = "rating"
	SortReviewCount = "review_count"
	SortDistance    = "distance"
)

// SearchRequest defines the parameters for a business search. Every filter
// the search endpoint recognizes is an explicit field; there is no
// free-form parameter passthrough. Zero values are omitted from the
// request.
type SearchRequest struct {
	// Term is the search keyword, e.g. "coffee" or "Four Barrel".
	Term string

	// Location is a free-form address, neighborhood, or city. The API
	// requires either Location or a Latitude/Longitude pair; that
	// requirement is enforced server-side so its error detail surfaces
	// unmodified.
	Location  string
	Latitude  float64
	Longitude float64

	// Radius is the search radius in meters (API maximum 40000).
	Radius int

	// Categories filters by category alias, e.g. "bars", "french".
	Categories []string

	// Locale selects the language/country variant, e.g. "fr_FR".
	Locale string

	// Limit is the total number of results wanted across all pages. The
	// API caps each underlying request at 50, so larger values paginate.
	// Zero issues a single request with the API's default page size.
	Limit int

	// Offset is the starting position within the result set.
	Offset int

	// SortBy is one of the Sort constants; the API default is best_match.
	SortBy string

	// Price filters by price tier, each in 1 (=$) through 4 (=$$$$).
	Price []int

	// OpenNow restricts results to businesses currently open. Cannot be
	// combined with OpenAt.
	OpenNow bool

	// OpenAt restricts results to businesses open at the given Unix time.
	OpenAt int64

	// Attributes filters by attribute, e.g. "hot_and_new", "deals".
	Attributes []string
}

// validate rejects parameter combinations the API would never accept, so
// they fail before any request is issued.
func (r SearchRequest) validate() error {
	var errs []error

	if r.Limit < 0 {
		errs = append(errs, errors.New("limit must not be negative"))
	}
	if r.Offset < 0 {
		errs = append(errs, errors.New("offset must not be negative"))
	}
	if r.OpenNow && r.OpenAt != 0 {
		errs = append(errs, errors.New("open_now and open_at cannot be combined"))
	}
	for _, tier := range r.Price {
		if tier < 1 || tier > 4 {
			errs = append(errs, errors.New("price tiers must be between 1 and 4"))
			break
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidRequest, errors.Join(errs...))
}

// values encodes the request as query-string parameters, omitting unset
// fields.
func (r SearchRequest) values() url.Values {
	params := url.Values{}

	if r.Term != "" {
		params.Set("term", r.Term)
	}
	if r.Location != "" {
		params.Set("location", r.Location)
	}
	if r.Latitude != 0 || r.Longitude != 0 {
		params.Set("latitude", strconv.FormatFloat(r.Latitude, 'f', -1, 64))
		params.Set("longitude", strconv.FormatFloat(r.Longitude, 'f', -1, 64))
	}
	if r.Radius > 0 {
		params.Set("radius", strconv.Itoa(r.Radius))
	}
	if len(r.Categories) > 0 {
		params.Set("categories", strings.Join(r.Categories, ","))
	}
	if r.Locale != "" {
		params.Set("locale", r.Locale)
	}
	if r.Limit > 0 {
		params.Set("limit", strconv.Itoa(r.Limit))
	}
	if r.Offset > 0 {
		params.Set("offset", strconv.Itoa(r.Offset))
	}
	if r.SortBy != "" {
		params.Set("sort_by", r.SortBy)
	}
	if len(r.Price) > 0 {
		tiers := make([]string, len(r.Price))
		for i, tier := range r.Price {
			tiers[i] = strconv.Itoa(tier)
		}
		params.Set("price", strings.Join(tiers, ","))
	}
	if r.OpenNow {
		params.Set("open_now", "true")
	}
	if r.OpenAt != 0 {
		params.Set("open_at", strconv.FormatInt(r.OpenAt, 10))
	}
	if len(r.Attributes) > 0 {
		params.Set("attributes", strings.Join(r.Attributes, ","))
	}

	return params
}
