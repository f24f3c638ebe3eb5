package yelp

// SearchResponse holds the results of a business search. For paginated
// searches Businesses carries every page's records in request order, Total
// is the total-count hint from the last page fetched, and Region describes
// the area the API resolved the query to.
type SearchResponse struct {
	Businesses []Business `json:"businesses"`
	Total      int        `json:"total"`
	Region     *Region    `json:"region,omitempty"`
}

// Business represents a single business record. Search results carry the
// summary subset; detail lookups also populate Photos, Hours, and
// IsClaimed.
type Business struct {
	ID           string      `json:"id"`
	Alias        string      `json:"alias"`
	Name         string      `json:"name"`
	ImageURL     string      `json:"image_url"`
	IsClaimed    bool        `json:"is_claimed,omitempty"`
	IsClosed     bool        `json:"is_closed"`
	URL          string      `json:"url"`
	Phone        string      `json:"phone"`
	DisplayPhone string      `json:"display_phone"`
	ReviewCount  int         `json:"review_count"`
	Categories   []Category  `json:"categories"`
	Rating       float64     `json:"rating"`
	Price        string      `json:"price,omitempty"`
	Coordinates  Coordinates `json:"coordinates"`
	Location     Location    `json:"location"`
	Distance     float64     `json:"distance,omitempty"`
	Transactions []string    `json:"transactions,omitempty"`
	Photos       []string    `json:"photos,omitempty"`
	Hours        []Hours     `json:"hours,omitempty"`
}

// Category holds a business category pairing.
type Category struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

// Coordinates holds a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location holds a business street address.
type Location struct {
	Address1       string   `json:"address1"`
	Address2       string   `json:"address2"`
	Address3       string   `json:"address3"`
	City           string   `json:"city"`
	ZipCode        string   `json:"zip_code"`
	Country        string   `json:"country"`
	State          string   `json:"state"`
	DisplayAddress []string `json:"display_address"`
}

// Region describes the geographic area a search resolved to.
type Region struct {
	Center Coordinates `json:"center"`
}

// Hours holds a business's weekly opening hours.
type Hours struct {
	HoursType string     `json:"hours_type"`
	IsOpenNow bool       `json:"is_open_now"`
	Open      []OpenSpan `json:"open"`
}

// OpenSpan is one contiguous opening window within a week. Day is 0-indexed
// from Monday; Start and End are 24-hour "HHMM" strings.
type OpenSpan struct {
	Day         int    `json:"day"`
	Start       string `json:"start"`
	End         string `json:"end"`
	IsOvernight bool   `json:"is_overnight"`
}

// ReviewsResponse holds the results of a business review lookup.
type ReviewsResponse struct {
	Reviews           []Review `json:"reviews"`
	Total             int      `json:"total"`
	PossibleLanguages []string `json:"possible_languages,omitempty"`
}

// Review represents a single review excerpt.
type Review struct {
	ID          string  `json:"id"`
	URL         string  `json:"url"`
	Text        string  `json:"text"`
	Rating      float64 `json:"rating"`
	TimeCreated string  `json:"time_created"`
	User        User    `json:"user"`
}

// User holds a reviewer's public profile fields.
type User struct {
	ID         string `json:"id"`
	ProfileURL string `json:"profile_url"`
	ImageURL   string `json:"image_url"`
	Name       string `json:"name"`
}
