package domain

import (
	"strconv"
	"strings"
)

// ListingSort selects the ordering of a listing query.
type ListingSort string

const (
	SortNewest    ListingSort = "newest"
	SortOldest    ListingSort = "oldest"
	SortPriceAsc  ListingSort = "price_asc"
	SortPriceDesc ListingSort = "price_desc"
	SortSqftDesc  ListingSort = "sqft_desc"
)

// ListingSorts lists the supported sort keys with their labels, in menu order.
var ListingSorts = []struct {
	Key   ListingSort
	Label string
}{
	{SortNewest, "Newest"},
	{SortPriceAsc, "Price: Low to High"},
	{SortPriceDesc, "Price: High to Low"},
	{SortSqftDesc, "Largest"},
	{SortOldest, "Oldest"},
}

// IsValid reports whether s is a supported sort key.
func (s ListingSort) IsValid() bool {
	for _, known := range ListingSorts {
		if s == known.Key {
			return true
		}
	}
	return false
}

const (
	// DefaultPerPage is used when a query does not set PerPage.
	DefaultPerPage = 12
	// MaxPerPage caps PerPage.
	MaxPerPage = 48
)

// ListingQuery filters, sorts and paginates listings.
type ListingQuery struct {
	Status       ListingStatus `json:"status,omitempty" form:"status" prop:"status"`
	City         string        `json:"city,omitempty" form:"city" prop:"city"`
	PropertyType string        `json:"property_type,omitempty" form:"property_type" prop:"property_type"`
	MinPrice     int64         `json:"min_price,omitempty" form:"min_price" prop:"min_price"`
	MaxPrice     int64         `json:"max_price,omitempty" form:"max_price" prop:"max_price"`
	MinBeds      int           `json:"min_beds,omitempty" form:"min_beds" prop:"min_beds"`
	MinBaths     float64       `json:"min_baths,omitempty" form:"min_baths" prop:"min_baths"`
	FeaturedOnly bool          `json:"featured,omitempty" form:"featured" prop:"featured"`
	AgentID      string        `json:"agent_id,omitempty" form:"agent_id" prop:"agent_id"`
	IDs          []string      `json:"ids,omitempty" form:"ids" prop:"ids"`
	Sort         ListingSort   `json:"sort,omitempty" form:"sort" prop:"sort"`
	Page         int           `json:"page,omitempty" form:"page" prop:"page"`
	PerPage      int           `json:"per_page,omitempty" form:"per_page" prop:"per_page"`
}

// Normalized returns a copy with pagination clamped and unknown enums dropped.
func (q ListingQuery) Normalized() ListingQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	if !q.Sort.IsValid() {
		q.Sort = SortNewest
	}
	if q.Status != "" && !q.Status.IsValid() {
		q.Status = ""
	}
	if q.MinPrice < 0 {
		q.MinPrice = 0
	}
	if q.MaxPrice < 0 {
		q.MaxPrice = 0
	}
	return q
}

// Offset returns the row offset for the query's page.
func (q ListingQuery) Offset() int {
	n := q.Normalized()
	return (n.Page - 1) * n.PerPage
}

// Params returns the non-empty filters as query string values, the inverse
// of binding a ListingQuery from a request. Page is omitted.
func (q ListingQuery) Params() map[string]string {
	out := make(map[string]string)
	set := func(k, v string) {
		if v != "" && v != "0" {
			out[k] = v
		}
	}
	set("status", string(q.Status))
	set("city", q.City)
	set("property_type", q.PropertyType)
	set("min_price", strconv.FormatInt(q.MinPrice, 10))
	set("max_price", strconv.FormatInt(q.MaxPrice, 10))
	set("min_beds", strconv.Itoa(q.MinBeds))
	set("min_baths", strconv.FormatFloat(q.MinBaths, 'f', -1, 64))
	if q.FeaturedOnly {
		out["featured"] = "true"
	}
	set("agent_id", q.AgentID)
	set("ids", strings.Join(q.IDs, ","))
	set("sort", string(q.Sort))
	if q.PerPage > 0 {
		set("per_page", strconv.Itoa(q.PerPage))
	}
	return out
}

// ListingPage is one page of query results.
type ListingPage struct {
	Items      []*Listing `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
	TotalPages int        `json:"total_pages"`
}

// NewListingPage builds a page, computing TotalPages from total and the query.
func NewListingPage(items []*Listing, total int, q ListingQuery) *ListingPage {
	n := q.Normalized()
	pages := 0
	if total > 0 {
		pages = (total + n.PerPage - 1) / n.PerPage
	}
	if items == nil {
		items = []*Listing{}
	}
	return &ListingPage{
		Items:      items,
		Total:      total,
		Page:       n.Page,
		PerPage:    n.PerPage,
		TotalPages: pages,
	}
}

// HasMore reports whether a later page exists.
func (p *ListingPage) HasMore() bool {
	return p != nil && p.Page < p.TotalPages
}
