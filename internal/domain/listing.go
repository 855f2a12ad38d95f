package domain

import (
	"fmt"
	"strings"
	"time"
)

// ListingStatus represents the market status of a listing.
type ListingStatus string

const (
	// StatusActive is a listing currently for sale.
	StatusActive ListingStatus = "active"
	// StatusPending is a listing under contract.
	StatusPending ListingStatus = "pending"
	// StatusSold is a closed listing.
	StatusSold ListingStatus = "sold"
	// StatusForRent is a rental listing; prices are monthly.
	StatusForRent ListingStatus = "for-rent"
	// StatusComingSoon is a listing announced but not yet on the market.
	StatusComingSoon ListingStatus = "coming-soon"
)

// ListingStatuses lists every known status in display order.
var ListingStatuses = []ListingStatus{StatusActive, StatusComingSoon, StatusPending, StatusSold, StatusForRent}

// IsValid reports whether s is a known status.
func (s ListingStatus) IsValid() bool {
	for _, known := range ListingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the human readable status name.
func (s ListingStatus) Label() string {
	switch s {
	case StatusActive:
		return "For Sale"
	case StatusPending:
		return "Pending"
	case StatusSold:
		return "Sold"
	case StatusForRent:
		return "For Rent"
	case StatusComingSoon:
		return "Coming Soon"
	default:
		return ""
	}
}

// Address is a postal address with optional coordinates.
type Address struct {
	Street string  `json:"street" yaml:"street"`
	Unit   string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	City   string  `json:"city" yaml:"city"`
	State  string  `json:"state" yaml:"state"`
	Zip    string  `json:"zip" yaml:"zip"`
	Lat    float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lng    float64 `json:"lng,omitempty" yaml:"lng,omitempty"`
}

// Line1 returns the street line including the unit.
func (a Address) Line1() string {
	if a.Unit == "" {
		return a.Street
	}
	return a.Street + " #" + a.Unit
}

// Line2 returns "City, ST 12345" with missing parts dropped.
func (a Address) Line2() string {
	var parts []string
	if a.City != "" {
		parts = append(parts, a.City)
	}
	stateZip := strings.TrimSpace(a.State + " " + a.Zip)
	if stateZip != "" {
		parts = append(parts, stateZip)
	}
	return strings.Join(parts, ", ")
}

// HasCoordinates reports whether the address can be placed on a map.
func (a Address) HasCoordinates() bool {
	return a.Lat != 0 || a.Lng != 0
}

// Listing is a property offered on the site.
type Listing struct {
	ID            string        `json:"id" yaml:"id"`
	Slug          string        `json:"slug" yaml:"slug"`
	Title         string        `json:"title" yaml:"title"`
	Status        ListingStatus `json:"status" yaml:"status"`
	PropertyType  string        `json:"property_type" yaml:"property_type"`
	Price         int64         `json:"price" yaml:"price"`
	Bedrooms      int           `json:"bedrooms" yaml:"bedrooms"`
	Bathrooms     float64       `json:"bathrooms" yaml:"bathrooms"`
	SquareFeet    int           `json:"square_feet" yaml:"square_feet"`
	LotSize       float64       `json:"lot_size,omitempty" yaml:"lot_size,omitempty"`
	YearBuilt     int           `json:"year_built,omitempty" yaml:"year_built,omitempty"`
	Garage        int           `json:"garage,omitempty" yaml:"garage,omitempty"`
	Address       Address       `json:"address" yaml:"address"`
	FeaturedImage string        `json:"featured_image,omitempty" yaml:"featured_image,omitempty"`
	Gallery       []string      `json:"gallery,omitempty" yaml:"gallery,omitempty"`
	Description   string        `json:"description,omitempty" yaml:"description,omitempty"`
	Features      []string      `json:"features,omitempty" yaml:"features,omitempty"`
	AgentID       string        `json:"agent_id,omitempty" yaml:"agent_id,omitempty"`
	Agent         *Agent        `json:"agent,omitempty" yaml:"-"`
	Featured      bool          `json:"featured" yaml:"featured"`
	CreatedAt     time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" yaml:"updated_at"`
}

// URL returns the public permalink of the listing.
func (l *Listing) URL() string {
	if l.Slug == "" {
		return "/listings/" + l.ID
	}
	return "/listings/" + l.Slug
}

// PricePerSquareFoot returns price divided by living area, or 0 when unknown.
func (l *Listing) PricePerSquareFoot() float64 {
	if l.SquareFeet <= 0 || l.Price <= 0 {
		return 0
	}
	return float64(l.Price) / float64(l.SquareFeet)
}

// Image returns the featured image, falling back to the first gallery image.
func (l *Listing) Image() string {
	if l.FeaturedImage != "" {
		return l.FeaturedImage
	}
	if len(l.Gallery) > 0 {
		return l.Gallery[0]
	}
	return ""
}

// Validate checks the fields required to store a listing.
func (l *Listing) Validate() error {
	details := map[string]interface{}{}
	if strings.TrimSpace(l.ID) == "" {
		details["id"] = "is required"
	}
	if strings.TrimSpace(l.Title) == "" {
		details["title"] = "is required"
	}
	if l.Status != "" && !l.Status.IsValid() {
		details["status"] = fmt.Sprintf("unknown status %q", l.Status)
	}
	if l.Price < 0 {
		details["price"] = "must not be negative"
	}
	if len(details) > 0 {
		return NewValidationError("INVALID_LISTING", "Listing is invalid", details)
	}
	return nil
}

// Agent is the listing agent shown on cards and detail pages.
type Agent struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Photo     string `json:"photo,omitempty" yaml:"photo,omitempty"`
	Brokerage string `json:"brokerage,omitempty" yaml:"brokerage,omitempty"`
}

// Validate checks the fields required to store an agent.
func (a *Agent) Validate() error {
	if strings.TrimSpace(a.ID) == "" || strings.TrimSpace(a.Name) == "" {
		return NewValidationError("INVALID_AGENT", "Agent id and name are required", nil)
	}
	return nil
}
