package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/happyplace/internal/domain"
)

func TestListingQuery_Normalized(t *testing.T) {
	tests := []struct {
		name    string
		in      domain.ListingQuery
		page    int
		perPage int
		sort    domain.ListingSort
		status  domain.ListingStatus
	}{
		{"zero value", domain.ListingQuery{}, 1, domain.DefaultPerPage, domain.SortNewest, ""},
		{"clamps per page", domain.ListingQuery{Page: 3, PerPage: 500}, 3, domain.MaxPerPage, domain.SortNewest, ""},
		{"keeps valid sort", domain.ListingQuery{Sort: domain.SortPriceAsc}, 1, domain.DefaultPerPage, domain.SortPriceAsc, ""},
		{"drops unknown sort", domain.ListingQuery{Sort: "random"}, 1, domain.DefaultPerPage, domain.SortNewest, ""},
		{"drops unknown status", domain.ListingQuery{Status: "haunted"}, 1, domain.DefaultPerPage, domain.SortNewest, ""},
		{"keeps status", domain.ListingQuery{Status: domain.StatusSold}, 1, domain.DefaultPerPage, domain.SortNewest, domain.StatusSold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()
			assert.Equal(t, tt.page, got.Page)
			assert.Equal(t, tt.perPage, got.PerPage)
			assert.Equal(t, tt.sort, got.Sort)
			assert.Equal(t, tt.status, got.Status)
		})
	}
}

func TestNewListingPage(t *testing.T) {
	page := domain.NewListingPage(nil, 25, domain.ListingQuery{Page: 2, PerPage: 10})

	assert.NotNil(t, page.Items)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.True(t, page.HasMore())

	last := domain.NewListingPage(nil, 25, domain.ListingQuery{Page: 3, PerPage: 10})
	assert.False(t, last.HasMore())

	empty := domain.NewListingPage(nil, 0, domain.ListingQuery{})
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasMore())
}

func TestListing_Helpers(t *testing.T) {
	l := &domain.Listing{
		ID:         "l1",
		Title:      "Maple House",
		Price:      500000,
		SquareFeet: 2000,
		Gallery:    []string{"/a.jpg", "/b.jpg"},
		Address:    domain.Address{Street: "12 Maple St", Unit: "4", City: "Austin", State: "TX", Zip: "78701"},
	}

	assert.Equal(t, "/listings/l1", l.URL())
	l.Slug = "maple-house"
	assert.Equal(t, "/listings/maple-house", l.URL())
	assert.InDelta(t, 250.0, l.PricePerSquareFoot(), 0.001)
	assert.Equal(t, "/a.jpg", l.Image())
	assert.Equal(t, "12 Maple St #4", l.Address.Line1())
	assert.Equal(t, "Austin, TX 78701", l.Address.Line2())
	assert.False(t, l.Address.HasCoordinates())
}

func TestListing_Validate(t *testing.T) {
	err := (&domain.Listing{Status: "haunted", Price: -1}).Validate()
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Contains(t, domainErr.Details, "id")
	assert.Contains(t, domainErr.Details, "title")
	assert.Contains(t, domainErr.Details, "status")
	assert.Contains(t, domainErr.Details, "price")

	assert.NoError(t, (&domain.Listing{ID: "x", Title: "ok", Status: domain.StatusActive}).Validate())
}

func TestDomainError_Wrapping(t *testing.T) {
	cause := assert.AnError
	err := domain.NewExternalServiceError("CACHE_DOWN", "cache unavailable", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "CACHE_DOWN")
	assert.False(t, domain.IsNotFound(err))
	assert.True(t, domain.IsNotFound(domain.NewNotFoundError("LISTING_NOT_FOUND", "missing")))
}

func TestListingQuery_Params(t *testing.T) {
	q := domain.ListingQuery{
		City:     "Austin",
		MinPrice: 250000,
		MinBaths: 1.5,
		IDs:      []string{"a", "b"},
		Sort:     domain.SortPriceAsc,
		Page:     3,
	}

	assert.Equal(t, map[string]string{
		"city":      "Austin",
		"min_price": "250000",
		"min_baths": "1.5",
		"ids":       "a,b",
		"sort":      "price_asc",
	}, q.Params())
	assert.Empty(t, domain.ListingQuery{}.Params())
}
