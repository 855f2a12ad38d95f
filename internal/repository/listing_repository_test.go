package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/happyplace/internal/domain"
)

type backend struct {
	name      string
	listings  ListingRepository
	inquiries InquiryRepository
}

func backends(t *testing.T) []backend {
	t.Helper()

	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(context.Background(), db))
	// migrations are idempotent
	require.NoError(t, Migrate(context.Background(), db))

	return []backend{
		{"memory", NewMemoryListingRepository(), NewMemoryInquiryRepository()},
		{"sqlite", NewSQLiteListingRepository(db), NewSQLiteInquiryRepository(db)},
	}
}

var day = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func fixtures() []*domain.Listing {
	return []*domain.Listing{
		{
			ID: "a", Slug: "a-bungalow", Title: "Bungalow", Status: domain.StatusActive, PropertyType: "house",
			Price: 500000, Bedrooms: 3, Bathrooms: 2, SquareFeet: 1800, Featured: true, AgentID: "ag1",
			Address:   domain.Address{Street: "1 Elm St", City: "Austin", State: "TX", Lat: 30.2, Lng: -97.7},
			Gallery:   []string{"/a1.jpg", "/a2.jpg"},
			Features:  []string{"Pool"},
			CreatedAt: day,
		},
		{
			ID: "b", Slug: "b-colonial", Title: "Colonial", Status: domain.StatusPending, PropertyType: "house",
			Price: 750000, Bedrooms: 4, Bathrooms: 3, SquareFeet: 2600,
			Address:   domain.Address{Street: "2 Oak St", City: "Austin", State: "TX"},
			CreatedAt: day.Add(24 * time.Hour),
		},
		{
			ID: "c", Slug: "c-ranch", Title: "Ranch", Status: domain.StatusSold, PropertyType: "house",
			Price: 300000, Bedrooms: 2, Bathrooms: 1, SquareFeet: 1100,
			Address:   domain.Address{Street: "3 Pine St", City: "Dallas", State: "TX"},
			CreatedAt: day.Add(48 * time.Hour),
		},
		{
			ID: "d", Slug: "d-loft", Title: "Loft", Status: domain.StatusForRent, PropertyType: "condo",
			Price: 2500, Bedrooms: 1, Bathrooms: 1, SquareFeet: 700,
			Address:   domain.Address{Street: "4 Main St", Unit: "5B", City: "austin", State: "TX"},
			CreatedAt: day.Add(72 * time.Hour),
		},
	}
}

func seed(t *testing.T, repo ListingRepository) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.SaveAgent(ctx, &domain.Agent{ID: "ag1", Name: "John Doe", Email: "john@example.com"}))
	for _, l := range fixtures() {
		require.NoError(t, repo.Save(ctx, l))
	}
}

func ids(page *domain.ListingPage) []string {
	out := make([]string, len(page.Items))
	for i, l := range page.Items {
		out[i] = l.ID
	}
	return out
}

func TestListingRepository_Get(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, b.listings)

			l, err := b.listings.GetByID(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, "Bungalow", l.Title)
			assert.Equal(t, []string{"/a1.jpg", "/a2.jpg"}, l.Gallery)
			assert.Equal(t, []string{"Pool"}, l.Features)
			assert.True(t, l.Featured)
			assert.True(t, l.CreatedAt.Equal(day))
			require.NotNil(t, l.Agent)
			assert.Equal(t, "John Doe", l.Agent.Name)

			l, err = b.listings.GetBySlug(ctx, "d-loft")
			require.NoError(t, err)
			assert.Equal(t, "5B", l.Address.Unit)
			assert.Nil(t, l.Agent)

			_, err = b.listings.GetByID(ctx, "zzz")
			assert.True(t, IsNotFound(err))
			_, err = b.listings.GetBySlug(ctx, "")
			assert.True(t, IsNotFound(err))
			_, err = b.listings.GetAgent(ctx, "nobody")
			assert.True(t, domain.IsNotFound(err))
		})
	}
}

func TestListingRepository_Query(t *testing.T) {
	tests := []struct {
		name  string
		query domain.ListingQuery
		want  []string
		total int
	}{
		{"newest first", domain.ListingQuery{}, []string{"d", "c", "b", "a"}, 4},
		{"city ignores case", domain.ListingQuery{City: "AUSTIN"}, []string{"d", "b", "a"}, 3},
		{"price ascending", domain.ListingQuery{Sort: domain.SortPriceAsc}, []string{"d", "c", "a", "b"}, 4},
		{"largest first", domain.ListingQuery{Sort: domain.SortSqftDesc}, []string{"b", "a", "c", "d"}, 4},
		{"oldest first", domain.ListingQuery{Sort: domain.SortOldest}, []string{"a", "b", "c", "d"}, 4},
		{"price and beds", domain.ListingQuery{MinPrice: 400000, MinBeds: 3, Sort: domain.SortPriceAsc}, []string{"a", "b"}, 2},
		{"max price and baths", domain.ListingQuery{MaxPrice: 600000, MinBaths: 2}, []string{"a"}, 1},
		{"featured only", domain.ListingQuery{FeaturedOnly: true}, []string{"a"}, 1},
		{"status", domain.ListingQuery{Status: domain.StatusSold}, []string{"c"}, 1},
		{"type and agent", domain.ListingQuery{PropertyType: "house", AgentID: "ag1"}, []string{"a"}, 1},
		{"ids", domain.ListingQuery{IDs: []string{"c", "a"}, Sort: domain.SortOldest}, []string{"a", "c"}, 2},
		{"second page", domain.ListingQuery{Page: 2, PerPage: 3}, []string{"a"}, 4},
		{"past the end", domain.ListingQuery{Page: 9, PerPage: 3}, []string{}, 4},
	}

	for _, b := range backends(t) {
		seed(t, b.listings)
		for _, tt := range tests {
			t.Run(b.name+"/"+tt.name, func(t *testing.T) {
				page, err := b.listings.Query(context.Background(), tt.query)
				require.NoError(t, err)
				assert.Equal(t, tt.want, ids(page))
				assert.Equal(t, tt.total, page.Total)
			})
		}
	}
}

func TestListingRepository_PageMath(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			seed(t, b.listings)
			page, err := b.listings.Query(context.Background(), domain.ListingQuery{PerPage: 3, Sort: domain.SortOldest})
			require.NoError(t, err)
			assert.Equal(t, 1, page.Page)
			assert.Equal(t, 3, page.PerPage)
			assert.Equal(t, 2, page.TotalPages)
			assert.True(t, page.HasMore())
			require.NotNil(t, page.Items[0].Agent, "agents are attached to query results")
			assert.Equal(t, "ag1", page.Items[0].Agent.ID)
			assert.Nil(t, page.Items[1].Agent)
		})
	}
}

func TestListingRepository_SaveDeleteCount(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, b.listings)

			updated := fixtures()[0]
			updated.Price = 525000
			require.NoError(t, b.listings.Save(ctx, updated))
			l, err := b.listings.GetByID(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, int64(525000), l.Price)
			assert.True(t, l.CreatedAt.Equal(day), "created_at survives a replace")

			counts, err := b.listings.CountByStatus(ctx)
			require.NoError(t, err)
			assert.Equal(t, map[domain.ListingStatus]int{
				domain.StatusActive: 1, domain.StatusPending: 1, domain.StatusSold: 1, domain.StatusForRent: 1,
			}, counts)

			require.NoError(t, b.listings.Delete(ctx, "c"))
			_, err = b.listings.GetByID(ctx, "c")
			assert.True(t, IsNotFound(err))
			assert.True(t, IsNotFound(b.listings.Delete(ctx, "c")))

			err = b.listings.Save(ctx, &domain.Listing{ID: "x"})
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestMigrate_AddsInquiryAgentColumn(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.NewQuery(`CREATE TABLE inquiries (
		id TEXT PRIMARY KEY,
		listing_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL,
		tour INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`).Execute()
	require.NoError(t, err)

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	repo := NewSQLiteInquiryRepository(db)
	require.NoError(t, repo.Create(ctx, &domain.Inquiry{
		ID: "i1", ListingID: "a", AgentID: "ag1", Name: "Ann", Email: "ann@example.com",
		Message: "Is it still available?", CreatedAt: day,
	}))
	got, err := repo.ListByListing(ctx, "a", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ag1", got[0].AgentID)
}

func TestInquiryRepository(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			for i, name := range []string{"Ann", "Bob", "Cy"} {
				listing := "a"
				if name == "Bob" {
					listing = "b"
				}
				require.NoError(t, b.inquiries.Create(ctx, &domain.Inquiry{
					ID: name, ListingID: listing, AgentID: "ag-" + name, Name: name, Email: name + "@example.com",
					Message: "Is it still available?", Tour: i == 0,
					CreatedAt: day.Add(time.Duration(i) * time.Hour),
				}))
			}

			got, err := b.inquiries.ListByListing(ctx, "a", 10)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "Cy", got[0].Name)
			assert.Equal(t, "Ann", got[1].Name)
			assert.True(t, got[1].Tour)
			assert.Equal(t, "ag-Ann", got[1].AgentID)

			got, err = b.inquiries.ListByListing(ctx, "a", 1)
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}
