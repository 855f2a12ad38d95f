package repository

import (
	"context"

	"github.com/ericfisherdev/happyplace/internal/domain"
)

// ListingRepository stores listings and their agents.
type ListingRepository interface {
	// GetByID retrieves a listing by ID, with its agent attached.
	GetByID(ctx context.Context, id string) (*domain.Listing, error)

	// GetBySlug retrieves a listing by slug, with its agent attached.
	GetBySlug(ctx context.Context, slug string) (*domain.Listing, error)

	// Query returns one page of listings matching q.
	Query(ctx context.Context, q domain.ListingQuery) (*domain.ListingPage, error)

	// Save creates or replaces a listing.
	Save(ctx context.Context, listing *domain.Listing) error

	// Delete removes a listing.
	Delete(ctx context.Context, id string) error

	// CountByStatus returns the number of listings per status.
	CountByStatus(ctx context.Context) (map[domain.ListingStatus]int, error)

	// GetAgent retrieves an agent by ID.
	GetAgent(ctx context.Context, id string) (*domain.Agent, error)

	// SaveAgent creates or replaces an agent.
	SaveAgent(ctx context.Context, agent *domain.Agent) error
}

// InquiryRepository stores contact-form inquiries.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	ListByListing(ctx context.Context, listingID string, limit int) ([]*domain.Inquiry, error)
}

func listingNotFound(key string) error {
	return domain.NewNotFoundError("LISTING_NOT_FOUND", "Listing not found: "+key)
}

func agentNotFound(id string) error {
	return domain.NewNotFoundError("AGENT_NOT_FOUND", "Agent not found: "+id)
}
