package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ericfisherdev/happyplace/internal/domain"
)

// memoryListingRepository provides an in-memory implementation of ListingRepository.
type memoryListingRepository struct {
	listings map[string]*domain.Listing
	agents   map[string]*domain.Agent
	mutex    sync.RWMutex
	now      func() time.Time
}

// NewMemoryListingRepository creates a new in-memory listing repository.
func NewMemoryListingRepository() ListingRepository {
	return &memoryListingRepository{
		listings: make(map[string]*domain.Listing),
		agents:   make(map[string]*domain.Agent),
		now:      time.Now,
	}
}

// copies keep callers from mutating stored records
func (r *memoryListingRepository) hydrate(l *domain.Listing) *domain.Listing {
	cp := *l
	cp.Gallery = slices.Clone(l.Gallery)
	cp.Features = slices.Clone(l.Features)
	cp.Agent = nil
	if a, ok := r.agents[l.AgentID]; ok {
		agent := *a
		cp.Agent = &agent
	}
	return &cp
}

func (r *memoryListingRepository) GetByID(_ context.Context, id string) (*domain.Listing, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	l, ok := r.listings[id]
	if !ok {
		return nil, listingNotFound(id)
	}
	return r.hydrate(l), nil
}

func (r *memoryListingRepository) GetBySlug(_ context.Context, slug string) (*domain.Listing, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if slug != "" {
		for _, l := range r.listings {
			if l.Slug == slug {
				return r.hydrate(l), nil
			}
		}
	}
	return nil, listingNotFound(slug)
}

func matches(l *domain.Listing, q domain.ListingQuery) bool {
	switch {
	case q.Status != "" && l.Status != q.Status:
		return false
	case q.City != "" && !strings.EqualFold(l.Address.City, q.City):
		return false
	case q.PropertyType != "" && l.PropertyType != q.PropertyType:
		return false
	case q.MinPrice > 0 && l.Price < q.MinPrice:
		return false
	case q.MaxPrice > 0 && l.Price > q.MaxPrice:
		return false
	case q.MinBeds > 0 && l.Bedrooms < q.MinBeds:
		return false
	case q.MinBaths > 0 && l.Bathrooms < q.MinBaths:
		return false
	case q.FeaturedOnly && !l.Featured:
		return false
	case q.AgentID != "" && l.AgentID != q.AgentID:
		return false
	case len(q.IDs) > 0 && !slices.Contains(q.IDs, l.ID):
		return false
	}
	return true
}

func compareListings(sort domain.ListingSort) func(a, b *domain.Listing) int {
	return func(a, b *domain.Listing) int {
		var c int
		switch sort {
		case domain.SortOldest:
			c = a.CreatedAt.Compare(b.CreatedAt)
		case domain.SortPriceAsc:
			c = cmpInt(a.Price, b.Price)
		case domain.SortPriceDesc:
			c = cmpInt(b.Price, a.Price)
		case domain.SortSqftDesc:
			c = cmpInt(int64(b.SquareFeet), int64(a.SquareFeet))
		default:
			c = b.CreatedAt.Compare(a.CreatedAt)
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (r *memoryListingRepository) Query(_ context.Context, q domain.ListingQuery) (*domain.ListingPage, error) {
	q = q.Normalized()

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var hits []*domain.Listing
	for _, l := range r.listings {
		if matches(l, q) {
			hits = append(hits, l)
		}
	}
	slices.SortFunc(hits, compareListings(q.Sort))

	total := len(hits)
	start := min(q.Offset(), total)
	end := min(start+q.PerPage, total)
	items := make([]*domain.Listing, 0, end-start)
	for _, l := range hits[start:end] {
		items = append(items, r.hydrate(l))
	}
	return domain.NewListingPage(items, total, q), nil
}

func (r *memoryListingRepository) Save(_ context.Context, listing *domain.Listing) error {
	if err := listing.Validate(); err != nil {
		return err
	}
	if listing.Status == "" {
		listing.Status = domain.StatusActive
	}
	now := r.now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored := *listing
	stored.Gallery = slices.Clone(listing.Gallery)
	stored.Features = slices.Clone(listing.Features)
	stored.Agent = nil
	r.listings[listing.ID] = &stored
	return nil
}

func (r *memoryListingRepository) Delete(_ context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.listings[id]; !ok {
		return listingNotFound(id)
	}
	delete(r.listings, id)
	return nil
}

func (r *memoryListingRepository) CountByStatus(_ context.Context) (map[domain.ListingStatus]int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make(map[domain.ListingStatus]int)
	for _, l := range r.listings {
		out[l.Status]++
	}
	return out, nil
}

func (r *memoryListingRepository) GetAgent(_ context.Context, id string) (*domain.Agent, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	a, ok := r.agents[id]
	if !ok {
		return nil, agentNotFound(id)
	}
	cp := *a
	return &cp, nil
}

func (r *memoryListingRepository) SaveAgent(_ context.Context, agent *domain.Agent) error {
	if err := agent.Validate(); err != nil {
		return err
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	cp := *agent
	r.agents[agent.ID] = &cp
	return nil
}

// memoryInquiryRepository keeps inquiries in insertion order.
type memoryInquiryRepository struct {
	inquiries []*domain.Inquiry
	mutex     sync.RWMutex
}

// NewMemoryInquiryRepository creates a new in-memory inquiry repository.
func NewMemoryInquiryRepository() InquiryRepository {
	return &memoryInquiryRepository{}
}

func (r *memoryInquiryRepository) Create(_ context.Context, inquiry *domain.Inquiry) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	cp := *inquiry
	r.inquiries = append(r.inquiries, &cp)
	return nil
}

func (r *memoryInquiryRepository) ListByListing(_ context.Context, listingID string, limit int) ([]*domain.Inquiry, error) {
	if limit <= 0 {
		limit = 50
	}
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var out []*domain.Inquiry
	for i := len(r.inquiries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.inquiries[i].ListingID == listingID {
			cp := *r.inquiries[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}
