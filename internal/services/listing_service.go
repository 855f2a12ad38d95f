package services

import (
	"context"
	"strconv"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/logger"
	"github.com/ericfisherdev/happyplace/internal/repository"
)

// ListingService serves listing reads to components and handlers, caching
// query pages and single listings. Writes invalidate every derived entry,
// rendered fragments included.
type ListingService struct {
	repo  repository.ListingRepository
	cache *Cache
	log   *logger.Logger
}

// NewListingService creates a listing service. cache may be nil.
func NewListingService(repo repository.ListingRepository, cache *Cache, log *logger.Logger) *ListingService {
	if log == nil {
		log = logger.Nop()
	}
	return &ListingService{repo: repo, cache: cache, log: log}
}

func queryKey(q domain.ListingQuery) string {
	params := q.Params()
	params["page"] = strconv.Itoa(q.Page)
	params["per_page"] = strconv.Itoa(q.PerPage)
	params["sort"] = string(q.Sort)
	return QueryCachePrefix + hashParams(params)
}

// Query returns one page of listings. Pagination is clamped and unknown
// sort or status values are dropped before the store sees them.
func (s *ListingService) Query(ctx context.Context, q domain.ListingQuery) (*domain.ListingPage, error) {
	q = q.Normalized()
	key := queryKey(q)

	var cached domain.ListingPage
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	page, err := s.repo.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, key, page)
	return page, nil
}

// Get returns the listing with the given ID or slug.
func (s *ListingService) Get(ctx context.Context, idOrSlug string) (*domain.Listing, error) {
	if idOrSlug == "" {
		return nil, domain.NewValidationError("LISTING_ID_REQUIRED", "Listing ID or slug is required", nil)
	}
	key := ListingCachePrefix + idOrSlug

	var cached domain.Listing
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	l, err := s.repo.GetBySlug(ctx, idOrSlug)
	if repository.IsNotFound(err) {
		l, err = s.repo.GetByID(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, key, l)
	return l, nil
}

// GetAgent returns an agent by ID.
func (s *ListingService) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	if id == "" {
		return nil, domain.NewValidationError("AGENT_ID_REQUIRED", "Agent ID is required", nil)
	}
	key := AgentCachePrefix + id

	var cached domain.Agent
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}
	a, err := s.repo.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, key, a)
	return a, nil
}

// Save stores a listing and drops cached reads.
func (s *ListingService) Save(ctx context.Context, l *domain.Listing) error {
	if err := s.repo.Save(ctx, l); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// SaveAgent stores an agent and drops cached reads.
func (s *ListingService) SaveAgent(ctx context.Context, a *domain.Agent) error {
	if err := s.repo.SaveAgent(ctx, a); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes a listing and drops cached reads.
func (s *ListingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// CountByStatus is read straight from the store.
func (s *ListingService) CountByStatus(ctx context.Context) (map[domain.ListingStatus]int, error) {
	return s.repo.CountByStatus(ctx)
}

// Seed stores agents then listings, stopping at the first failure.
func (s *ListingService) Seed(ctx context.Context, agents []*domain.Agent, listings []*domain.Listing) (int, error) {
	for _, a := range agents {
		if err := s.repo.SaveAgent(ctx, a); err != nil {
			return 0, err
		}
	}
	n := 0
	for _, l := range listings {
		if err := s.repo.Save(ctx, l); err != nil {
			s.invalidate(ctx)
			return n, err
		}
		n++
	}
	s.invalidate(ctx)
	s.log.WithFields(map[string]any{"agents": len(agents), "listings": n}).Info("listings seeded")
	return n, nil
}

func (s *ListingService) invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, QueryPattern, ListingPattern, AgentPattern, FragmentPattern)
}
