package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/logger"
	"github.com/ericfisherdev/happyplace/internal/repository"
	"github.com/ericfisherdev/happyplace/internal/validation"
)

// InquiryService accepts contact-form submissions.
type InquiryService struct {
	repo     repository.InquiryRepository
	listings repository.ListingRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewInquiryService creates an inquiry service. listings may be nil, in
// which case listing ids are not checked.
func NewInquiryService(repo repository.InquiryRepository, listings repository.ListingRepository, log *logger.Logger) *InquiryService {
	if log == nil {
		log = logger.Nop()
	}
	return &InquiryService{repo: repo, listings: listings, log: log, now: time.Now}
}

// Submit validates and records an inquiry, filling its ID and timestamp.
func (s *InquiryService) Submit(ctx context.Context, in *domain.Inquiry) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)
	in.ListingID = strings.TrimSpace(in.ListingID)
	in.AgentID = strings.TrimSpace(in.AgentID)

	if err := validation.ValidateStruct(in); err != nil {
		return err
	}

	if in.ListingID != "" && s.listings != nil {
		listing, err := s.listings.GetByID(ctx, in.ListingID)
		if err != nil {
			if repository.IsNotFound(err) {
				return domain.NewValidationError("UNKNOWN_LISTING", "The listing no longer exists", map[string]interface{}{
					"listing_id": in.ListingID,
				})
			}
			return err
		}
		// the listing's own agent wins over whatever the form carried
		if listing.AgentID != "" {
			in.AgentID = listing.AgentID
		}
	}

	in.ID = uuid.NewString()
	in.CreatedAt = s.now().UTC()
	if err := s.repo.Create(ctx, in); err != nil {
		return err
	}

	s.log.WithFields(map[string]any{
		"inquiry_id": in.ID,
		"listing_id": in.ListingID,
		"agent_id":   in.AgentID,
		"tour":       in.Tour,
	}).Info("inquiry received")
	return nil
}

// ForListing returns the latest inquiries about a listing.
func (s *InquiryService) ForListing(ctx context.Context, listingID string, limit int) ([]*domain.Inquiry, error) {
	return s.repo.ListByListing(ctx, listingID, limit)
}
