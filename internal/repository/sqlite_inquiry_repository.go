package repository

import (
	"context"
	"time"

	"github.com/pocketbase/dbx"

	"github.com/ericfisherdev/happyplace/internal/domain"
)

type inquiryRow struct {
	ID        string `db:"id"`
	ListingID string `db:"listing_id"`
	AgentID   string `db:"agent_id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Message   string `db:"message"`
	Tour      bool   `db:"tour"`
	CreatedAt string `db:"created_at"`
}

type sqliteInquiryRepository struct {
	db *dbx.DB
}

// NewSQLiteInquiryRepository creates an inquiry repository on db.
func NewSQLiteInquiryRepository(db *dbx.DB) InquiryRepository {
	return &sqliteInquiryRepository{db: db}
}

func (r *sqliteInquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	_, err := r.db.Insert("inquiries", dbx.Params{
		"id":         inquiry.ID,
		"listing_id": inquiry.ListingID,
		"agent_id":   inquiry.AgentID,
		"name":       inquiry.Name,
		"email":      inquiry.Email,
		"phone":      inquiry.Phone,
		"message":    inquiry.Message,
		"tour":       inquiry.Tour,
		"created_at": inquiry.CreatedAt.UTC().Format(time.RFC3339Nano),
	}).WithContext(ctx).Execute()
	if err != nil {
		return storeError("CREATE_INQUIRY", err)
	}
	return nil
}

func (r *sqliteInquiryRepository) ListByListing(ctx context.Context, listingID string, limit int) ([]*domain.Inquiry, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []inquiryRow
	err := r.db.Select("*").From("inquiries").
		Where(dbx.HashExp{"listing_id": listingID}).
		OrderBy("created_at DESC").
		Limit(int64(limit)).
		WithContext(ctx).
		All(&rows)
	if err != nil {
		return nil, storeError("LIST_INQUIRIES", err)
	}
	out := make([]*domain.Inquiry, len(rows))
	for i, row := range rows {
		created, _ := time.Parse(time.RFC3339Nano, row.CreatedAt)
		out[i] = &domain.Inquiry{
			ID: row.ID, ListingID: row.ListingID, AgentID: row.AgentID, Name: row.Name, Email: row.Email,
			Phone: row.Phone, Message: row.Message, Tour: row.Tour, CreatedAt: created,
		}
	}
	return out, nil
}
