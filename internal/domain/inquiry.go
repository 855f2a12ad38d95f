package domain

import "time"

// Inquiry is a contact-form submission about a listing.
type Inquiry struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id" form:"listing_id" binding:"omitempty,max=64"`
	AgentID   string    `json:"agent_id,omitempty" form:"agent_id" binding:"omitempty,max=64"`
	Name      string    `json:"name" form:"name" binding:"required,min=2,max=120"`
	Email     string    `json:"email" form:"email" binding:"required,email"`
	Phone     string    `json:"phone,omitempty" form:"phone" binding:"omitempty,max=32"`
	Message   string    `json:"message" form:"message" binding:"required,min=5,max=4000"`
	Tour      bool      `json:"tour,omitempty" form:"tour"`
	CreatedAt time.Time `json:"created_at"`
}
