package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ericfisherdev/happyplace/internal/api/middleware"
	"github.com/ericfisherdev/happyplace/internal/domain"
	c "github.com/ericfisherdev/happyplace/internal/ui/components"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
	"github.com/ericfisherdev/happyplace/internal/validation"
)

// Headers the cards behavior module reads from fragment responses.
const (
	HasMoreHeader = "X-HPH-Has-More"
	TotalHeader   = "X-HPH-Total"
)

// bindQuery reads listing filters from the query string. ids may be
// repeated or comma separated.
func bindQuery(gc *gin.Context) (domain.ListingQuery, error) {
	var q domain.ListingQuery
	if err := gc.ShouldBindQuery(&q); err != nil {
		return domain.ListingQuery{}, validation.FromError(err)
	}
	var ids []string
	for _, raw := range q.IDs {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	q.IDs = ids
	return q.Normalized(), nil
}

// listingFragments renders one page of cards for load more and sorting.
// The markup matches what the collection rendered for the same view.
func (s *Server) listingFragments(gc *gin.Context) {
	q, err := bindQuery(gc)
	if err != nil {
		middleware.Abort(gc, err)
		return
	}
	page, err := s.deps.Listings.Query(gc.Request.Context(), q)
	if err != nil {
		middleware.Abort(gc, err)
		return
	}
	view := parseView(gc.Query("view"))

	gc.Header(HasMoreHeader, strconv.FormatBool(page.HasMore()))
	gc.Header(TotalHeader, strconv.Itoa(page.Total))
	ctx, _ := hydrate.WithCollector(gc.Request.Context())
	HTMLResponse(gc, ctx, http.StatusOK, c.CardItems(page.Items, c.CardTemplate(view)))
}

func (s *Server) listListings(gc *gin.Context) {
	q, err := bindQuery(gc)
	if err != nil {
		middleware.Abort(gc, err)
		return
	}
	page, err := s.deps.Listings.Query(gc.Request.Context(), q)
	if err != nil {
		middleware.Abort(gc, err)
		return
	}
	gc.Header(HasMoreHeader, strconv.FormatBool(page.HasMore()))
	SuccessResponse(gc, gin.H{
		"items":       page.Items,
		"total":       page.Total,
		"page":        page.Page,
		"per_page":    page.PerPage,
		"total_pages": page.TotalPages,
		"has_more":    page.HasMore(),
		"markers":     c.Markers(page.Items, true),
	})
}

func (s *Server) getListing(gc *gin.Context) {
	l, err := s.deps.Listings.Get(gc.Request.Context(), gc.Param("id"))
	if err != nil {
		middleware.Abort(gc, err)
		return
	}
	SuccessResponse(gc, l)
}

func (s *Server) submitInquiry(gc *gin.Context) {
	var in domain.Inquiry
	if err := gc.ShouldBind(&in); err != nil {
		middleware.Abort(gc, validation.FromError(err))
		return
	}
	if err := s.deps.Inquiries.Submit(gc.Request.Context(), &in); err != nil {
		middleware.Abort(gc, err)
		return
	}
	CreatedResponse(gc, gin.H{
		"id":      in.ID,
		"message": "Inquiry received",
	})
}
