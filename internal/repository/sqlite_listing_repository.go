package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pocketbase/dbx"

	"github.com/ericfisherdev/happyplace/internal/domain"
)

type listingRow struct {
	ID            string  `db:"id"`
	Slug          string  `db:"slug"`
	Title         string  `db:"title"`
	Status        string  `db:"status"`
	PropertyType  string  `db:"property_type"`
	Price         int64   `db:"price"`
	Bedrooms      int     `db:"bedrooms"`
	Bathrooms     float64 `db:"bathrooms"`
	SquareFeet    int     `db:"square_feet"`
	LotSize       float64 `db:"lot_size"`
	YearBuilt     int     `db:"year_built"`
	Garage        int     `db:"garage"`
	Street        string  `db:"street"`
	Unit          string  `db:"unit"`
	City          string  `db:"city"`
	State         string  `db:"state"`
	Zip           string  `db:"zip"`
	Lat           float64 `db:"lat"`
	Lng           float64 `db:"lng"`
	FeaturedImage string  `db:"featured_image"`
	Gallery       string  `db:"gallery"`
	Description   string  `db:"description"`
	Features      string  `db:"features"`
	AgentID       string  `db:"agent_id"`
	Featured      bool    `db:"featured"`
	CreatedAt     string  `db:"created_at"`
	UpdatedAt     string  `db:"updated_at"`
}

func (r listingRow) listing() *domain.Listing {
	l := &domain.Listing{
		ID:           r.ID,
		Slug:         r.Slug,
		Title:        r.Title,
		Status:       domain.ListingStatus(r.Status),
		PropertyType: r.PropertyType,
		Price:        r.Price,
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		SquareFeet:   r.SquareFeet,
		LotSize:      r.LotSize,
		YearBuilt:    r.YearBuilt,
		Garage:       r.Garage,
		Address: domain.Address{
			Street: r.Street, Unit: r.Unit, City: r.City, State: r.State, Zip: r.Zip,
			Lat: r.Lat, Lng: r.Lng,
		},
		FeaturedImage: r.FeaturedImage,
		Description:   r.Description,
		AgentID:       r.AgentID,
		Featured:      r.Featured,
	}
	_ = json.Unmarshal([]byte(r.Gallery), &l.Gallery)
	_ = json.Unmarshal([]byte(r.Features), &l.Features)
	l.CreatedAt, _ = time.Parse(time.RFC3339Nano, r.CreatedAt)
	l.UpdatedAt, _ = time.Parse(time.RFC3339Nano, r.UpdatedAt)
	return l
}

func listingParams(l *domain.Listing) dbx.Params {
	gallery, _ := json.Marshal(nonNil(l.Gallery))
	features, _ := json.Marshal(nonNil(l.Features))
	return dbx.Params{
		"id":             l.ID,
		"slug":           l.Slug,
		"title":          l.Title,
		"status":         string(l.Status),
		"property_type":  l.PropertyType,
		"price":          l.Price,
		"bedrooms":       l.Bedrooms,
		"bathrooms":      l.Bathrooms,
		"square_feet":    l.SquareFeet,
		"lot_size":       l.LotSize,
		"year_built":     l.YearBuilt,
		"garage":         l.Garage,
		"street":         l.Address.Street,
		"unit":           l.Address.Unit,
		"city":           l.Address.City,
		"state":          l.Address.State,
		"zip":            l.Address.Zip,
		"lat":            l.Address.Lat,
		"lng":            l.Address.Lng,
		"featured_image": l.FeaturedImage,
		"gallery":        string(gallery),
		"description":    l.Description,
		"features":       string(features),
		"agent_id":       l.AgentID,
		"featured":       l.Featured,
		"created_at":     l.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":     l.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type agentRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Title     string `db:"title"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Photo     string `db:"photo"`
	Brokerage string `db:"brokerage"`
}

func (r agentRow) agent() *domain.Agent {
	a := domain.Agent(r)
	return &a
}

// sqliteListingRepository implements ListingRepository on a dbx handle.
type sqliteListingRepository struct {
	db  *dbx.DB
	now func() time.Time
}

// NewSQLiteListingRepository creates a listing repository on db. Call
// Migrate first.
func NewSQLiteListingRepository(db *dbx.DB) ListingRepository {
	return &sqliteListingRepository{db: db, now: time.Now}
}

func (r *sqliteListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	return r.getOne(ctx, dbx.HashExp{"id": id}, id)
}

func (r *sqliteListingRepository) GetBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	if slug == "" {
		return nil, listingNotFound(slug)
	}
	return r.getOne(ctx, dbx.HashExp{"slug": slug}, slug)
}

func (r *sqliteListingRepository) getOne(ctx context.Context, where dbx.Expression, key string) (*domain.Listing, error) {
	var row listingRow
	err := r.db.Select("*").From("listings").Where(where).WithContext(ctx).One(&row)
	if err != nil {
		if IsNoRows(err) {
			return nil, listingNotFound(key)
		}
		return nil, storeError("GET", err)
	}
	l := row.listing()
	if err := r.attachAgents(ctx, []*domain.Listing{l}); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *sqliteListingRepository) attachAgents(ctx context.Context, listings []*domain.Listing) error {
	seen := map[string]bool{}
	var ids []interface{}
	for _, l := range listings {
		if l.AgentID != "" && !seen[l.AgentID] {
			seen[l.AgentID] = true
			ids = append(ids, l.AgentID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	var rows []agentRow
	if err := r.db.Select("*").From("agents").Where(dbx.In("id", ids...)).WithContext(ctx).All(&rows); err != nil {
		return storeError("AGENTS", err)
	}
	byID := make(map[string]*domain.Agent, len(rows))
	for _, row := range rows {
		byID[row.ID] = row.agent()
	}
	for _, l := range listings {
		l.Agent = byID[l.AgentID]
	}
	return nil
}

// queryWhere translates the filters of q into one expression.
func queryWhere(q domain.ListingQuery) dbx.Expression {
	var exps []dbx.Expression
	if q.Status != "" {
		exps = append(exps, dbx.HashExp{"status": string(q.Status)})
	}
	if q.City != "" {
		exps = append(exps, dbx.NewExp("city = {:city} COLLATE NOCASE", dbx.Params{"city": q.City}))
	}
	if q.PropertyType != "" {
		exps = append(exps, dbx.HashExp{"property_type": q.PropertyType})
	}
	if q.MinPrice > 0 {
		exps = append(exps, dbx.NewExp("price >= {:min_price}", dbx.Params{"min_price": q.MinPrice}))
	}
	if q.MaxPrice > 0 {
		exps = append(exps, dbx.NewExp("price <= {:max_price}", dbx.Params{"max_price": q.MaxPrice}))
	}
	if q.MinBeds > 0 {
		exps = append(exps, dbx.NewExp("bedrooms >= {:min_beds}", dbx.Params{"min_beds": q.MinBeds}))
	}
	if q.MinBaths > 0 {
		exps = append(exps, dbx.NewExp("bathrooms >= {:min_baths}", dbx.Params{"min_baths": q.MinBaths}))
	}
	if q.FeaturedOnly {
		exps = append(exps, dbx.HashExp{"featured": true})
	}
	if q.AgentID != "" {
		exps = append(exps, dbx.HashExp{"agent_id": q.AgentID})
	}
	if len(q.IDs) > 0 {
		ids := make([]interface{}, len(q.IDs))
		for i, id := range q.IDs {
			ids[i] = id
		}
		exps = append(exps, dbx.In("id", ids...))
	}
	return dbx.And(exps...)
}

func orderBy(sort domain.ListingSort) []string {
	switch sort {
	case domain.SortOldest:
		return []string{"created_at ASC", "id ASC"}
	case domain.SortPriceAsc:
		return []string{"price ASC", "id ASC"}
	case domain.SortPriceDesc:
		return []string{"price DESC", "id ASC"}
	case domain.SortSqftDesc:
		return []string{"square_feet DESC", "id ASC"}
	default:
		return []string{"created_at DESC", "id ASC"}
	}
}

func (r *sqliteListingRepository) Query(ctx context.Context, q domain.ListingQuery) (*domain.ListingPage, error) {
	q = q.Normalized()
	where := queryWhere(q)

	var total int
	if err := r.db.Select("COUNT(*)").From("listings").Where(where).WithContext(ctx).Row(&total); err != nil {
		return nil, storeError("COUNT", err)
	}

	var rows []listingRow
	err := r.db.Select("*").From("listings").
		Where(where).
		OrderBy(orderBy(q.Sort)...).
		Limit(int64(q.PerPage)).
		Offset(int64(q.Offset())).
		WithContext(ctx).
		All(&rows)
	if err != nil {
		return nil, storeError("QUERY", err)
	}

	items := make([]*domain.Listing, len(rows))
	for i, row := range rows {
		items[i] = row.listing()
	}
	if err := r.attachAgents(ctx, items); err != nil {
		return nil, err
	}
	return domain.NewListingPage(items, total, q), nil
}

func (r *sqliteListingRepository) Save(ctx context.Context, listing *domain.Listing) error {
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

	err := r.db.TransactionalContext(ctx, nil, func(tx *dbx.Tx) error {
		if _, err := tx.Delete("listings", dbx.HashExp{"id": listing.ID}).WithContext(ctx).Execute(); err != nil {
			return err
		}
		_, err := tx.Insert("listings", listingParams(listing)).WithContext(ctx).Execute()
		return err
	})
	if err != nil {
		return storeError("SAVE", err)
	}
	return nil
}

func (r *sqliteListingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Delete("listings", dbx.HashExp{"id": id}).WithContext(ctx).Execute()
	if err != nil {
		return storeError("DELETE", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return listingNotFound(id)
	}
	return nil
}

func (r *sqliteListingRepository) CountByStatus(ctx context.Context) (map[domain.ListingStatus]int, error) {
	var rows []struct {
		Status string `db:"status"`
		N      int    `db:"n"`
	}
	err := r.db.Select("status", "COUNT(*) AS n").From("listings").GroupBy("status").WithContext(ctx).All(&rows)
	if err != nil {
		return nil, storeError("COUNT", err)
	}
	out := make(map[domain.ListingStatus]int, len(rows))
	for _, row := range rows {
		out[domain.ListingStatus(row.Status)] = row.N
	}
	return out, nil
}

func (r *sqliteListingRepository) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	var row agentRow
	if err := r.db.Select("*").From("agents").Where(dbx.HashExp{"id": id}).WithContext(ctx).One(&row); err != nil {
		if IsNoRows(err) {
			return nil, agentNotFound(id)
		}
		return nil, storeError("GET_AGENT", err)
	}
	return row.agent(), nil
}

func (r *sqliteListingRepository) SaveAgent(ctx context.Context, agent *domain.Agent) error {
	if err := agent.Validate(); err != nil {
		return err
	}
	params := dbx.Params{
		"id": agent.ID, "name": agent.Name, "title": agent.Title, "email": agent.Email,
		"phone": agent.Phone, "photo": agent.Photo, "brokerage": agent.Brokerage,
	}
	err := r.db.TransactionalContext(ctx, nil, func(tx *dbx.Tx) error {
		if _, err := tx.Delete("agents", dbx.HashExp{"id": agent.ID}).WithContext(ctx).Execute(); err != nil {
			return err
		}
		_, err := tx.Insert("agents", params).WithContext(ctx).Execute()
		return err
	})
	if err != nil {
		return storeError("SAVE_AGENT", err)
	}
	return nil
}
