package backoffice

import (
	"context"
	"net/url"

	"github.com/brisatech/backoffice/pkg/models"
)

// StackService manages the technology stack listing.
type StackService struct {
	c *Client
}

// TechnologyInput is the create payload.
type TechnologyInput struct {
	Name              string `json:"name"`
	Category          string `json:"category"`
	Icon              string `json:"icon"`
	Level             string `json:"level"`
	Description       string `json:"description,omitempty"`
	YearsOfExperience int    `json:"yearsOfExperience,omitempty"`
	IsActive          *bool  `json:"isActive,omitempty"`
	Order             int    `json:"order,omitempty"`
}

// TechnologyUpdate is a partial update; nil fields are left untouched.
type TechnologyUpdate struct {
	Name              *string `json:"name,omitempty"`
	Category          *string `json:"category,omitempty"`
	Icon              *string `json:"icon,omitempty"`
	Level             *string `json:"level,omitempty"`
	Description       *string `json:"description,omitempty"`
	YearsOfExperience *int    `json:"yearsOfExperience,omitempty"`
	IsActive          *bool   `json:"isActive,omitempty"`
	Order             *int    `json:"order,omitempty"`
}

// TechnologyListParams filters List.
type TechnologyListParams struct {
	Page     int
	PageSize int
	Category string
	Level    string
	IsActive *bool
	Search   string
}

func (p TechnologyListParams) values() url.Values {
	q := url.Values{}
	setInt(q, "page", p.Page)
	setInt(q, "pageSize", p.PageSize)
	setString(q, "category", p.Category)
	setString(q, "level", p.Level)
	setBool(q, "isActive", p.IsActive)
	setString(q, "search", p.Search)
	return q
}

// Create posts a new technology and returns the created record.
func (s *StackService) Create(ctx context.Context, input TechnologyInput) (*models.Technology, error) {
	var tech models.Technology
	if err := s.c.post(ctx, "/api/stack", input, &tech); err != nil {
		return nil, err
	}

	tech.SyncID()
	return &tech, nil
}

// List returns technologies matching params.
func (s *StackService) List(ctx context.Context, params TechnologyListParams) ([]models.Technology, error) {
	techs, _, err := s.ListPage(ctx, params)
	return techs, err
}

// ListPage returns one page of technologies plus the pagination metadata.
func (s *StackService) ListPage(ctx context.Context, params TechnologyListParams) ([]models.Technology, models.Pagination, error) {
	var payload struct {
		Technologies []models.Technology `json:"technologies"`
		Pagination   models.Pagination   `json:"pagination"`
	}
	if err := s.c.get(ctx, "/api/stack", params.values(), &payload); err != nil {
		return nil, models.Pagination{}, err
	}

	for i := range payload.Technologies {
		payload.Technologies[i].SyncID()
	}
	return payload.Technologies, payload.Pagination, nil
}

// Get returns one technology by id.
func (s *StackService) Get(ctx context.Context, id string) (*models.Technology, error) {
	var tech models.Technology
	if err := s.c.get(ctx, "/api/stack/"+id, nil, &tech); err != nil {
		return nil, err
	}

	tech.SyncID()
	return &tech, nil
}

// Update applies a partial update and returns the updated technology.
func (s *StackService) Update(ctx context.Context, id string, update TechnologyUpdate) (*models.Technology, error) {
	var tech models.Technology
	if err := s.c.patch(ctx, "/api/stack/"+id, update, &tech); err != nil {
		return nil, err
	}

	tech.SyncID()
	return &tech, nil
}

// Delete removes a technology.
func (s *StackService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/api/stack/"+id)
}

// ToggleActive flips the active flag.
func (s *StackService) ToggleActive(ctx context.Context, id string, active bool) (*models.Technology, error) {
	return s.Update(ctx, id, TechnologyUpdate{IsActive: &active})
}

// Stats returns aggregate technology counts.
func (s *StackService) Stats(ctx context.Context) (*models.TechnologyStats, error) {
	var stats models.TechnologyStats
	if err := s.c.get(ctx, "/api/stack/stats", nil, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// GroupByCategory fetches active technologies and groups them client-side.
// There is no dedicated endpoint; this narrows the generic list.
func (s *StackService) GroupByCategory(ctx context.Context) (map[string][]models.Technology, error) {
	yes := true
	techs, err := s.List(ctx, TechnologyListParams{IsActive: &yes, PageSize: 100})
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.Technology)
	for _, t := range techs {
		grouped[t.Category] = append(grouped[t.Category], t)
	}
	return grouped, nil
}

// ByLevel returns active technologies at one proficiency level.
func (s *StackService) ByLevel(ctx context.Context, level string) ([]models.Technology, error) {
	yes := true
	return s.List(ctx, TechnologyListParams{Level: level, IsActive: &yes})
}

// Main returns up to limit advanced, active technologies for the public
// stack highlight.
func (s *StackService) Main(ctx context.Context, limit int) ([]models.Technology, error) {
	if limit <= 0 {
		limit = 12
	}
	yes := true
	return s.List(ctx, TechnologyListParams{Level: models.TechLevelAdvanced, IsActive: &yes, PageSize: limit})
}
