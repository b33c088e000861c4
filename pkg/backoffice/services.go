package backoffice

import (
	"context"
	"net/url"

	"github.com/brisatech/backoffice/pkg/models"
)

// ServicesService manages the offered-services listing.
type ServicesService struct {
	c *Client
}

// ServiceInput is the create payload.
type ServiceInput struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Icon        string                 `json:"icon"`
	Features    []string               `json:"features"`
	Pricing     *models.ServicePricing `json:"pricing,omitempty"`
	Category    string                 `json:"category,omitempty"`
	IsActive    *bool                  `json:"isActive,omitempty"`
	Order       int                    `json:"order,omitempty"`
}

// ServiceUpdate is a partial update; nil fields are left untouched.
type ServiceUpdate struct {
	Title       *string                `json:"title,omitempty"`
	Description *string                `json:"description,omitempty"`
	Icon        *string                `json:"icon,omitempty"`
	Features    *[]string              `json:"features,omitempty"`
	Pricing     *models.ServicePricing `json:"pricing,omitempty"`
	Category    *string                `json:"category,omitempty"`
	IsActive    *bool                  `json:"isActive,omitempty"`
	Order       *int                   `json:"order,omitempty"`
}

// ServiceListParams filters List.
type ServiceListParams struct {
	Page     int
	PageSize int
	IsActive *bool
	Category string
	Search   string
}

func (p ServiceListParams) values() url.Values {
	q := url.Values{}
	setInt(q, "page", p.Page)
	setInt(q, "pageSize", p.PageSize)
	setBool(q, "isActive", p.IsActive)
	setString(q, "category", p.Category)
	setString(q, "search", p.Search)
	return q
}

// Create posts a new service and returns the created record.
func (s *ServicesService) Create(ctx context.Context, input ServiceInput) (*models.Service, error) {
	var svc models.Service
	if err := s.c.post(ctx, "/api/services", input, &svc); err != nil {
		return nil, err
	}

	svc.SyncID()
	return &svc, nil
}

// List returns services matching params.
func (s *ServicesService) List(ctx context.Context, params ServiceListParams) ([]models.Service, error) {
	services, _, err := s.ListPage(ctx, params)
	return services, err
}

// ListPage returns one page of services plus the pagination metadata.
func (s *ServicesService) ListPage(ctx context.Context, params ServiceListParams) ([]models.Service, models.Pagination, error) {
	var payload struct {
		Services   []models.Service  `json:"services"`
		Pagination models.Pagination `json:"pagination"`
	}
	if err := s.c.get(ctx, "/api/services", params.values(), &payload); err != nil {
		return nil, models.Pagination{}, err
	}

	for i := range payload.Services {
		payload.Services[i].SyncID()
	}
	return payload.Services, payload.Pagination, nil
}

// Get returns one service by id.
func (s *ServicesService) Get(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	if err := s.c.get(ctx, "/api/services/"+id, nil, &svc); err != nil {
		return nil, err
	}

	svc.SyncID()
	return &svc, nil
}

// Update applies a partial update and returns the updated service.
func (s *ServicesService) Update(ctx context.Context, id string, update ServiceUpdate) (*models.Service, error) {
	var svc models.Service
	if err := s.c.patch(ctx, "/api/services/"+id, update, &svc); err != nil {
		return nil, err
	}

	svc.SyncID()
	return &svc, nil
}

// Delete removes a service.
func (s *ServicesService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/api/services/"+id)
}

// ToggleActive flips the active flag.
func (s *ServicesService) ToggleActive(ctx context.Context, id string, active bool) (*models.Service, error) {
	return s.Update(ctx, id, ServiceUpdate{IsActive: &active})
}

// Active returns every active service for public surfaces.
func (s *ServicesService) Active(ctx context.Context) ([]models.Service, error) {
	yes := true
	return s.List(ctx, ServiceListParams{IsActive: &yes})
}

// ByCategory returns active services in one category.
func (s *ServicesService) ByCategory(ctx context.Context, category string) ([]models.Service, error) {
	yes := true
	return s.List(ctx, ServiceListParams{Category: category, IsActive: &yes})
}
