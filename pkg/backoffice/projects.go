package backoffice

import (
	"context"
	"net/url"

	"github.com/brisatech/backoffice/pkg/models"
)

// ProjectsService manages portfolio entries.
type ProjectsService struct {
	c *Client
}

// ProjectInput is the create payload.
type ProjectInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Technologies []string `json:"technologies"`
	LiveURL      string   `json:"liveUrl,omitempty"`
	GithubURL    string   `json:"githubUrl,omitempty"`
	Featured     bool     `json:"featured,omitempty"`
	Category     string   `json:"category,omitempty"`
	ClientName   string   `json:"clientName,omitempty"`
	CompletedAt  string   `json:"completedAt,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
	Order        int      `json:"order,omitempty"`
}

// ProjectUpdate is a partial update; nil fields are left untouched.
type ProjectUpdate struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Image        *string   `json:"image,omitempty"`
	Technologies *[]string `json:"technologies,omitempty"`
	LiveURL      *string   `json:"liveUrl,omitempty"`
	GithubURL    *string   `json:"githubUrl,omitempty"`
	Featured     *bool     `json:"featured,omitempty"`
	Category     *string   `json:"category,omitempty"`
	ClientName   *string   `json:"clientName,omitempty"`
	CompletedAt  *string   `json:"completedAt,omitempty"`
	IsActive     *bool     `json:"isActive,omitempty"`
	Order        *int      `json:"order,omitempty"`
}

// ProjectListParams filters List.
type ProjectListParams struct {
	Page     int
	PageSize int
	Featured *bool
	IsActive *bool
	Category string
	Search   string
}

func (p ProjectListParams) values() url.Values {
	q := url.Values{}
	setInt(q, "page", p.Page)
	setInt(q, "pageSize", p.PageSize)
	setBool(q, "featured", p.Featured)
	setBool(q, "isActive", p.IsActive)
	setString(q, "category", p.Category)
	setString(q, "search", p.Search)
	return q
}

// Create posts a new project and returns the created record.
func (s *ProjectsService) Create(ctx context.Context, input ProjectInput) (*models.Project, error) {
	var p models.Project
	if err := s.c.post(ctx, "/api/projects", input, &p); err != nil {
		return nil, err
	}

	p.SyncID()
	return &p, nil
}

// List returns projects matching params.
func (s *ProjectsService) List(ctx context.Context, params ProjectListParams) ([]models.Project, error) {
	projects, _, err := s.ListPage(ctx, params)
	return projects, err
}

// ListPage returns one page of projects plus the pagination metadata.
func (s *ProjectsService) ListPage(ctx context.Context, params ProjectListParams) ([]models.Project, models.Pagination, error) {
	var payload struct {
		Projects   []models.Project  `json:"projects"`
		Pagination models.Pagination `json:"pagination"`
	}
	if err := s.c.get(ctx, "/api/projects", params.values(), &payload); err != nil {
		return nil, models.Pagination{}, err
	}

	for i := range payload.Projects {
		payload.Projects[i].SyncID()
	}
	return payload.Projects, payload.Pagination, nil
}

// Get returns one project by id.
func (s *ProjectsService) Get(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	if err := s.c.get(ctx, "/api/projects/"+id, nil, &p); err != nil {
		return nil, err
	}

	p.SyncID()
	return &p, nil
}

// Update applies a partial update and returns the updated project.
func (s *ProjectsService) Update(ctx context.Context, id string, update ProjectUpdate) (*models.Project, error) {
	var p models.Project
	if err := s.c.patch(ctx, "/api/projects/"+id, update, &p); err != nil {
		return nil, err
	}

	p.SyncID()
	return &p, nil
}

// Delete removes a project.
func (s *ProjectsService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/api/projects/"+id)
}

// ToggleFeatured flips the featured flag.
func (s *ProjectsService) ToggleFeatured(ctx context.Context, id string, featured bool) (*models.Project, error) {
	return s.Update(ctx, id, ProjectUpdate{Featured: &featured})
}

// ToggleActive flips the active flag.
func (s *ProjectsService) ToggleActive(ctx context.Context, id string, active bool) (*models.Project, error) {
	return s.Update(ctx, id, ProjectUpdate{IsActive: &active})
}

// Featured returns up to limit active featured projects for public surfaces.
func (s *ProjectsService) Featured(ctx context.Context, limit int) ([]models.Project, error) {
	if limit <= 0 {
		limit = 6
	}
	yes := true
	return s.List(ctx, ProjectListParams{Featured: &yes, IsActive: &yes, PageSize: limit})
}

// ByCategory returns active projects in one category.
func (s *ProjectsService) ByCategory(ctx context.Context, category string) ([]models.Project, error) {
	yes := true
	return s.List(ctx, ProjectListParams{Category: category, IsActive: &yes})
}
