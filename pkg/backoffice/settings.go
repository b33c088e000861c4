package backoffice

import (
	"context"

	"github.com/brisatech/backoffice/pkg/models"
)

// SettingsService reads and updates the singleton site configuration. There
// is nothing to create or delete; the backend owns the single instance.
type SettingsService struct {
	c *Client
}

// Get returns the settings singleton.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	var st models.Settings
	if err := s.c.get(ctx, "/api/settings", nil, &st); err != nil {
		return nil, err
	}

	return &st, nil
}

// UpdateCompany replaces the company block and returns the full settings.
func (s *SettingsService) UpdateCompany(ctx context.Context, info models.CompanyInfo) (*models.Settings, error) {
	var st models.Settings
	if err := s.c.put(ctx, "/api/settings/company", info, &st); err != nil {
		return nil, err
	}

	return &st, nil
}

// UpdateSocial replaces the social-links block and returns the full settings.
func (s *SettingsService) UpdateSocial(ctx context.Context, links models.SocialLinks) (*models.Settings, error) {
	var st models.Settings
	if err := s.c.put(ctx, "/api/settings/social", links, &st); err != nil {
		return nil, err
	}

	return &st, nil
}
