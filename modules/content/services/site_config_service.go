package services

import (
	"context"

	"github.com/docesofia/storefront/modules/content/domain/siteconfig"
)

type SiteConfigService struct {
	repo siteconfig.Repository
}

func NewSiteConfigService(repo siteconfig.Repository) *SiteConfigService {
	return &SiteConfigService{repo: repo}
}

func (s *SiteConfigService) Get(ctx context.Context) (*siteconfig.Config, error) {
	return s.repo.Get(ctx)
}

func (s *SiteConfigService) Update(ctx context.Context, data *siteconfig.UpdateData) (*siteconfig.Config, error) {
	return s.repo.Update(ctx, data)
}
