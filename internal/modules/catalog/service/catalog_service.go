package service

import (
	"context"
	"fmt"
	"sync"

	"gothere/internal/modules/catalog/domain"
	catalogout "gothere/internal/modules/catalog/port/out"
	"gothere/internal/platform/logger"
)

// CatalogService loads the catalog once and serves it read-only.
type CatalogService struct {
	source catalogout.CatalogSource
	log    *logger.Logger

	mu     sync.Mutex
	loaded bool
	cat    domain.Catalog
}

func NewCatalogService(source catalogout.CatalogSource, log *logger.Logger) *CatalogService {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogService{source: source, log: log}
}

func (s *CatalogService) Catalog(ctx context.Context) (domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.cat, nil
	}
	cat, err := s.source.Load(ctx)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return domain.Catalog{}, fmt.Errorf("validate catalog: %w", err)
	}
	s.cat = cat
	s.loaded = true
	s.log.Info("catalog loaded",
		"relationships", len(cat.Relationships),
		"vibes", len(cat.Vibes),
		"prompts", cat.TotalPrompts(),
	)
	return cat, nil
}
