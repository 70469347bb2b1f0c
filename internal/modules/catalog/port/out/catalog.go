package out

import (
	"context"

	"gothere/internal/modules/catalog/domain"
)

type CatalogSource interface {
	Load(ctx context.Context) (domain.Catalog, error)
}
