package recommend

import (
	"context"

	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
)

// CatalogReader loads the available items recommendations are drawn from.
type CatalogReader interface {
	ListAvailable(ctx context.Context, pf catalog.Prefilter) ([]catalog.Item, error)
}
