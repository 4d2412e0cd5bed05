package search

import (
	"context"

	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
)

// CatalogReader loads the candidate items a ranking pass runs over.
type CatalogReader interface {
	ListAvailable(ctx context.Context, pf catalog.Prefilter) ([]catalog.Item, error)
}
