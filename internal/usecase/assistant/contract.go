package assistant

import (
	"context"

	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
)

// Completer produces a chat completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CatalogFinder looks up items by a single keyword term.
type CatalogFinder interface {
	FindByKeyword(ctx context.Context, keyword string) ([]catalog.Item, error)
}
