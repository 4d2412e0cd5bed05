// Package search runs ranked catalog searches and autosuggest.
package search

import (
	"context"
	"fmt"
	"strconv"

	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
	"github.com/agrimart-cloud/agrimart/internal/domain/search/query"
	"github.com/agrimart-cloud/agrimart/internal/domain/search/rank"
	"github.com/agrimart-cloud/agrimart/internal/metrics"
)

// Config tunes the search service.
type Config struct {
	// SortDefaultRating substitutes for a missing rating when sorting.
	SortDefaultRating float64
	// SuggestionLimit caps autosuggest results.
	SuggestionLimit int
	// MaxResults caps the result slice returned to transports. 0 means no cap.
	MaxResults int
}

// Service ranks catalog items for farmer browse views.
type Service struct {
	catalog CatalogReader
	cfg     Config
}

// NewService creates a search service.
func NewService(c CatalogReader, cfg Config) *Service {
	if cfg.SortDefaultRating == 0 {
		cfg.SortDefaultRating = rank.SortDefaultRating
	}
	if cfg.SuggestionLimit == 0 {
		cfg.SuggestionLimit = rank.DefaultSuggestLimit
	}
	return &Service{catalog: c, cfg: cfg}
}

// Search loads the prefiltered candidate set and runs the full ranking
// pass over it. Safe to call on every keystroke.
func (s *Service) Search(ctx context.Context, q query.Query, pf catalog.Prefilter) ([]catalog.Item, error) {
	items, err := s.catalog.ListAvailable(ctx, pf)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	ranked := rank.Rank(items, q, rank.Options{SortDefaultRating: s.cfg.SortDefaultRating})

	withQuery := rank.Normalize(q.FreeText()) != ""
	metrics.SearchesTotal.WithLabelValues(string(q.Filters().SortBy()), strconv.FormatBool(withQuery)).Inc()
	metrics.SearchResults.Observe(float64(len(ranked)))

	if s.cfg.MaxResults > 0 && len(ranked) > s.cfg.MaxResults {
		ranked = ranked[:s.cfg.MaxResults]
	}
	return ranked, nil
}

// Suggest returns up to the configured number of autosuggest strings for
// a partial query. Fewer than two characters yields no suggestions.
func (s *Service) Suggest(ctx context.Context, partialText string, pf catalog.Prefilter) ([]string, error) {
	items, err := s.catalog.ListAvailable(ctx, pf)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	metrics.SuggestQueriesTotal.Inc()
	return rank.Suggest(items, partialText, s.cfg.SuggestionLimit), nil
}
