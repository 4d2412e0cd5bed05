// Package recommend picks well-stocked, well-rated items for the
// farmer's landing view.
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
	"github.com/agrimart-cloud/agrimart/internal/domain/search/rank"
)

// DefaultLimit is the number of recommendations shown by default.
const DefaultLimit = 8

// Eligibility thresholds. An item qualifies with healthy stock plus
// either a good rating or a rich nutrient profile.
const (
	minQuantity   = 5
	minRating     = 4.0
	minNutrients  = 2
	stockBoostAt  = 10
	stockBoostMul = 1.2
)

// Config tunes the recommender.
type Config struct {
	// Limit caps the number of recommendations. 0 means DefaultLimit.
	Limit int
	// SortDefaultRating substitutes for a missing rating when scoring.
	SortDefaultRating float64
}

// Service computes catalog recommendations.
type Service struct {
	catalog CatalogReader
	cfg     Config
}

// NewService creates a recommendation service.
func NewService(c CatalogReader, cfg Config) *Service {
	if cfg.Limit == 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.SortDefaultRating == 0 {
		cfg.SortDefaultRating = rank.SortDefaultRating
	}
	return &Service{catalog: c, cfg: cfg}
}

// Recommend returns the top items by recommendation score, best first.
// Ties keep catalog order.
func (s *Service) Recommend(ctx context.Context, pf catalog.Prefilter) ([]catalog.Item, error) {
	items, err := s.catalog.ListAvailable(ctx, pf)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	type scored struct {
		item  catalog.Item
		score float64
	}
	picks := make([]scored, 0, len(items))
	for _, it := range items {
		if !s.eligible(it) {
			continue
		}
		picks = append(picks, scored{item: it, score: s.score(it)})
	}

	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].score > picks[j].score
	})
	if len(picks) > s.cfg.Limit {
		picks = picks[:s.cfg.Limit]
	}

	out := make([]catalog.Item, len(picks))
	for i, p := range picks {
		out[i] = p.item
	}
	return out, nil
}

func (s *Service) eligible(it catalog.Item) bool {
	if it.Quantity() <= minQuantity {
		return false
	}
	if r, ok := it.Rating(); ok && r >= minRating {
		return true
	}
	return len(it.Nutrients()) >= minNutrients
}

func (s *Service) score(it catalog.Item) float64 {
	score := it.RatingOr(s.cfg.SortDefaultRating)
	if it.Quantity() > stockBoostAt {
		score *= stockBoostMul
	}
	return score
}
