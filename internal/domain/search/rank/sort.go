package rank

import (
	"sort"

	"github.com/agrimart-cloud/agrimart/internal/domain/search/sortmode"
)

// sortScored orders a ranking pass in place: relevance descending first
// when a search is active, then the selected sort key. The sort is stable,
// so items equal under both keys keep their input order.
func sortScored(scored []scoredItem, byRelevance bool, mode sortmode.Mode, opts Options) {
	ratingDefault := opts.SortDefaultRating
	if ratingDefault == 0 {
		ratingDefault = SortDefaultRating
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]

		if byRelevance && a.score != b.score {
			return a.score > b.score
		}

		switch mode {
		case sortmode.PriceLowHigh:
			return a.item.Price() < b.item.Price()
		case sortmode.PriceHighLow:
			return a.item.Price() > b.item.Price()
		case sortmode.Rating:
			return a.item.RatingOr(ratingDefault) > b.item.RatingOr(ratingDefault)
		case sortmode.Popular:
			return a.item.Popularity() > b.item.Popularity()
		default:
			return false
		}
	})
}
