package rank

import (
	"strings"

	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
)

// Field weights for free-text relevance. Each field contributes its weight
// once when the normalized query is a substring of the normalized field
// (or of any tag in a tag list).
const (
	weightName        = 5
	weightShopName    = 3
	weightNutrient    = 2
	weightCrop        = 2
	weightSoil        = 1
	weightDescription = 1

	// Exact-match bonuses stack on top of the substring weights.
	bonusExactName     = 2
	bonusExactShopName = 1
)

// scoreAgainst computes the weighted relevance score. needle must already
// be normalized and non-empty.
func scoreAgainst(it catalog.Item, needle string) int {
	score := 0

	name := Normalize(it.Name())
	shop := Normalize(it.ShopName())

	if strings.Contains(name, needle) {
		score += weightName
	}
	if strings.Contains(shop, needle) {
		score += weightShopName
	}
	if anyTagContains(it.Nutrients(), needle) {
		score += weightNutrient
	}
	if anyTagContains(it.SuitableCrops(), needle) {
		score += weightCrop
	}
	if anyTagContains(it.SuitableSoil(), needle) {
		score += weightSoil
	}
	if strings.Contains(Normalize(it.Description()), needle) {
		score += weightDescription
	}

	if name == needle {
		score += bonusExactName
	}
	if shop == needle {
		score += bonusExactShopName
	}

	return score
}

// anyTagContains reports whether any normalized tag contains needle.
func anyTagContains(tags []string, needle string) bool {
	for _, tag := range tags {
		if strings.Contains(Normalize(tag), needle) {
			return true
		}
	}
	return false
}

// containsTag reports whether tags holds value under case-insensitive
// exact comparison (used by structural filters, not relevance).
func containsTag(tags []string, value string) bool {
	want := Normalize(value)
	for _, tag := range tags {
		if Normalize(tag) == want {
			return true
		}
	}
	return false
}
