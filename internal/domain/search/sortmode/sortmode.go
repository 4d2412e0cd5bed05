package sortmode

// Mode is the secondary ordering applied to browse results.
type Mode string

// Sort mode constants.
const (
	// None preserves input order (or pure relevance order when searching).
	None         Mode = ""
	PriceLowHigh Mode = "price-low-high"
	PriceHighLow Mode = "price-high-low"
	// Rating sorts by shop rating descending; unrated items use the
	// configured sort default.
	Rating  Mode = "rating"
	Popular Mode = "popular"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == None || m == PriceLowHigh || m == PriceHighLow || m == Rating || m == Popular
}
