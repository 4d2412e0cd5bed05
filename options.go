package agrimart

import "time"

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs    []string
	password string

	keyPrefix        string
	sortRating       float64
	displayRating    float64
	suggestionLimit  int
	recommendLimit   int
	maxResults       int
	readinessTimeout time.Duration
}

// WithRedis sets the Redis (or Valkey) addresses to connect to.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithPassword sets the database password.
func WithPassword(password string) Option {
	return func(c *clientConfig) {
		c.password = password
	}
}

// WithKeyPrefix sets the key namespace. Defaults to "agrimart:".
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithSortDefaultRating sets the rating substituted for unrated items
// when sorting. Defaults to 3.
func WithSortDefaultRating(r float64) Option {
	return func(c *clientConfig) {
		c.sortRating = r
	}
}

// WithDisplayDefaultRating sets the rating shown for unrated items.
// Defaults to 4.2. This is intentionally a separate knob from
// WithSortDefaultRating.
func WithDisplayDefaultRating(r float64) Option {
	return func(c *clientConfig) {
		c.displayRating = r
	}
}

// WithSuggestionLimit caps autosuggest results. Defaults to 5.
func WithSuggestionLimit(n int) Option {
	return func(c *clientConfig) {
		c.suggestionLimit = n
	}
}

// WithRecommendationLimit caps recommendations. Defaults to 8.
func WithRecommendationLimit(n int) Option {
	return func(c *clientConfig) {
		c.recommendLimit = n
	}
}

// WithMaxResults caps search results. 0 means no cap.
func WithMaxResults(n int) Option {
	return func(c *clientConfig) {
		c.maxResults = n
	}
}

// WithReadinessTimeout bounds the wait for the database on startup.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.readinessTimeout = d
	}
}
