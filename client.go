package agrimart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agrimart-cloud/agrimart/internal/db"
	dbRedis "github.com/agrimart-cloud/agrimart/internal/db/redis"
	domcatalog "github.com/agrimart-cloud/agrimart/internal/domain/catalog"
	"github.com/agrimart-cloud/agrimart/internal/metrics"
	catalogrepo "github.com/agrimart-cloud/agrimart/internal/repository/catalog"
	orderrepo "github.com/agrimart-cloud/agrimart/internal/repository/order"
	cataloguc "github.com/agrimart-cloud/agrimart/internal/usecase/catalog"
	orderuc "github.com/agrimart-cloud/agrimart/internal/usecase/order"
	recommenduc "github.com/agrimart-cloud/agrimart/internal/usecase/recommend"
	searchuc "github.com/agrimart-cloud/agrimart/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "agrimart:"
	defaultDisplayRating    = 4.2
)

// Client is the embedded agrimart SDK entry point. It talks to the
// database directly, without the HTTP layer.
type Client struct {
	store         db.Store
	catalogSvc    *cataloguc.Service
	searchSvc     *searchuc.Service
	orderSvc      *orderuc.Service
	recommendSvc  *recommenduc.Service
	displayRating float64
}

// New creates an agrimart Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:        defaultKeyPrefix,
		displayRating:    defaultDisplayRating,
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("agrimart: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("agrimart: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("agrimart: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	metrics.RegisterCatalogMetrics()

	itemRepo := catalogrepo.NewRepository(store, cfg.keyPrefix)
	ordRepo := orderrepo.NewRepository(store, cfg.keyPrefix)

	catalogSvc := cataloguc.NewService(itemRepo)
	searchSvc := searchuc.NewService(itemRepo, searchuc.Config{
		SortDefaultRating: cfg.sortRating,
		SuggestionLimit:   cfg.suggestionLimit,
		MaxResults:        cfg.maxResults,
	})
	orderSvc := orderuc.NewService(ordRepo, itemRepo)
	recommendSvc := recommenduc.NewService(itemRepo, recommenduc.Config{
		Limit:             cfg.recommendLimit,
		SortDefaultRating: cfg.sortRating,
	})

	return &Client{
		store:         store,
		catalogSvc:    catalogSvc,
		searchSvc:     searchSvc,
		orderSvc:      orderSvc,
		recommendSvc:  recommendSvc,
		displayRating: cfg.displayRating,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Items returns the listing management service.
func (c *Client) Items() *ItemsService {
	return &ItemsService{svc: c.catalogSvc, displayRating: c.displayRating}
}

// Orders returns the order service.
func (c *Client) Orders() *OrdersService {
	return &OrdersService{svc: c.orderSvc}
}

// Search starts a catalog search builder.
func (c *Client) Search() *SearchBuilder {
	return &SearchBuilder{
		svc:           c.searchSvc,
		displayRating: c.displayRating,
	}
}

// Suggest returns autosuggest strings for a partial query.
func (c *Client) Suggest(ctx context.Context, partialText string) ([]string, error) {
	return c.searchSvc.Suggest(ctx, partialText, domcatalog.Prefilter{})
}

// Recommend returns the current catalog recommendations, best first.
func (c *Client) Recommend(ctx context.Context) ([]Item, error) {
	items, err := c.recommendSvc.Recommend(ctx, domcatalog.Prefilter{})
	if err != nil {
		return nil, err
	}
	return itemsFromDomain(items, c.displayRating), nil
}
