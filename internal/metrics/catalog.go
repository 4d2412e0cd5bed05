package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Catalog Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agrimart",
			Name:      "catalog_searches_total",
			Help:      "Total number of catalog searches",
		},
		[]string{"sort_by", "with_query"},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "agrimart",
			Name:      "catalog_search_results",
			Help:      "Distribution of result counts per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	SuggestQueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agrimart",
			Name:      "catalog_suggest_queries_total",
			Help:      "Total number of autosuggest queries",
		},
	)

	OrdersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agrimart",
			Name:      "orders_created_total",
			Help:      "Total number of orders placed",
		},
	)

	AssistantRepliesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agrimart",
			Name:      "assistant_replies_total",
			Help:      "Assistant replies by outcome",
		},
		[]string{"outcome"}, // "answered" / "not_found" / "error"
	)
)

var registerCatalogMetrics sync.Once

// RegisterCatalogMetrics registers catalog Prometheus metrics. Safe to call
// from multiple goroutines; only the first call registers.
func RegisterCatalogMetrics() {
	registerCatalogMetrics.Do(func() {
		prometheus.MustRegister(SearchesTotal)
		prometheus.MustRegister(SearchResults)
		prometheus.MustRegister(SuggestQueriesTotal)
		prometheus.MustRegister(OrdersCreatedTotal)
		prometheus.MustRegister(AssistantRepliesTotal)
	})
}
