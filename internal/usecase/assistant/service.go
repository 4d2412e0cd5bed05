// Package assistant answers farmer questions about catalog products by
// grounding an LLM reply in actual listing data.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
	"github.com/agrimart-cloud/agrimart/internal/metrics"
)

// NotFoundReply is returned when no listing matches the extracted keyword.
const NotFoundReply = "I couldn't find that fertilizer in our shop database. Please try another name."

// ErrorReply is returned to the user when the provider call fails.
const ErrorReply = "Error fetching details right now."

var keywordSanitizer = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

// Service implements the two-step catalog assistant: extract a product
// keyword from the question, look it up, then answer with the found
// listings as context.
type Service struct {
	completer Completer
	catalog   CatalogFinder
}

// NewService creates an assistant service.
func NewService(completer Completer, c CatalogFinder) *Service {
	return &Service{completer: completer, catalog: c}
}

// Reply answers a free-form farmer question. A keyword with no catalog
// match yields NotFoundReply; provider failures propagate as errors with
// ErrAssistantProviderError in the chain.
func (s *Service) Reply(ctx context.Context, question string) (string, error) {
	keyword, err := s.extractKeyword(ctx, question)
	if err != nil {
		metrics.AssistantRepliesTotal.WithLabelValues("error").Inc()
		return "", err
	}

	items, err := s.catalog.FindByKeyword(ctx, keyword)
	if err != nil {
		metrics.AssistantRepliesTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to look up %q: %w", keyword, err)
	}
	if len(items) == 0 {
		metrics.AssistantRepliesTotal.WithLabelValues("not_found").Inc()
		return NotFoundReply, nil
	}

	reply, err := s.answerWithContext(ctx, question, items)
	if err != nil {
		metrics.AssistantRepliesTotal.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.AssistantRepliesTotal.WithLabelValues("answered").Inc()
	return reply, nil
}

func (s *Service) extractKeyword(ctx context.Context, question string) (string, error) {
	prompt := "Extract only the fertilizer or product name from this question. " +
		"Reply with the name alone, no punctuation or explanation.\n\nQuestion: " + question
	raw, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("keyword extraction failed: %w", err)
	}
	return sanitizeKeyword(raw), nil
}

func (s *Service) answerWithContext(ctx context.Context, question string, items []catalog.Item) (string, error) {
	productData, err := itemsAsContext(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode context: %w", err)
	}
	prompt := "You are a helpful assistant for a fertilizer marketplace. " +
		"Answer the farmer's question using only the product data below. " +
		"Keep the answer short and concrete.\n\nProducts:\n" + productData +
		"\n\nQuestion: " + question
	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("answer generation failed: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

// sanitizeKeyword strips everything but letters, digits and spaces, then
// trims and lowercases. Models sometimes wrap the name in quotes or add
// trailing punctuation.
func sanitizeKeyword(raw string) string {
	clean := keywordSanitizer.ReplaceAllString(raw, "")
	return strings.ToLower(strings.TrimSpace(clean))
}

func itemsAsContext(items []catalog.Item) (string, error) {
	type productContext struct {
		Name      string   `json:"name"`
		ShopName  string   `json:"shopName,omitempty"`
		Price     float64  `json:"price"`
		Quantity  int      `json:"quantity"`
		Nutrients []string `json:"nutrients,omitempty"`
		Crops     []string `json:"suitableCrops,omitempty"`
	}
	ctxItems := make([]productContext, 0, len(items))
	for _, it := range items {
		ctxItems = append(ctxItems, productContext{
			Name:      it.Name(),
			ShopName:  it.ShopName(),
			Price:     it.Price(),
			Quantity:  it.Quantity(),
			Nutrients: it.Nutrients(),
			Crops:     it.SuitableCrops(),
		})
	}
	data, err := json.Marshal(ctxItems)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
