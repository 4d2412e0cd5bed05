// Package chi provides the HTTP API on top of the usecase services.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/agrimart-cloud/agrimart/internal/domain"
	domorder "github.com/agrimart-cloud/agrimart/internal/domain/order"
	"github.com/agrimart-cloud/agrimart/internal/logger"
	assistantuc "github.com/agrimart-cloud/agrimart/internal/usecase/assistant"
	cataloguc "github.com/agrimart-cloud/agrimart/internal/usecase/catalog"
	healthuc "github.com/agrimart-cloud/agrimart/internal/usecase/health"
	orderuc "github.com/agrimart-cloud/agrimart/internal/usecase/order"
	recommenduc "github.com/agrimart-cloud/agrimart/internal/usecase/recommend"
	searchuc "github.com/agrimart-cloud/agrimart/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the usecase services into HTTP handlers.
type Server struct {
	search        *searchuc.Service
	catalog       *cataloguc.Service
	orders        *orderuc.Service
	recommend     *recommenduc.Service
	assistant     *assistantuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	displayRating float64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. assistant may be nil when no
// provider is configured.
func NewServer(
	search *searchuc.Service,
	catalog *cataloguc.Service,
	orders *orderuc.Service,
	recommend *recommenduc.Service,
	assistant *assistantuc.Service,
	health *healthuc.Service,
	displayDefaultRating float64,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:        search,
		catalog:       catalog,
		orders:        orders,
		recommend:     recommend,
		assistant:     assistant,
		health:        health,
		logger:        logger,
		displayRating: displayDefaultRating,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrItemNotFound, http.StatusNotFound, codeItemNotFound),
		sentinelHandler(domain.ErrOrderNotFound, http.StatusNotFound, codeOrderNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeAlreadyExists),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInsufficientStock, http.StatusConflict, codeInsufficientStock),
		sentinelHandler(domain.ErrStatusConflict, http.StatusConflict, codeStatusConflict),
		sentinelHandler(domain.ErrAssistantDisabled, http.StatusNotImplemented, codeAssistantDisabled),
		sentinelHandler(domain.ErrAssistantProviderError, http.StatusBadGateway, codeAssistantProviderError),
	}
	return s
}

// RegisterRoutes mounts all API routes on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog/search", s.SearchCatalog)
		r.Get("/catalog/suggest", s.SuggestCatalog)
		r.Get("/recommendations", s.Recommendations)

		r.Route("/items", func(r chi.Router) {
			r.Post("/", s.CreateItem)
			r.Get("/", s.ListItemsByShop)
			r.Get("/{id}", s.GetItem)
			r.Put("/{id}", s.UpdateItem)
			r.Put("/{id}/stock", s.UpdateStock)
			r.Delete("/{id}", s.DeleteItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", s.CreateOrder)
			r.Get("/", s.ListOrders)
			r.Get("/{id}", s.GetOrder)
			r.Post("/{id}/status", s.UpdateOrderStatus)
		})

		r.Post("/assistant/chat", s.AssistantChat)
	})
}

// SearchCatalog handles GET /api/v1/catalog/search.
func (s *Server) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	q, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	items, err := s.search.Search(r.Context(), q, parsePrefilter(r.URL.Query()))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": itemsToDTO(items, s.displayRating),
		"total": len(items),
	})
}

// SuggestCatalog handles GET /api/v1/catalog/suggest.
func (s *Server) SuggestCatalog(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.search.Suggest(r.Context(), r.URL.Query().Get("q"), parsePrefilter(r.URL.Query()))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

// Recommendations handles GET /api/v1/recommendations.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	items, err := s.recommend.Recommend(r.Context(), parsePrefilter(r.URL.Query()))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": itemsToDTO(items, s.displayRating),
	})
}

// CreateItem handles POST /api/v1/items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	it, err := s.catalog.Create(r.Context(), req.attrs())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/items/"+it.ID())
	writeJSON(w, http.StatusCreated, itemToDTO(it, s.displayRating))
}

// GetItem handles GET /api/v1/items/{id}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	it, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToDTO(it, s.displayRating))
}

// UpdateItem handles PUT /api/v1/items/{id}.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	it, err := s.catalog.Update(r.Context(), chi.URLParam(r, "id"), req.attrs())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToDTO(it, s.displayRating))
}

// UpdateStock handles PUT /api/v1/items/{id}/stock.
func (s *Server) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	it, err := s.catalog.UpdateStock(r.Context(), chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToDTO(it, s.displayRating))
}

// DeleteItem handles DELETE /api/v1/items/{id}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListItemsByShop handles GET /api/v1/items?shop_id=...
func (s *Server) ListItemsByShop(w http.ResponseWriter, r *http.Request) {
	shopID := r.URL.Query().Get("shop_id")
	if shopID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "shop_id is required")
		return
	}

	items, err := s.catalog.ListByShop(r.Context(), shopID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": itemsToDTO(items, s.displayRating),
		"total": len(items),
	})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FarmerID       string `json:"farmerId"`
		FarmerName     string `json:"farmerName"`
		FarmerLocation string `json:"farmerLocation"`
		Items          []struct {
			ItemID   string `json:"itemId"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	lines := make([]orderuc.CartLine, 0, len(req.Items))
	for _, l := range req.Items {
		lines = append(lines, orderuc.CartLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}

	o, err := s.orders.Create(r.Context(), orderuc.CreateRequest{
		FarmerID:       req.FarmerID,
		FarmerName:     req.FarmerName,
		FarmerLocation: req.FarmerLocation,
		Lines:          lines,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/orders/"+o.ID())
	writeJSON(w, http.StatusCreated, orderToDTO(o))
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orderToDTO(o))
}

// ListOrders handles GET /api/v1/orders?farmer_id=... or ?shop_id=...
func (s *Server) ListOrders(w http.ResponseWriter, r *http.Request) {
	farmerID := r.URL.Query().Get("farmer_id")
	shopID := r.URL.Query().Get("shop_id")

	var (
		orders []domorder.Order
		err    error
	)
	switch {
	case farmerID != "":
		orders, err = s.orders.ListByFarmer(r.Context(), farmerID)
	case shopID != "":
		orders, err = s.orders.ListByShop(r.Context(), shopID)
	default:
		writeError(w, http.StatusBadRequest, codeValidationFailed, "farmer_id or shop_id is required")
		return
	}
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"orders": ordersToDTO(orders),
		"total":  len(orders),
	})
}

// UpdateOrderStatus handles POST /api/v1/orders/{id}/status.
func (s *Server) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	o, err := s.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), domorder.Status(req.Status))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orderToDTO(o))
}

// AssistantChat handles POST /api/v1/assistant/chat.
func (s *Server) AssistantChat(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		s.handleDomainError(w, r, domain.ErrAssistantDisabled)
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "question is required")
		return
	}

	reply, err := s.assistant.Reply(r.Context(), req.Question)
	if err != nil {
		// Provider failures get the canned user-facing text, not the
		// sentinel message.
		if errors.Is(err, domain.ErrAssistantProviderError) {
			s.requestLogger(r).Warn("assistant provider error", zap.Error(err))
			writeError(w, http.StatusBadGateway, codeAssistantProviderError, assistantuc.ErrorReply)
			return
		}
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reply": reply})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrItemNotFound,
		domain.ErrOrderNotFound,
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidInput,
		domain.ErrInsufficientStock,
		domain.ErrStatusConflict,
		domain.ErrAssistantDisabled,
		domain.ErrAssistantProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// requestLogger prefers the request-scoped logger placed in the context
// by the middleware chain; it carries the request id.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logger.FromContextOr(r.Context(), s.logger)
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
