package chi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/agrimart-cloud/agrimart/internal/domain"
	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
	"github.com/agrimart-cloud/agrimart/internal/domain/order"
	cataloguc "github.com/agrimart-cloud/agrimart/internal/usecase/catalog"
	healthuc "github.com/agrimart-cloud/agrimart/internal/usecase/health"
	orderuc "github.com/agrimart-cloud/agrimart/internal/usecase/order"
	recommenduc "github.com/agrimart-cloud/agrimart/internal/usecase/recommend"
	searchuc "github.com/agrimart-cloud/agrimart/internal/usecase/search"
)

// fakeCatalog backs every catalog-facing interface the services need.
type fakeCatalog struct {
	items map[string]catalog.Item
}

func (f *fakeCatalog) ListAvailable(_ context.Context, pf catalog.Prefilter) ([]catalog.Item, error) {
	var out []catalog.Item
	for _, it := range f.items {
		if it.Quantity() <= 0 {
			continue
		}
		if pf.ShopID != "" && it.ShopID() != pf.ShopID {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (f *fakeCatalog) Upsert(_ context.Context, it catalog.Item) error {
	f.items[it.ID()] = it
	return nil
}

func (f *fakeCatalog) Get(_ context.Context, id string) (catalog.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return catalog.Item{}, fmt.Errorf("%w: item %s", domain.ErrItemNotFound, id)
	}
	return it, nil
}

func (f *fakeCatalog) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("%w: item %s", domain.ErrItemNotFound, id)
	}
	delete(f.items, id)
	return nil
}

func (f *fakeCatalog) ListByShop(_ context.Context, shopID string) ([]catalog.Item, error) {
	var out []catalog.Item
	for _, it := range f.items {
		if it.ShopID() == shopID {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeOrders struct {
	orders map[string]order.Order
}

func (f *fakeOrders) Upsert(_ context.Context, o order.Order) error {
	f.orders[o.ID()] = o
	return nil
}

func (f *fakeOrders) Get(_ context.Context, id string) (order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return order.Order{}, fmt.Errorf("%w: order %s", domain.ErrOrderNotFound, id)
	}
	return o, nil
}

func (f *fakeOrders) ListByFarmer(_ context.Context, farmerID string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range f.orders {
		if o.FarmerID() == farmerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) ListByShop(_ context.Context, shopID string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range f.orders {
		if o.ShopID() == shopID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakePinger struct{}

func (fakePinger) Ping(_ context.Context) error { return nil }

func f64(v float64) *float64 { return &v }

func newTestRouter(t *testing.T) (*chi.Mux, *fakeCatalog, *fakeOrders) {
	t.Helper()

	cat := &fakeCatalog{items: map[string]catalog.Item{
		"urea": catalog.Reconstruct("urea", catalog.Attrs{
			Name: "Urea Gold", ShopID: "shop-1", ShopName: "AgriStore",
			Price: 450, Quantity: 20, Rating: f64(4.5),
			Nutrients: []string{"nitrogen"}, SuitableCrops: []string{"wheat"},
		}),
		"compost": catalog.Reconstruct("compost", catalog.Attrs{
			Name: "Compost Mix", ShopID: "shop-1", ShopName: "AgriStore",
			Price: 150, Quantity: 8,
		}),
	}}
	ord := &fakeOrders{orders: make(map[string]order.Order)}

	server := NewServer(
		searchuc.NewService(cat, searchuc.Config{}),
		cataloguc.NewService(cat),
		orderuc.NewService(ord, cat),
		recommenduc.NewService(cat, recommenduc.Config{}),
		nil, // assistant disabled
		healthuc.New(fakePinger{}, nil),
		4.2,
		zap.NewNop(),
	)

	r := chi.NewRouter()
	server.RegisterRoutes(r)
	return r, cat, ord
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v\n%s", err, w.Body.String())
	}
}

func TestSearchCatalog(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/catalog/search?q=urea", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Items []itemResponse `json:"items"`
		Total int            `json:"total"`
	}
	decodeBody(t, w, &resp)
	if resp.Total != 1 || len(resp.Items) != 1 || resp.Items[0].Name != "Urea Gold" {
		t.Errorf("unexpected result: %+v", resp)
	}
}

func TestSearchCatalog_DisplayRatingDefault(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/catalog/search?q=compost", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Items []itemResponse `json:"items"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Items) != 1 || resp.Items[0].Rating != 4.2 {
		t.Errorf("expected display default rating 4.2, got %+v", resp.Items)
	}
}

func TestSearchCatalog_InvalidSortMode(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/catalog/search?sort_by=price-weird", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp errorResponse
	decodeBody(t, w, &resp)
	if resp.Code != codeValidationFailed {
		t.Errorf("expected %s, got %s", codeValidationFailed, resp.Code)
	}
}

func TestSuggestCatalog(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/catalog/suggest?q=ni", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Suggestions) != 1 || resp.Suggestions[0] != "nitrogen" {
		t.Errorf("unexpected suggestions: %v", resp.Suggestions)
	}

	short := doRequest(t, r, http.MethodGet, "/api/v1/catalog/suggest?q=n", "")
	var shortResp struct {
		Suggestions []string `json:"suggestions"`
	}
	decodeBody(t, short, &shortResp)
	if len(shortResp.Suggestions) != 0 {
		t.Errorf("expected empty suggestions for short input, got %v", shortResp.Suggestions)
	}
}

func TestGetItem_NotFound(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/items/ghost", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var resp errorResponse
	decodeBody(t, w, &resp)
	if resp.Code != codeItemNotFound {
		t.Errorf("expected %s, got %s", codeItemNotFound, resp.Code)
	}
}

func TestCreateItem(t *testing.T) {
	r, cat, _ := newTestRouter(t)

	body := `{"name":"DAP","shopId":"shop-1","price":100,"quantity":5}`
	w := doRequest(t, r, http.MethodPost, "/api/v1/items", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp itemResponse
	decodeBody(t, w, &resp)
	if resp.ID == "" || resp.Name != "DAP" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if _, ok := cat.items[resp.ID]; !ok {
		t.Error("item was not stored")
	}
}

func TestCreateItem_Invalid(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/v1/items", `{"name":"","price":100}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateStock(t *testing.T) {
	r, cat, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPut, "/api/v1/items/urea/stock", `{"quantity":3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cat.items["urea"].Quantity() != 3 {
		t.Errorf("expected stock 3, got %d", cat.items["urea"].Quantity())
	}
}

func TestCreateOrder_AndStatusFlow(t *testing.T) {
	r, _, ord := newTestRouter(t)

	body := `{"farmerId":"farmer-1","farmerName":"Asha","items":[{"itemId":"urea","quantity":2}]}`
	w := doRequest(t, r, http.MethodPost, "/api/v1/orders", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created orderResponse
	decodeBody(t, w, &created)
	if created.TotalAmount != 900 || created.Status != "pending" || created.ShopID != "shop-1" {
		t.Errorf("unexpected order: %+v", created)
	}
	if _, ok := ord.orders[created.ID]; !ok {
		t.Error("order was not stored")
	}

	confirm := doRequest(t, r, http.MethodPost, "/api/v1/orders/"+created.ID+"/status", `{"status":"confirmed"}`)
	if confirm.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", confirm.Code, confirm.Body.String())
	}

	// pending is not reachable from confirmed
	back := doRequest(t, r, http.MethodPost, "/api/v1/orders/"+created.ID+"/status", `{"status":"pending"}`)
	if back.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", back.Code)
	}
	var resp errorResponse
	decodeBody(t, back, &resp)
	if resp.Code != codeStatusConflict {
		t.Errorf("expected %s, got %s", codeStatusConflict, resp.Code)
	}
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	r, _, _ := newTestRouter(t)

	body := `{"farmerId":"farmer-1","items":[{"itemId":"urea","quantity":100}]}`
	w := doRequest(t, r, http.MethodPost, "/api/v1/orders", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}

	var resp errorResponse
	decodeBody(t, w, &resp)
	if resp.Code != codeInsufficientStock {
		t.Errorf("expected %s, got %s", codeInsufficientStock, resp.Code)
	}
}

func TestListOrders_RequiresFilter(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/orders", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRecommendations(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/recommendations", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Items []itemResponse `json:"items"`
	}
	decodeBody(t, w, &resp)
	// Only Urea Gold qualifies: quantity 20 and rating 4.5.
	if len(resp.Items) != 1 || resp.Items[0].Name != "Urea Gold" {
		t.Errorf("unexpected recommendations: %+v", resp.Items)
	}
}

func TestAssistantChat_Disabled(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/v1/assistant/chat", `{"question":"price of urea?"}`)
	if w.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", w.Code)
	}

	var resp errorResponse
	decodeBody(t, w, &resp)
	if resp.Code != codeAssistantDisabled {
		t.Errorf("expected %s, got %s", codeAssistantDisabled, resp.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Status string `json:"status"`
	}
	decodeBody(t, w, &resp)
	if resp.Status != "ok" {
		t.Errorf("expected ok, got %s", resp.Status)
	}
}
