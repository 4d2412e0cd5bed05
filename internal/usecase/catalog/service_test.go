package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/agrimart-cloud/agrimart/internal/domain"
	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
)

// --- Mocks ---

type mockItemStore struct {
	stored map[string]catalog.Item
	err    error
}

func newMockItemStore() *mockItemStore {
	return &mockItemStore{stored: make(map[string]catalog.Item)}
}

func (m *mockItemStore) Upsert(_ context.Context, it catalog.Item) error {
	if m.err != nil {
		return m.err
	}
	m.stored[it.ID()] = it
	return nil
}

func (m *mockItemStore) Get(_ context.Context, id string) (catalog.Item, error) {
	it, ok := m.stored[id]
	if !ok {
		return catalog.Item{}, fmt.Errorf("%w: item %s", domain.ErrItemNotFound, id)
	}
	return it, nil
}

func (m *mockItemStore) Delete(_ context.Context, id string) error {
	if _, ok := m.stored[id]; !ok {
		return fmt.Errorf("%w: item %s", domain.ErrItemNotFound, id)
	}
	delete(m.stored, id)
	return nil
}

func (m *mockItemStore) ListByShop(_ context.Context, shopID string) ([]catalog.Item, error) {
	var out []catalog.Item
	for _, it := range m.stored {
		if it.ShopID() == shopID {
			out = append(out, it)
		}
	}
	return out, nil
}

// --- Tests ---

func TestCreate_AssignsIDAndTimestamp(t *testing.T) {
	store := newMockItemStore()
	svc := NewService(store)
	svc.now = func() int64 { return 1700000000000 }

	it, err := svc.Create(context.Background(), catalog.Attrs{
		Name: "Urea Gold", ShopID: "shop-1", Price: 450, Quantity: 20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.ID() == "" {
		t.Error("expected generated id")
	}
	if it.CreatedAt() != 1700000000000 {
		t.Errorf("expected injected timestamp, got %d", it.CreatedAt())
	}
	if _, ok := store.stored[it.ID()]; !ok {
		t.Error("item was not persisted")
	}
}

func TestCreate_RejectsInvalidAttrs(t *testing.T) {
	svc := NewService(newMockItemStore())

	if _, err := svc.Create(context.Background(), catalog.Attrs{Price: -1, Name: "x"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdate_KeepsIDAndCreatedAt(t *testing.T) {
	store := newMockItemStore()
	svc := NewService(store)
	svc.now = func() int64 { return 1700000000000 }

	it, err := svc.Create(context.Background(), catalog.Attrs{Name: "Urea Gold", Price: 450})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(context.Background(), it.ID(), catalog.Attrs{Name: "Urea Gold Pro", Price: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID() != it.ID() {
		t.Error("id changed on update")
	}
	if updated.CreatedAt() != it.CreatedAt() {
		t.Error("creation time changed on update")
	}
	if updated.Name() != "Urea Gold Pro" || updated.Price() != 500 {
		t.Errorf("attributes not applied: %s %g", updated.Name(), updated.Price())
	}
}

func TestUpdate_UnknownItem(t *testing.T) {
	svc := NewService(newMockItemStore())

	if _, err := svc.Update(context.Background(), "ghost", catalog.Attrs{Name: "x"}); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestUpdateStock(t *testing.T) {
	store := newMockItemStore()
	svc := NewService(store)

	it, err := svc.Create(context.Background(), catalog.Attrs{Name: "Urea Gold", Quantity: 20})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.UpdateStock(context.Background(), it.ID(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Quantity() != 3 {
		t.Errorf("expected quantity 3, got %d", updated.Quantity())
	}

	if _, err := svc.UpdateStock(context.Background(), it.ID(), -1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := newMockItemStore()
	svc := NewService(store)

	it, err := svc.Create(context.Background(), catalog.Attrs{Name: "Urea Gold"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), it.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), it.ID()); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound on second delete, got %v", err)
	}
}
