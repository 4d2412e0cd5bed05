package order

import (
	"errors"
	"testing"

	"github.com/agrimart-cloud/agrimart/internal/domain"
)

func mustLine(t *testing.T, itemID string, price float64, qty int) Line {
	t.Helper()
	l, err := NewLine(itemID, "item "+itemID, price, qty)
	if err != nil {
		t.Fatalf("NewLine: %v", err)
	}
	return l
}

func TestNew_DerivesTotal(t *testing.T) {
	lines := []Line{
		mustLine(t, "a", 450, 2),
		mustLine(t, "b", 100, 3),
	}

	o, err := New("o-1", "farmer-1", "Asha", "Pune", "shop-1", "AgriStore", lines, 1700000000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Total() != 1200 {
		t.Errorf("expected total 1200, got %g", o.Total())
	}
	if o.Status() != StatusPending {
		t.Errorf("expected pending, got %s", o.Status())
	}
}

func TestNew_Invalid(t *testing.T) {
	line := mustLine(t, "a", 10, 1)

	if _, err := New("", "f", "", "", "s", "", []Line{line}, 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty id, got %v", err)
	}
	if _, err := New("o", "", "", "", "s", "", []Line{line}, 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty farmer, got %v", err)
	}
	if _, err := New("o", "f", "", "", "s", "", nil, 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for no lines, got %v", err)
	}
}

func TestNewLine_Invalid(t *testing.T) {
	if _, err := NewLine("", "x", 10, 1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty item id, got %v", err)
	}
	if _, err := NewLine("a", "x", 10, 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero quantity, got %v", err)
	}
	if _, err := NewLine("a", "x", -1, 1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative price, got %v", err)
	}
}

func TestStatus_Transitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
	}
	for _, tr := range allowed {
		if !tr.from.CanTransitionTo(tr.to) {
			t.Errorf("expected %s -> %s allowed", tr.from, tr.to)
		}
	}

	forbidden := []struct{ from, to Status }{
		{StatusPending, StatusCompleted},
		{StatusCompleted, StatusCancelled},
		{StatusCompleted, StatusPending},
		{StatusCancelled, StatusConfirmed},
		{StatusConfirmed, StatusPending},
	}
	for _, tr := range forbidden {
		if tr.from.CanTransitionTo(tr.to) {
			t.Errorf("expected %s -> %s forbidden", tr.from, tr.to)
		}
	}
}

func TestWithStatus(t *testing.T) {
	o, err := New("o-1", "f", "", "", "s", "", []Line{mustLine(t, "a", 10, 1)}, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	confirmed, err := o.WithStatus(StatusConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmed.Status() != StatusConfirmed {
		t.Errorf("expected confirmed, got %s", confirmed.Status())
	}
	if o.Status() != StatusPending {
		t.Error("original order was mutated")
	}

	if _, err := o.WithStatus(StatusCompleted); !errors.Is(err, domain.ErrStatusConflict) {
		t.Errorf("expected ErrStatusConflict, got %v", err)
	}
	if _, err := o.WithStatus("shipped"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}
