package cart

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/freshmandiapp/freshmandi/internal/kv"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	provider, err := kv.NewMemoryProvider()
	if err != nil {
		t.Fatalf("NewMemoryProvider() error = %v", err)
	}
	return NewStore(provider, slog.New(slog.DiscardHandler))
}

func tomato(qty int) Item {
	return Item{
		SKU:       "TOMATO_1KG",
		Name:      "Tomato",
		Weight:    "1 kg",
		UnitPrice: decimal.NewFromInt(40),
		Quantity:  qty,
	}
}

func TestAddMergesSameSKU(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, "u1", tomato(1))
	c := s.Add(ctx, "u1", tomato(2))

	if len(c.Items) != 1 {
		t.Fatalf("items length = %d, want 1", len(c.Items))
	}
	if c.Items[0].Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", c.Items[0].Quantity)
	}
}

func TestUpdateQuantity(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, "u1", tomato(2))

	c := s.UpdateQuantity(ctx, "u1", "TOMATO_1KG", 5)
	if c.Items[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", c.Items[0].Quantity)
	}

	c = s.UpdateQuantity(ctx, "u1", "TOMATO_1KG", 0)
	if len(c.Items) != 0 {
		t.Fatalf("items length = %d, want 0 after zero quantity", len(c.Items))
	}
}

func TestUpdateQuantityUnknownSKUIsNoOp(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, "u1", tomato(2))

	c := s.UpdateQuantity(ctx, "u1", "UNKNOWN", 5)
	if len(c.Items) != 1 || c.Items[0].Quantity != 2 {
		t.Fatalf("cart changed by unknown SKU update: %+v", c.Items)
	}
}

func TestTotalsAndDeliveryCharge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		cart         Cart
		wantSubtotal string
		wantCharge   string
		wantTotal    string
	}{
		{
			name:         "empty cart has no charge",
			cart:         Cart{},
			wantSubtotal: "0",
			wantCharge:   "0",
			wantTotal:    "0",
		},
		{
			name: "below threshold pays flat charge",
			cart: Cart{Items: []Item{
				{SKU: "A", UnitPrice: decimal.NewFromInt(40), Quantity: 2},
			}},
			wantSubtotal: "80",
			wantCharge:   "40",
			wantTotal:    "120",
		},
		{
			name: "at threshold ships free",
			cart: Cart{Items: []Item{
				{SKU: "A", UnitPrice: decimal.NewFromInt(250), Quantity: 2},
			}},
			wantSubtotal: "500",
			wantCharge:   "0",
			wantTotal:    "500",
		},
		{
			name: "fractional prices",
			cart: Cart{Items: []Item{
				{SKU: "A", UnitPrice: decimal.RequireFromString("32.5"), Quantity: 3},
			}},
			wantSubtotal: "97.5",
			wantCharge:   "40",
			wantTotal:    "137.5",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.cart.Subtotal().String(); got != tt.wantSubtotal {
				t.Fatalf("Subtotal() = %s, want %s", got, tt.wantSubtotal)
			}
			if got := tt.cart.DeliveryCharge().String(); got != tt.wantCharge {
				t.Fatalf("DeliveryCharge() = %s, want %s", got, tt.wantCharge)
			}
			if got := tt.cart.Total().String(); got != tt.wantTotal {
				t.Fatalf("Total() = %s, want %s", got, tt.wantTotal)
			}
		})
	}
}

func TestGetFailsSoftOnCorruptData(t *testing.T) {
	t.Parallel()

	provider, err := kv.NewMemoryProvider()
	if err != nil {
		t.Fatalf("NewMemoryProvider() error = %v", err)
	}
	ctx := context.Background()
	if err := provider.Set(ctx, "userCart_u1", "{broken"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	s := NewStore(provider, slog.New(slog.DiscardHandler))
	if got := s.Get(ctx, "u1"); len(got.Items) != 0 {
		t.Fatalf("Get() items = %d, want 0 for corrupt data", len(got.Items))
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, "u1", tomato(1))
	s.Clear(ctx, "u1")

	if got := s.Get(ctx, "u1"); len(got.Items) != 0 {
		t.Fatalf("Get() items = %d, want 0 after clear", len(got.Items))
	}
}
