package orders

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Status
	}{
		{name: "shipped alias", raw: "SHIPPED", want: StatusDispatched},
		{name: "dispatch alias", raw: "Dispatch", want: StatusDispatched},
		{name: "dispatched passthrough", raw: "DISPATCHED", want: StatusDispatched},
		{name: "delivered lowercase", raw: "delivered", want: StatusDelivered},
		{name: "cancelled with whitespace", raw: "  cancelled ", want: StatusCancelled},
		{name: "pending passthrough", raw: "PENDING", want: StatusPending},
		{name: "empty defaults to pending", raw: "", want: StatusPending},
		{name: "unknown defaults to pending", raw: "REFUND_IN_PROGRESS", want: StatusPending},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.raw); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIsTotal(t *testing.T) {
	t.Parallel()

	inputs := []string{"", " ", "SHIPPED", "garbage", "Délivré", "123", "\tPENDING\n"}
	valid := map[Status]bool{
		StatusPending:    true,
		StatusDispatched: true,
		StatusDelivered:  true,
		StatusCancelled:  true,
	}

	for _, raw := range inputs {
		if got := Normalize(raw); !valid[got] {
			t.Fatalf("Normalize(%q) = %q, not in the closed enumeration", raw, got)
		}
	}
}

func TestCanCancel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{name: "pending is cancellable", status: "PENDING", want: true},
		{name: "unknown falls open to cancellable", status: "whatever", want: true},
		{name: "dispatched is not", status: "DISPATCHED", want: false},
		{name: "shipped alias is not", status: "shipped", want: false},
		{name: "delivered is not", status: "DELIVERED", want: false},
		{name: "cancelled is not", status: "CANCELLED", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CanCancel(Order{Status: tt.status}); got != tt.want {
				t.Fatalf("CanCancel(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestDescribeDelivered(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		order        Order
		wantSubtitle string
	}{
		{
			name:         "uses deliveredAt first",
			order:        Order{Status: "DELIVERED", DeliveredAt: "2026-02-10", UpdatedAt: "2026-02-09", CreatedAt: "2026-02-01"},
			wantSubtitle: "Delivered on 10/02/2026",
		},
		{
			name:         "falls back to updatedAt",
			order:        Order{Status: "DELIVERED", UpdatedAt: "2026-02-09", CreatedAt: "2026-02-01"},
			wantSubtitle: "Delivered on 09/02/2026",
		},
		{
			name:         "falls back to createdAt",
			order:        Order{Status: "DELIVERED", CreatedAt: "2026-02-01"},
			wantSubtitle: "Delivered on 01/02/2026",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := Describe(tt.order)
			if p.Title != "Order Delivered" {
				t.Fatalf("Title = %q, want %q", p.Title, "Order Delivered")
			}
			if p.Subtitle != tt.wantSubtitle {
				t.Fatalf("Subtitle = %q, want %q", p.Subtitle, tt.wantSubtitle)
			}
			if p.Cancellable {
				t.Fatalf("delivered order must not be cancellable")
			}
		})
	}
}

func TestDescribeDispatchedPrefersExpectedDelivery(t *testing.T) {
	t.Parallel()

	p := Describe(Order{
		Status:           "SHIPPED",
		ExpectedDelivery: "2026-03-01",
		DispatchedAt:     "2026-02-27",
	})

	if p.Title != "Order Dispatched" {
		t.Fatalf("Title = %q, want %q", p.Title, "Order Dispatched")
	}
	if p.Subtitle != "Arriving by 01/03/2026" {
		t.Fatalf("Subtitle = %q, want %q", p.Subtitle, "Arriving by 01/03/2026")
	}
	if p.Cancellable {
		t.Fatalf("dispatched order must not be cancellable")
	}
}

func TestDescribeDispatchedTimestampFallbackChain(t *testing.T) {
	t.Parallel()

	p := Describe(Order{Status: "DISPATCHED", UpdatedAt: "2026-02-27", CreatedAt: "2026-02-20"})
	if p.Subtitle != "Dispatched on 27/02/2026" {
		t.Fatalf("Subtitle = %q, want %q", p.Subtitle, "Dispatched on 27/02/2026")
	}
}

func TestDescribePending(t *testing.T) {
	t.Parallel()

	p := Describe(Order{Status: "PENDING", ExpectedDelivery: "2026-03-01", CreatedAt: "2026-02-20"})

	if p.Title != "Order Pending" {
		t.Fatalf("Title = %q, want %q", p.Title, "Order Pending")
	}
	if !strings.Contains(p.Subtitle, "01/03/2026") {
		t.Fatalf("Subtitle = %q, want expected-delivery date in it", p.Subtitle)
	}
	if !p.Cancellable {
		t.Fatalf("pending order must be cancellable")
	}
}

func TestDescribePendingWithoutExpectedDelivery(t *testing.T) {
	t.Parallel()

	p := Describe(Order{Status: "PENDING", CreatedAt: "2026-02-20T10:30:00Z"})
	if p.Subtitle != "Placed on 20 February 2026 10:30" {
		t.Fatalf("Subtitle = %q, want %q", p.Subtitle, "Placed on 20 February 2026 10:30")
	}
}

func TestDescribeCancelled(t *testing.T) {
	t.Parallel()

	p := Describe(Order{Status: "cancelled"})
	if p.Title != "Order Cancelled" {
		t.Fatalf("Title = %q, want %q", p.Title, "Order Cancelled")
	}
	if p.Subtitle != "This order was cancelled" {
		t.Fatalf("Subtitle = %q, want fixed cancel subtitle", p.Subtitle)
	}
	if p.Cancellable {
		t.Fatalf("cancelled order must not be cancellable")
	}
}
