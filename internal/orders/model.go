// Package orders holds the order model, the typed client for the remote
// order API and the status reconciliation logic that decides what a given
// order looks like on screen.
package orders

import (
	"github.com/shopspring/decimal"

	"github.com/freshmandiapp/freshmandi/internal/address"
)

// Mode selects which shopping flow an order list belongs to.
type Mode string

const (
	ModeRetail    Mode = "retail"
	ModeWholesale Mode = "wholesale"
)

// LineItem is one entry of an order, snapshotted server-side at checkout.
type LineItem struct {
	Name      string          `json:"name"`
	Weight    string          `json:"weight,omitempty"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Order is the server's view of an order. The client never mutates it; the
// only write path is a cancel request. Timestamp fields stay raw strings
// because the server sends mixed shapes depending on the endpoint; parsing
// happens at render time only.
type Order struct {
	ID               string           `json:"id"`
	Status           string           `json:"status"`
	Items            []LineItem       `json:"items,omitempty"`
	TotalAmount      decimal.Decimal  `json:"totalAmount"`
	DeliveryCharge   decimal.Decimal  `json:"deliveryCharge"`
	CreatedAt        string           `json:"createdAt"`
	UpdatedAt        string           `json:"updatedAt,omitempty"`
	DeliveredAt      string           `json:"deliveredAt,omitempty"`
	DispatchedAt     string           `json:"dispatchedAt,omitempty"`
	ExpectedDelivery string           `json:"expectedDelivery,omitempty"`
	Address          *address.Address `json:"address,omitempty"`
}
