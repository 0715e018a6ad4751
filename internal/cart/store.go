// Package cart keeps the per-user shopping cart in the device store and
// turns it into an order at checkout.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/freshmandiapp/freshmandi/internal/address"
	"github.com/freshmandiapp/freshmandi/internal/kv"
)

// Delivery pricing: orders at or above the threshold ship free, the rest
// pay a flat charge.
var (
	freeDeliveryThreshold = decimal.NewFromInt(500)
	flatDeliveryCharge    = decimal.NewFromInt(40)
)

// Item is one cart line.
type Item struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Weight    string          `json:"weight,omitempty"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Cart is the full cart for one user key.
type Cart struct {
	Items []Item `json:"items"`
}

// Subtotal sums unit price times quantity across all lines.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// DeliveryCharge is zero at or above the free-delivery threshold.
func (c Cart) DeliveryCharge() decimal.Decimal {
	if len(c.Items) == 0 {
		return decimal.Zero
	}
	if c.Subtotal().GreaterThanOrEqual(freeDeliveryThreshold) {
		return decimal.Zero
	}
	return flatDeliveryCharge
}

// Total is subtotal plus delivery charge.
func (c Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.DeliveryCharge())
}

// Store persists carts in the device store, one per user key, with the same
// fail-soft policy as the address book.
type Store struct {
	kv     kv.Provider
	logger *slog.Logger
}

func NewStore(provider kv.Provider, logger *slog.Logger) *Store {
	return &Store{
		kv:     provider,
		logger: logger,
	}
}

// Get returns the stored cart; missing or unreadable data yields an empty cart.
func (s *Store) Get(ctx context.Context, userKey string) Cart {
	raw, err := s.kv.Get(ctx, cartKey(userKey))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logDegraded("read cart", err)
		}
		return Cart{Items: []Item{}}
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		s.logDegraded("decode cart", err)
		return Cart{Items: []Item{}}
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	return c
}

// Add merges the item into the cart; an existing line with the same SKU has
// its quantity increased instead of duplicating the line.
func (s *Store) Add(ctx context.Context, userKey string, item Item) Cart {
	c := s.Get(ctx, userKey)

	for i := range c.Items {
		if c.Items[i].SKU == item.SKU {
			c.Items[i].Quantity += item.Quantity
			s.persist(ctx, userKey, c)
			return c
		}
	}

	c.Items = append(c.Items, item)
	s.persist(ctx, userKey, c)
	return c
}

// UpdateQuantity sets the quantity for a line; zero or negative removes it.
// An unknown SKU is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, userKey, sku string, quantity int) Cart {
	c := s.Get(ctx, userKey)

	for i := range c.Items {
		if c.Items[i].SKU != sku {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		s.persist(ctx, userKey, c)
		return c
	}
	return c
}

// Remove deletes the line with the given SKU; unknown SKUs are a no-op.
func (s *Store) Remove(ctx context.Context, userKey, sku string) Cart {
	return s.UpdateQuantity(ctx, userKey, sku, 0)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context, userKey string) {
	if err := s.kv.Delete(ctx, cartKey(userKey)); err != nil {
		s.logDegraded("clear cart", err)
	}
}

func (s *Store) persist(ctx context.Context, userKey string, c Cart) {
	raw, err := json.Marshal(c)
	if err != nil {
		s.logDegraded("encode cart", err)
		return
	}
	if err := s.kv.Set(ctx, cartKey(userKey), string(raw)); err != nil {
		s.logDegraded("write cart", err)
	}
}

func (s *Store) logDegraded(op string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Debug("cart store degraded to empty", "op", op, "error", err)
}

func cartKey(userKey string) string {
	if strings.TrimSpace(userKey) == "" {
		userKey = address.GuestKey
	}
	return fmt.Sprintf("userCart_%s", userKey)
}
