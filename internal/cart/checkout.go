package cart

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/freshmandiapp/freshmandi/internal/address"
	"github.com/freshmandiapp/freshmandi/internal/orders"
)

// Checkout turns the cart plus the selected address into a placed order.
type Checkout struct {
	carts     *Store
	addresses *address.Store
	orders    *orders.Client
	logger    *slog.Logger
}

func NewCheckout(carts *Store, addresses *address.Store, ordersClient *orders.Client, logger *slog.Logger) *Checkout {
	return &Checkout{
		carts:     carts,
		addresses: addresses,
		orders:    ordersClient,
		logger:    logger,
	}
}

// PlaceOrder submits the current cart. The cart is cleared only after the
// server accepts the order; any failure leaves cart and selection untouched
// so the user can retry.
func (c *Checkout) PlaceOrder(ctx context.Context, userKey string, mode orders.Mode) (*orders.Order, error) {
	cart := c.carts.Get(ctx, userKey)
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	selected := c.addresses.Selected(ctx, userKey)
	if selected == nil {
		return nil, fmt.Errorf("no delivery address selected")
	}

	items := make([]orders.LineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, orders.LineItem{
			Name:      item.Name,
			Weight:    item.Weight,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	placed, err := c.orders.Place(ctx, orders.PlaceOrderRequest{
		UserID:         userKey,
		Mode:           mode,
		Items:          items,
		Address:        *selected,
		TotalAmount:    cart.Subtotal(),
		DeliveryCharge: cart.DeliveryCharge(),
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	c.carts.Clear(ctx, userKey)
	if c.logger != nil {
		c.logger.Info("order placed", "order_id", placed.ID, "mode", string(mode))
	}
	return placed, nil
}
