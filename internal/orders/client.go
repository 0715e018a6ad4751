package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/freshmandiapp/freshmandi/internal/address"
	"github.com/freshmandiapp/freshmandi/internal/httpclient"
)

// Client wraps the remote order API. A request failure surfaces as an error
// and leaves whatever the screen already shows untouched.
type Client struct {
	baseURL    string
	httpClient *httpclient.Client
}

func NewClient(baseURL string, hc *httpclient.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	UserID         string          `json:"userId"`
	Mode           Mode            `json:"mode,omitempty"`
	Items          []LineItem      `json:"items"`
	Address        address.Address `json:"address"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	DeliveryCharge decimal.Decimal `json:"deliveryCharge"`
}

// List fetches the user's orders, newest first per the server's ordering.
// An empty mode fetches the retail flow.
func (c *Client) List(ctx context.Context, userID string, mode Mode) ([]Order, error) {
	endpoint := fmt.Sprintf("%s/orders/list/%s", c.baseURL, url.PathEscape(userID))
	if mode != "" {
		endpoint += "?mode=" + url.QueryEscape(string(mode))
	}

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch order list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch order list: unexpected status %d", resp.StatusCode)
	}

	var list []Order
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode order list: %w", err)
	}
	return list, nil
}

// Details fetches a single order.
func (c *Client) Details(ctx context.Context, orderID string) (*Order, error) {
	endpoint := fmt.Sprintf("%s/orders/details/%s", c.baseURL, url.PathEscape(orderID))

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch order details: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch order details: unexpected status %d", resp.StatusCode)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode order details: %w", err)
	}
	return &order, nil
}

// Cancel requests a pending-to-cancelled transition. The server decides
// whether to accept it; the request carries nothing but the order id.
func (c *Client) Cancel(ctx context.Context, orderID string) error {
	payload, err := json.Marshal(map[string]string{"orderId": orderID})
	if err != nil {
		return fmt.Errorf("encode cancel request: %w", err)
	}

	resp, err := c.httpClient.Post(ctx, c.baseURL+"/orders/cancel", "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cancel order: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Place submits a checkout request and returns the created order.
func (c *Client) Place(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode place request: %w", err)
	}

	resp, err := c.httpClient.Post(ctx, c.baseURL+"/orders/place", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("place order: unexpected status %d", resp.StatusCode)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode placed order: %w", err)
	}
	return &order, nil
}
