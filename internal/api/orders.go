package api

import (
	"context"
	"net/http"
	"net/url"
)

// The order routes are capitalized on the backend. Keep them verbatim.

func (c *Client) PlaceOrder(ctx context.Context, token string) (*Order, error) {
	var order Order
	if err := c.doJSON(ctx, http.MethodPost, "/Orders", token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Orders(ctx context.Context, token string) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/Orders", token, nil, "", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AllOrders is admin-only on the backend.
func (c *Client) AllOrders(ctx context.Context, token string) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/Orders/all", token, nil, "", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID string, status OrderStatus) (*Order, error) {
	req := map[string]int{"status": int(status)}
	var order Order
	if err := c.doJSON(ctx, http.MethodPut, "/Orders/"+url.PathEscape(orderID)+"/status", token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
