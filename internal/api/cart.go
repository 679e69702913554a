package api

import (
	"context"
	"net/http"
	"net/url"
)

// Cart endpoints work with or without a token; without one the backend
// keeps a session-scoped anonymous cart.

func (c *Client) GetCart(ctx context.Context, token string) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, "", &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddCartItem(ctx context.Context, token, productID string, quantity int) (*Cart, error) {
	req := map[string]any{"productId": productID, "quantity": quantity}
	var cart Cart
	if err := c.doJSON(ctx, http.MethodPost, "/cart/items", token, req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, token, productID string, quantity int) (*Cart, error) {
	req := map[string]any{"quantity": quantity}
	var cart Cart
	if err := c.doJSON(ctx, http.MethodPut, "/cart/items/"+url.PathEscape(productID), token, req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, token, productID string) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodDelete, "/cart/items/"+url.PathEscape(productID), token, nil, "", &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
