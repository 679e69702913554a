package api

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) MonthlySales(ctx context.Context, token string, year int) ([]MonthlySale, error) {
	var sales []MonthlySale
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/reports/sales/%d", year), token, nil, "", &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (c *Client) PopularProducts(ctx context.Context, token string, count int) ([]PopularProduct, error) {
	var products []PopularProduct
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/reports/popular-products?count=%d", count), token, nil, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) TopCustomers(ctx context.Context, token string, count int) ([]TopCustomer, error) {
	var customers []TopCustomer
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/reports/top-customers?count=%d", count), token, nil, "", &customers); err != nil {
		return nil, err
	}
	return customers, nil
}
