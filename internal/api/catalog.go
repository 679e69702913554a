package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/categories", "", nil, "", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, token, name string) (*Category, error) {
	var category Category
	if err := c.doJSON(ctx, http.MethodPost, "/categories", token, map[string]string{"name": name}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, token, id, name string) (*Category, error) {
	var category Category
	if err := c.doJSON(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), token, map[string]string{"name": name}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), token, nil, "", nil)
}

func (c *Client) Products(ctx context.Context, categoryID string) ([]Product, error) {
	path := "/products"
	if categoryID != "" {
		path += "?categoryId=" + url.QueryEscape(categoryID)
	}
	var products []Product
	if err := c.do(ctx, http.MethodGet, path, "", nil, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), "", nil, "", &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) SearchProducts(ctx context.Context, query, categoryID string) ([]Product, error) {
	params := url.Values{}
	params.Set("q", query)
	if categoryID != "" {
		params.Set("categoryId", categoryID)
	}
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products/search?"+params.Encode(), "", nil, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductForm is the multipart payload the admin product dialogs submit.
// Image may be nil when the product keeps its current image.
type ProductForm struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	CategoryID    string
	ImageName     string
	Image         io.Reader
}

func (f *ProductForm) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":          f.Name,
		"description":   f.Description,
		"price":         f.Price.String(),
		"stockQuantity": fmt.Sprint(f.StockQuantity),
		"categoryId":    f.CategoryID,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}
	if f.Image != nil {
		fw, err := w.CreateFormFile("imageFile", f.ImageName)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(fw, f.Image); err != nil {
			return nil, "", fmt.Errorf("copy image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, form *ProductForm) (*Product, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}
	var product Product
	if err := c.do(ctx, http.MethodPost, "/products", token, body, contentType, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, form *ProductForm) (*Product, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}
	var product Product
	if err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), token, body, contentType, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), token, nil, "", nil)
}
