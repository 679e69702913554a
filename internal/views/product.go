package views

import (
	"context"
	"sync"

	"github.com/mvoronov/storefront/internal/api"
)

// ProductDetail is the single-product page.
type ProductDetail struct {
	mu      sync.Mutex
	client  *api.Client
	product *api.Product
	loading bool
	err     string
}

type ProductDetailState struct {
	Product *api.Product `json:"product"`
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
}

func NewProductDetail(client *api.Client) *ProductDetail {
	return &ProductDetail{client: client}
}

func (p *ProductDetail) Load(ctx context.Context, id string) {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	product, err := p.client.Product(ctx, id)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.product = nil
		p.err = err.Error()
		return
	}
	p.err = ""
	p.product = product
}

func (p *ProductDetail) State() ProductDetailState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ProductDetailState{Product: p.product, Loading: p.loading, Error: p.err}
}
