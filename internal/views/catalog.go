// Package views holds the page controllers: one per storefront screen,
// each owning the read-only data it fetched plus loading/error flags.
// Stores and the API client are injected at construction; pages never
// talk to each other.
package views

import (
	"context"
	"sync"

	"github.com/mvoronov/storefront/internal/api"
)

// Catalog is the home page: product grid with category filter and search.
type Catalog struct {
	mu         sync.Mutex
	client     *api.Client
	products   []api.Product
	categories []api.Category
	categoryID string
	query      string
	loading    bool
	err        string
}

type CatalogState struct {
	Products   []api.Product  `json:"products"`
	Categories []api.Category `json:"categories"`
	CategoryID string         `json:"categoryId,omitempty"`
	Query      string         `json:"query,omitempty"`
	Loading    bool           `json:"loading"`
	Error      string         `json:"error,omitempty"`
}

func NewCatalog(client *api.Client) *Catalog {
	return &Catalog{client: client}
}

// Load fetches categories and products for the given filter. An empty
// query lists, a non-empty one searches; both paths end in a full
// replacement of the product list.
func (p *Catalog) Load(ctx context.Context, categoryID, query string) {
	p.mu.Lock()
	p.loading = true
	p.categoryID = categoryID
	p.query = query
	p.mu.Unlock()

	categories, catErr := p.client.Categories(ctx)

	var products []api.Product
	var err error
	if query != "" {
		products, err = p.client.SearchProducts(ctx, query, categoryID)
	} else {
		products, err = p.client.Products(ctx, categoryID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	p.err = ""
	if catErr == nil {
		p.categories = categories
	}
	if err != nil {
		p.err = err.Error()
		return
	}
	p.products = products
}

func (p *Catalog) State() CatalogState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return CatalogState{
		Products:   append([]api.Product(nil), p.products...),
		Categories: append([]api.Category(nil), p.categories...),
		CategoryID: p.categoryID,
		Query:      p.query,
		Loading:    p.loading,
		Error:      p.err,
	}
}
