package views

import (
	"context"
	"sync"

	"github.com/mvoronov/storefront/internal/api"
	"github.com/mvoronov/storefront/internal/session"
)

// AdminProducts is the product back-office page. Create and update go
// through the multipart form endpoint and then refetch the list, the way
// the dialogs behave; delete patches the list locally.
type AdminProducts struct {
	mu         sync.Mutex
	client     *api.Client
	session    *session.Store
	products   []api.Product
	categories []api.Category
	loading    bool
	err        string
}

type AdminProductsState struct {
	Products   []api.Product  `json:"products"`
	Categories []api.Category `json:"categories"`
	Loading    bool           `json:"loading"`
	Error      string         `json:"error,omitempty"`
}

func NewAdminProducts(client *api.Client, sess *session.Store) *AdminProducts {
	return &AdminProducts{client: client, session: sess}
}

func (p *AdminProducts) Load(ctx context.Context) {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	products, err := p.client.Products(ctx, "")
	categories, catErr := p.client.Categories(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if catErr == nil {
		p.categories = categories
	}
	if err != nil {
		p.err = err.Error()
		return
	}
	p.err = ""
	p.products = products
}

func (p *AdminProducts) Create(ctx context.Context, form *api.ProductForm) error {
	if _, err := p.client.CreateProduct(ctx, p.session.Token(), form); err != nil {
		return err
	}
	p.refetchProducts(ctx)
	return nil
}

func (p *AdminProducts) Update(ctx context.Context, id string, form *api.ProductForm) error {
	if _, err := p.client.UpdateProduct(ctx, p.session.Token(), id, form); err != nil {
		return err
	}
	p.refetchProducts(ctx)
	return nil
}

func (p *AdminProducts) Delete(ctx context.Context, id string) error {
	if err := p.client.DeleteProduct(ctx, p.session.Token(), id); err != nil {
		return err
	}
	p.mu.Lock()
	kept := p.products[:0]
	for _, prod := range p.products {
		if prod.ID != id {
			kept = append(kept, prod)
		}
	}
	p.products = kept
	p.mu.Unlock()
	return nil
}

func (p *AdminProducts) refetchProducts(ctx context.Context) {
	products, err := p.client.Products(ctx, "")
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		// The mutation already succeeded; a stale list is shown until
		// the next load rather than failing the action.
		p.err = err.Error()
		return
	}
	p.err = ""
	p.products = products
}

func (p *AdminProducts) State() AdminProductsState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return AdminProductsState{
		Products:   append([]api.Product(nil), p.products...),
		Categories: append([]api.Category(nil), p.categories...),
		Loading:    p.loading,
		Error:      p.err,
	}
}
