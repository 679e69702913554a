package views

import (
	"context"
	"sync"

	"github.com/mvoronov/storefront/internal/api"
	"github.com/mvoronov/storefront/internal/session"
)

// AdminCategories is the category back-office page. Mutations patch the
// in-memory list from the response instead of refetching.
type AdminCategories struct {
	mu         sync.Mutex
	client     *api.Client
	session    *session.Store
	categories []api.Category
	loading    bool
	err        string
}

type AdminCategoriesState struct {
	Categories []api.Category `json:"categories"`
	Loading    bool           `json:"loading"`
	Error      string         `json:"error,omitempty"`
}

func NewAdminCategories(client *api.Client, sess *session.Store) *AdminCategories {
	return &AdminCategories{client: client, session: sess}
}

func (p *AdminCategories) Load(ctx context.Context) {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	categories, err := p.client.Categories(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.err = err.Error()
		return
	}
	p.err = ""
	p.categories = categories
}

func (p *AdminCategories) Create(ctx context.Context, name string) error {
	category, err := p.client.CreateCategory(ctx, p.session.Token(), name)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.categories = append(p.categories, *category)
	p.mu.Unlock()
	return nil
}

func (p *AdminCategories) Update(ctx context.Context, id, name string) error {
	category, err := p.client.UpdateCategory(ctx, p.session.Token(), id, name)
	if err != nil {
		return err
	}
	p.mu.Lock()
	for i := range p.categories {
		if p.categories[i].ID == id {
			p.categories[i] = *category
			break
		}
	}
	p.mu.Unlock()
	return nil
}

// Delete removes the row locally once the backend confirms; no refetch.
func (p *AdminCategories) Delete(ctx context.Context, id string) error {
	if err := p.client.DeleteCategory(ctx, p.session.Token(), id); err != nil {
		return err
	}
	p.mu.Lock()
	kept := p.categories[:0]
	for _, c := range p.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	p.categories = kept
	p.mu.Unlock()
	return nil
}

func (p *AdminCategories) State() AdminCategoriesState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return AdminCategoriesState{
		Categories: append([]api.Category(nil), p.categories...),
		Loading:    p.loading,
		Error:      p.err,
	}
}
