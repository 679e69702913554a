package views

import (
	"context"
	"sync"

	"github.com/mvoronov/storefront/internal/api"
	"github.com/mvoronov/storefront/internal/session"
)

// Reports is the sales & analytics page: three independent report calls
// for a chosen year and top-N counts.
type Reports struct {
	mu        sync.Mutex
	client    *api.Client
	session   *session.Store
	monthly   []api.MonthlySale
	popular   []api.PopularProduct
	customers []api.TopCustomer
	loading   bool
	err       string
}

type ReportsState struct {
	MonthlySales    []api.MonthlySale    `json:"monthlySales"`
	PopularProducts []api.PopularProduct `json:"popularProducts"`
	TopCustomers    []api.TopCustomer    `json:"topCustomers"`
	Loading         bool                 `json:"loading"`
	Error           string               `json:"error,omitempty"`
}

func NewReports(client *api.Client, sess *session.Store) *Reports {
	return &Reports{client: client, session: sess}
}

func (p *Reports) Load(ctx context.Context, year, productCount, customerCount int) {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	token := p.session.Token()
	monthly, err1 := p.client.MonthlySales(ctx, token, year)
	popular, err2 := p.client.PopularProducts(ctx, token, productCount)
	customers, err3 := p.client.TopCustomers(ctx, token, customerCount)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	p.err = ""
	for _, err := range []error{err1, err2, err3} {
		if err != nil {
			p.err = err.Error()
			return
		}
	}
	p.monthly = monthly
	p.popular = popular
	p.customers = customers
}

func (p *Reports) State() ReportsState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ReportsState{
		MonthlySales:    append([]api.MonthlySale(nil), p.monthly...),
		PopularProducts: append([]api.PopularProduct(nil), p.popular...),
		TopCustomers:    append([]api.TopCustomer(nil), p.customers...),
		Loading:         p.loading,
		Error:           p.err,
	}
}
