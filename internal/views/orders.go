package views

import (
	"context"
	"sync"

	"github.com/mvoronov/storefront/internal/api"
	"github.com/mvoronov/storefront/internal/session"
)

// OrderRow pairs an order with the display label for its numeric status.
type OrderRow struct {
	api.Order
	StatusLabel string `json:"statusLabel"`
}

func newOrderRow(o api.Order) OrderRow {
	return OrderRow{Order: o, StatusLabel: o.Status.String()}
}

// Orders is the customer's order history page.
type Orders struct {
	mu      sync.Mutex
	client  *api.Client
	session *session.Store
	orders  []OrderRow
	loading bool
	err     string
}

type OrdersState struct {
	Orders  []OrderRow `json:"orders"`
	Loading bool       `json:"loading"`
	Error   string     `json:"error,omitempty"`
}

func NewOrders(client *api.Client, sess *session.Store) *Orders {
	return &Orders{client: client, session: sess}
}

func (p *Orders) Load(ctx context.Context) {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	orders, err := p.client.Orders(ctx, p.session.Token())

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.err = err.Error()
		return
	}
	p.err = ""
	p.orders = p.orders[:0]
	for _, o := range orders {
		p.orders = append(p.orders, newOrderRow(o))
	}
}

func (p *Orders) State() OrdersState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return OrdersState{
		Orders:  append([]OrderRow(nil), p.orders...),
		Loading: p.loading,
		Error:   p.err,
	}
}
