package views

import (
	"context"
	"sync"

	"github.com/mvoronov/storefront/internal/api"
	"github.com/mvoronov/storefront/internal/session"
)

// AdminOrders is the order back-office page: every order in the system,
// with per-row status updates patched in place from the PUT response.
type AdminOrders struct {
	mu      sync.Mutex
	client  *api.Client
	session *session.Store
	orders  []OrderRow
	loading bool
	err     string
}

type AdminOrdersState struct {
	Orders  []OrderRow `json:"orders"`
	Loading bool       `json:"loading"`
	Error   string     `json:"error,omitempty"`
}

func NewAdminOrders(client *api.Client, sess *session.Store) *AdminOrders {
	return &AdminOrders{client: client, session: sess}
}

func (p *AdminOrders) Load(ctx context.Context) {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	orders, err := p.client.AllOrders(ctx, p.session.Token())

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

// SetStatus updates one order's status and patches that row only.
func (p *AdminOrders) SetStatus(ctx context.Context, orderID string, status api.OrderStatus) error {
	order, err := p.client.UpdateOrderStatus(ctx, p.session.Token(), orderID, status)
	if err != nil {
		return err
	}
	p.mu.Lock()
	for i := range p.orders {
		if p.orders[i].ID == orderID {
			p.orders[i] = newOrderRow(*order)
			break
		}
	}
	p.mu.Unlock()
	return nil
}

func (p *AdminOrders) State() AdminOrdersState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return AdminOrdersState{
		Orders:  append([]OrderRow(nil), p.orders...),
		Loading: p.loading,
		Error:   p.err,
	}
}
