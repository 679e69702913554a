package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mvoronov/storefront/internal/api"
	"github.com/mvoronov/storefront/internal/session"
)

// Store owns the current shopping cart. Every mutation is a single
// round trip whose response replaces the whole cart; there is no local
// merge and nothing to roll back.
type Store struct {
	mu      sync.RWMutex
	cart    *api.Cart
	loading bool

	client  *api.Client
	session *session.Store
	log     *slog.Logger
}

// NewStore wires the cart to the session: every token change (login,
// logout, startup restore resolving) triggers exactly one Fetch.
func NewStore(client *api.Client, sess *session.Store, log *slog.Logger) *Store {
	s := &Store{client: client, session: sess, log: log}
	sess.OnChange(func() {
		s.Fetch(context.Background())
	})
	return s
}

// Fetch replaces the cart with the backend's view of it. Cart absence is
// not an error for consumers: a 404 means a new user with no cart yet,
// and any other failure degrades to the empty cart as well, logged so a
// backend outage is still visible.
func (s *Store) Fetch(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	cart, err := s.client.GetCart(ctx, s.session.Token())
	if err != nil {
		if api.IsNotFound(err) {
			s.log.Debug("no cart on backend yet")
		} else {
			s.log.Error("fetch cart", "error", err)
		}
		cart = api.EmptyCart()
	}
	if cart.Items == nil {
		cart.Items = []api.CartItem{}
	}

	s.mu.Lock()
	s.cart = cart
	s.loading = false
	s.mu.Unlock()
}

func (s *Store) AddItem(ctx context.Context, productID string, quantity int) error {
	cart, err := s.client.AddCartItem(ctx, s.session.Token(), productID, quantity)
	if err != nil {
		return err
	}
	s.replace(cart)
	return nil
}

// SetQuantity updates one line item. Callers map quantity <= 0 to
// RemoveItem before getting here.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) error {
	cart, err := s.client.UpdateCartItem(ctx, s.session.Token(), productID, quantity)
	if err != nil {
		return err
	}
	s.replace(cart)
	return nil
}

func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	cart, err := s.client.RemoveCartItem(ctx, s.session.Token(), productID)
	if err != nil {
		return err
	}
	s.replace(cart)
	return nil
}

// Clear resets local state only. Used after logout and after an order is
// placed; the backend cart is emptied by those side effects, not by us.
func (s *Store) Clear() {
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()
}

func (s *Store) replace(cart *api.Cart) {
	if cart.Items == nil {
		cart.Items = []api.CartItem{}
	}
	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
}

// Current returns a snapshot of the cart, or nil when none is loaded.
func (s *Store) Current() *api.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return nil
	}
	c := *s.cart
	c.Items = append([]api.CartItem(nil), s.cart.Items...)
	return &c
}

// ItemCount is the sum of quantities, recomputed on every call.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return 0
	}
	count := 0
	for _, item := range s.cart.Items {
		count += item.Quantity
	}
	return count
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
