package views

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mvoronov/storefront/internal/api"
)

func TestOrdersShowsOnlyOwnOrdersWithLabels(t *testing.T) {
	env := newTestEnv(t)
	ann := env.Shop.AddUser("Ann", "ann@example.com", "secret", "Customer")
	bob := env.Shop.AddUser("Bob", "bob@example.com", "secret", "Customer")

	placed := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	env.Shop.SeedOrder(ann.ID, placed, decimal.NewFromInt(40), []api.OrderItem{
		{ProductName: "Widget", Quantity: 2, Price: decimal.NewFromInt(20)},
	})
	env.Shop.SeedOrder(bob.ID, placed, decimal.NewFromInt(99), nil)

	resp, err := env.Client.Login(context.Background(), "ann@example.com", "secret")
	require.NoError(t, err)
	env.Session.Login(resp.Token.AccessToken, &resp.User)

	page := NewOrders(env.Client, env.Session)
	page.Load(context.Background())

	state := page.State()
	require.False(t, state.Loading)
	require.Empty(t, state.Error)
	require.Len(t, state.Orders, 1)
	require.Equal(t, "Delivered", state.Orders[0].StatusLabel)
	require.True(t, state.Orders[0].TotalPrice.Equal(decimal.NewFromInt(40)))
	require.Len(t, state.Orders[0].Items, 1)
}

func TestOrdersAnonymousLoadReportsError(t *testing.T) {
	env := newTestEnv(t)

	page := NewOrders(env.Client, env.Session)
	page.Load(context.Background())

	state := page.State()
	require.NotEmpty(t, state.Error)
	require.Empty(t, state.Orders)
}
