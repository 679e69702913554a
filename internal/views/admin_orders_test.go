package views

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mvoronov/storefront/internal/api"
)

func TestUpdateOrderStatusPatchesRowWithoutRefetch(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAsAdmin(t)
	order := env.Shop.SeedOrder(admin.ID, time.Now(), decimal.NewFromInt(100), []api.OrderItem{
		{ProductID: "p1", ProductName: "Widget", Price: decimal.NewFromInt(50), Quantity: 2},
	})

	page := NewAdminOrders(env.Client, env.Session)
	page.Load(context.Background())
	require.Equal(t, 1, env.Shop.Requests("GET", "/Orders/all"))

	require.NoError(t, page.SetStatus(context.Background(), order.ID, api.StatusShipped))

	state := page.State()
	require.Len(t, state.Orders, 1)
	require.Equal(t, api.StatusShipped, state.Orders[0].Status)
	require.Equal(t, "Shipped", state.Orders[0].StatusLabel)

	require.Equal(t, 1, env.Shop.Requests("PUT", "/Orders/"+order.ID+"/status"))
	require.Equal(t, 1, env.Shop.Requests("GET", "/Orders/all"))
}

func TestAdminOrdersLoadLabelsEveryStatus(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAsAdmin(t)
	env.Shop.SeedOrder(admin.ID, time.Now(), decimal.NewFromInt(10), nil)

	page := NewAdminOrders(env.Client, env.Session)
	page.Load(context.Background())

	state := page.State()
	require.Len(t, state.Orders, 1)
	require.Equal(t, "Delivered", state.Orders[0].StatusLabel)
}

func TestSetStatusUnknownOrder(t *testing.T) {
	env := newTestEnv(t)
	env.loginAsAdmin(t)

	page := NewAdminOrders(env.Client, env.Session)
	page.Load(context.Background())

	err := page.SetStatus(context.Background(), "no-such-order", api.StatusCancelled)
	require.Error(t, err)
	require.True(t, api.IsNotFound(err))
}
