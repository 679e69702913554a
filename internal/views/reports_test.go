package views

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mvoronov/storefront/internal/api"
)

func TestReportsLoad(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAsAdmin(t)
	ann := env.Shop.AddUser("Ann", "ann@example.com", "secret", "Customer")

	march := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	env.Shop.SeedOrder(ann.ID, march, decimal.NewFromInt(120), []api.OrderItem{
		{ProductID: "p1", ProductName: "Widget", Price: decimal.NewFromInt(60), Quantity: 2},
	})
	env.Shop.SeedOrder(admin.ID, march.AddDate(0, 1, 0), decimal.NewFromInt(30), []api.OrderItem{
		{ProductID: "p2", ProductName: "Gizmo", Price: decimal.NewFromInt(30), Quantity: 1},
	})

	page := NewReports(env.Client, env.Session)
	page.Load(context.Background(), 2025, 5, 5)

	state := page.State()
	require.Empty(t, state.Error)
	require.Len(t, state.MonthlySales, 2)
	require.Equal(t, 3, state.MonthlySales[0].Month)
	require.True(t, state.MonthlySales[0].TotalSales.Equal(decimal.NewFromInt(120)))

	require.Len(t, state.PopularProducts, 2)
	require.Equal(t, "Widget", state.PopularProducts[0].ProductName)

	require.Len(t, state.TopCustomers, 2)
	require.Equal(t, "Ann", state.TopCustomers[0].CustomerName)
}

func TestReportsRequireAdminToken(t *testing.T) {
	env := newTestEnv(t)

	page := NewReports(env.Client, env.Session)
	page.Load(context.Background(), 2025, 5, 5)

	state := page.State()
	require.NotEmpty(t, state.Error)
	require.Empty(t, state.MonthlySales)
}
