package views

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mvoronov/storefront/internal/api"
)

func TestAdminProductsCreateRefetchesList(t *testing.T) {
	env := newTestEnv(t)
	env.loginAsAdmin(t)
	gadgets := env.Shop.AddCategory("Gadgets")

	page := NewAdminProducts(env.Client, env.Session)
	page.Load(context.Background())
	require.Equal(t, 1, env.Shop.Requests("GET", "/products"))

	form := &api.ProductForm{
		Name:          "Widget",
		Description:   "A widget",
		Price:         decimal.RequireFromString("19.99"),
		StockQuantity: 7,
		CategoryID:    gadgets.ID,
		ImageName:     "widget.png",
		Image:         strings.NewReader("png-bytes"),
	}
	require.NoError(t, page.Create(context.Background(), form))

	state := page.State()
	require.Len(t, state.Products, 1)
	require.Equal(t, "Widget", state.Products[0].Name)
	require.Equal(t, "Gadgets", state.Products[0].CategoryName)
	require.NotEmpty(t, state.Products[0].ImageURL)

	// Create triggers a list refetch, the way the dialog flow does.
	require.Equal(t, 2, env.Shop.Requests("GET", "/products"))
}

func TestAdminProductsDeletePatchesLocally(t *testing.T) {
	env := newTestEnv(t)
	env.loginAsAdmin(t)
	gadgets := env.Shop.AddCategory("Gadgets")
	widget := env.Shop.AddProduct("Widget", decimal.NewFromInt(10), 3, gadgets)
	env.Shop.AddProduct("Gizmo", decimal.NewFromInt(20), 4, gadgets)

	page := NewAdminProducts(env.Client, env.Session)
	page.Load(context.Background())
	require.Len(t, page.State().Products, 2)

	require.NoError(t, page.Delete(context.Background(), widget.ID))

	state := page.State()
	require.Len(t, state.Products, 1)
	require.Equal(t, "Gizmo", state.Products[0].Name)
	require.Equal(t, 1, env.Shop.Requests("GET", "/products"))
}

func TestAdminProductsUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.loginAsAdmin(t)
	gadgets := env.Shop.AddCategory("Gadgets")
	widget := env.Shop.AddProduct("Widget", decimal.NewFromInt(10), 3, gadgets)

	page := NewAdminProducts(env.Client, env.Session)
	page.Load(context.Background())

	form := &api.ProductForm{
		Name:          "Widget v2",
		Description:   "Improved",
		Price:         decimal.NewFromInt(12),
		StockQuantity: 9,
		CategoryID:    gadgets.ID,
	}
	require.NoError(t, page.Update(context.Background(), widget.ID, form))

	state := page.State()
	require.Len(t, state.Products, 1)
	require.Equal(t, "Widget v2", state.Products[0].Name)
	require.Equal(t, 9, state.Products[0].StockQuantity)
}
