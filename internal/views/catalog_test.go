package views

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCatalogLoadListsEverything(t *testing.T) {
	env := newTestEnv(t)
	gadgets := env.Shop.AddCategory("Gadgets")
	books := env.Shop.AddCategory("Books")
	env.Shop.AddProduct("Widget", decimal.NewFromInt(10), 3, gadgets)
	env.Shop.AddProduct("Novel", decimal.NewFromInt(15), 4, books)

	page := NewCatalog(env.Client)
	page.Load(context.Background(), "", "")

	state := page.State()
	require.Empty(t, state.Error)
	require.False(t, state.Loading)
	require.Len(t, state.Products, 2)
	require.Len(t, state.Categories, 2)
}

func TestCatalogFilterByCategory(t *testing.T) {
	env := newTestEnv(t)
	gadgets := env.Shop.AddCategory("Gadgets")
	books := env.Shop.AddCategory("Books")
	env.Shop.AddProduct("Widget", decimal.NewFromInt(10), 3, gadgets)
	env.Shop.AddProduct("Novel", decimal.NewFromInt(15), 4, books)

	page := NewCatalog(env.Client)
	page.Load(context.Background(), books.ID, "")

	state := page.State()
	require.Len(t, state.Products, 1)
	require.Equal(t, "Novel", state.Products[0].Name)
	require.Equal(t, books.ID, state.CategoryID)
}

func TestCatalogSearch(t *testing.T) {
	env := newTestEnv(t)
	gadgets := env.Shop.AddCategory("Gadgets")
	env.Shop.AddProduct("USB Cable", decimal.NewFromInt(5), 10, gadgets)
	env.Shop.AddProduct("Widget", decimal.NewFromInt(10), 3, gadgets)

	page := NewCatalog(env.Client)
	page.Load(context.Background(), "", "usb")

	state := page.State()
	require.Len(t, state.Products, 1)
	require.Equal(t, "USB Cable", state.Products[0].Name)
	require.Equal(t, "usb", state.Query)
}

func TestProductDetailNotFound(t *testing.T) {
	env := newTestEnv(t)

	page := NewProductDetail(env.Client)
	page.Load(context.Background(), "missing")

	state := page.State()
	require.Nil(t, state.Product)
	require.NotEmpty(t, state.Error)
}
