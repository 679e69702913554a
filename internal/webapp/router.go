// Package webapp is the view transport: an echo server over the page
// controllers and the two stores. Handlers stay thin; all state lives in
// internal/views and the stores.
package webapp

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/mvoronov/storefront/internal/api"
	"github.com/mvoronov/storefront/internal/cart"
	"github.com/mvoronov/storefront/internal/session"
	"github.com/mvoronov/storefront/internal/views"
)

type Deps struct {
	Client  *api.Client
	Session *session.Store
	Cart    *cart.Store
	Log     *slog.Logger

	Catalog         *views.Catalog
	ProductDetail   *views.ProductDetail
	Orders          *views.Orders
	AdminCategories *views.AdminCategories
	AdminProducts   *views.AdminProducts
	AdminOrders     *views.AdminOrders
	Reports         *views.Reports

	// Base URL the media proxy forwards to.
	APIBaseURL string
}

func Register(e *echo.Echo, d *Deps) error {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })

	auth := &AuthHandler{Client: d.Client, Session: d.Session}
	e.POST("/login", auth.Login)
	e.POST("/register", auth.Register)
	e.POST("/logout", auth.Logout)
	e.GET("/session", auth.Current)

	shop := &ShopHandler{Catalog: d.Catalog, ProductDetail: d.ProductDetail, Orders: d.Orders}
	e.GET("/catalog", shop.Home)
	e.GET("/products/:id", shop.Product)

	cartH := &CartHandler{Cart: d.Cart, Client: d.Client, Session: d.Session}
	e.GET("/cart", cartH.Get)
	e.POST("/cart/items", cartH.AddItem)
	e.PUT("/cart/items/:id", cartH.SetQuantity)
	e.DELETE("/cart/items/:id", cartH.RemoveItem)

	loggedIn := e.Group("", RequireLogin(d.Session))
	loggedIn.POST("/checkout", cartH.Checkout)
	loggedIn.GET("/orders", shop.OrderHistory)

	adminH := &AdminHandler{
		Categories: d.AdminCategories,
		Products:   d.AdminProducts,
		Orders:     d.AdminOrders,
		Reports:    d.Reports,
	}
	admin := e.Group("/admin", RequireLogin(d.Session), RequireAdmin(d.Session))
	admin.GET("/categories", adminH.ListCategories)
	admin.POST("/categories", adminH.CreateCategory)
	admin.PUT("/categories/:id", adminH.UpdateCategory)
	admin.DELETE("/categories/:id", adminH.DeleteCategory)

	admin.GET("/products", adminH.ListProducts)
	admin.POST("/products", adminH.CreateProduct)
	admin.PUT("/products/:id", adminH.UpdateProduct)
	admin.DELETE("/products/:id", adminH.DeleteProduct)

	admin.GET("/orders", adminH.ListOrders)
	admin.PUT("/orders/:id/status", adminH.UpdateOrderStatus)

	admin.GET("/reports", adminH.GetReports)

	// Product image URLs are relative to the backend; serve them through
	// a local proxy so the browser only ever talks to us.
	media, err := newProxy(d.APIBaseURL, "/media")
	if err != nil {
		return err
	}
	e.GET("/media/*", media)

	return nil
}
