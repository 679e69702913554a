package webapp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvoronov/storefront/internal/views"
)

type ShopHandler struct {
	Catalog       *views.Catalog
	ProductDetail *views.ProductDetail
	Orders        *views.Orders
}

func (h *ShopHandler) Home(c echo.Context) error {
	h.Catalog.Load(c.Request().Context(), c.QueryParam("categoryId"), c.QueryParam("q"))
	return c.JSON(http.StatusOK, h.Catalog.State())
}

func (h *ShopHandler) Product(c echo.Context) error {
	h.ProductDetail.Load(c.Request().Context(), c.Param("id"))
	state := h.ProductDetail.State()
	if state.Product == nil && state.Error != "" {
		return c.JSON(http.StatusNotFound, state)
	}
	return c.JSON(http.StatusOK, state)
}

func (h *ShopHandler) OrderHistory(c echo.Context) error {
	h.Orders.Load(c.Request().Context())
	return c.JSON(http.StatusOK, h.Orders.State())
}
