package webapp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvoronov/storefront/internal/api"
	"github.com/mvoronov/storefront/internal/cart"
	"github.com/mvoronov/storefront/internal/session"
)

type CartHandler struct {
	Cart    *cart.Store
	Client  *api.Client
	Session *session.Store
}

type cartState struct {
	Cart      *api.Cart `json:"cart"`
	ItemCount int       `json:"itemCount"`
	Loading   bool      `json:"loading"`
}

func (h *CartHandler) state() cartState {
	return cartState{
		Cart:      h.Cart.Current(),
		ItemCount: h.Cart.ItemCount(),
		Loading:   h.Cart.Loading(),
	}
}

func (h *CartHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.state())
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	if err := h.Cart.AddItem(c.Request().Context(), req.ProductID, req.Quantity); err != nil {
		return apiErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, h.state())
}

// SetQuantity applies the cart page's policy: zero or less means remove.
func (h *CartHandler) SetQuantity(c echo.Context) error {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	productID := c.Param("id")

	var err error
	if req.Quantity <= 0 {
		err = h.Cart.RemoveItem(c.Request().Context(), productID)
	} else {
		err = h.Cart.SetQuantity(c.Request().Context(), productID, req.Quantity)
	}
	if err != nil {
		return apiErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, h.state())
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	if err := h.Cart.RemoveItem(c.Request().Context(), c.Param("id")); err != nil {
		return apiErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, h.state())
}

// Checkout places the order for the whole cart. The backend empties the
// cart as a side effect, so local state is cleared rather than refetched.
func (h *CartHandler) Checkout(c echo.Context) error {
	order, err := h.Client.PlaceOrder(c.Request().Context(), h.Session.Token())
	if err != nil {
		return apiErrorResponse(c, err)
	}
	h.Cart.Clear()
	return c.JSON(http.StatusOK, order)
}
