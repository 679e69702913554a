package webapp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/mvoronov/storefront/internal/api"
	"github.com/mvoronov/storefront/internal/views"
)

type AdminHandler struct {
	Categories *views.AdminCategories
	Products   *views.AdminProducts
	Orders     *views.AdminOrders
	Reports    *views.Reports
}

func (h *AdminHandler) ListCategories(c echo.Context) error {
	h.Categories.Load(c.Request().Context())
	return c.JSON(http.StatusOK, h.Categories.State())
}

func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if err := h.Categories.Create(c.Request().Context(), req.Name); err != nil {
		return apiErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, h.Categories.State())
}

func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if err := h.Categories.Update(c.Request().Context(), c.Param("id"), req.Name); err != nil {
		return apiErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, h.Categories.State())
}

func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	if err := h.Categories.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return apiErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, h.Categories.State())
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	h.Products.Load(c.Request().Context())
	return c.JSON(http.StatusOK, h.Products.State())
}

// productForm rebuilds the multipart payload the admin dialogs submit.
// The image part is optional.
func productForm(c echo.Context) (*api.ProductForm, error) {
	price, err := decimal.NewFromString(c.FormValue("price"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	stock, err := strconv.Atoi(c.FormValue("stockQuantity"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid stockQuantity")
	}

	form := &api.ProductForm{
		Name:          c.FormValue("name"),
		Description:   c.FormValue("description"),
		Price:         price,
		StockQuantity: stock,
		CategoryID:    c.FormValue("categoryId"),
	}

	if fh, err := c.FormFile("imageFile"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "read image: "+err.Error())
		}
		// Closed when the request body is torn down; the client reads it
		// fully while encoding the outbound form.
		form.ImageName = fh.Filename
		form.Image = f
	}
	return form, nil
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	form, err := productForm(c)
	if err != nil {
		return err
	}
	if err := h.Products.Create(c.Request().Context(), form); err != nil {
		return apiErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, h.Products.State())
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	form, err := productForm(c)
	if err != nil {
		return err
	}
	if err := h.Products.Update(c.Request().Context(), c.Param("id"), form); err != nil {
		return apiErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, h.Products.State())
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if err := h.Products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return apiErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, h.Products.State())
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	h.Orders.Load(c.Request().Context())
	return c.JSON(http.StatusOK, h.Orders.State())
}

func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	var req struct {
		Status int `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	status := api.OrderStatus(req.Status)
	if status.String() == "Unknown" {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown order status")
	}
	if err := h.Orders.SetStatus(c.Request().Context(), c.Param("id"), status); err != nil {
		return apiErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, h.Orders.State())
}

func (h *AdminHandler) GetReports(c echo.Context) error {
	year := intQueryParam(c, "year", time.Now().Year())
	productCount := intQueryParam(c, "productCount", 5)
	customerCount := intQueryParam(c, "customerCount", 5)

	h.Reports.Load(c.Request().Context(), year, productCount, customerCount)
	return c.JSON(http.StatusOK, h.Reports.State())
}

func intQueryParam(c echo.Context, name string, def int) int {
	if s := c.QueryParam(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}
