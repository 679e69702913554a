package webapp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvoronov/storefront/internal/api"
	"github.com/mvoronov/storefront/internal/session"
)

type AuthHandler struct {
	Client  *api.Client
	Session *session.Store
}

type sessionState struct {
	User    *api.User `json:"user"`
	Loading bool      `json:"loading"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.Client.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return apiErrorResponse(c, err)
	}

	h.Session.Login(resp.Token.AccessToken, &resp.User)
	return c.JSON(http.StatusOK, sessionState{User: h.Session.User()})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.Client.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return apiErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	h.Session.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Current reports who is signed in, if anyone.
func (h *AuthHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionState{
		User:    h.Session.User(),
		Loading: h.Session.Loading(),
	})
}

// apiErrorResponse maps a backend error to our own response, keeping the
// backend's message and status where it gave us one.
func apiErrorResponse(c echo.Context, err error) error {
	var ae *api.APIError
	if errors.As(err, &ae) {
		return c.JSON(ae.Status, map[string]string{"message": ae.Message})
	}
	return c.JSON(http.StatusBadGateway, map[string]string{"message": err.Error()})
}
