package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestErrorEnvelopeUppercaseMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"Message":"email already registered"}`))
	})

	_, err := client.Me(context.Background(), "tok")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "email already registered", apiErr.Message)
}

func TestErrorEnvelopeLowercaseMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"name is required"}`))
	})

	_, err := client.Categories(context.Background())
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, "name is required", apiErr.Message)
}

func TestErrorEnvelopeFallbackMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json at all"))
	})

	_, err := client.Categories(context.Background())
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, "request failed with status 500", apiErr.Message)
}

func TestIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"Message":"cart not found"}`))
	})

	_, err := client.GetCart(context.Background(), "tok")
	require.True(t, IsNotFound(err))

	require.False(t, IsNotFound(nil))
}

func TestDecodeErrorOnBadBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>surprise</html>"))
	})

	_, err := client.Categories(context.Background())
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestBearerAndRequestIDHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[]`))
	})

	_, err := client.Orders(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.NotEmpty(t, gotRequestID)
}

func TestAnonymousRequestHasNoAuthHeader(t *testing.T) {
	var gotAuth string
	hasHeader := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasHeader = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	})

	_, err := client.Categories(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth)
	require.False(t, hasHeader)
}

func TestSearchProductsQueryParams(t *testing.T) {
	var gotPath, gotQ, gotCategory string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQ = r.URL.Query().Get("q")
		gotCategory = r.URL.Query().Get("categoryId")
		w.Write([]byte(`[]`))
	})

	_, err := client.SearchProducts(context.Background(), "usb cable", "c1")
	require.NoError(t, err)
	require.Equal(t, "/products/search", gotPath)
	require.Equal(t, "usb cable", gotQ)
	require.Equal(t, "c1", gotCategory)
}

func TestCreateProductMultipartFields(t *testing.T) {
	var fields map[string]string
	var imageName string
	var imageBody []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		fields = map[string]string{}
		for name, values := range r.MultipartForm.Value {
			fields[name] = values[0]
		}
		if files := r.MultipartForm.File["imageFile"]; len(files) > 0 {
			imageName = files[0].Filename
			f, err := files[0].Open()
			require.NoError(t, err)
			imageBody, _ = io.ReadAll(f)
			f.Close()
		}
		w.Write([]byte(`{"id":"p1","name":"Widget"}`))
	})

	form := &ProductForm{
		Name:          "Widget",
		Description:   "A widget",
		Price:         decimal.RequireFromString("19.99"),
		StockQuantity: 7,
		CategoryID:    "c1",
		ImageName:     "widget.png",
		Image:         strings.NewReader("png-bytes"),
	}
	product, err := client.CreateProduct(context.Background(), "tok", form)
	require.NoError(t, err)
	require.Equal(t, "p1", product.ID)

	require.Equal(t, map[string]string{
		"name":          "Widget",
		"description":   "A widget",
		"price":         "19.99",
		"stockQuantity": "7",
		"categoryId":    "c1",
	}, fields)
	require.Equal(t, "widget.png", imageName)
	require.Equal(t, "png-bytes", string(imageBody))
}

func TestUpdateProductWithoutImage(t *testing.T) {
	var hasImage bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		hasImage = len(r.MultipartForm.File["imageFile"]) > 0
		w.Write([]byte(`{"id":"p1"}`))
	})

	form := &ProductForm{Name: "Widget", Price: decimal.NewFromInt(5), CategoryID: "c1"}
	_, err := client.UpdateProduct(context.Background(), "tok", "p1", form)
	require.NoError(t, err)
	require.False(t, hasImage)
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteCategory(context.Background(), "tok", "c1"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/categories/c1", gotPath)
}

func TestOrderRoutesAreCapitalized(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"id":"o1","status":2}`))
	})

	_, err := client.UpdateOrderStatus(context.Background(), "tok", "o1", StatusShipped)
	require.NoError(t, err)
	require.Equal(t, []string{"PUT /Orders/o1/status"}, paths)
}
