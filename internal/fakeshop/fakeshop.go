// Package fakeshop is an in-memory stand-in for the remote shop API,
// used by tests across the repo. It speaks the same wire shapes as
// internal/api, issues HS256 tokens and checks bcrypt passwords, and
// counts requests per route so tests can assert fetch behavior.
package fakeshop

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/mvoronov/storefront/internal/api"
)

type Server struct {
	mu sync.RWMutex

	jwtSecret  []byte
	users      map[string]api.User // by id
	passwords  map[string]string   // email -> bcrypt hash
	emails     map[string]string   // email -> user id
	categories []api.Category
	products   []api.Product
	carts      map[string]*api.Cart // by user id, "" for anonymous
	orders     []api.Order
	requests   map[string]int

	// Failure switches for tests.
	FailCart   bool // GET /cart answers 500
	FailLogout bool // POST /auth/logout answers 500

	srv *httptest.Server
}

func New() *Server {
	s := &Server{
		jwtSecret: []byte("fakeshop-secret"),
		users:     map[string]api.User{},
		passwords: map[string]string{},
		emails:    map[string]string{},
		carts:     map[string]*api.Cart{},
		requests:  map[string]int{},
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(s.countRequests)

	e.POST("/auth/login", s.login)
	e.POST("/auth/register", s.register)
	e.POST("/auth/logout", s.logout)
	e.GET("/auth/me", s.me)

	e.GET("/categories", s.listCategories)
	e.POST("/categories", s.createCategory)
	e.PUT("/categories/:id", s.updateCategory)
	e.DELETE("/categories/:id", s.deleteCategory)

	e.GET("/products", s.listProducts)
	e.GET("/products/search", s.searchProducts)
	e.GET("/products/:id", s.getProduct)
	e.POST("/products", s.createProduct)
	e.PUT("/products/:id", s.updateProduct)
	e.DELETE("/products/:id", s.deleteProduct)

	e.GET("/cart", s.getCart)
	e.POST("/cart/items", s.addCartItem)
	e.PUT("/cart/items/:id", s.updateCartItem)
	e.DELETE("/cart/items/:id", s.removeCartItem)

	e.POST("/Orders", s.placeOrder)
	e.GET("/Orders", s.listOrders)
	e.GET("/Orders/all", s.listAllOrders)
	e.PUT("/Orders/:id/status", s.updateOrderStatus)

	e.GET("/reports/sales/:year", s.monthlySales)
	e.GET("/reports/popular-products", s.popularProducts)
	e.GET("/reports/top-customers", s.topCustomers)

	s.srv = httptest.NewServer(e)
	return s
}

func (s *Server) URL() string { return s.srv.URL }
func (s *Server) Close()      { s.srv.Close() }

func (s *Server) countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		s.requests[c.Request().Method+" "+c.Request().URL.Path]++
		s.mu.Unlock()
		return next(c)
	}
}

// Requests returns how many times method+path was hit, by concrete URL
// path (e.g. "GET /cart", "DELETE /categories/c1").
func (s *Server) Requests(method, path string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests[method+" "+path]
}

// ---- seeding ----

func (s *Server) AddUser(name, email, password, role string) api.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := api.User{ID: uuid.NewString(), Name: name, Email: email, Role: role}
	s.mu.Lock()
	s.users[user.ID] = user
	s.passwords[email] = string(hash)
	s.emails[email] = user.ID
	s.mu.Unlock()
	return user
}

// TokenFor mints a valid token for a seeded user, for restore tests.
func (s *Server) TokenFor(userID string) string {
	token, _ := s.mint(userID)
	return token
}

func (s *Server) AddCategory(name string) api.Category {
	category := api.Category{ID: uuid.NewString(), Name: name}
	s.mu.Lock()
	s.categories = append(s.categories, category)
	s.mu.Unlock()
	return category
}

func (s *Server) AddProduct(name string, price decimal.Decimal, stock int, category api.Category) api.Product {
	product := api.Product{
		ID:            uuid.NewString(),
		Name:          name,
		Description:   name,
		Price:         price,
		StockQuantity: stock,
		CategoryID:    category.ID,
		CategoryName:  category.Name,
	}
	s.mu.Lock()
	s.products = append(s.products, product)
	s.mu.Unlock()
	return product
}

// SeedCartItem puts an item straight into a user's backend cart.
func (s *Server) SeedCartItem(userID, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartFor(userID)
	product, ok := s.findProduct(productID)
	if !ok {
		return
	}
	cart.Items = append(cart.Items, api.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    quantity,
	})
	s.recalc(cart)
}

// SeedOrder records a finished order directly, for report tests.
func (s *Server) SeedOrder(userID string, date time.Time, total decimal.Decimal, items []api.OrderItem) api.Order {
	order := api.Order{
		ID:         uuid.NewString(),
		UserID:     userID,
		OrderDate:  date,
		TotalPrice: total,
		Status:     api.StatusDelivered,
		Items:      items,
	}
	s.mu.Lock()
	s.orders = append(s.orders, order)
	s.mu.Unlock()
	return order
}

// ---- internals ----

func (s *Server) mint(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}

// userFrom resolves the bearer token to a user id. Empty id with ok=true
// means anonymous (no Authorization header at all).
func (s *Server) userFrom(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", true
	}
	const prefix = "Bearer "
	if len(header) <= len(prefix) {
		return "", false
	}
	raw := header[len(prefix):]
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) { return s.jwtSecret, nil })
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sub, _ := claims["sub"].(string)
	s.mu.RLock()
	_, known := s.users[sub]
	s.mu.RUnlock()
	if !known {
		return "", false
	}
	return sub, true
}

func (s *Server) requireUser(c echo.Context) (string, error) {
	id, ok := s.userFrom(c)
	if !ok || id == "" {
		return "", c.JSON(http.StatusUnauthorized, echo.Map{"Message": "invalid token"})
	}
	return id, nil
}

func (s *Server) cartFor(userID string) *api.Cart {
	cart, ok := s.carts[userID]
	if !ok {
		cart = &api.Cart{ID: uuid.NewString(), Items: []api.CartItem{}, TotalPrice: decimal.Zero}
		s.carts[userID] = cart
	}
	return cart
}

func (s *Server) findProduct(id string) (api.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return api.Product{}, false
}

func (s *Server) recalc(cart *api.Cart) {
	total := decimal.Zero
	for _, item := range cart.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	cart.TotalPrice = total
}

func intParam(c echo.Context, name string, def int) int {
	if s := c.QueryParam(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}
