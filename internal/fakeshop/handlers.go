package fakeshop

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/mvoronov/storefront/internal/api"
)

// ---- auth ----

func (s *Server) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"Message": "bad request"})
	}

	s.mu.RLock()
	hash, ok := s.passwords[req.Email]
	userID := s.emails[req.Email]
	user := s.users[userID]
	s.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"Message": "invalid credentials"})
	}

	token, err := s.mint(userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"Message": "token error"})
	}
	return c.JSON(http.StatusOK, api.LoginResponse{User: user, Token: api.Token{AccessToken: token}})
}

func (s *Server) register(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"Message": "bad request"})
	}
	s.mu.RLock()
	_, exists := s.emails[req.Email]
	s.mu.RUnlock()
	if exists {
		return c.JSON(http.StatusConflict, echo.Map{"Message": "email already registered"})
	}
	user := s.AddUser(req.Name, req.Email, req.Password, "Customer")
	return c.JSON(http.StatusOK, user)
}

func (s *Server) logout(c echo.Context) error {
	if s.FailLogout {
		return c.JSON(http.StatusInternalServerError, echo.Map{"Message": "logout unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"Message": "logged out"})
}

func (s *Server) me(c echo.Context) error {
	userID, err := s.requireUser(c)
	if err != nil {
		return err
	}
	s.mu.RLock()
	user := s.users[userID]
	s.mu.RUnlock()
	return c.JSON(http.StatusOK, user)
}

func (s *Server) requireAdmin(c echo.Context) (string, error) {
	userID, err := s.requireUser(c)
	if err != nil {
		return "", err
	}
	s.mu.RLock()
	user := s.users[userID]
	s.mu.RUnlock()
	if user.Role != "Admin" {
		return "", c.JSON(http.StatusForbidden, echo.Map{"Message": "admin only"})
	}
	return userID, nil
}

// ---- categories ----

func (s *Server) listCategories(c echo.Context) error {
	s.mu.RLock()
	categories := append([]api.Category(nil), s.categories...)
	s.mu.RUnlock()
	return c.JSON(http.StatusOK, categories)
}

func (s *Server) createCategory(c echo.Context) error {
	if _, err := s.requireAdmin(c); err != nil {
		return err
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"Message": "name is required"})
	}
	category := s.AddCategory(req.Name)
	return c.JSON(http.StatusOK, category)
}

func (s *Server) updateCategory(c echo.Context) error {
	if _, err := s.requireAdmin(c); err != nil {
		return err
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"Message": "name is required"})
	}
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].Name = req.Name
			return c.JSON(http.StatusOK, s.categories[i])
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"Message": "category not found"})
}

func (s *Server) deleteCategory(c echo.Context) error {
	if _, err := s.requireAdmin(c); err != nil {
		return err
	}
	id := c.Param("id")
	s.mu.Lock()
	kept := s.categories[:0]
	found := false
	for _, cat := range s.categories {
		if cat.ID == id {
			found = true
			continue
		}
		kept = append(kept, cat)
	}
	s.categories = kept
	s.mu.Unlock()
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"Message": "category not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- products ----

func (s *Server) listProducts(c echo.Context) error {
	categoryID := c.QueryParam("categoryId")
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []api.Product{}
	for _, p := range s.products {
		if categoryID == "" || p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) searchProducts(c echo.Context) error {
	q := strings.ToLower(c.QueryParam("q"))
	categoryID := c.QueryParam("categoryId")
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []api.Product{}
	for _, p := range s.products {
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getProduct(c echo.Context) error {
	s.mu.RLock()
	product, ok := s.findProduct(c.Param("id"))
	s.mu.RUnlock()
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"Message": "product not found"})
	}
	return c.JSON(http.StatusOK, product)
}

func (s *Server) productFromForm(c echo.Context, product *api.Product) error {
	price, err := decimal.NewFromString(c.FormValue("price"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"Message": "invalid price"})
	}
	stock, err := strconv.Atoi(c.FormValue("stockQuantity"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"Message": "invalid stockQuantity"})
	}
	product.Name = c.FormValue("name")
	product.Description = c.FormValue("description")
	product.Price = price
	product.StockQuantity = stock
	product.CategoryID = c.FormValue("categoryId")
	s.mu.RLock()
	for _, cat := range s.categories {
		if cat.ID == product.CategoryID {
			product.CategoryName = cat.Name
		}
	}
	s.mu.RUnlock()
	if fh, err := c.FormFile("imageFile"); err == nil {
		product.ImageURL = "/media/images/" + fh.Filename
	}
	return nil
}

func (s *Server) createProduct(c echo.Context) error {
	if _, err := s.requireAdmin(c); err != nil {
		return err
	}
	product := api.Product{ID: uuid.NewString()}
	if err := s.productFromForm(c, &product); err != nil {
		return err
	}
	s.mu.Lock()
	s.products = append(s.products, product)
	s.mu.Unlock()
	return c.JSON(http.StatusOK, product)
}

func (s *Server) updateProduct(c echo.Context) error {
	if _, err := s.requireAdmin(c); err != nil {
		return err
	}
	id := c.Param("id")
	product := api.Product{ID: id}
	if err := s.productFromForm(c, &product); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			if product.ImageURL == "" {
				product.ImageURL = s.products[i].ImageURL
			}
			s.products[i] = product
			return c.JSON(http.StatusOK, product)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"Message": "product not found"})
}

func (s *Server) deleteProduct(c echo.Context) error {
	if _, err := s.requireAdmin(c); err != nil {
		return err
	}
	id := c.Param("id")
	s.mu.Lock()
	kept := s.products[:0]
	found := false
	for _, p := range s.products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	s.products = kept
	s.mu.Unlock()
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"Message": "product not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- cart ----

func (s *Server) getCart(c echo.Context) error {
	if s.FailCart {
		return c.JSON(http.StatusInternalServerError, echo.Map{"Message": "cart backend down"})
	}
	userID, ok := s.userFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"Message": "invalid token"})
	}
	s.mu.RLock()
	cart, exists := s.carts[userID]
	s.mu.RUnlock()
	if !exists {
		// New users have no cart yet; this is the benign 404.
		return c.JSON(http.StatusNotFound, echo.Map{"Message": "cart not found"})
	}
	return c.JSON(http.StatusOK, cart)
}

func (s *Server) addCartItem(c echo.Context) error {
	userID, ok := s.userFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"Message": "invalid token"})
	}
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"Message": "bad request"})
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	product, found := s.findProduct(req.ProductID)
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"Message": "product not found"})
	}
	cart := s.cartFor(userID)
	for i := range cart.Items {
		if cart.Items[i].ProductID == req.ProductID {
			cart.Items[i].Quantity += req.Quantity
			s.recalc(cart)
			return c.JSON(http.StatusOK, cart)
		}
	}
	cart.Items = append(cart.Items, api.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    req.Quantity,
	})
	s.recalc(cart)
	return c.JSON(http.StatusOK, cart)
}

func (s *Server) updateCartItem(c echo.Context) error {
	userID, ok := s.userFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"Message": "invalid token"})
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil || req.Quantity < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"Message": "invalid quantity"})
	}
	productID := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartFor(userID)
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = req.Quantity
			s.recalc(cart)
			return c.JSON(http.StatusOK, cart)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"Message": "item not in cart"})
}

func (s *Server) removeCartItem(c echo.Context) error {
	userID, ok := s.userFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"Message": "invalid token"})
	}
	productID := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartFor(userID)
	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	s.recalc(cart)
	return c.JSON(http.StatusOK, cart)
}

// ---- orders ----

func (s *Server) placeOrder(c echo.Context) error {
	userID, err := s.requireUser(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cart, exists := s.carts[userID]
	if !exists || len(cart.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"Message": "cart is empty"})
	}

	items := make([]api.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, api.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}
	order := api.Order{
		ID:         uuid.NewString(),
		UserID:     userID,
		OrderDate:  time.Now().UTC(),
		TotalPrice: cart.TotalPrice,
		Status:     api.StatusPending,
		Items:      items,
	}
	s.orders = append(s.orders, order)
	// Order placement empties the backend cart.
	delete(s.carts, userID)
	return c.JSON(http.StatusOK, order)
}

func (s *Server) listOrders(c echo.Context) error {
	userID, err := s.requireUser(c)
	if err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []api.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) listAllOrders(c echo.Context) error {
	if _, err := s.requireAdmin(c); err != nil {
		return err
	}
	s.mu.RLock()
	orders := append([]api.Order(nil), s.orders...)
	s.mu.RUnlock()
	return c.JSON(http.StatusOK, orders)
}

func (s *Server) updateOrderStatus(c echo.Context) error {
	if _, err := s.requireAdmin(c); err != nil {
		return err
	}
	var req struct {
		Status int `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"Message": "bad request"})
	}
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = api.OrderStatus(req.Status)
			return c.JSON(http.StatusOK, s.orders[i])
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"Message": "order not found"})
}

// ---- reports ----

func (s *Server) monthlySales(c echo.Context) error {
	if _, err := s.requireAdmin(c); err != nil {
		return err
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"Message": "invalid year"})
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	byMonth := map[int]decimal.Decimal{}
	for _, o := range s.orders {
		if o.OrderDate.Year() == year {
			m := int(o.OrderDate.Month())
			byMonth[m] = byMonth[m].Add(o.TotalPrice)
		}
	}
	out := []api.MonthlySale{}
	for m := 1; m <= 12; m++ {
		if total, ok := byMonth[m]; ok {
			out = append(out, api.MonthlySale{Year: year, Month: m, TotalSales: total})
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) popularProducts(c echo.Context) error {
	if _, err := s.requireAdmin(c); err != nil {
		return err
	}
	count := intParam(c, "count", 5)

	s.mu.RLock()
	defer s.mu.RUnlock()
	sold := map[string]*api.PopularProduct{}
	for _, o := range s.orders {
		for _, item := range o.Items {
			p, ok := sold[item.ProductID]
			if !ok {
				p = &api.PopularProduct{ProductID: item.ProductID, ProductName: item.ProductName}
				sold[item.ProductID] = p
			}
			p.TotalQuantitySold += item.Quantity
		}
	}
	out := []api.PopularProduct{}
	for _, p := range sold {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalQuantitySold > out[j].TotalQuantitySold })
	if len(out) > count {
		out = out[:count]
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) topCustomers(c echo.Context) error {
	if _, err := s.requireAdmin(c); err != nil {
		return err
	}
	count := intParam(c, "count", 5)

	s.mu.RLock()
	defer s.mu.RUnlock()
	spent := map[string]decimal.Decimal{}
	for _, o := range s.orders {
		spent[o.UserID] = spent[o.UserID].Add(o.TotalPrice)
	}
	out := []api.TopCustomer{}
	for userID, total := range spent {
		out = append(out, api.TopCustomer{
			UserID:              userID,
			CustomerName:        s.users[userID].Name,
			TotalPurchaseAmount: total,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalPurchaseAmount.GreaterThan(out[j].TotalPurchaseAmount) })
	if len(out) > count {
		out = out[:count]
	}
	return c.JSON(http.StatusOK, out)
}
