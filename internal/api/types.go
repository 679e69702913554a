package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "Admin"
}

type Token struct {
	AccessToken string `json:"accessToken"`
}

type LoginResponse struct {
	User  User  `json:"user"`
	Token Token `json:"token"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	CategoryID    string          `json:"categoryId"`
	CategoryName  string          `json:"categoryName"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}

type CartItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type Cart struct {
	ID         string          `json:"id"`
	Items      []CartItem      `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// EmptyCart is the cart shape consumers see when the backend has none.
// Items is always non-nil once a cart is loaded.
func EmptyCart() *Cart {
	return &Cart{ID: "", Items: []CartItem{}, TotalPrice: decimal.Zero}
}

// OrderStatus is numeric on the wire; the display label lives client-side.
type OrderStatus int

const (
	StatusPending OrderStatus = iota
	StatusProcessing
	StatusShipped
	StatusDelivered
	StatusCancelled
)

func (s OrderStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusProcessing:
		return "Processing"
	case StatusShipped:
		return "Shipped"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Statuses lists every order status in wire order, for select inputs.
func Statuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

type OrderItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type Order struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	OrderDate  time.Time       `json:"orderDate"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     OrderStatus     `json:"status"`
	Items      []OrderItem     `json:"orderItems"`
}

type MonthlySale struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

type PopularProduct struct {
	ProductID         string `json:"productId"`
	ProductName       string `json:"productName"`
	TotalQuantitySold int    `json:"totalQuantitySold"`
}

type TopCustomer struct {
	UserID              string          `json:"userId"`
	CustomerName        string          `json:"customerName"`
	TotalPurchaseAmount decimal.Decimal `json:"totalPurchaseAmount"`
}
