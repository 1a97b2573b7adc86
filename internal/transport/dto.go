package transport

import (
	"time"

	"github.com/jfuenzalida/restaurante-backend/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	CategoryID  *uint  `json:"category_id"`
	ImageURL    string `json:"image_url"`
	Available   *bool  `json:"available"`
	Featured    bool   `json:"featured"`
}

type PatchProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	CategoryID  *uint   `json:"category_id"`
	ImageURL    *string `json:"image_url"`
	Available   *bool   `json:"available"`
	Featured    *bool   `json:"featured"`
}

type SetAvailabilityRequest struct {
	Available *bool `json:"available"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type AddItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	PaymentMethod   string `json:"payment_method"`
	DeliveryAddress string `json:"delivery_address"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

// CartItemView carries the live-price subtotal; nothing here is stored.
type CartItemView struct {
	ID       uint            `json:"id"`
	Product  *models.Product `json:"product"`
	Quantity uint            `json:"quantity"`
	Subtotal int64           `json:"subtotal"`
}

type CartView struct {
	ID    uint           `json:"id"`
	Items []CartItemView `json:"items"`
	Total int64          `json:"total"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type PaymentCount struct {
	PaymentMethod string `json:"payment_method"`
	Count         int64  `json:"count"`
}

type ProductSales struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

type SalesStats struct {
	From            *time.Time     `json:"from,omitempty"`
	To              *time.Time     `json:"to,omitempty"`
	TotalRevenue    int64          `json:"total_revenue"`
	OrderCount      int64          `json:"order_count"`
	AverageOrder    float64        `json:"average_order"`
	ByStatus        []StatusCount  `json:"by_status"`
	ByPaymentMethod []PaymentCount `json:"by_payment_method"`
	TopProducts     []ProductSales `json:"top_products"`
}
