package models

import "time"

// Order lifecycle states. Values match what the staff frontend sends.
const (
	StatusPending   = "PENDIENTE"
	StatusPreparing = "EN PREPARACION"
	StatusOnRoute   = "EN CAMINO"
	StatusDelivered = "ENTREGADO"
	StatusCancelled = "CANCELADO"
)

const (
	PaymentCard     = "TARJETA"
	PaymentTransfer = "TRANSFERENCIA"
	PaymentCash     = "EFECTIVO"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusOnRoute, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCard, PaymentTransfer, PaymentCash:
		return true
	}
	return false
}

// InitialStatus picks the state a fresh order starts in. Card and
// cash-on-delivery are trusted and go straight to the kitchen; bank
// transfers wait until the cashier confirms the money arrived.
func InitialStatus(paymentMethod string) string {
	if paymentMethod == PaymentTransfer {
		return StatusPending
	}
	return StatusPreparing
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Description string    `json:"description"`
	Price       int64     `gorm:"not null"                 json:"price"`
	CategoryID  *uint     `gorm:"index"                    json:"category_id"`
	Category    *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	ImageURL    string    `json:"image_url"`
	Available   bool      `gorm:"default:true"             json:"available"`
	Featured    bool      `gorm:"default:false"            json:"featured"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	Email        string `gorm:"index"                    json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:cliente" json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

// Cart is created once per user and only ever emptied, never deleted.
type Cart struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null"     json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

type CartItem struct {
	ID        uint     `gorm:"primaryKey;autoIncrement"                    json:"id"`
	CartID    uint     `gorm:"uniqueIndex:idx_cart_product;not null"       json:"cart_id"`
	ProductID uint     `gorm:"uniqueIndex:idx_cart_product;not null"       json:"product_id"`
	Quantity  uint     `gorm:"default:1;check:quantity>0"                  json:"quantity"`
	Product   *Product `gorm:"constraint:OnDelete:CASCADE"                 json:"product,omitempty"`
}

func (CartItem) TableName() string { return "cart_items" }

// Order is immutable after checkout except for Status. Total is frozen at
// creation time and never recomputed from live product prices.
type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint        `gorm:"index;not null"           json:"user_id"`
	Total           int64       `gorm:"not null"                 json:"total"`
	Status          string      `gorm:"not null"                 json:"status"`
	PaymentMethod   string      `gorm:"not null"                 json:"payment_method"`
	DeliveryAddress string      `gorm:"not null"                 json:"delivery_address"`
	CreatedAt       time.Time   `gorm:"index"                    json:"created_at"`
	Lines           []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
}

// OrderLine keeps a denormalized name and price snapshot so historical
// orders survive later catalog edits and product deletion.
type OrderLine struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint     `gorm:"index;not null"           json:"order_id"`
	ProductID   *uint    `json:"product_id"`
	Product     *Product `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	ProductName string   `gorm:"not null"                 json:"product_name"`
	UnitPrice   int64    `gorm:"not null"                 json:"unit_price"`
	Quantity    uint     `gorm:"not null"                 json:"quantity"`
}

func (OrderLine) TableName() string { return "order_lines" }
