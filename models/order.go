package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	// Pending is the only status assigned in this system; no further
	// transitions are part of the checkout flow.
	OrderStatusPending OrderStatus = "Pending"
)

// Order is created exactly once per checkout and is immutable afterwards
// except for its status field.
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    string      `gorm:"not null;index" json:"user_id"`
	OrderRef  string      `gorm:"uniqueIndex" json:"order_ref"`
	Status    OrderStatus `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderItem is a frozen snapshot of a cart line at checkout time. UnitPrice
// is copied from the product so later catalog edits cannot rewrite history.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index" json:"order_id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
}
